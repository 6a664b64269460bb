package minato

import (
	"strings"

	"libreader/internal/model"
	"libreader/internal/scraper"
	"libreader/internal/textutil"
)

const (
	loanUnit        = 6
	reservationUnit = 7
)

// parseLoans pairs each title with its six div.matter cells:
// category, 貸出館, 貸出日, 返却期日, 予約数, 延長回数.
func parseLoans(titles, cells []string) ([]model.LoanItem, error) {
	rows := scraper.Chunk(cells, loanUnit)
	n := min(len(titles), len(rows))

	items := make([]model.LoanItem, 0, n)
	for i := 0; i < n; i++ {
		row := rows[i]
		if len(row) < loanUnit {
			return nil, scraper.Layoutf("minato loan %d has %d cells, want %d", i+1, len(row), loanUnit)
		}

		reserved, ok := textutil.LeadingInt(textutil.StripLabel(row[4], "予約数"))
		if !ok {
			return nil, scraper.Layoutf("minato loan %d: reservation count %q", i+1, row[4])
		}
		item := model.LoanItem{
			Title:            textutil.Clean(titles[i]),
			Category:         strings.TrimSpace(row[0]),
			CheckoutLocation: textutil.StripLabel(row[1], "貸出館"),
			CheckoutDate:     textutil.StripLabel(row[2], "貸出日"),
			ReturnDate:       textutil.StripLabel(row[3], "返却期日"),
			ReservedCount:    model.IntPtr(reserved),
			IsReserved:       model.BoolPtr(reserved > 0),
		}
		if ext, ok := textutil.LeadingInt(textutil.StripLabel(row[5], "延長回数")); ok {
			item.ExtendCount = model.IntPtr(ext)
		}
		items = append(items, item)
	}
	return items, nil
}

// parseReservations zips titles, div.intro categories and seven-cell
// div.matter rows. Cells [2], [4], [5] and [6] carry 予約日, 予約順位,
// 予約状態 and 取置期限; this OPAC shows no pickup or notification data.
func parseReservations(titles, categories, cells []string) ([]model.ReservationItem, error) {
	rows := scraper.Chunk(cells, reservationUnit)
	n := min(len(titles), len(categories), len(rows))

	items := make([]model.ReservationItem, 0, n)
	for i := 0; i < n; i++ {
		row := rows[i]
		if len(row) < reservationUnit {
			return nil, scraper.Layoutf("minato reservation %d has %d cells, want %d", i+1, len(row), reservationUnit)
		}
		items = append(items, model.ReservationItem{
			Title:             textutil.Clean(titles[i]),
			Category:          strings.TrimSpace(categories[i]),
			ReserveDate:       textutil.StripLabel(row[2], "予約日"),
			ReserveRank:       textutil.StripLabel(row[4], "予約順位"),
			ReserveStatus:     textutil.StripLabel(row[5], "予約状態"),
			ReserveExpireDate: textutil.StripLabel(row[6], "取置期限"),
		})
	}
	return items, nil
}
