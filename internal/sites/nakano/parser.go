package nakano

import (
	"strings"

	"libreader/internal/model"
	"libreader/internal/scraper"
	"libreader/internal/textutil"
)

const (
	loanUnit   = 10
	recordUnit = 8
)

// statuses open a reservation record.
var statuses = map[string]bool{
	"予約中": true,
	"取置済": true,
}

// normalize strips tabs and surrounding space from every cell and splits it
// into lines. An empty cell becomes a single empty line.
func normalize(raw []string) [][]string {
	cells := make([][]string, len(raw))
	for i, c := range raw {
		cells[i] = textutil.Lines(strings.TrimSpace(strings.ReplaceAll(c, "\t", "")))
	}
	return cells
}

// line returns line n of cell, trimmed, or "" when the cell is shorter.
func line(cell []string, n int) string {
	if n >= len(cell) {
		return ""
	}
	return strings.TrimSpace(cell[n])
}

// parseLoans reads ten cells per loan: [2] title (possibly wrapped over
// several lines), [3] checkout date, [4] due date, [5] location and [8] a
// reservation marker that is empty when nobody is waiting.
func parseLoans(raw []string) ([]model.LoanItem, error) {
	rows := scraper.Chunk(normalize(raw), loanUnit)
	items := make([]model.LoanItem, 0, len(rows))
	for i, row := range rows {
		if len(row) < 9 {
			return nil, scraper.Layoutf("nakano loan %d has %d cells, want %d", i+1, len(row), loanUnit)
		}
		items = append(items, model.LoanItem{
			Title:            strings.Join(row[2], ""),
			CheckoutDate:     line(row[3], 0),
			ReturnDate:       line(row[4], 0),
			CheckoutLocation: line(row[5], 0),
			IsReserved:       model.BoolPtr(line(row[8], 0) != ""),
		})
	}
	return items, nil
}

// parseReservations walks the flat cell list of the reservation table.
//
// A record is nominally eight cells with its status at offset+1. Some
// records carry one extra cell before the status, which then sits at
// offset+2; that cell is dropped so the record lines up again. Records are
// found by scanning for status cells rather than by chunking, and the
// offset advances by eight after each record.
func parseReservations(raw []string) ([]model.ReservationItem, error) {
	cells := normalize(raw)
	items := []model.ReservationItem{}

	offset := 0
	for i := 0; i < len(cells); i++ {
		if !statuses[cells[i][0]] {
			continue
		}
		if i == offset+2 {
			cells = append(cells[:offset+1], cells[offset+2:]...)
			i--
		}
		if offset+recordUnit-1 > len(cells) {
			return nil, scraper.Layoutf("nakano reservation %d runs past the table (%d cells)", len(items)+1, len(cells))
		}

		rec := cells[offset:]
		rank := ""
		if len(rec[2]) == 3 {
			rank = line(rec[2], 2)
		}
		notify := line(rec[6], 0)
		if len(rec[6]) > 1 {
			notify = line(rec[6], 1)
		}

		items = append(items, model.ReservationItem{
			Title:              strings.Join(rec[4], ""),
			ReceiveLocation:    line(rec[3], 1),
			NotificationMethod: notify,
			ReserveDate:        line(rec[2], 0),
			ReserveRank:        rank,
			ReserveStatus:      line(rec[1], 0),
			ReserveExpireDate:  line(rec[5], 0),
		})
		offset += recordUnit
	}
	return items, nil
}
