package suginami

import (
	"strings"

	"libreader/internal/model"
	"libreader/internal/scraper"
	"libreader/internal/textutil"
)

const (
	loanUnit        = 8
	reservationUnit = 12

	// selectable marks pickup/notification settings the patron can still change.
	selectable = "選択可"
)

// parseLoans reads eight cells per loan: title, category, location,
// checkout date, due date, reservation count, extension count, and one
// action cell.
func parseLoans(cells []string) ([]model.LoanItem, error) {
	rows := scraper.Chunk(cells, loanUnit)
	items := make([]model.LoanItem, 0, len(rows))
	for i, row := range rows {
		if len(row) < loanUnit-1 {
			return nil, scraper.Layoutf("suginami loan %d has %d cells, want %d", i+1, len(row), loanUnit)
		}
		reserved, ok := textutil.LeadingInt(row[5])
		if !ok {
			return nil, scraper.Layoutf("suginami loan %d: reservation count %q", i+1, row[5])
		}

		item := model.LoanItem{
			Title:            textutil.Clean(row[0]),
			Category:         textutil.Clean(row[1]),
			CheckoutLocation: textutil.Clean(row[2]),
			CheckoutDate:     textutil.Clean(row[3]),
			ReturnDate:       textutil.Clean(row[4]),
			ReservedCount:    model.IntPtr(reserved),
			IsReserved:       model.BoolPtr(reserved > 0),
		}
		if ext, ok := textutil.LeadingInt(row[6]); ok {
			item.ExtendCount = model.IntPtr(ext)
		}
		items = append(items, item)
	}
	return items, nil
}

// parseReservations reads twelve cells per hold. Cell [2] holds pickup
// library and notification method on two lines once both are fixed;
// anything else means the patron may still choose.
func parseReservations(cells []string) ([]model.ReservationItem, error) {
	rows := scraper.Chunk(cells, reservationUnit)
	items := make([]model.ReservationItem, 0, len(rows))
	for i, row := range rows {
		if len(row) < 8 {
			return nil, scraper.Layoutf("suginami reservation %d has %d cells, want %d", i+1, len(row), reservationUnit)
		}

		location, notify := selectable, selectable
		if lines := strings.Split(row[2], "\n"); len(lines) == 2 {
			location, notify = strings.TrimSpace(lines[0]), strings.TrimSpace(lines[1])
		}

		items = append(items, model.ReservationItem{
			Title:               textutil.Clean(row[0]),
			Category:            textutil.Clean(row[1]),
			ReceiveLocation:     location,
			NotificationMethod:  notify,
			ReserveDate:         strings.TrimSpace(strings.Split(row[3], "\n")[0]),
			ReserveRank:         textutil.Clean(row[4]),
			ReserveStatus:       textutil.Clean(row[5]),
			ReserveCancelReason: textutil.Clean(row[6]),
			ReserveExpireDate:   textutil.Clean(row[7]),
		})
	}
	return items, nil
}
