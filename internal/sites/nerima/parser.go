package nerima

import (
	"strings"

	"libreader/internal/htmlutil"
	"libreader/internal/model"
	"libreader/internal/scraper"
	"libreader/internal/textutil"

	"github.com/PuerkitoBio/goquery"
)

const (
	loanRows        = "#ContentLend > form > div > table > tbody"
	reservationRows = "#ContentRsv > form > div > table > tbody"

	loanCells        = 8
	reservationCells = 11
)

// eachRow calls fn with the 1-based position of every <tr> under the tbody
// elements matching selector, and the innerText of its <td> cells. Rows
// without td (headers) are skipped.
func eachRow(panel, selector string, fn func(pos int, cells []string) error) error {
	doc, err := htmlutil.Parse(panel)
	if err != nil {
		return scraper.Layoutf("nerima panel is not html: %v", err)
	}

	var rowErr error
	doc.Find(selector).EachWithBreak(func(_ int, tbody *goquery.Selection) bool {
		tbody.ChildrenFiltered("tr").EachWithBreak(func(i int, tr *goquery.Selection) bool {
			cells := htmlutil.Texts(tr.ChildrenFiltered("td"))
			if len(cells) == 0 {
				return true
			}
			rowErr = fn(i+1, cells)
			return rowErr == nil
		})
		return rowErr == nil
	})
	return rowErr
}

// parseLoans reads the lending table. Each loan spans two rows and the data
// sits on the even one: [1] extend button, [2] title, [3] category,
// [5] location, [6] checkout date, [7] due date.
func parseLoans(panel string) ([]model.LoanItem, error) {
	items := []model.LoanItem{}
	err := eachRow(panel, loanRows, func(pos int, cells []string) error {
		if pos%2 != 0 {
			return nil
		}
		if len(cells) < loanCells {
			return scraper.Layoutf("nerima loan row %d has %d cells, want %d", pos, len(cells), loanCells)
		}
		items = append(items, model.LoanItem{
			Title:            textutil.Clean(cells[2]),
			Category:         textutil.Clean(cells[3]),
			CheckoutLocation: textutil.Clean(cells[5]),
			CheckoutDate:     textutil.Clean(cells[6]),
			ReturnDate:       textutil.Clean(cells[7]),
			IsExtendable:     model.BoolPtr(textutil.Clean(cells[1]) == "延長"),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// parseReservations reads the reservation table, one row per hold:
// [1] status, [2] "rank / total", [3] title, [4] category, [6] reserved on,
// [7] hold expiry, [9] pickup library, [10] notification.
func parseReservations(panel string) ([]model.ReservationItem, error) {
	items := []model.ReservationItem{}
	err := eachRow(panel, reservationRows, func(pos int, cells []string) error {
		if len(cells) < reservationCells {
			return scraper.Layoutf("nerima reservation row %d has %d cells, want %d", pos, len(cells), reservationCells)
		}

		rank := ""
		if fields := strings.Fields(cells[2]); len(fields) > 0 && textutil.IsNumeric(fields[0]) {
			rank = fields[0]
		}
		items = append(items, model.ReservationItem{
			ReserveStatus:      strings.ReplaceAll(cells[1], "\n", ""),
			ReserveRank:        rank,
			Title:              textutil.Clean(cells[3]),
			Category:           textutil.Clean(cells[4]),
			ReserveDate:        textutil.Clean(cells[6]),
			ReserveExpireDate:  textutil.Clean(cells[7]),
			ReceiveLocation:    textutil.Clean(cells[9]),
			NotificationMethod: textutil.Clean(cells[10]),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}
