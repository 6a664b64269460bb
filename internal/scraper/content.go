package scraper

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"

	"libreader/internal/model"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
)

var (
	loanHeader        = []string{"Title", "Category", "Location", "Checked out", "Due", "Reserved", "Extendable", "Extended", "Overdue"}
	reservationHeader = []string{"Title", "Category", "Pickup", "Notify", "Reserved on", "Rank", "Status", "Cancel reason", "Hold until"}
)

// ResultContent renders a model.Result.
type ResultContent struct {
	name   string
	result *model.Result
}

// NewResultContent creates a new ResultContent; name is the library's
// display name.
func NewResultContent(name string, result *model.Result) *ResultContent {
	return &ResultContent{name: name, result: result}
}

func loanRow(l model.LoanItem) []string {
	return []string{
		l.Title, l.Category, l.CheckoutLocation, l.CheckoutDate, l.ReturnDate,
		optInt(l.ReservedCount), optBool(l.IsExtendable), optInt(l.ExtendCount),
		strconv.FormatBool(l.IsExpired),
	}
}

func reservationRow(r model.ReservationItem) []string {
	return []string{
		r.Title, r.Category, r.ReceiveLocation, r.NotificationMethod, r.ReserveDate,
		r.ReserveRank, r.ReserveStatus, r.ReserveCancelReason, r.ReserveExpireDate,
	}
}

func optInt(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func optBool(b *bool) string {
	if b == nil {
		return ""
	}
	return strconv.FormatBool(*b)
}

func (c *ResultContent) ToHTML() (string, error) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<h1>%s</h1>\n", html.EscapeString(c.name)))

	sb.WriteString(fmt.Sprintf("<h2>Loans (%d)</h2>\n", len(c.result.Loans)))
	rows := make([][]string, 0, len(c.result.Loans))
	for _, l := range c.result.Loans {
		rows = append(rows, loanRow(l))
	}
	writeHTMLTable(&sb, loanHeader, rows)

	sb.WriteString(fmt.Sprintf("<h2>Reservations (%d)</h2>\n", len(c.result.Reservations)))
	rows = rows[:0]
	for _, r := range c.result.Reservations {
		rows = append(rows, reservationRow(r))
	}
	writeHTMLTable(&sb, reservationHeader, rows)

	return sb.String(), nil
}

func writeHTMLTable(sb *strings.Builder, header []string, rows [][]string) {
	sb.WriteString("<table>\n<thead><tr>")
	for _, h := range header {
		sb.WriteString("<th>" + html.EscapeString(h) + "</th>")
	}
	sb.WriteString("</tr></thead>\n<tbody>\n")
	for _, row := range rows {
		sb.WriteString("<tr>")
		for _, cell := range row {
			sb.WriteString("<td>" + html.EscapeString(cell) + "</td>")
		}
		sb.WriteString("</tr>\n")
	}
	sb.WriteString("</tbody>\n</table>\n")
}

func (c *ResultContent) ToMarkdown() (string, error) {
	h, err := c.ToHTML()
	if err != nil {
		return "", err
	}

	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.Table())
	markdown, err := converter.ConvertString(h)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to Markdown: %w", err)
	}
	return markdown, nil
}

func (c *ResultContent) ToText() (string, error) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s\n\n", c.name))

	sb.WriteString(fmt.Sprintf("Loans: %d\n", len(c.result.Loans)))
	for i, l := range c.result.Loans {
		due := l.ReturnDate
		if l.IsExpired {
			due += " (overdue)"
		}
		sb.WriteString(fmt.Sprintf("%d. %s\n   due %s", i+1, l.Title, due))
		if l.CheckoutLocation != "" {
			sb.WriteString(" @ " + l.CheckoutLocation)
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("\nReservations: %d\n", len(c.result.Reservations)))
	for i, r := range c.result.Reservations {
		sb.WriteString(fmt.Sprintf("%d. %s\n   %s", i+1, r.Title, r.ReserveStatus))
		if r.ReserveRank != "" {
			sb.WriteString(" #" + r.ReserveRank)
		}
		if r.ReserveExpireDate != "" {
			sb.WriteString(", hold until " + r.ReserveExpireDate)
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func (c *ResultContent) ToJSON() ([]byte, error) {
	return json.MarshalIndent(c.result, "", "  ")
}

func (c *ResultContent) ToCSV() (string, error) {
	var buf bytes.Buffer
	if err := c.WriteCSV(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteCSV writes the loans and reservations as two headed CSV sections.
func (c *ResultContent) WriteCSV(out io.Writer) error {
	loans := make([][]string, 0, len(c.result.Loans)+1)
	loans = append(loans, loanHeader)
	for _, l := range c.result.Loans {
		loans = append(loans, loanRow(l))
	}
	if err := writeCSVSection(out, "# Loans\n", loans); err != nil {
		return fmt.Errorf("failed to write loans csv: %w", err)
	}

	reservations := make([][]string, 0, len(c.result.Reservations)+1)
	reservations = append(reservations, reservationHeader)
	for _, r := range c.result.Reservations {
		reservations = append(reservations, reservationRow(r))
	}
	if err := writeCSVSection(out, "\n# Reservations\n", reservations); err != nil {
		return fmt.Errorf("failed to write reservations csv: %w", err)
	}
	return nil
}

func writeCSVSection(out io.Writer, title string, records [][]string) error {
	if _, err := io.WriteString(out, title); err != nil {
		return err
	}
	return csv.NewWriter(out).WriteAll(records)
}
