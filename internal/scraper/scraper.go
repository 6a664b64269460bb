package scraper

import (
	"context"

	"libreader/internal/browser"
	"libreader/internal/model"
)

// Site drives one library portal. Login and the list readers each run in a
// session of their own; a list reader may assume Login succeeded on s.
type Site interface {
	Region() string
	Name() string
	Login(ctx context.Context, s *browser.Session, creds model.Credentials) error
	Loans(ctx context.Context, s *browser.Session) ([]model.LoanItem, error)
	Reservations(ctx context.Context, s *browser.Session) ([]model.ReservationItem, error)
}

// Content is a scrape result renderable in every output format.
type Content interface {
	ToHTML() (string, error)
	ToText() (string, error)
	ToMarkdown() (string, error)
	ToJSON() ([]byte, error)
	ToCSV() (string, error)
}

// List names one of the pages a Site can read.
type List string

const (
	ListLoans        List = "loans"
	ListReservations List = "reservations"
)

// AllLists is the default selection, in fetch order.
var AllLists = []List{ListLoans, ListReservations}

// ParseLists turns a CLI/API selector into lists. "" and "all" mean both.
func ParseLists(s string) ([]List, error) {
	switch s {
	case "", "all":
		return AllLists, nil
	case string(ListLoans), "lent":
		return []List{ListLoans}, nil
	case string(ListReservations), "reserve":
		return []List{ListReservations}, nil
	default:
		return nil, &ListError{Name: s}
	}
}

// Chunk splits cells into rows of size. The last row is short when
// len(cells) is not a multiple of size.
func Chunk[T any](cells []T, size int) [][]T {
	if size <= 0 {
		return nil
	}
	rows := make([][]T, 0, (len(cells)+size-1)/size)
	for i := 0; i < len(cells); i += size {
		end := min(i+size, len(cells))
		rows = append(rows, cells[i:end])
	}
	return rows
}

// VerifyLoggedIn fails with ErrLoginFailed while a password field is still
// on screen after submitting the login form.
func VerifyLoggedIn(s *browser.Session) error {
	still, err := s.HasVisible(`input[type="password"]`)
	if err != nil {
		return err
	}
	if still {
		return ErrLoginFailed
	}
	return nil
}
