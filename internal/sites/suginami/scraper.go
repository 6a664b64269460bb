package suginami

import (
	"context"

	"libreader/internal/browser"
	"libreader/internal/model"
	"libreader/internal/scraper"

	"go.uber.org/zap"
)

const (
	topURL = "https://www.library.city.suginami.tokyo.jp/"

	// present on every my-library page, with or without rows
	listPage = "div.main"

	loanCells        = "div.main > table > tbody > tr > td"
	reservationCells = "table#ItemDetaTable > tbody > tr > td"
)

func init() {
	scraper.Register(&Site{})
}

// Site reads the Suginami City Library portal.
type Site struct{}

func (g *Site) Region() string { return "suginami" }

func (g *Site) Name() string { return "杉並区立図書館" }

func (g *Site) Login(ctx context.Context, s *browser.Session, creds model.Credentials) error {
	scraper.LoggerFrom(ctx).Debug("opening top page", zap.String("url", topURL))
	if err := s.Navigate(topURL); err != nil {
		return err
	}

	link, err := s.ByRoleIn("banner", "link", "利用者ログイン")
	if err != nil {
		return err
	}
	if err := s.ClickAndWait(link); err != nil {
		return err
	}
	// The first page only explains the login; its button leads to the form.
	proceed, err := s.ByRole("button", "ログイン")
	if err != nil {
		return err
	}
	if err := s.ClickAndWait(proceed); err != nil {
		return err
	}

	card, err := s.ByRole("textbox", "図書館利用カード番号")
	if err != nil {
		return err
	}
	if err := s.Fill(card, creds.UserID); err != nil {
		return err
	}
	password, err := s.ByLabel("パスワード")
	if err != nil {
		return err
	}
	if err := s.Fill(password, creds.Password); err != nil {
		return err
	}

	submit, err := s.ByRole("button", "ログイン")
	if err != nil {
		return err
	}
	if err := s.ClickAndWait(submit); err != nil {
		return err
	}
	return scraper.VerifyLoggedIn(s)
}

func (g *Site) Loans(ctx context.Context, s *browser.Session) ([]model.LoanItem, error) {
	cells, err := readCells(s, "あなたが現在借りている資料です", loanCells)
	if err != nil {
		return nil, err
	}
	scraper.LoggerFrom(ctx).Debug("loan cells read", zap.Int("cells", len(cells)))
	return parseLoans(cells)
}

func (g *Site) Reservations(ctx context.Context, s *browser.Session) ([]model.ReservationItem, error) {
	cells, err := readCells(s, "あなたが現在予約している資料です", reservationCells)
	if err != nil {
		return nil, err
	}
	scraper.LoggerFrom(ctx).Debug("reservation cells read", zap.Int("cells", len(cells)))
	return parseReservations(cells)
}

// readCells follows the menu entry with the given title and returns the
// innerText of every table cell matching selector once the page body is
// there.
func readCells(s *browser.Session, title, selector string) ([]string, error) {
	entry, err := s.ByTitle(title)
	if err != nil {
		return nil, err
	}
	if err := s.ClickAndWait(entry); err != nil {
		return nil, err
	}
	if err := s.WaitSelector(listPage); err != nil {
		return nil, err
	}
	return s.InnerTexts(selector)
}
