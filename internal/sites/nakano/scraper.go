package nakano

import (
	"context"

	"libreader/internal/browser"
	"libreader/internal/model"
	"libreader/internal/scraper"

	"go.uber.org/zap"
)

const (
	menuURL = "https://www.kn.licsre-saas.jp/tokyo-nakano/webopac/usermenu.do?target=adult/"

	listPage         = "#main > form"
	loanCells        = "#main > form:nth-child(2) > fieldset > div > table > tbody > tr > td"
	reservationCells = "#main > form:nth-child(7) > fieldset > div > table > tbody > tr > td"
)

func init() {
	scraper.Register(&Site{})
}

// Site reads the Nakano City Library web OPAC.
type Site struct{}

func (n *Site) Region() string { return "nakano" }

func (n *Site) Name() string { return "中野区立図書館" }

func (n *Site) Login(ctx context.Context, s *browser.Session, creds model.Credentials) error {
	scraper.LoggerFrom(ctx).Debug("opening user menu", zap.String("url", menuURL))
	if err := s.Navigate(menuURL); err != nil {
		return err
	}

	for _, f := range []struct{ label, value string }{
		{"利用者番号", creds.UserID},
		{"パスワード", creds.Password},
	} {
		el, err := s.ByLabel(f.label)
		if err != nil {
			return err
		}
		if err := s.Fill(el, f.value); err != nil {
			return err
		}
	}

	submit, err := s.ByRole("button", "ログインする")
	if err != nil {
		return err
	}
	if err := s.ClickAndWait(submit); err != nil {
		return err
	}
	return scraper.VerifyLoggedIn(s)
}

func (n *Site) Loans(ctx context.Context, s *browser.Session) ([]model.LoanItem, error) {
	cells, err := readCells(s, "●貸出中一覧", loanCells)
	if err != nil {
		return nil, err
	}
	scraper.LoggerFrom(ctx).Debug("loan cells read", zap.Int("cells", len(cells)))
	return parseLoans(cells)
}

func (n *Site) Reservations(ctx context.Context, s *browser.Session) ([]model.ReservationItem, error) {
	cells, err := readCells(s, "●予約中一覧", reservationCells)
	if err != nil {
		return nil, err
	}
	scraper.LoggerFrom(ctx).Debug("reservation cells read", zap.Int("cells", len(cells)))
	return parseReservations(cells)
}

func readCells(s *browser.Session, link, selector string) ([]string, error) {
	el, err := s.ByRole("link", link)
	if err != nil {
		return nil, err
	}
	if err := s.ClickAndWait(el); err != nil {
		return nil, err
	}
	if err := s.WaitSelector(listPage); err != nil {
		return nil, err
	}
	return s.InnerTexts(selector)
}
