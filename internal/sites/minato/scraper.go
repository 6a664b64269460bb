package minato

import (
	"context"

	"libreader/internal/browser"
	"libreader/internal/model"
	"libreader/internal/scraper"

	"go.uber.org/zap"
)

const topURL = "https://www.lib.city.minato.tokyo.jp/licsxp-opac/WOpacSmtMnuTopAction.do"

func init() {
	scraper.Register(&Site{})
}

// Site reads the Minato City Library smartphone OPAC.
type Site struct{}

func (m *Site) Region() string { return "minato" }

func (m *Site) Name() string { return "港区立図書館" }

func (m *Site) Login(ctx context.Context, s *browser.Session, creds model.Credentials) error {
	log := scraper.LoggerFrom(ctx)
	log.Debug("opening top page", zap.String("url", topURL))
	if err := s.Navigate(topURL); err != nil {
		return err
	}

	menu, err := s.ByRole("link", "マイ図書館メニューを開きます")
	if err != nil {
		return err
	}
	if err := s.Click(menu); err != nil {
		return err
	}
	login, err := s.ByRole("link", "ログイン")
	if err != nil {
		return err
	}
	if err := s.ClickAndWait(login); err != nil {
		return err
	}

	if err := fill(s, "利用者番号", creds.UserID); err != nil {
		return err
	}
	if err := fill(s, "パスワード", creds.Password); err != nil {
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

func fill(s *browser.Session, label, value string) error {
	el, err := s.ByLabel(label)
	if err != nil {
		return err
	}
	return s.Fill(el, value)
}

func (m *Site) Loans(ctx context.Context, s *browser.Session) ([]model.LoanItem, error) {
	titles, bodies, err := readList(s, "a#stat-lent", "div.title > a > strong")
	if err != nil {
		return nil, err
	}
	scraper.LoggerFrom(ctx).Debug("loan cells read", zap.Int("titles", len(titles)), zap.Int("cells", len(bodies)))
	return parseLoans(titles, bodies)
}

func (m *Site) Reservations(ctx context.Context, s *browser.Session) ([]model.ReservationItem, error) {
	titles, bodies, err := readList(s, "a#stat-resv", "div.title > strong")
	if err != nil {
		return nil, err
	}
	categories, err := s.InnerTexts("div.intro")
	if err != nil {
		return nil, err
	}
	scraper.LoggerFrom(ctx).Debug("reservation cells read", zap.Int("titles", len(titles)), zap.Int("cells", len(bodies)))
	return parseReservations(titles, categories, bodies)
}

// readList opens the status page behind link and returns the title texts
// and the flat list of div.matter cells. The OPAC renders server side, so
// an empty list is simply a page without matches.
func readList(s *browser.Session, link, titleSelector string) ([]string, []string, error) {
	el, err := s.Element(link)
	if err != nil {
		return nil, nil, err
	}
	if err := s.ClickAndWait(el); err != nil {
		return nil, nil, err
	}

	titles, err := s.InnerTexts(titleSelector)
	if err != nil {
		return nil, nil, err
	}
	bodies, err := s.InnerTexts("div.matter")
	if err != nil {
		return nil, nil, err
	}
	return titles, bodies, nil
}
