package nerima

import (
	"context"

	"libreader/internal/browser"
	"libreader/internal/model"
	"libreader/internal/scraper"

	"go.uber.org/zap"
)

const topURL = "https://www.lib.nerima.tokyo.jp/"

func init() {
	scraper.Register(&Site{})
}

// Site reads the Nerima City Library portal. Both lists live in tabs of the
// same "my page".
type Site struct{}

func (n *Site) Region() string { return "nerima" }

func (n *Site) Name() string { return "練馬区立図書館" }

func (n *Site) Login(ctx context.Context, s *browser.Session, creds model.Credentials) error {
	scraper.LoggerFrom(ctx).Debug("opening top page", zap.String("url", topURL))
	if err := s.Navigate(topURL); err != nil {
		return err
	}

	link, err := s.ByRole("link", "利用者ログイン")
	if err != nil {
		return err
	}
	if err := s.ClickAndWait(link); err != nil {
		return err
	}

	for _, f := range []struct{ placeholder, value string }{
		{"利用者ID", creds.UserID},
		{"パスワード", creds.Password},
	} {
		el, err := s.ByPlaceholder(f.placeholder)
		if err != nil {
			return err
		}
		if err := s.Fill(el, f.value); err != nil {
			return err
		}
	}

	submit, err := s.ByRole("button", "送信")
	if err != nil {
		return err
	}
	if err := s.ClickAndWait(submit); err != nil {
		return err
	}
	return scraper.VerifyLoggedIn(s)
}

func (n *Site) Loans(ctx context.Context, s *browser.Session) ([]model.LoanItem, error) {
	panel, err := openTab(s, "#ContentLend-tab", "#ContentLend")
	if err != nil {
		return nil, err
	}
	scraper.LoggerFrom(ctx).Debug("loan panel read", zap.Int("bytes", len(panel)))
	return parseLoans(panel)
}

func (n *Site) Reservations(ctx context.Context, s *browser.Session) ([]model.ReservationItem, error) {
	panel, err := openTab(s, "#ContentRsv-tab", "#ContentRsv")
	if err != nil {
		return nil, err
	}
	scraper.LoggerFrom(ctx).Debug("reservation panel read", zap.Int("bytes", len(panel)))
	return parseReservations(panel)
}

// openTab activates a tab and returns the outerHTML of its panel.
func openTab(s *browser.Session, tab, panel string) (string, error) {
	el, err := s.Element(tab)
	if err != nil {
		return "", err
	}
	if err := s.Click(el); err != nil {
		return "", err
	}
	if err := s.WaitLoad(); err != nil {
		return "", err
	}
	return s.OuterHTML(panel)
}
