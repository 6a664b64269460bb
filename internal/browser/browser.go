package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Config controls how Chromium is launched.
type Config struct {
	Headless  bool
	ProxyURL  string
	Bin       string // empty lets rod download or locate a browser
	NoSandbox bool
	Timeout   time.Duration // per interaction step
}

// Browser wraps a rod.Browser instance.
type Browser struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	cfg      Config
}

// New launches Chromium and connects to it.
func New(cfg Config) (*Browser, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}

	l := newLauncher(cfg)
	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(url)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	return &Browser{
		browser:  browser,
		launcher: l,
		cfg:      cfg,
	}, nil
}

func newLauncher(cfg Config) *launcher.Launcher {
	l := launcher.New().
		Headless(cfg.Headless).
		Set("disable-gpu").
		Set("single-process").
		Leakless(false)

	if cfg.Bin != "" {
		l = l.Bin(cfg.Bin)
	}
	if cfg.NoSandbox {
		l = l.NoSandbox(true)
	}
	if cfg.ProxyURL != "" {
		l = l.Proxy(cfg.ProxyURL)
	}
	return l
}

// NewSession opens a page in a fresh incognito context bound to ctx.
// Closing the session discards the context and its cookies.
func (b *Browser) NewSession(ctx context.Context) (*Session, error) {
	incognito, err := b.browser.Incognito()
	if err != nil {
		return nil, fmt.Errorf("failed to create incognito context: %w", err)
	}

	page, err := incognito.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = incognito.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	_ = page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
		UserAgent:      userAgent,
		AcceptLanguage: "ja,en;q=0.8",
	})
	_, _ = page.EvalOnNewDocument(`Object.defineProperty(navigator, 'webdriver', {get: () => undefined});`)

	return &Session{
		context: incognito,
		page:    page.Context(ctx),
		timeout: b.cfg.Timeout,
	}, nil
}

// Close closes the browser and cleans up resources.
func (b *Browser) Close() error {
	if b.browser != nil {
		if err := b.browser.Close(); err != nil {
			return err
		}
	}
	if b.launcher != nil {
		b.launcher.Kill()
	}
	return nil
}
