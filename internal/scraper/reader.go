package scraper

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"libreader/internal/browser"
	"libreader/internal/model"

	"go.uber.org/zap"
)

// Observer receives one call per list fetch.
type Observer interface {
	ObserveScrape(region string, list List, outcome string, elapsed time.Duration)
}

// sessionOpener is the part of *browser.Browser the Reader drives.
type sessionOpener interface {
	NewSession(ctx context.Context) (*browser.Session, error)
	Close() error
}

func launchBrowser(cfg browser.Config) (sessionOpener, error) {
	return browser.New(cfg)
}

// Reader launches a browser per request and runs a Site against it.
type Reader struct {
	cfg      browser.Config
	log      *zap.Logger
	observer Observer
	now      func() time.Time
	launch   func(browser.Config) (sessionOpener, error)
}

// Option configures a Reader.
type Option func(*Reader)

// WithObserver reports every list fetch to o.
func WithObserver(o Observer) Option {
	return func(r *Reader) { r.observer = o }
}

// WithClock overrides the clock used for is_expired.
func WithClock(now func() time.Time) Option {
	return func(r *Reader) { r.now = now }
}

// NewReader creates a Reader. A nil logger discards logs.
func NewReader(cfg browser.Config, log *zap.Logger, opts ...Option) *Reader {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Reader{cfg: cfg, log: log, now: time.Now, launch: launchBrowser}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Read logs into the portal of region and fetches the requested lists.
// Loans are always read before reservations.
func (r *Reader) Read(ctx context.Context, region string, creds model.Credentials, lists ...List) (*model.Result, error) {
	site, ok := Get(region)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRegion, region)
	}
	if strings.TrimSpace(creds.UserID) == "" || creds.Password == "" {
		return nil, ErrMissingCredentials
	}
	wanted, err := ordered(lists)
	if err != nil {
		return nil, err
	}

	log := loggerOr(ctx, r.log).With(zap.String("region", site.Region()))
	ctx = WithLogger(ctx, log)

	b, err := r.launch(r.cfg)
	if err != nil {
		return nil, err
	}
	defer b.Close()

	result := &model.Result{
		Region:       site.Region(),
		Loans:        []model.LoanItem{},
		Reservations: []model.ReservationItem{},
	}

	for _, list := range wanted {
		if err := r.readList(ctx, b, site, creds, list, result); err != nil {
			return nil, err
		}
	}

	now := r.now()
	for i := range result.Loans {
		result.Loans[i].IsExpired = result.Loans[i].Expired(now)
	}
	result.FetchedAt = now
	return result, nil
}

// ordered returns the requested lists without duplicates, in fetch order.
// No lists means all of them.
func ordered(lists []List) ([]List, error) {
	if len(lists) == 0 {
		return AllLists, nil
	}
	requested := make(map[List]bool, len(lists))
	for _, l := range lists {
		if !slices.Contains(AllLists, l) {
			return nil, &ListError{Name: string(l)}
		}
		requested[l] = true
	}
	var out []List
	for _, l := range AllLists {
		if requested[l] {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *Reader) readList(ctx context.Context, b sessionOpener, site Site, creds model.Credentials, list List, result *model.Result) (err error) {
	start := time.Now()
	log := LoggerFrom(ctx).With(zap.String("list", string(list)))
	defer func() {
		outcome := Outcome(err)
		if r.observer != nil {
			r.observer.ObserveScrape(site.Region(), list, outcome, time.Since(start))
		}
		log.Info("list fetched", zap.String("outcome", outcome), zap.Duration("elapsed", time.Since(start)))
	}()

	s, err := b.NewSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	log.Debug("logging in", zap.Stringer("patron", creds))
	if err := site.Login(ctx, s, creds); err != nil {
		return fmt.Errorf("failed to log in to %s: %w", site.Name(), err)
	}

	switch list {
	case ListLoans:
		items, err := site.Loans(ctx, s)
		if err != nil {
			return fmt.Errorf("failed to read loans from %s: %w", site.Name(), err)
		}
		result.Loans = append(result.Loans, items...)
	case ListReservations:
		items, err := site.Reservations(ctx, s)
		if err != nil {
			return fmt.Errorf("failed to read reservations from %s: %w", site.Name(), err)
		}
		result.Reservations = append(result.Reservations, items...)
	default:
		return &ListError{Name: string(list)}
	}
	return nil
}
