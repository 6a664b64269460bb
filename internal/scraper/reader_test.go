package scraper

import (
	"context"
	"errors"
	"testing"
	"time"

	"libreader/internal/browser"
	"libreader/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSite logs every call it receives and returns canned lists.
type recordingSite struct {
	calls []string

	loginErr       error
	reservationErr error
	loans          []model.LoanItem
}

func (s *recordingSite) Region() string { return "test-reader" }
func (s *recordingSite) Name() string   { return "Recording Library" }

func (s *recordingSite) Login(_ context.Context, _ *browser.Session, creds model.Credentials) error {
	s.calls = append(s.calls, "login:"+creds.UserID)
	return s.loginErr
}

func (s *recordingSite) Loans(context.Context, *browser.Session) ([]model.LoanItem, error) {
	s.calls = append(s.calls, "loans")
	return s.loans, nil
}

func (s *recordingSite) Reservations(context.Context, *browser.Session) ([]model.ReservationItem, error) {
	s.calls = append(s.calls, "reservations")
	if s.reservationErr != nil {
		return nil, s.reservationErr
	}
	return []model.ReservationItem{{Title: "風の又三郎", ReserveStatus: "予約中"}}, nil
}

type fakeBrowser struct {
	sessions int
	closed   bool
}

func (b *fakeBrowser) NewSession(context.Context) (*browser.Session, error) {
	b.sessions++
	return &browser.Session{}, nil
}

func (b *fakeBrowser) Close() error {
	b.closed = true
	return nil
}

type scrapeRecord struct {
	region  string
	list    List
	outcome string
}

type fakeObserver struct{ records []scrapeRecord }

func (o *fakeObserver) ObserveScrape(region string, list List, outcome string, _ time.Duration) {
	o.records = append(o.records, scrapeRecord{region, list, outcome})
}

var readerNow = time.Date(2024, 5, 10, 12, 0, 0, 0, model.Tokyo)

func newTestReader(t *testing.T, site *recordingSite) (*Reader, *fakeBrowser, *fakeObserver) {
	t.Helper()
	Register(site)
	t.Cleanup(func() { delete(registry, site.Region()) })

	b := &fakeBrowser{}
	obs := &fakeObserver{}
	r := NewReader(browser.Config{}, nil,
		WithObserver(obs),
		WithClock(func() time.Time { return readerNow }),
	)
	r.launch = func(browser.Config) (sessionOpener, error) { return b, nil }
	return r, b, obs
}

var patron = model.Credentials{UserID: "0012345", Password: "pw"}

func TestReadFetchesBothListsInOrder(t *testing.T) {
	site := &recordingSite{loans: []model.LoanItem{
		{Title: "overdue", ReturnDate: "2024/05/09"},
		{Title: "due today", ReturnDate: "2024/05/10"},
		{Title: "no date"},
	}}
	r, b, obs := newTestReader(t, site)

	result, err := r.Read(context.Background(), "TEST-READER", patron, ListReservations, ListLoans, ListLoans)
	require.NoError(t, err)

	assert.Equal(t, []string{"login:0012345", "loans", "login:0012345", "reservations"}, site.calls)
	assert.Equal(t, 2, b.sessions)
	assert.True(t, b.closed)

	assert.Equal(t, "test-reader", result.Region)
	require.Len(t, result.Loans, 3)
	assert.True(t, result.Loans[0].IsExpired)
	assert.False(t, result.Loans[1].IsExpired)
	assert.False(t, result.Loans[2].IsExpired)
	require.Len(t, result.Reservations, 1)
	assert.Equal(t, readerNow, result.FetchedAt)

	assert.Equal(t, []scrapeRecord{
		{"test-reader", ListLoans, "ok"},
		{"test-reader", ListReservations, "ok"},
	}, obs.records)
}

func TestReadSingleList(t *testing.T) {
	site := &recordingSite{}
	r, b, _ := newTestReader(t, site)

	result, err := r.Read(context.Background(), "test-reader", patron, ListReservations)
	require.NoError(t, err)

	assert.Equal(t, []string{"login:0012345", "reservations"}, site.calls)
	assert.Equal(t, 1, b.sessions)
	assert.NotNil(t, result.Loans)
	assert.Empty(t, result.Loans)
}

func TestReadWrapsListErrors(t *testing.T) {
	site := &recordingSite{reservationErr: Layoutf("record at cell %d is truncated", 16)}
	r, b, obs := newTestReader(t, site)

	_, err := r.Read(context.Background(), "test-reader", patron)
	require.ErrorIs(t, err, ErrUnexpectedLayout)
	assert.Contains(t, err.Error(), "failed to read reservations from Recording Library")
	assert.True(t, b.closed)

	assert.Equal(t, []scrapeRecord{
		{"test-reader", ListLoans, "ok"},
		{"test-reader", ListReservations, "layout"},
	}, obs.records)
}

func TestReadStopsAtFailedLogin(t *testing.T) {
	site := &recordingSite{loginErr: ErrLoginFailed}
	r, _, obs := newTestReader(t, site)

	_, err := r.Read(context.Background(), "test-reader", patron)
	require.ErrorIs(t, err, ErrLoginFailed)

	assert.Equal(t, []string{"login:0012345"}, site.calls)
	assert.Equal(t, []scrapeRecord{{"test-reader", ListLoans, "login_failed"}}, obs.records)
}

func TestReadRejectsUnknownListBeforeLaunch(t *testing.T) {
	site := &recordingSite{}
	r, b, _ := newTestReader(t, site)
	launched := false
	r.launch = func(browser.Config) (sessionOpener, error) {
		launched = true
		return b, nil
	}

	_, err := r.Read(context.Background(), "test-reader", patron, List("history"))
	var listErr *ListError
	require.True(t, errors.As(err, &listErr))
	assert.False(t, launched)
	assert.Empty(t, site.calls)
}
