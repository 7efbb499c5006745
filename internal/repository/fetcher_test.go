package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"DivYield/internal/domain/models"
	"DivYield/pkg/cache"
	"DivYield/pkg/util"

	"github.com/shopspring/decimal"
)

type fakeProvider struct {
	mu        sync.Mutex
	prices    []models.PricePoint
	dividends []models.DividendEvent
	err       error
	calls     map[string]int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		prices: []models.PricePoint{
			{TradeDate: util.MustParseDate("2020-01-02"), Close: decimal.RequireFromString("75.0875")},
		},
		dividends: []models.DividendEvent{
			{ExDate: util.MustParseDate("2020-02-07"), Amount: decimal.RequireFromString("0.77")},
		},
		calls: map[string]int{},
	}
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) FetchPrices(_ context.Context, ticker string, start, end time.Time) ([]models.PricePoint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[PricesKey("fake", ticker, start, end)]++
	return f.prices, f.err
}

func (f *fakeProvider) FetchDividends(_ context.Context, ticker string) ([]models.DividendEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[DividendsKey("fake", ticker)]++
	return f.dividends, f.err
}

type fakeMetrics struct {
	mu       sync.Mutex
	fetches  []string
	lookups  map[bool]int
	failures int
}

func newFakeMetrics() *fakeMetrics { return &fakeMetrics{lookups: map[bool]int{}} }

func (m *fakeMetrics) RecordComputation(string, string) {}
func (m *fakeMetrics) RecordError(string) {}

func (m *fakeMetrics) RecordFetch(provider, series string, _ float64, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetches = append(m.fetches, provider+":"+series)
	if err != nil {
		m.failures++
	}
}

func (m *fakeMetrics) RecordCacheLookup(_ string, hit bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookups[hit]++
}

func newCached(t *testing.T, p *fakeProvider, clock util.Clock, m *fakeMetrics) *CachedMarketData {
	t.Helper()
	store := cache.NewMemoryCache(cache.WithMemoryClock(clock))
	t.Cleanup(func() { _ = store.Close() })
	return NewCachedMarketData(p, cache.NewMemoizer(store, nil), time.Hour, m)
}

func TestCachedMarketDataMemoizesPerArguments(t *testing.T) {
	ctx := context.Background()
	clock := util.NewFakeClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	p := newFakeProvider()
	m := newFakeMetrics()
	c := newCached(t, p, clock, m)

	start, end := util.MustParseDate("2019-12-26"), util.MustParseDate("2020-01-03")
	for i := 0; i < 3; i++ {
		got, err := c.FetchPrices(ctx, "AAPL", start, end)
		if err != nil || len(got) != 1 || got[0].Close.String() != "75.0875" {
			t.Fatalf("fetch %d: %+v %v", i, got, err)
		}
	}
	if n := p.calls[PricesKey("fake", "AAPL", start, end)]; n != 1 {
		t.Fatalf("expected one upstream call, got %d", n)
	}

	// a different window is a different key
	if _, err := c.FetchPrices(ctx, "AAPL", start, util.MustParseDate("2020-01-04")); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(p.calls) != 2 {
		t.Fatalf("expected two distinct keys, got %v", p.calls)
	}
	if m.lookups[true] != 2 || m.lookups[false] != 2 {
		t.Fatalf("unexpected hit/miss counts %v", m.lookups)
	}

	clock.Advance(time.Hour)
	_, _ = c.FetchPrices(ctx, "AAPL", start, end)
	if n := p.calls[PricesKey("fake", "AAPL", start, end)]; n != 2 {
		t.Fatalf("expected refetch after ttl, got %d calls", n)
	}
}

func TestCachedMarketDataDoesNotCacheFailures(t *testing.T) {
	ctx := context.Background()
	p := newFakeProvider()
	p.err = models.ErrDataUnavailable
	c := newCached(t, p, util.SystemClock{}, newFakeMetrics())

	if _, err := c.FetchDividends(ctx, "KO"); !errors.Is(err, models.ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable, got %v", err)
	}
	p.err = nil
	got, err := c.FetchDividends(ctx, "KO")
	if err != nil || len(got) != 1 {
		t.Fatalf("expected recovery, got %v %v", got, err)
	}
	if n := p.calls[DividendsKey("fake", "KO")]; n != 2 {
		t.Fatalf("expected two upstream calls, got %d", n)
	}
}

func TestKeys(t *testing.T) {
	if got := PricesKey("yahoo", "AAPL", util.MustParseDate("2020-01-02"), util.MustParseDate("2020-03-01")); got != "prices:yahoo:AAPL:2020-01-02:2020-03-01" {
		t.Fatalf("unexpected prices key %q", got)
	}
	if got := DividendsKey("eodhd", "KO"); got != "dividends:eodhd:KO" {
		t.Fatalf("unexpected dividends key %q", got)
	}
}

func TestInstrumentedMarketDataRecordsFetches(t *testing.T) {
	ctx := context.Background()
	p := newFakeProvider()
	m := newFakeMetrics()
	im := NewInstrumentedMarketData(p, m, nil)

	_, _ = im.FetchPrices(ctx, "AAPL", util.MustParseDate("2020-01-01"), util.MustParseDate("2020-01-05"))
	p.err = errors.New("boom")
	_, _ = im.FetchDividends(ctx, "AAPL")

	if len(m.fetches) != 2 || m.fetches[0] != "fake:prices" || m.fetches[1] != "fake:dividends" {
		t.Fatalf("unexpected fetch records %v", m.fetches)
	}
	if m.failures != 1 {
		t.Fatalf("expected one failure, got %d", m.failures)
	}
	if im.Name() != "fake" {
		t.Fatalf("name not forwarded")
	}
}
