package repository

import (
	"context"
	"time"

	"DivYield/internal/domain/models"
	drepo "DivYield/internal/domain/repository"
	"DivYield/pkg/cache"
)

const DefaultFetchTTL = time.Hour

// CachedMarketData memoizes both provider queries for a bounded time. Keys are
// the query name plus its arguments, so distinct windows never collide.
type CachedMarketData struct {
	next    drepo.MarketData
	memo    *cache.Memoizer
	ttl     time.Duration
	metrics drepo.Metrics
}

var _ drepo.MarketData = (*CachedMarketData)(nil)

// NewCachedMarketData wraps next. A non-positive ttl selects DefaultFetchTTL.
func NewCachedMarketData(next drepo.MarketData, memo *cache.Memoizer, ttl time.Duration, metrics drepo.Metrics) *CachedMarketData {
	if ttl <= 0 {
		ttl = DefaultFetchTTL
	}
	return &CachedMarketData{next: next, memo: memo, ttl: ttl, metrics: metrics}
}

func (c *CachedMarketData) Name() string { return c.next.Name() }

// PricesKey is the cache key of one price window.
func PricesKey(provider, ticker string, start, end time.Time) string {
	return cache.Key("prices", provider, ticker, start, end)
}

// DividendsKey is the cache key of a dividend history.
func DividendsKey(provider, ticker string) string {
	return cache.Key("dividends", provider, ticker)
}

func (c *CachedMarketData) FetchPrices(ctx context.Context, ticker string, start, end time.Time) ([]models.PricePoint, error) {
	key := PricesKey(c.next.Name(), ticker, start, end)
	out, hit, err := cache.GetOrCompute(ctx, c.memo, key, c.ttl, func(ctx context.Context) ([]models.PricePoint, error) {
		return c.next.FetchPrices(ctx, ticker, start, end)
	})
	c.record("prices", hit, err)
	return out, err
}

func (c *CachedMarketData) FetchDividends(ctx context.Context, ticker string) ([]models.DividendEvent, error) {
	key := DividendsKey(c.next.Name(), ticker)
	out, hit, err := cache.GetOrCompute(ctx, c.memo, key, c.ttl, func(ctx context.Context) ([]models.DividendEvent, error) {
		return c.next.FetchDividends(ctx, ticker)
	})
	c.record("dividends", hit, err)
	return out, err
}

func (c *CachedMarketData) record(series string, hit bool, err error) {
	if c.metrics == nil || err != nil {
		return
	}
	c.metrics.RecordCacheLookup(series, hit)
}
