package repository

import (
	"context"
	"time"

	"DivYield/internal/domain/models"
)

// PriceFetcher returns daily adjusted closes covering [start, end] inclusive,
// ascending by trade date. An empty slice is a valid answer.
type PriceFetcher interface {
	FetchPrices(ctx context.Context, ticker string, start, end time.Time) ([]models.PricePoint, error)
}

// DividendFetcher returns the full ex-dividend history of a ticker in no
// particular order. A ticker that never paid yields an empty slice.
type DividendFetcher interface {
	FetchDividends(ctx context.Context, ticker string) ([]models.DividendEvent, error)
}

// MarketData is a provider able to serve both series.
type MarketData interface {
	PriceFetcher
	DividendFetcher
	Name() string
}

type Metrics interface {
	RecordComputation(ticker, outcome string)
	RecordFetch(provider, series string, seconds float64, err error)
	RecordCacheLookup(series string, hit bool)
	RecordError(kind string)
}
