package repository

import (
	"context"
	"time"

	"DivYield/internal/domain/models"
	drepo "DivYield/internal/domain/repository"
	applogger "DivYield/pkg/logger"
)

// InstrumentedMarketData records latency and failures of every provider call.
type InstrumentedMarketData struct {
	next    drepo.MarketData
	metrics drepo.Metrics
	logger  *applogger.Logger
}

var _ drepo.MarketData = (*InstrumentedMarketData)(nil)

// NewInstrumentedMarketData wraps next.
func NewInstrumentedMarketData(next drepo.MarketData, metrics drepo.Metrics, l *applogger.Logger) *InstrumentedMarketData {
	if l == nil {
		l = applogger.Nop()
	}
	return &InstrumentedMarketData{next: next, metrics: metrics, logger: l}
}

func (m *InstrumentedMarketData) Name() string { return m.next.Name() }

func (m *InstrumentedMarketData) FetchPrices(ctx context.Context, ticker string, start, end time.Time) ([]models.PricePoint, error) {
	began := time.Now()
	out, err := m.next.FetchPrices(ctx, ticker, start, end)
	m.observe("prices", ticker, began, err,
		applogger.Date("start", start),
		applogger.Date("end", end),
		applogger.Int("points", len(out)),
	)
	return out, err
}

func (m *InstrumentedMarketData) FetchDividends(ctx context.Context, ticker string) ([]models.DividendEvent, error) {
	began := time.Now()
	out, err := m.next.FetchDividends(ctx, ticker)
	m.observe("dividends", ticker, began, err, applogger.Int("events", len(out)))
	return out, err
}

func (m *InstrumentedMarketData) observe(series, ticker string, began time.Time, err error, extra ...applogger.Field) {
	elapsed := time.Since(began)
	if m.metrics != nil {
		m.metrics.RecordFetch(m.next.Name(), series, elapsed.Seconds(), err)
	}
	fields := append([]applogger.Field{
		applogger.String("provider", m.next.Name()),
		applogger.String("series", series),
		applogger.String("ticker", ticker),
		applogger.Duration("duration_ms", elapsed),
	}, extra...)
	if err != nil {
		m.logger.Warn("provider fetch failed", append(fields, applogger.Error(err))...)
		return
	}
	m.logger.Debug("provider fetch", fields...)
}
