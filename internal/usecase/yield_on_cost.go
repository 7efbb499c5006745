package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"DivYield/internal/domain/models"
	domrepo "DivYield/internal/domain/repository"
	applogger "DivYield/pkg/logger"
	"DivYield/pkg/util"

	"github.com/shopspring/decimal"
)

const (
	// purchaseLookback widens the price window so a quiet first week still
	// leaves the provider something to return.
	purchaseLookback = 7
	// endPad covers providers that treat the end of the window as exclusive.
	endPad = 1
)

// EarliestInvestDate is the oldest investment date accepted.
var EarliestInvestDate = util.NewDate(1980, time.January, 1)

// Computation outcomes reported to metrics.
const (
	OutcomeOK              = "ok"
	OutcomeInvalidInput    = "invalid_input"
	OutcomeNoTradingDay    = "no_trading_day"
	OutcomeDataUnavailable = "data_unavailable"
	OutcomeError           = "error"
)

// YieldOnCost computes dividends received per share over a holding window
// divided by the purchase price. It holds no per-call state and is safe for
// concurrent use.
type YieldOnCost struct {
	prices    domrepo.PriceFetcher
	dividends domrepo.DividendFetcher
	metrics   domrepo.Metrics
	logger    *applogger.Logger
	clock     util.Clock
}

func NewYieldOnCost(prices domrepo.PriceFetcher, dividends domrepo.DividendFetcher, metrics domrepo.Metrics, l *applogger.Logger, clock util.Clock) *YieldOnCost {
	if l == nil {
		l = applogger.Nop()
	}
	if clock == nil {
		clock = util.SystemClock{}
	}
	return &YieldOnCost{prices: prices, dividends: dividends, metrics: metrics, logger: l, clock: clock}
}

// Today returns the current calendar date of the calculator's clock.
func (u *YieldOnCost) Today() time.Time { return util.Today(u.clock) }

// ParseDates parses YYYY-MM-DD inputs. An empty end defaults to today.
func (u *YieldOnCost) ParseDates(invest, end string) (time.Time, time.Time, error) {
	investDate, err := util.ParseDate(invest)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invest date: %v", models.ErrInvalidInput, err)
	}
	endDate := u.Today()
	if end != "" {
		if endDate, err = util.ParseDate(end); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: end date: %v", models.ErrInvalidInput, err)
		}
	}
	return investDate, endDate, nil
}

// Compute runs one calculation. Prices are fetched first; dividends only once a
// purchase day exists. Any failure aborts without a partial result.
func (u *YieldOnCost) Compute(ctx context.Context, ticker string, investDate, endDate time.Time) (*models.YieldResult, error) {
	ticker = util.NormalizeTicker(ticker)
	investDate, endDate = util.Day(investDate), util.Day(endDate)

	res, err := u.compute(ctx, ticker, investDate, endDate)
	u.report(ticker, investDate, endDate, res, err)
	return res, err
}

func (u *YieldOnCost) compute(ctx context.Context, ticker string, investDate, endDate time.Time) (*models.YieldResult, error) {
	if err := u.validate(ticker, investDate, endDate); err != nil {
		return nil, err
	}

	prices, err := u.prices.FetchPrices(ctx, ticker, util.AddDays(investDate, -purchaseLookback), util.AddDays(endDate, endPad))
	if err != nil {
		return nil, wrapFetch(err)
	}

	purchase, ok := purchasePoint(prices, investDate)
	if !ok {
		return nil, fmt.Errorf("%w on/after %s for %s", models.ErrNoTradingDay, util.FormatDate(investDate), ticker)
	}

	history, err := u.dividends.FetchDividends(ctx, ticker)
	if err != nil {
		return nil, wrapFetch(err)
	}

	window := dividendsInWindow(history, investDate, endDate)
	total := decimal.Zero
	for _, d := range window {
		total = total.Add(d.Amount)
	}

	res := &models.YieldResult{
		Ticker:         ticker,
		InvestDate:     investDate,
		EndDate:        endDate,
		PurchaseDate:   purchase.TradeDate,
		PurchasePrice:  purchase.Close,
		Dividends:      window,
		TotalDividends: total,
	}
	if !purchase.Close.IsZero() {
		res.YieldOnCost = decimal.NewNullDecimal(total.Div(purchase.Close))
	}
	return res, nil
}

func (u *YieldOnCost) validate(ticker string, investDate, endDate time.Time) error {
	today := u.Today()
	switch {
	case ticker == "":
		return fmt.Errorf("%w: ticker is required", models.ErrInvalidInput)
	case endDate.Before(investDate):
		return fmt.Errorf("%w: end date %s is before invest date %s", models.ErrInvalidInput, util.FormatDate(endDate), util.FormatDate(investDate))
	case investDate.Before(EarliestInvestDate):
		return fmt.Errorf("%w: invest date must be on or after %s", models.ErrInvalidInput, util.FormatDate(EarliestInvestDate))
	case investDate.After(today):
		return fmt.Errorf("%w: invest date %s is in the future", models.ErrInvalidInput, util.FormatDate(investDate))
	case endDate.After(today):
		return fmt.Errorf("%w: end date %s is in the future", models.ErrInvalidInput, util.FormatDate(endDate))
	}
	return nil
}

// purchasePoint returns the earliest point trading on or after investDate.
func purchasePoint(prices []models.PricePoint, investDate time.Time) (models.PricePoint, bool) {
	var (
		best  models.PricePoint
		found bool
	)
	for _, p := range prices {
		d := util.Day(p.TradeDate)
		if d.Before(investDate) {
			continue
		}
		if !found || d.Before(best.TradeDate) {
			best = models.PricePoint{TradeDate: d, Close: p.Close}
			found = true
		}
	}
	return best, found
}

// dividendsInWindow keeps investDate < ex <= endDate, ascending. Same-day
// events are all kept.
func dividendsInWindow(history []models.DividendEvent, investDate, endDate time.Time) []models.DividendEvent {
	out := make([]models.DividendEvent, 0)
	for _, d := range history {
		ex := util.Day(d.ExDate)
		if ex.After(investDate) && !ex.After(endDate) {
			out = append(out, models.DividendEvent{ExDate: ex, Amount: d.Amount})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ExDate.Before(out[j].ExDate) })
	return out
}

func wrapFetch(err error) error {
	if errors.Is(err, models.ErrDataUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %v", models.ErrDataUnavailable, err)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, models.ErrInvalidInput):
		return OutcomeInvalidInput
	case errors.Is(err, models.ErrNoTradingDay):
		return OutcomeNoTradingDay
	case errors.Is(err, models.ErrDataUnavailable):
		return OutcomeDataUnavailable
	default:
		return OutcomeError
	}
}

func (u *YieldOnCost) report(ticker string, investDate, endDate time.Time, res *models.YieldResult, err error) {
	o := outcome(err)
	if u.metrics != nil {
		u.metrics.RecordComputation(ticker, o)
		if err != nil {
			u.metrics.RecordError(o)
		}
	}

	fields := []applogger.Field{
		applogger.String("ticker", ticker),
		applogger.Date("invest_date", investDate),
		applogger.Date("end_date", endDate),
		applogger.String("outcome", o),
	}
	if err != nil {
		u.logger.Info("yield on cost rejected", append(fields, applogger.Error(err))...)
		return
	}
	u.logger.Debug("yield on cost computed", append(fields,
		applogger.Date("purchase_date", res.PurchaseDate),
		applogger.String("purchase_price", res.PurchasePrice.String()),
		applogger.Int("dividends", len(res.Dividends)),
		applogger.String("total_dividends", res.TotalDividends.String()),
	)...)
}
