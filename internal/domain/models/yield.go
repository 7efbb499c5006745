package models

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// PricePoint is one daily adjusted close.
type PricePoint struct {
	TradeDate time.Time       `json:"trade_date"`
	Close     decimal.Decimal `json:"close"`
}

// DividendEvent is a per-share cash dividend keyed by its ex-dividend date.
type DividendEvent struct {
	ExDate time.Time       `json:"ex_date"`
	Amount decimal.Decimal `json:"amount"`
}

// YieldResult is the outcome of one yield-on-cost computation.
// Note: no transport (json/http) concerns here.
type YieldResult struct {
	Ticker     string
	InvestDate time.Time
	EndDate    time.Time

	// PurchaseDate is the trading day actually used, never before InvestDate.
	PurchaseDate  time.Time
	PurchasePrice decimal.Decimal

	// Dividends holds the events with InvestDate < ExDate <= EndDate, ascending.
	Dividends      []DividendEvent
	TotalDividends decimal.Decimal

	// YieldOnCost is invalid when PurchasePrice is zero.
	YieldOnCost decimal.NullDecimal
}

// YieldOnCostFloat returns the yield as a fraction, or NaN when undefined.
func (r *YieldResult) YieldOnCostFloat() float64 {
	if !r.YieldOnCost.Valid {
		return math.NaN()
	}
	return r.YieldOnCost.Decimal.InexactFloat64()
}

// HasYield reports whether the yield is defined.
func (r *YieldResult) HasYield() bool { return r.YieldOnCost.Valid }
