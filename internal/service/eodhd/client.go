package eodhd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"DivYield/internal/domain/models"
	drepo "DivYield/internal/domain/repository"
	xhttp "DivYield/pkg/http"
	"DivYield/pkg/util"

	"github.com/shopspring/decimal"
)

const (
	DefaultBaseURL = "https://eodhd.com"
	providerName   = "eodhd"
)

// Client implements MarketData on top of the EODHD end-of-day and dividend APIs.
// Tickers without an exchange suffix are queried on the US exchange.
type Client struct {
	baseURL string
	apiKey  string
	http    *xhttp.Client
}

var _ drepo.MarketData = (*Client)(nil)

// New creates an EODHD client.
func New(baseURL, apiKey string, hc *xhttp.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if hc == nil {
		hc = xhttp.NewClient()
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), apiKey: apiKey, http: hc}
}

func (c *Client) Name() string { return providerName }

type eodRow struct {
	Date          string              `json:"date"`
	Close         decimal.NullDecimal `json:"close"`
	AdjustedClose decimal.NullDecimal `json:"adjusted_close"`
}

type divRow struct {
	Date  string          `json:"date"` // ex-dividend date
	Value decimal.Decimal `json:"value"`
}

// FetchPrices returns adjusted daily closes for [start, end]. Both bounds are
// inclusive on the EODHD side.
func (c *Client) FetchPrices(ctx context.Context, ticker string, start, end time.Time) ([]models.PricePoint, error) {
	q := url.Values{}
	q.Set("from", util.FormatDate(start))
	q.Set("to", util.FormatDate(end))
	q.Set("period", "d")

	rows := make([]eodRow, 0)
	found, err := c.get(ctx, "/api/eod/", ticker, q, &rows)
	if err != nil {
		return nil, err
	}
	if !found {
		return []models.PricePoint{}, nil
	}

	out := make([]models.PricePoint, 0, len(rows))
	for _, r := range rows {
		px := r.AdjustedClose
		if !px.Valid {
			px = r.Close
		}
		if !px.Valid {
			continue
		}
		day, err := util.ParseDate(r.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: eodhd eod %s: %v", models.ErrDataUnavailable, ticker, err)
		}
		out = append(out, models.PricePoint{TradeDate: day, Close: px.Decimal})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TradeDate.Before(out[j].TradeDate) })
	return out, nil
}

// FetchDividends returns the full ex-dividend history of ticker.
func (c *Client) FetchDividends(ctx context.Context, ticker string) ([]models.DividendEvent, error) {
	rows := make([]divRow, 0)
	found, err := c.get(ctx, "/api/div/", ticker, url.Values{}, &rows)
	if err != nil {
		return nil, err
	}
	if !found {
		return []models.DividendEvent{}, nil
	}

	out := make([]models.DividendEvent, 0, len(rows))
	for _, r := range rows {
		day, err := util.ParseDate(r.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: eodhd div %s: %v", models.ErrDataUnavailable, ticker, err)
		}
		out = append(out, models.DividendEvent{ExDate: day, Amount: r.Value})
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path, ticker string, q url.Values, dest interface{}) (bool, error) {
	q.Set("fmt", "json")
	q.Set("api_token", c.apiKey)

	err := c.http.GetJSON(ctx, c.baseURL+path+url.PathEscape(symbol(ticker)), q, dest)
	if err != nil {
		var se *xhttp.StatusError
		if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
			return false, nil
		}
		// the api token travels in the query string; keep it out of errors
		return false, fmt.Errorf("%w: eodhd %s%s: %s", models.ErrDataUnavailable, path, ticker, redact(err.Error(), c.apiKey))
	}
	return true, nil
}

func symbol(ticker string) string {
	if strings.Contains(ticker, ".") {
		return ticker
	}
	return ticker + ".US"
}

func redact(s, secret string) string {
	if secret == "" {
		return s
	}
	return strings.ReplaceAll(s, secret, "***")
}
