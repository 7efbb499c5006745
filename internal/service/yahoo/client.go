package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"DivYield/internal/domain/models"
	drepo "DivYield/internal/domain/repository"
	xhttp "DivYield/pkg/http"
	"DivYield/pkg/util"

	"github.com/shopspring/decimal"
)

const (
	DefaultBaseURL = "https://query2.finance.yahoo.com"
	providerName   = "yahoo"
)

// Client implements MarketData on top of the Yahoo Finance v8 chart API.
type Client struct {
	baseURL string
	http    *xhttp.Client
}

var _ drepo.MarketData = (*Client)(nil)

// New creates a Yahoo chart client. An empty baseURL selects DefaultBaseURL.
func New(baseURL string, hc *xhttp.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if hc == nil {
		hc = xhttp.NewClient()
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

func (c *Client) Name() string { return providerName }

type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *chartError   `json:"error"`
	} `json:"chart"`
}

type chartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type chartResult struct {
	Meta struct {
		Symbol    string `json:"symbol"`
		GMTOffset int64  `json:"gmtoffset"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Close []decimal.NullDecimal `json:"close"`
		} `json:"quote"`
		AdjClose []struct {
			AdjClose []decimal.NullDecimal `json:"adjclose"`
		} `json:"adjclose"`
	} `json:"indicators"`
	Events struct {
		Dividends map[string]struct {
			Amount decimal.Decimal `json:"amount"`
			Date   int64           `json:"date"`
		} `json:"dividends"`
	} `json:"events"`
}

// FetchPrices returns adjusted daily closes for [start, end]. Yahoo treats
// period2 as exclusive, so one day is added to end.
func (c *Client) FetchPrices(ctx context.Context, ticker string, start, end time.Time) ([]models.PricePoint, error) {
	q := url.Values{}
	q.Set("period1", strconv.FormatInt(util.Day(start).Unix(), 10))
	q.Set("period2", strconv.FormatInt(util.AddDays(end, 1).Unix(), 10))
	q.Set("interval", "1d")
	q.Set("includeAdjustedClose", "true")

	res, err := c.chart(ctx, ticker, q)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return []models.PricePoint{}, nil
	}

	closes := res.adjustedCloses()
	out := make([]models.PricePoint, 0, len(res.Timestamp))
	for i, ts := range res.Timestamp {
		if i >= len(closes) || !closes[i].Valid {
			continue
		}
		day := res.localDay(ts)
		if day.Before(util.Day(start)) || day.After(util.Day(end)) {
			continue
		}
		out = append(out, models.PricePoint{TradeDate: day, Close: closes[i].Decimal})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TradeDate.Before(out[j].TradeDate) })
	return out, nil
}

// FetchDividends returns the full ex-dividend history of ticker.
func (c *Client) FetchDividends(ctx context.Context, ticker string) ([]models.DividendEvent, error) {
	q := url.Values{}
	q.Set("range", "max")
	q.Set("interval", "1mo")
	q.Set("events", "div")

	res, err := c.chart(ctx, ticker, q)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return []models.DividendEvent{}, nil
	}

	out := make([]models.DividendEvent, 0, len(res.Events.Dividends))
	for _, d := range res.Events.Dividends {
		out = append(out, models.DividendEvent{ExDate: res.localDay(d.Date), Amount: d.Amount})
	}
	return out, nil
}

// chart performs one chart query. A nil result with nil error means Yahoo
// does not know the symbol.
func (c *Client) chart(ctx context.Context, ticker string, q url.Values) (*chartResult, error) {
	var body chartResponse
	err := c.http.GetJSON(ctx, c.baseURL+"/v8/finance/chart/"+url.PathEscape(ticker), q, &body)
	if err != nil {
		var se *xhttp.StatusError
		if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: yahoo chart %s: %v", models.ErrDataUnavailable, ticker, err)
	}
	if e := body.Chart.Error; e != nil {
		if strings.EqualFold(e.Code, "Not Found") {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: yahoo chart %s: %s: %s", models.ErrDataUnavailable, ticker, e.Code, e.Description)
	}
	if len(body.Chart.Result) == 0 {
		return nil, nil
	}
	return &body.Chart.Result[0], nil
}

func (r *chartResult) adjustedCloses() []decimal.NullDecimal {
	if len(r.Indicators.AdjClose) > 0 && len(r.Indicators.AdjClose[0].AdjClose) > 0 {
		return r.Indicators.AdjClose[0].AdjClose
	}
	if len(r.Indicators.Quote) > 0 {
		return r.Indicators.Quote[0].Close
	}
	return nil
}

// localDay maps a Yahoo timestamp to the exchange-local calendar date.
func (r *chartResult) localDay(ts int64) time.Time {
	return util.Day(time.Unix(ts+r.Meta.GMTOffset, 0).UTC())
}
