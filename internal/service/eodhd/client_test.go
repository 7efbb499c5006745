package eodhd

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"DivYield/internal/domain/models"
	xhttp "DivYield/pkg/http"
	"DivYield/pkg/util"
)

func newFake(t *testing.T, routes map[string]string, status int) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_token") != "k3y" || r.URL.Query().Get("fmt") != "json" {
			t.Errorf("missing auth or format: %s", r.URL.RawQuery)
		}
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL, "k3y", xhttp.NewClient())
}

func TestFetchPricesInclusiveBounds(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		_, _ = w.Write([]byte(`[
			{"date":"2021-01-05","close":129.9,"adjusted_close":127.5},
			{"date":"2021-01-04","close":129.41,"adjusted_close":127.0},
			{"date":"2021-01-06","close":null,"adjusted_close":null}
		]`))
	}))
	defer srv.Close()

	c := New(srv.URL, "k3y", nil)
	got, err := c.FetchPrices(context.Background(), "AAPL", util.MustParseDate("2021-01-04"), util.MustParseDate("2021-01-06"))
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if !strings.Contains(query, "from=2021-01-04") || !strings.Contains(query, "to=2021-01-06") {
		t.Fatalf("bounds not passed as-is: %s", query)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 points, got %d", len(got))
	}
	if util.FormatDate(got[0].TradeDate) != "2021-01-04" || got[0].Close.String() != "127" {
		t.Fatalf("expected ascending adjusted closes, got %+v", got[0])
	}
}

func TestFetchDividends(t *testing.T) {
	c := newFake(t, map[string]string{
		"/api/div/KO.US": `[{"date":"2020-03-13","value":0.41,"currency":"USD"},{"date":"2020-06-12","value":0.41}]`,
	}, http.StatusOK)

	got, err := c.FetchDividends(context.Background(), "KO")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got) != 2 || util.FormatDate(got[1].ExDate) != "2020-06-12" || got[1].Amount.String() != "0.41" {
		t.Fatalf("unexpected dividends %+v", got)
	}
}

func TestExchangeSuffixKept(t *testing.T) {
	c := newFake(t, map[string]string{"/api/div/VOD.LSE": `[]`}, http.StatusOK)
	got, err := c.FetchDividends(context.Background(), "VOD.LSE")
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty history, got %v %v", got, err)
	}
}

func TestUnknownTickerIsEmpty(t *testing.T) {
	c := newFake(t, map[string]string{}, http.StatusOK)
	got, err := c.FetchPrices(context.Background(), "NOPE", util.MustParseDate("2021-01-04"), util.MustParseDate("2021-01-06"))
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty prices, got %v %v", got, err)
	}
}

func TestFailuresAreDataUnavailableAndRedacted(t *testing.T) {
	c := newFake(t, map[string]string{"/api/div/KO.US": "payment required"}, http.StatusPaymentRequired)
	_, err := c.FetchDividends(context.Background(), "KO")
	if !errors.Is(err, models.ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable, got %v", err)
	}
	if strings.Contains(err.Error(), "k3y") {
		t.Fatalf("api key leaked: %v", err)
	}

	c = newFake(t, map[string]string{"/api/eod/KO.US": `[{"date":"bad","close":1}]`}, http.StatusOK)
	_, err = c.FetchPrices(context.Background(), "KO", util.MustParseDate("2021-01-04"), util.MustParseDate("2021-01-06"))
	if !errors.Is(err, models.ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable for bad date, got %v", err)
	}
}
