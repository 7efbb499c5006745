package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func TestGetJSONDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("symbol") != "KO" || r.URL.Query().Get("interval") != "1d" {
			t.Errorf("query params not merged: %s", r.URL.RawQuery)
		}
		if r.Header.Get("User-Agent") != "divyield-test" {
			t.Errorf("user agent not set: %q", r.Header.Get("User-Agent"))
		}
		_, _ = w.Write([]byte(`{"value": 7}`))
	}))
	defer srv.Close()

	c := NewClient(WithUserAgent("divyield-test"), WithTimeout(time.Second))
	var out struct {
		Value int `json:"value"`
	}
	err := c.GetJSON(context.Background(), srv.URL+"/chart?interval=1d", url.Values{"symbol": {"KO"}}, &out)
	if err != nil || out.Value != 7 {
		t.Fatalf("got %+v err=%v", out, err)
	}
}

func TestGetJSONStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	err := NewClient().GetJSON(context.Background(), srv.URL+"/x", nil, &struct{}{})
	var se *StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusNotFound || se.Body != "nope" || se.URL != "/x" {
		t.Fatalf("expected StatusError 404, got %#v", err)
	}
}

func TestGetJSONMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	if err := NewClient().GetJSON(context.Background(), srv.URL, nil, &struct{}{}); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestRateLimitHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	c := NewClient(WithRateLimit(0.001, 1))
	if err := c.GetJSON(context.Background(), srv.URL, nil, nil); err != nil {
		t.Fatalf("first request should use the burst: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := c.GetJSON(ctx, srv.URL, nil, nil); err == nil {
		t.Fatalf("expected pacing wait to fail on a short deadline")
	}
}
