package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestLoggerWritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, zerolog.DebugLevel).With(String("ticker", "AAPL"))

	l.Warn("provider failed",
		Error(errors.New("boom")),
		Date("invest_date", time.Date(2021, time.January, 2, 0, 0, 0, 0, time.UTC)),
		Duration("duration_ms", 1500*time.Millisecond),
		Bool("cached", false),
	)

	var got map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal log line: %v (%s)", err, buf.String())
	}
	want := map[string]interface{}{
		"level":       "warn",
		"message":     "provider failed",
		"ticker":      "AAPL",
		"error":       "boom",
		"invest_date": "2021-01-02",
		"duration_ms": float64(1500),
		"cached":      false,
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("field %s = %v, want %v", k, got[k], v)
		}
	}
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, zerolog.InfoLevel)
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected debug to be filtered, got %q", buf.String())
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(&Config{Level: "verbose", Output: "stdout"}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestWithCarriesFieldsToChildren(t *testing.T) {
	var buf bytes.Buffer
	base := NewWriter(&buf, zerolog.InfoLevel)
	child := base.With(String("provider", "yahoo"), Int("attempt", 1))

	child.Info("fetched")
	var got map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["provider"] != "yahoo" || got["attempt"] != float64(1) {
		t.Fatalf("child fields missing: %v", got)
	}

	buf.Reset()
	base.Info("plain")
	if bytes.Contains(buf.Bytes(), []byte("provider")) {
		t.Fatalf("parent logger picked up child fields: %s", buf.String())
	}
}

func TestNilErrorFieldIsSkipped(t *testing.T) {
	var buf bytes.Buffer
	NewWriter(&buf, zerolog.InfoLevel).Info("ok", Error(nil))
	if bytes.Contains(buf.Bytes(), []byte(`"error"`)) {
		t.Fatalf("nil error should not be logged: %s", buf.String())
	}
}
