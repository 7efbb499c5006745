package util

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2021-01-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(NewDate(2021, time.January, 2)) {
		t.Fatalf("unexpected date %v", got)
	}
	if got.Weekday() != time.Saturday {
		t.Fatalf("expected saturday, got %v", got.Weekday())
	}
}

func TestParseDateInvalid(t *testing.T) {
	for _, s := range []string{"", "2021-13-01", "01/02/2021", "2021-1-2"} {
		if _, err := ParseDate(s); err == nil {
			t.Fatalf("expected error for %q", s)
		}
	}
}

func TestDayTruncatesToUTCMidnight(t *testing.T) {
	in := time.Date(2020, time.March, 5, 23, 59, 0, 0, time.UTC)
	if got := Day(in); !got.Equal(NewDate(2020, time.March, 5)) {
		t.Fatalf("unexpected day %v", got)
	}
	if got := AddDays(in, -7); FormatDate(got) != "2020-02-27" {
		t.Fatalf("unexpected shifted day %v", FormatDate(got))
	}
}

func TestNormalizeTicker(t *testing.T) {
	if got := NormalizeTicker("  aapl "); got != "AAPL" {
		t.Fatalf("unexpected ticker %q", got)
	}
}

func TestFakeClock(t *testing.T) {
	c := NewFakeClock(time.Date(2024, time.May, 1, 22, 0, 0, 0, time.UTC))
	c.Advance(3 * time.Hour)
	if got := Today(c); !got.Equal(NewDate(2024, time.May, 2)) {
		t.Fatalf("unexpected today %v", got)
	}
}
