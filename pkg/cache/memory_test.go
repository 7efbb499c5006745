package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"DivYield/pkg/util"
)

func TestMemoryCacheExpiresWithClock(t *testing.T) {
	ctx := context.Background()
	clock := util.NewFakeClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mc := NewMemoryCache(WithMemoryClock(clock))
	defer mc.Close()

	if err := mc.Set(ctx, "k", []byte("v"), time.Hour); err != nil {
		t.Fatalf("set: %v", err)
	}
	clock.Advance(59 * time.Minute)
	got, err := mc.Get(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Fatalf("expected hit before expiry, got %q %v", got, err)
	}

	clock.Advance(time.Minute)
	if _, err := mc.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected miss at expiry, got %v", err)
	}
	if mc.Len() != 0 {
		t.Fatalf("expired entry not removed")
	}
}

func TestMemoryCacheCopiesValues(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()
	defer mc.Close()

	in := []byte("abc")
	_ = mc.Set(ctx, "k", in, time.Minute)
	in[0] = 'x'

	got, _ := mc.Get(ctx, "k")
	got[1] = 'y'
	again, _ := mc.Get(ctx, "k")
	if string(again) != "abc" {
		t.Fatalf("stored value aliased caller slices: %q", again)
	}
}

func TestMemoryCacheEvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	clock := util.NewFakeClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	mc := NewMemoryCache(WithMemoryMaxSize(2), WithMemoryClock(clock))
	defer mc.Close()

	_ = mc.Set(ctx, "a", []byte("1"), time.Hour)
	clock.Advance(time.Second)
	_ = mc.Set(ctx, "b", []byte("2"), time.Hour)
	clock.Advance(time.Second)
	if _, err := mc.Get(ctx, "a"); err != nil {
		t.Fatalf("get a: %v", err)
	}
	clock.Advance(time.Second)
	_ = mc.Set(ctx, "c", []byte("3"), time.Hour)

	if ok, _ := mc.Exists(ctx, "b"); ok {
		t.Fatalf("expected b to be evicted")
	}
	for _, k := range []string{"a", "c"} {
		if ok, _ := mc.Exists(ctx, k); !ok {
			t.Fatalf("expected %s to survive", k)
		}
	}
}

func TestMemoryCacheDelete(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()
	defer mc.Close()

	_ = mc.Set(ctx, "a", []byte("1"), time.Hour)
	_ = mc.Delete(ctx, "a")
	if _, err := mc.Get(ctx, "a"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected miss after delete, got %v", err)
	}
}

func TestKeyRendersDates(t *testing.T) {
	got := Key("prices", "yahoo", "AAPL", time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC))
	if got != "prices:yahoo:AAPL:2020-01-02" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestMemoryCacheOverwriteKeepsSize(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache(WithMemoryMaxSize(1), WithMemoryCleanup(0))
	defer mc.Close()

	_ = mc.Set(ctx, "k", []byte("1"), time.Hour)
	_ = mc.Set(ctx, "k", []byte("2"), time.Hour)
	got, err := mc.Get(ctx, "k")
	if err != nil || string(got) != "2" || mc.Len() != 1 {
		t.Fatalf("got %q err=%v len=%d", got, err, mc.Len())
	}
}
