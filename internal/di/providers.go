package di

import (
	"context"
	"fmt"
	"time"

	"DivYield/internal/domain/repository"
	"DivYield/internal/handler/api"
	internalrepo "DivYield/internal/repository"
	"DivYield/internal/service/eodhd"
	"DivYield/internal/service/ratelimit"
	"DivYield/internal/service/yahoo"
	"DivYield/internal/usecase"
	"DivYield/pkg/cache"
	"DivYield/pkg/config"
	xhttp "DivYield/pkg/http"
	applogger "DivYield/pkg/logger"
	"DivYield/pkg/metrics"
	"DivYield/pkg/server"
	"DivYield/pkg/util"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Upstream is the raw provider before instrumentation and caching.
type Upstream repository.MarketData

// CalculatorSet builds the yield use case and everything below it.
var CalculatorSet = wire.NewSet(
	ProvideLogger,
	ProvideRegistry,
	ProvideMetrics,
	ProvideOutboundClient,
	ProvideUpstream,
	ProvideCacheStore,
	ProvideMarketData,
	ProvideClock,
	ProvideCalculator,
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With(applogger.String("env", cfg.Environment)), nil
}

// ProvideRegistry creates the Prometheus registry served on /metrics.
func ProvideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics(reg *prometheus.Registry) repository.Metrics {
	return metrics.NewWithRegistry(reg)
}

// ProvideOutboundClient creates the paced HTTP client used toward the provider.
func ProvideOutboundClient(cfg *config.Config) *xhttp.Client {
	return xhttp.NewClient(
		xhttp.WithTimeout(cfg.Provider.Timeout),
		xhttp.WithUserAgent(cfg.Provider.UserAgent),
		xhttp.WithRateLimit(cfg.Provider.RateLimit, cfg.Provider.Burst),
	)
}

// ProvideUpstream selects the market data provider.
func ProvideUpstream(cfg *config.Config, hc *xhttp.Client) (Upstream, error) {
	switch cfg.Provider.Type {
	case config.ProviderYahoo:
		return yahoo.New(cfg.Provider.Yahoo.BaseURL, hc), nil
	case config.ProviderEODHD:
		return eodhd.New(cfg.Provider.EODHD.BaseURL, cfg.Provider.EODHD.APIKey, hc), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider.Type)
	}
}

// ProvideCacheStore creates the fetch cache backend. The cleanup closes it.
func ProvideCacheStore(cfg *config.Config, l *applogger.Logger) (cache.Service, func(), error) {
	c := cfg.Cache
	var (
		store cache.Service
		err   error
	)
	memory := func() *cache.MemoryCache {
		return cache.NewMemoryCache(cache.WithMemoryMaxSize(c.MaxEntries))
	}
	switch c.Backend {
	case config.CacheMemory:
		store = memory()
	case config.CacheRedis, config.CacheLayered:
		var rc *cache.RedisCache
		rc, err = cache.NewRedisCache(context.Background(), c.Redis)
		if err != nil {
			// the cache is an optimisation; fall back to process memory
			l.Warn("redis unavailable, using memory cache", applogger.String("addr", c.Redis.Addr), applogger.Error(err))
			store = memory()
			break
		}
		store = rc
		if c.Backend == config.CacheLayered {
			store = cache.NewLayeredCache(memory(), rc, c.L1TTL)
		}
	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q", c.Backend)
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			l.Warn("cache close error", applogger.Error(err))
		}
	}
	return store, cleanup, nil
}

// ProvideMarketData decorates the upstream with metrics and, when enabled,
// the read-through cache.
func ProvideMarketData(cfg *config.Config, up Upstream, store cache.Service, m repository.Metrics, l *applogger.Logger) repository.MarketData {
	var md repository.MarketData = internalrepo.NewInstrumentedMarketData(up, m, l)
	if !cfg.Cache.Enabled {
		return md
	}
	return internalrepo.NewCachedMarketData(md, cache.NewMemoizer(store, l), cfg.Cache.TTL, m)
}

// ProvideClock returns the wall clock.
func ProvideClock() util.Clock { return util.SystemClock{} }

// ProvideCalculator creates the yield on cost use case.
func ProvideCalculator(md repository.MarketData, m repository.Metrics, l *applogger.Logger, clock util.Clock) *usecase.YieldOnCost {
	return usecase.NewYieldOnCost(md, md, m, l, clock)
}

// ProvideYieldHandler creates the Echo handler.
func ProvideYieldHandler(l *applogger.Logger, calc *usecase.YieldOnCost) *api.YieldEchoHandler {
	return api.NewYieldEchoHandler(l, calc)
}

// ProvideLimiter creates the inbound per-client limiter.
func ProvideLimiter() *ratelimit.Limiter {
	return ratelimit.New()
}

// ProvideHTTPServer creates the Echo server with middleware and routes.
func ProvideHTTPServer(cfg *config.Config, l *applogger.Logger, reg *prometheus.Registry, h *api.YieldEchoHandler, lim *ratelimit.Limiter) *xhttp.Server {
	s := cfg.Server
	opts := []xhttp.ServerOption{
		xhttp.WithPort(s.Port),
		xhttp.WithTimeouts(s.ReadTimeout, s.WriteTimeout, s.ShutdownTimeout),
		xhttp.WithCORS(s.CORS),
		xhttp.WithLogger(l),
		xhttp.WithSlowThreshold(s.SlowThreshold),
		xhttp.WithRegistry(reg),
	}
	if s.RateLimit.Enabled {
		opts = append(opts, xhttp.WithClientRateLimit(lim, s.RateLimit.Burst, s.RateLimit.PerSec))
	}
	return xhttp.NewServer(h, opts...)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, l *applogger.Logger, srv *xhttp.Server, lim *ratelimit.Limiter) *server.App {
	app := server.New(l, srv)
	if cfg.Server.RateLimit.Enabled {
		app.SetPruner(lim, time.Minute)
	}
	l.Info("app wired",
		applogger.String("provider", cfg.Provider.Type),
		applogger.String("cache", cfg.Cache.Backend),
		applogger.Int("port", cfg.Server.Port),
	)
	return app
}
