package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	xhttp "DivYield/pkg/http"
	applogger "DivYield/pkg/logger"
)

// Pruner is housekeeping run periodically while the app is up.
type Pruner interface {
	Prune()
}

// App encapsulates the service lifecycle.
type App struct {
	logger      *applogger.Logger
	httpServer  *xhttp.Server
	pruner      Pruner
	pruneEvery  time.Duration
	stopPruning chan struct{}
}

// New creates a new App. Infrastructure owned by the injector is released by
// its cleanup function, not here.
func New(l *applogger.Logger, httpServer *xhttp.Server) *App {
	if l == nil {
		l = applogger.Nop()
	}
	return &App{logger: l, httpServer: httpServer}
}

// SetPruner registers periodic housekeeping.
func (a *App) SetPruner(p Pruner, every time.Duration) {
	a.pruner = p
	a.pruneEvery = every
}

// Server returns the HTTP server.
func (a *App) Server() *xhttp.Server { return a.httpServer }

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext starts the application and blocks until ctx is done.
func (a *App) RunContext(ctx context.Context) error {
	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.startPruning()

	<-ctx.Done()
	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

func (a *App) startPruning() {
	if a.pruner == nil || a.pruneEvery <= 0 {
		return
	}
	a.stopPruning = make(chan struct{})
	go func() {
		t := time.NewTicker(a.pruneEvery)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				a.pruner.Prune()
			case <-a.stopPruning:
				return
			}
		}
	}()
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	a.logger.Info("shutting down...")

	if a.stopPruning != nil {
		close(a.stopPruning)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.httpServer.ShutdownTimeout())
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	a.logger.Info("shutdown complete")
	return nil
}
