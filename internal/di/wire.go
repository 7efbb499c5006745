//go:build wireinject
// +build wireinject

package di

import (
	"DivYield/internal/usecase"
	"DivYield/pkg/config"
	"DivYield/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the HTTP application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		CalculatorSet,

		// HTTP surface
		ProvideYieldHandler,
		ProvideLimiter,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil, nil
}

// InitializeCalculator wires the use case alone for one-shot CLI runs.
func InitializeCalculator(cfg *config.Config) (*usecase.YieldOnCost, func(), error) {
	wire.Build(CalculatorSet)
	return &usecase.YieldOnCost{}, nil, nil
}
