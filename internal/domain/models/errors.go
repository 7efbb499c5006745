package models

import "errors"

// Error kinds surfaced to the presentation layer. Every one of them is terminal
// for the current request.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrDataUnavailable = errors.New("data unavailable")
	ErrNoTradingDay    = errors.New("no trading day")
)
