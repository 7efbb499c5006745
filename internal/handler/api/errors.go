package api

import (
	"errors"
	"net/http"

	"DivYield/internal/domain/models"
	xhttp "DivYield/pkg/http"
)

const (
	codeInvalidInput    = "ERR_INVALID_INPUT"
	codeNoTradingDay    = "ERR_NO_TRADING_DAY"
	codeDataUnavailable = "ERR_DATA_UNAVAILABLE"
)

// toAppError maps domain failures to HTTP errors. The message is the
// user-facing text of err.
func toAppError(err error) *xhttp.AppError {
	var appErr *xhttp.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, models.ErrInvalidInput):
		return xhttp.NewAppError(http.StatusBadRequest, codeInvalidInput, err.Error()).Wrap(err)
	case errors.Is(err, models.ErrNoTradingDay):
		return xhttp.NewAppError(http.StatusNotFound, codeNoTradingDay, err.Error()).Wrap(err)
	case errors.Is(err, models.ErrDataUnavailable):
		return xhttp.NewAppError(http.StatusBadGateway, codeDataUnavailable, err.Error()).Wrap(err)
	default:
		return xhttp.Internal(err)
	}
}
