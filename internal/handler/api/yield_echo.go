package api

import (
	"bytes"
	"context"
	"time"

	"DivYield/internal/domain/models"
	"DivYield/internal/presenter"
	xhttp "DivYield/pkg/http"
	xlogger "DivYield/pkg/logger"
	"DivYield/pkg/util"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// Calculator is the use case behind the yield endpoint.
type Calculator interface {
	ParseDates(invest, end string) (time.Time, time.Time, error)
	Compute(ctx context.Context, ticker string, investDate, endDate time.Time) (*models.YieldResult, error)
}

// YieldEchoHandler serves yield-on-cost calculations over Echo.
type YieldEchoHandler struct {
	logger *xlogger.Logger
	calc   Calculator
}

func NewYieldEchoHandler(logger *xlogger.Logger, calc Calculator) *YieldEchoHandler {
	if logger == nil {
		logger = xlogger.Nop()
	}
	return &YieldEchoHandler{logger: logger, calc: calc}
}

func (h *YieldEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/yield", h.Yield)
}

// DividendDTO is one dividend in the JSON response.
type DividendDTO struct {
	ExDate string          `json:"ex_date"`
	Amount decimal.Decimal `json:"amount"`
}

// YieldResponse carries raw values and their display strings. YieldOnCost is
// null when the purchase price is zero.
type YieldResponse struct {
	Ticker         string            `json:"ticker"`
	InvestDate     string            `json:"invest_date"`
	EndDate        string            `json:"end_date"`
	PurchaseDate   string            `json:"purchase_date"`
	PurchasePrice  decimal.Decimal   `json:"purchase_price"`
	Dividends      []DividendDTO     `json:"dividends"`
	TotalDividends decimal.Decimal   `json:"total_dividends"`
	YieldOnCost    *decimal.Decimal  `json:"yield_on_cost"`
	Display        presenter.Summary `json:"display"`
}

func newYieldResponse(res *models.YieldResult) *YieldResponse {
	out := &YieldResponse{
		Ticker:         res.Ticker,
		InvestDate:     util.FormatDate(res.InvestDate),
		EndDate:        util.FormatDate(res.EndDate),
		PurchaseDate:   util.FormatDate(res.PurchaseDate),
		PurchasePrice:  res.PurchasePrice,
		Dividends:      make([]DividendDTO, 0, len(res.Dividends)),
		TotalDividends: res.TotalDividends,
		Display:        presenter.NewSummary(res),
	}
	for _, d := range res.Dividends {
		out.Dividends = append(out.Dividends, DividendDTO{ExDate: util.FormatDate(d.ExDate), Amount: d.Amount})
	}
	if res.YieldOnCost.Valid {
		y := res.YieldOnCost.Decimal
		out.YieldOnCost = &y
	}
	return out
}

// Yield handles GET /api/yield?ticker=&invest_date=&end_date=&format=json|csv.
func (h *YieldEchoHandler) Yield(c echo.Context) error {
	req := &models.YieldRequest{}
	if verrs := xhttp.BindRequest(c, req); len(verrs) > 0 {
		return xhttp.ValidationErrorResponse(c, verrs)
	}

	invest, end, err := h.calc.ParseDates(req.InvestDate, req.EndDate)
	if err != nil {
		return xhttp.ErrorResponse(c, toAppError(err))
	}

	res, err := h.calc.Compute(c.Request().Context(), req.Ticker, invest, end)
	if err != nil {
		appErr := toAppError(err).With("ticker", req.Ticker)
		if appErr.Status >= 500 {
			h.logger.Error("yield usecase error", xlogger.String("ticker", req.Ticker), xlogger.Error(err))
		}
		return xhttp.ErrorResponse(c, appErr)
	}

	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=300")
	if req.Format == "csv" {
		var buf bytes.Buffer
		if err := presenter.WriteCSV(&buf, res.Dividends); err != nil {
			h.logger.Error("csv export error", xlogger.Error(err))
			return xhttp.ErrorResponse(c, xhttp.Internal(err))
		}
		return xhttp.AttachmentResponse(c, presenter.CSVContentType, presenter.CSVFilename(res.Ticker, res.InvestDate, res.EndDate), buf.Bytes())
	}
	return xhttp.SuccessResponse(c, newYieldResponse(res))
}
