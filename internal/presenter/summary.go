package presenter

import (
	"fmt"
	"io"
	"text/tabwriter"

	"DivYield/internal/domain/models"
	"DivYield/pkg/util"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

const (
	// NotAvailable is displayed when the yield is undefined.
	NotAvailable = "N/A"
	// NoDividendsMessage replaces an empty dividend table.
	NoDividendsMessage = "No dividends in the chosen window."

	currencyFraction = 4
	percentPlaces    = 2
)

var currency = money.NewFormatter(currencyFraction, ".", ",", "$", "$1")

// DividendRow is one display line of the dividend table.
type DividendRow struct {
	ExDate string `json:"ex_date"`
	Amount string `json:"amount"`
}

// Summary holds the display strings of one result.
type Summary struct {
	Ticker         string        `json:"ticker"`
	InvestDate     string        `json:"invest_date"`
	EndDate        string        `json:"end_date"`
	PurchaseDate   string        `json:"purchase_date"`
	PurchasePrice  string        `json:"purchase_price"`
	PurchaseNote   string        `json:"purchase_note"`
	TotalDividends string        `json:"total_dividends"`
	YieldOnCost    string        `json:"yield_on_cost"`
	Dividends      []DividendRow `json:"dividends"`
	EmptyMessage   string        `json:"empty_message,omitempty"`
}

// NewSummary formats res for display.
func NewSummary(res *models.YieldResult) Summary {
	s := Summary{
		Ticker:         res.Ticker,
		InvestDate:     util.FormatDate(res.InvestDate),
		EndDate:        util.FormatDate(res.EndDate),
		PurchaseDate:   util.FormatDate(res.PurchaseDate),
		PurchasePrice:  Currency(res.PurchasePrice),
		TotalDividends: Currency(res.TotalDividends),
		YieldOnCost:    Percent(res.YieldOnCost),
		Dividends:      make([]DividendRow, 0, len(res.Dividends)),
	}
	s.PurchaseNote = fmt.Sprintf("Adjusted close on the first trading day on/after %s (%s).", s.InvestDate, s.PurchaseDate)
	for _, d := range res.Dividends {
		s.Dividends = append(s.Dividends, DividendRow{ExDate: util.FormatDate(d.ExDate), Amount: Currency(d.Amount)})
	}
	if len(s.Dividends) == 0 {
		s.EmptyMessage = NoDividendsMessage
	}
	return s
}

// Currency renders d as dollars with four decimals, e.g. $1,234.5678.
func Currency(d decimal.Decimal) string {
	return currency.Format(d.Round(currencyFraction).Shift(currencyFraction).IntPart())
}

// Percent renders a fraction as a percentage with two decimals, or N/A.
func Percent(d decimal.NullDecimal) string {
	if !d.Valid {
		return NotAvailable
	}
	return d.Decimal.Shift(2).StringFixed(percentPlaces) + "%"
}

// Render writes the summary as aligned plain text.
func (s Summary) Render(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Ticker:\t%s\n", s.Ticker)
	fmt.Fprintf(tw, "Window:\t%s .. %s\n", s.InvestDate, s.EndDate)
	fmt.Fprintf(tw, "Purchase price:\t%s\n", s.PurchasePrice)
	fmt.Fprintf(tw, "Purchase date:\t%s\n", s.PurchaseDate)
	fmt.Fprintf(tw, "\t%s\n", s.PurchaseNote)
	fmt.Fprintf(tw, "Total dividends per share:\t%s\n", s.TotalDividends)
	fmt.Fprintf(tw, "Yield on cost:\t%s\n", s.YieldOnCost)
	if err := tw.Flush(); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	if len(s.Dividends) == 0 {
		_, err := fmt.Fprintln(w, s.EmptyMessage)
		return err
	}

	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Ex-date\tDividend\t\n")
	for _, d := range s.Dividends {
		fmt.Fprintf(tw, "%s\t%s\t\n", d.ExDate, d.Amount)
	}
	return tw.Flush()
}
