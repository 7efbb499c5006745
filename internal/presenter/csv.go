package presenter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"DivYield/internal/domain/models"
	"DivYield/pkg/util"
)

const CSVContentType = "text/csv; charset=utf-8"

var csvHeader = []string{"ex_date", "dividend"}

// WriteCSV writes the dividend table with exact amounts.
func WriteCSV(w io.Writer, dividends []models.DividendEvent) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, d := range dividends {
		if err := cw.Write([]string{util.FormatDate(d.ExDate), d.Amount.String()}); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// CSVFilename is the download name for one export.
func CSVFilename(ticker string, investDate, endDate time.Time) string {
	return fmt.Sprintf("%s_dividends_%s_%s.csv", strings.ToUpper(ticker), util.FormatDate(investDate), util.FormatDate(endDate))
}
