// Package export renders cash-flow projections as downloadable files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/ledgerline/backend/internal/calc"
)

// ProjectionHeader is the column header row shared by every export format.
var ProjectionHeader = []string{"Month", "Income", "Expenses", "Net Cash Flow", "Cumulative Cash Flow"}

// Format is a supported download format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// ParseFormat maps a query value onto a Format. Empty means CSV.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX, FormatPDF:
		return Format(s), nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/csv; charset=utf-8"
	}
}

// ProjectionCSV writes rows as CSV. Fields that contain a comma or a quote
// are quoted by encoding/csv.
func ProjectionCSV(w io.Writer, rows []calc.MonthlyProjection) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ProjectionHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.Month,
			r.Income.StringFixed(2),
			r.Expenses.StringFixed(2),
			r.NetCashFlow.StringFixed(2),
			r.CumulativeCashFlow.StringFixed(2),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %s: %w", r.Month, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
