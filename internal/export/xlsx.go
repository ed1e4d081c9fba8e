package export

import (
	"fmt"

	"github.com/ledgerline/backend/internal/calc"
	"github.com/xuri/excelize/v2"
)

const projectionSheet = "Cash Flow"

// numFmtAmount is the built-in "#,##0.00" number format.
const numFmtAmount = 4

// ProjectionXLSX builds a workbook with the projection table followed by a
// summary block and returns the file contents.
func ProjectionXLSX(rows []calc.MonthlyProjection, summary calc.ProjectionSummary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), projectionSheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	widths := []float64{14, 16, 16, 18, 22}
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(projectionSheet, col, col, w); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#1F3A5F"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: numFmtAmount})
	if err != nil {
		return nil, fmt.Errorf("create amount style: %w", err)
	}
	negativeStyle, err := f.NewStyle(&excelize.Style{
		NumFmt: numFmtAmount,
		Font:   &excelize.Font{Color: "#B00020"},
	})
	if err != nil {
		return nil, fmt.Errorf("create negative style: %w", err)
	}
	labelStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create label style: %w", err)
	}

	header := make([]any, len(ProjectionHeader))
	for i, h := range ProjectionHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(projectionSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	if err := f.SetCellStyle(projectionSheet, "A1", "E1", headerStyle); err != nil {
		return nil, err
	}

	for i, r := range rows {
		rowNum := i + 2
		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		values := []any{
			r.Month,
			r.Income.InexactFloat64(),
			r.Expenses.InexactFloat64(),
			r.NetCashFlow.InexactFloat64(),
			r.CumulativeCashFlow.InexactFloat64(),
		}
		if err := f.SetSheetRow(projectionSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", rowNum, err)
		}
		from, _ := excelize.CoordinatesToCellName(2, rowNum)
		to, _ := excelize.CoordinatesToCellName(5, rowNum)
		style := amountStyle
		if r.CumulativeCashFlow.IsNegative() {
			style = negativeStyle
		}
		if err := f.SetCellStyle(projectionSheet, from, to, style); err != nil {
			return nil, err
		}
	}

	summaryRows := []struct {
		label string
		value float64
	}{
		{"Starting Cash", summary.StartingCash.InexactFloat64()},
		{"Total Income", summary.TotalIncome.InexactFloat64()},
		{"Total Expenses", summary.TotalExpenses.InexactFloat64()},
		{"Net Cash Flow", summary.TotalNet.InexactFloat64()},
		{"Final Balance", summary.FinalBalance.InexactFloat64()},
		{"Lowest Balance", summary.LowestBalance.InexactFloat64()},
	}
	start := len(rows) + 3
	for i, s := range summaryRows {
		labelCell, _ := excelize.CoordinatesToCellName(1, start+i)
		valueCell, _ := excelize.CoordinatesToCellName(2, start+i)
		if err := f.SetCellValue(projectionSheet, labelCell, s.label); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(projectionSheet, valueCell, s.value); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(projectionSheet, labelCell, labelCell, labelStyle); err != nil {
			return nil, fmt.Errorf("style %s: %w", labelCell, err)
		}
		if err := f.SetCellStyle(projectionSheet, valueCell, valueCell, amountStyle); err != nil {
			return nil, fmt.Errorf("style %s: %w", valueCell, err)
		}
	}
	if summary.HasNegativeBalance {
		cell, _ := excelize.CoordinatesToCellName(1, start+len(summaryRows)+1)
		if err := f.SetCellValue(projectionSheet, cell, riskNotice(summary)); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func riskNotice(s calc.ProjectionSummary) string {
	return fmt.Sprintf("Cash-flow risk: balance falls below zero from %s (lowest %s).",
		s.FirstNegativeMonth, calc.FormatAED(s.LowestBalance))
}
