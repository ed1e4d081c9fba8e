package export

import (
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/ledgerline/backend/internal/calc"
)

var (
	grey      = &props.Color{Red: 90, Green: 90, Blue: 90}
	white     = &props.Color{Red: 255, Green: 255, Blue: 255}
	navy      = &props.Color{Red: 31, Green: 58, Blue: 95}
	riskRed   = &props.Color{Red: 176, Green: 0, Blue: 32}
	stripe    = &props.Color{Red: 244, Green: 246, Blue: 249}
	colWidths = []int{2, 2, 2, 3, 3}
)

// ProjectionPDF renders the projection as an A4 report.
func ProjectionPDF(title string, rows []calc.MonthlyProjection, summary calc.ProjectionSummary, generated time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).
		WithTopMargin(12).
		WithRightMargin(12).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   grey,
		}).
		Build()

	m := maroto.New(cfg)

	addPDFHeader(m, title, generated)
	addPDFTableHeader(m)
	for i, r := range rows {
		addPDFRow(m, r, i%2 == 1)
	}
	addPDFSummary(m, summary)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func addPDFHeader(m core.Maroto, title string, generated time.Time) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(title, props.Text{Size: 15, Style: fontstyle.Bold, Align: align.Left}),
			),
		),
		row.New(7).Add(
			col.New(12).Add(
				text.New("Generated "+generated.Format("02 Jan 2006")+" | all amounts in AED", props.Text{
					Size:  8,
					Align: align.Left,
					Color: grey,
				}),
			),
		),
		row.New(4),
	)
}

func addPDFTableHeader(m core.Maroto) {
	cell := props.Cell{BackgroundColor: navy}
	cols := make([]core.Col, len(ProjectionHeader))
	for i, h := range ProjectionHeader {
		a := align.Right
		if i == 0 {
			a = align.Left
		}
		cols[i] = col.New(colWidths[i]).Add(
			text.New(h, props.Text{Size: 8, Style: fontstyle.Bold, Align: a, Color: white, Top: 1.5, Left: 1, Right: 1}),
		).WithStyle(&cell)
	}
	m.AddRows(row.New(8).Add(cols...))
}

func addPDFRow(m core.Maroto, r calc.MonthlyProjection, striped bool) {
	values := []string{
		r.Month,
		calc.FormatMoney(r.Income, ""),
		calc.FormatMoney(r.Expenses, ""),
		calc.FormatMoney(r.NetCashFlow, ""),
		calc.FormatMoney(r.CumulativeCashFlow, ""),
	}
	cell := props.Cell{}
	if striped {
		cell.BackgroundColor = stripe
	}
	cols := make([]core.Col, len(values))
	for i, v := range values {
		p := props.Text{Size: 8, Align: align.Right, Top: 1.5, Left: 1, Right: 1}
		if i == 0 {
			p.Align = align.Left
		}
		if i == len(values)-1 && r.CumulativeCashFlow.IsNegative() {
			p.Color = riskRed
		}
		cols[i] = col.New(colWidths[i]).Add(text.New(v, p)).WithStyle(&cell)
	}
	m.AddRows(row.New(7).Add(cols...))
}

func addPDFSummary(m core.Maroto, s calc.ProjectionSummary) {
	m.AddRows(row.New(6))
	lines := []struct {
		label string
		value string
	}{
		{"Starting cash", calc.FormatAED(s.StartingCash)},
		{"Total income", calc.FormatAED(s.TotalIncome)},
		{"Total expenses", calc.FormatAED(s.TotalExpenses)},
		{"Net cash flow", calc.FormatAED(s.TotalNet)},
		{"Final balance", calc.FormatAED(s.FinalBalance)},
		{"Lowest balance", calc.FormatAED(s.LowestBalance)},
	}
	for _, l := range lines {
		m.AddRows(
			row.New(6).Add(
				col.New(8).Add(text.New(l.label, props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right})),
				col.New(4).Add(text.New(l.value, props.Text{Size: 9, Align: align.Right})),
			),
		)
	}
	if s.HasNegativeBalance {
		m.AddRows(
			row.New(4),
			row.New(8).Add(
				col.New(12).Add(text.New(riskNotice(s), props.Text{Size: 9, Style: fontstyle.Bold, Color: riskRed})),
			),
		)
	}
}
