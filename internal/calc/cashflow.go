package calc

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FlowType is the direction of a cash-flow item.
type FlowType string

const (
	Income  FlowType = "income"
	Expense FlowType = "expense"
)

// Frequency is how often a cash-flow item recurs.
type Frequency string

const (
	Monthly   Frequency = "monthly"
	Quarterly Frequency = "quarterly"
	Annually  Frequency = "annually"
)

// MaxProjectionMonths bounds the projection horizon.
const MaxProjectionMonths = 60

// CashFlowItem is one recurring income or expense row of the projector form.
type CashFlowItem struct {
	ID        string
	Name      string
	Amount    decimal.Decimal
	Type      FlowType
	Frequency Frequency
}

// MonthlyProjection is one period of a projection.
type MonthlyProjection struct {
	Month              string
	Income             decimal.Decimal
	Expenses           decimal.Decimal
	NetCashFlow        decimal.Decimal
	CumulativeCashFlow decimal.Decimal
}

// ProjectionSummary aggregates a projection.
type ProjectionSummary struct {
	TotalIncome        decimal.Decimal
	TotalExpenses      decimal.Decimal
	TotalNet           decimal.Decimal
	StartingCash       decimal.Decimal
	FinalBalance       decimal.Decimal
	LowestBalance      decimal.Decimal
	HasNegativeBalance bool
	// FirstNegativeMonth is the label of the first period that closes below
	// zero; empty when the balance never goes negative.
	FirstNegativeMonth string
}

var (
	three  = decimal.NewFromInt(3)
	twelve = decimal.NewFromInt(12)
)

// NormalizeMonthly converts an item's amount to its monthly equivalent.
func NormalizeMonthly(item CashFlowItem) decimal.Decimal {
	switch item.Frequency {
	case Quarterly:
		return item.Amount.Div(three)
	case Annually:
		return item.Amount.Div(twelve)
	default:
		return item.Amount
	}
}

// AssignIDs gives every item without an ID a fresh UUID.
func AssignIDs(items []CashFlowItem) {
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.NewString()
		}
	}
}

// ValidateItems checks every row of the projector form.
func ValidateItems(items []CashFlowItem) error {
	for i, item := range items {
		if !item.Amount.IsPositive() {
			return &ItemError{Index: i, Field: "amount", Err: errNonPositiveAmount}
		}
		switch item.Type {
		case Income, Expense:
		default:
			return &ItemError{Index: i, Field: "type", Err: errUnknownType}
		}
		switch item.Frequency {
		case Monthly, Quarterly, Annually:
		default:
			return &ItemError{Index: i, Field: "frequency", Err: errUnknownFrequency}
		}
	}
	return nil
}

// Project builds a months-long projection starting at start's calendar month.
// Every period carries the same normalized income and expenses; the running
// balance is seeded with startingCash. The projection is rebuilt from scratch
// on each call.
func Project(startingCash decimal.Decimal, items []CashFlowItem, months int, start time.Time) ([]MonthlyProjection, error) {
	if months < 1 || months > MaxProjectionMonths {
		return nil, ErrInvalidHorizon
	}
	if err := ValidateItems(items); err != nil {
		return nil, err
	}

	income, expenses := decimal.Zero, decimal.Zero
	for _, item := range items {
		monthly := NormalizeMonthly(item)
		if item.Type == Income {
			income = income.Add(monthly)
		} else {
			expenses = expenses.Add(monthly)
		}
	}
	income, expenses = Round2(income), Round2(expenses)
	net := income.Sub(expenses)

	first := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	cumulative := Round2(startingCash)

	out := make([]MonthlyProjection, 0, months)
	for i := 0; i < months; i++ {
		cumulative = cumulative.Add(net)
		out = append(out, MonthlyProjection{
			Month:              first.AddDate(0, i, 0).Format("Jan 2006"),
			Income:             income,
			Expenses:           expenses,
			NetCashFlow:        net,
			CumulativeCashFlow: cumulative,
		})
	}
	return out, nil
}

// Summarize totals a projection and flags the cash-flow risk notice.
func Summarize(startingCash decimal.Decimal, rows []MonthlyProjection) ProjectionSummary {
	s := ProjectionSummary{
		StartingCash:  Round2(startingCash),
		FinalBalance:  Round2(startingCash),
		LowestBalance: Round2(startingCash),
	}
	for _, r := range rows {
		s.TotalIncome = s.TotalIncome.Add(r.Income)
		s.TotalExpenses = s.TotalExpenses.Add(r.Expenses)
		s.TotalNet = s.TotalNet.Add(r.NetCashFlow)
		s.FinalBalance = r.CumulativeCashFlow
		if r.CumulativeCashFlow.LessThan(s.LowestBalance) {
			s.LowestBalance = r.CumulativeCashFlow
		}
		if r.CumulativeCashFlow.IsNegative() && !s.HasNegativeBalance {
			s.HasNegativeBalance = true
			s.FirstNegativeMonth = r.Month
		}
	}
	return s
}
