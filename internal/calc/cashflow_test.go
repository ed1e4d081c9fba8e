package calc

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var projectionStart = time.Date(2026, time.November, 14, 9, 30, 0, 0, time.UTC)

func sampleItems() []CashFlowItem {
	return []CashFlowItem{
		{Name: "Retainers", Amount: d("30000"), Type: Income, Frequency: Monthly},
		{Name: "Audit fees", Amount: d("45000"), Type: Income, Frequency: Quarterly},
		{Name: "Salaries", Amount: d("28000"), Type: Expense, Frequency: Monthly},
		{Name: "Office rent", Amount: d("120000"), Type: Expense, Frequency: Annually},
		{Name: "Software", Amount: d("1000"), Type: Expense, Frequency: Quarterly},
	}
}

func TestNormalizeMonthly(t *testing.T) {
	tests := []struct {
		amount string
		freq   Frequency
		want   string
	}{
		{"1200", Annually, "100"},
		{"300", Quarterly, "100"},
		{"100", Monthly, "100"},
	}
	for _, tt := range tests {
		t.Run(string(tt.freq), func(t *testing.T) {
			got := NormalizeMonthly(CashFlowItem{Amount: d(tt.amount), Type: Income, Frequency: tt.freq})
			assertDec(t, tt.want, got)
		})
	}
}

func TestProject_FrequencyContribution(t *testing.T) {
	items := []CashFlowItem{
		{Name: "a", Amount: d("1200"), Type: Income, Frequency: Annually},
		{Name: "b", Amount: d("300"), Type: Expense, Frequency: Quarterly},
	}
	rows, err := Project(d("0"), items, 1, projectionStart)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assertDec(t, "100", rows[0].Income)
	assertDec(t, "100", rows[0].Expenses)
	assertDec(t, "0", rows[0].NetCashFlow)
}

func TestProject_Conservation(t *testing.T) {
	start := d("10000")
	rows, err := Project(start, sampleItems(), 12, projectionStart)
	require.NoError(t, err)
	require.Len(t, rows, 12)

	prev := start
	for i, r := range rows {
		assert.True(t, r.NetCashFlow.Equal(r.Income.Sub(r.Expenses)), "row %d net", i)
		assert.True(t, r.CumulativeCashFlow.Equal(prev.Add(r.NetCashFlow)), "row %d cumulative", i)
		prev = r.CumulativeCashFlow
	}
}

func TestProject_Values(t *testing.T) {
	rows, err := Project(d("10000"), sampleItems(), 3, projectionStart)
	require.NoError(t, err)

	// income 30000 + 15000; expenses 28000 + 10000 + 333.33
	assertDec(t, "45000", rows[0].Income)
	assertDec(t, "38333.33", rows[0].Expenses)
	assertDec(t, "6666.67", rows[0].NetCashFlow)
	assertDec(t, "16666.67", rows[0].CumulativeCashFlow)
	assertDec(t, "30000.01", rows[2].CumulativeCashFlow)
}

func TestProject_MonthLabels(t *testing.T) {
	rows, err := Project(d("0"), nil, 4, projectionStart)
	require.NoError(t, err)

	labels := make([]string, len(rows))
	for i, r := range rows {
		labels[i] = r.Month
	}
	assert.Equal(t, []string{"Nov 2026", "Dec 2026", "Jan 2027", "Feb 2027"}, labels)
}

func TestProject_Idempotent(t *testing.T) {
	items := sampleItems()
	first, err := Project(d("2500.50"), items, 24, projectionStart)
	require.NoError(t, err)
	second, err := Project(d("2500.50"), items, 24, projectionStart)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Month, second[i].Month)
		assert.True(t, first[i].CumulativeCashFlow.Equal(second[i].CumulativeCashFlow), "row %d", i)
		assert.True(t, first[i].NetCashFlow.Equal(second[i].NetCashFlow), "row %d", i)
	}
}

func TestProject_Horizon(t *testing.T) {
	_, err := Project(d("0"), nil, 0, projectionStart)
	assert.ErrorIs(t, err, ErrInvalidHorizon)

	_, err = Project(d("0"), nil, MaxProjectionMonths+1, projectionStart)
	assert.ErrorIs(t, err, ErrInvalidHorizon)

	rows, err := Project(d("0"), nil, MaxProjectionMonths, projectionStart)
	require.NoError(t, err)
	assert.Len(t, rows, MaxProjectionMonths)
}

func TestProject_InvalidItems(t *testing.T) {
	tests := []struct {
		name  string
		item  CashFlowItem
		field string
	}{
		{"zero amount", CashFlowItem{Amount: d("0"), Type: Income, Frequency: Monthly}, "amount"},
		{"bad type", CashFlowItem{Amount: d("1"), Type: "loan", Frequency: Monthly}, "type"},
		{"bad frequency", CashFlowItem{Amount: d("1"), Type: Expense, Frequency: "weekly"}, "frequency"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := append(sampleItems(), tt.item)
			_, err := Project(d("0"), items, 6, projectionStart)
			var ie *ItemError
			require.True(t, errors.As(err, &ie), "expected ItemError, got %v", err)
			assert.Equal(t, len(items)-1, ie.Index)
			assert.Equal(t, tt.field, ie.Field)
		})
	}
}

func TestSummarize_NegativeBalance(t *testing.T) {
	items := []CashFlowItem{
		{Name: "Fees", Amount: d("5000"), Type: Income, Frequency: Monthly},
		{Name: "Costs", Amount: d("8000"), Type: Expense, Frequency: Monthly},
	}
	rows, err := Project(d("7000"), items, 4, projectionStart)
	require.NoError(t, err)

	s := Summarize(d("7000"), rows)
	assert.True(t, s.HasNegativeBalance)
	assert.Equal(t, "Jan 2027", s.FirstNegativeMonth)
	assertDec(t, "-5000", s.FinalBalance)
	assertDec(t, "-5000", s.LowestBalance)
	assertDec(t, "20000", s.TotalIncome)
	assertDec(t, "32000", s.TotalExpenses)
	assertDec(t, "-12000", s.TotalNet)
}

func TestSummarize_Healthy(t *testing.T) {
	rows, err := Project(d("10000"), sampleItems(), 6, projectionStart)
	require.NoError(t, err)

	s := Summarize(d("10000"), rows)
	assert.False(t, s.HasNegativeBalance)
	assert.Empty(t, s.FirstNegativeMonth)
	assertDec(t, "10000", s.LowestBalance)
	assert.True(t, s.FinalBalance.Equal(rows[len(rows)-1].CumulativeCashFlow))
}

func TestAssignIDs(t *testing.T) {
	items := []CashFlowItem{{ID: "keep"}, {}}
	AssignIDs(items)
	assert.Equal(t, "keep", items[0].ID)
	assert.Len(t, items[1].ID, 36)
}
