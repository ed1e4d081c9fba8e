package calc

import (
	"math"

	"github.com/shopspring/decimal"
)

// TimeUnit is the unit the investment horizon is entered in.
type TimeUnit string

const (
	Months   TimeUnit = "months"
	Quarters TimeUnit = "quarters"
	Years    TimeUnit = "years"
)

// ROIInput is the ROI calculator form.
type ROIInput struct {
	InitialInvestment decimal.Decimal
	FinalValue        decimal.Decimal
	TimeHorizon       decimal.Decimal
	TimeUnit          TimeUnit
	AdditionalCosts   decimal.Decimal
	AnnualCashFlow    decimal.Decimal
}

// ROIResult holds the derived figures. AnnualizedROI is nil when the
// geometric formula has no real answer (total return at or below zero).
type ROIResult struct {
	TotalInvestment      decimal.Decimal
	SimpleROI            decimal.Decimal
	AnnualizedROI        *decimal.Decimal
	AnnualizedApplicable bool
	TotalReturn          decimal.Decimal
	TotalGain            decimal.Decimal
	// PaybackPeriod is in years.
	PaybackPeriod decimal.Decimal
	// BreakEvenPoint is PaybackPeriod expressed in the input TimeUnit.
	BreakEvenPoint decimal.Decimal
	Years          decimal.Decimal
}

// Rating labels for an ROI percentage.
const (
	RatingExcellent = "Excellent"
	RatingGood      = "Good"
	RatingPositive  = "Positive"
	RatingNegative  = "Negative"
)

var four = decimal.NewFromInt(4)

// ToYears converts a horizon in unit to years.
func ToYears(horizon decimal.Decimal, unit TimeUnit) (decimal.Decimal, error) {
	switch unit {
	case Months:
		return horizon.Div(twelve), nil
	case Quarters:
		return horizon.Div(four), nil
	case Years, "":
		return horizon, nil
	}
	return decimal.Zero, ErrUnknownTimeUnit
}

func fromYears(years decimal.Decimal, unit TimeUnit) decimal.Decimal {
	switch unit {
	case Months:
		return years.Mul(twelve)
	case Quarters:
		return years.Mul(four)
	}
	return years
}

// ROI computes simple and annualized return and the payback period.
func ROI(in ROIInput) (ROIResult, error) {
	years, err := ToYears(in.TimeHorizon, in.TimeUnit)
	if err != nil {
		return ROIResult{}, err
	}
	if years.IsNegative() {
		return ROIResult{}, ErrInsufficientInput
	}

	investment := in.InitialInvestment.Add(in.AdditionalCosts)
	if !investment.IsPositive() {
		return ROIResult{}, ErrInsufficientInput
	}

	cashFlows := in.AnnualCashFlow.Mul(years)
	totalReturn := in.FinalValue.Add(cashFlows)
	gain := totalReturn.Sub(investment)
	simple := gain.Div(investment).Mul(hundred)

	res := ROIResult{
		TotalInvestment: Round2(investment),
		SimpleROI:       Round2(simple),
		TotalReturn:     Round2(totalReturn),
		TotalGain:       Round2(gain),
		Years:           years.Round(4),
	}

	if years.IsPositive() {
		if annualized, ok := annualize(totalReturn, investment, years); ok {
			a := Round2(annualized)
			res.AnnualizedROI = &a
			res.AnnualizedApplicable = true
		}
	} else {
		s := res.SimpleROI
		res.AnnualizedROI = &s
		res.AnnualizedApplicable = true
	}

	payback := years
	if in.AnnualCashFlow.IsPositive() {
		payback = investment.Div(in.AnnualCashFlow)
	}
	res.PaybackPeriod = Round2(payback)
	res.BreakEvenPoint = Round2(fromYears(payback, in.TimeUnit))
	return res, nil
}

// annualize returns ((ret/inv)^(1/years) - 1) * 100. It reports false when the
// base is not positive or the float result is not finite.
func annualize(ret, inv, years decimal.Decimal) (decimal.Decimal, bool) {
	ratio := ret.Div(inv)
	if !ratio.IsPositive() {
		return decimal.Zero, false
	}
	if years.Equal(decimal.NewFromInt(1)) {
		return ratio.Sub(decimal.NewFromInt(1)).Mul(hundred), true
	}
	v := (math.Pow(ratio.InexactFloat64(), 1/years.InexactFloat64()) - 1) * 100
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(v), true
}

// Rating classifies a simple ROI percentage for display.
func Rating(simpleROI decimal.Decimal) string {
	switch {
	case simpleROI.GreaterThan(decimal.NewFromInt(15)):
		return RatingExcellent
	case simpleROI.GreaterThan(decimal.NewFromInt(8)):
		return RatingGood
	case simpleROI.IsPositive():
		return RatingPositive
	default:
		return RatingNegative
	}
}
