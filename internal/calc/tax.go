package calc

import (
	"github.com/shopspring/decimal"
)

// BusinessJurisdiction selects the corporate tax regime.
type BusinessJurisdiction string

const (
	Mainland BusinessJurisdiction = "mainland"
	FreeZone BusinessJurisdiction = "freezone"
)

// TaxBand charges Rate on the portion of taxable income above Threshold, up to
// the next band's threshold.
type TaxBand struct {
	Threshold decimal.Decimal
	Rate      decimal.Decimal
}

// UAECorporateTaxBands are the mainland bands: 0% up to AED 375,000 and 9% on
// the excess.
var UAECorporateTaxBands = []TaxBand{
	{Threshold: decimal.Zero, Rate: decimal.Zero},
	{Threshold: decimal.NewFromInt(375000), Rate: decimal.RequireFromString("0.09")},
}

// TaxResult is the outcome of CorporateTax. All amounts are rounded to 2dp.
type TaxResult struct {
	TaxableIncome decimal.Decimal
	TaxAmount     decimal.Decimal
	NetIncome     decimal.Decimal
	EffectiveRate decimal.Decimal
}

// ParseJurisdiction maps a form value onto a BusinessJurisdiction.
func ParseJurisdiction(s string) (BusinessJurisdiction, error) {
	switch BusinessJurisdiction(s) {
	case Mainland, FreeZone:
		return BusinessJurisdiction(s), nil
	}
	return "", ErrUnknownBusinessType
}

// CorporateTax estimates UAE corporate tax for the given revenue and expenses.
// Qualifying free-zone income is taxed at zero.
func CorporateTax(revenue, expenses decimal.Decimal, jurisdiction BusinessJurisdiction) (TaxResult, error) {
	if _, err := ParseJurisdiction(string(jurisdiction)); err != nil {
		return TaxResult{}, err
	}
	if !revenue.IsPositive() {
		return TaxResult{}, ErrInsufficientInput
	}

	taxable := decimal.Max(decimal.Zero, revenue.Sub(expenses))

	tax := decimal.Zero
	if jurisdiction == Mainland {
		tax = applyBands(taxable, UAECorporateTaxBands)
	}

	effective := decimal.Zero
	if taxable.IsPositive() {
		effective = tax.Div(taxable).Mul(hundred)
	}

	return TaxResult{
		TaxableIncome: Round2(taxable),
		TaxAmount:     Round2(tax),
		NetIncome:     Round2(taxable.Sub(tax)),
		EffectiveRate: Round2(effective),
	}, nil
}

// applyBands sums the tax owed across bands. Bands must be sorted by threshold.
func applyBands(income decimal.Decimal, bands []TaxBand) decimal.Decimal {
	total := decimal.Zero
	for i, band := range bands {
		if income.LessThanOrEqual(band.Threshold) {
			break
		}
		upper := income
		if i+1 < len(bands) && bands[i+1].Threshold.LessThan(income) {
			upper = bands[i+1].Threshold
		}
		total = total.Add(upper.Sub(band.Threshold).Mul(band.Rate))
	}
	return total
}
