package calc

import "github.com/shopspring/decimal"

// VATMode tells VAT whether the amount excludes or includes VAT.
type VATMode string

const (
	VATAdd     VATMode = "add"
	VATExtract VATMode = "extract"
)

// UAEStandardVATRate is the standard UAE VAT rate in percent.
var UAEStandardVATRate = decimal.NewFromInt(5)

// VATResult splits an amount into net, VAT and gross.
type VATResult struct {
	Net   decimal.Decimal
	VAT   decimal.Decimal
	Gross decimal.Decimal
	Rate  decimal.Decimal
}

// VAT adds VAT to a net amount, or extracts it from a gross amount.
func VAT(amount, rate decimal.Decimal, mode VATMode) (VATResult, error) {
	if amount.IsNegative() || rate.IsNegative() {
		return VATResult{}, ErrInsufficientInput
	}

	factor := rate.Div(hundred)
	var net, gross decimal.Decimal
	switch mode {
	case VATAdd, "":
		net = amount
		gross = amount.Add(amount.Mul(factor))
	case VATExtract:
		gross = amount
		net = amount.Div(decimal.NewFromInt(1).Add(factor))
	default:
		return VATResult{}, ErrUnknownVATMode
	}

	net, gross = Round2(net), Round2(gross)
	return VATResult{
		Net:   net,
		VAT:   gross.Sub(net),
		Gross: gross,
		Rate:  rate,
	}, nil
}
