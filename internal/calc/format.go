package calc

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencyAED is the ISO 4217 code used for every figure the calculators produce.
const CurrencyAED = "AED"

var hundred = decimal.NewFromInt(100)

// Round2 rounds d to two decimal places, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FormatMoney renders amount as "<code> 1,234,567.89".
// The result always carries exactly two decimal places.
func FormatMoney(amount decimal.Decimal, code string) string {
	negative := amount.IsNegative()
	raw := amount.Abs().StringFixed(2)

	parts := strings.SplitN(raw, ".", 2)
	formatted := groupThousands(parts[0]) + "." + parts[1]

	if negative {
		formatted = "-" + formatted
	}
	if code == "" {
		return formatted
	}
	return code + " " + formatted
}

// FormatAED is FormatMoney with the AED currency code.
func FormatAED(amount decimal.Decimal) string {
	return FormatMoney(amount, CurrencyAED)
}

// FormatPercent renders a percentage value (12.345 -> "12.35%").
func FormatPercent(pct decimal.Decimal) string {
	return pct.StringFixed(2) + "%"
}

// groupThousands inserts a comma between every group of three digits,
// counting from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
