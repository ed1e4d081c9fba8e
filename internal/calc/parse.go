package calc

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Number is an optional numeric form value. Form fields reach the API as JSON
// numbers, numeric strings ("12,500.50"), empty strings or null; anything that
// does not parse leaves Valid false instead of failing the whole request.
type Number struct {
	Value decimal.Decimal
	Valid bool
}

// NewNumber returns a valid Number holding f.
func NewNumber(f float64) Number {
	return Number{Value: decimal.NewFromFloat(f), Valid: true}
}

// OrZero returns the value, or zero when the field was empty or invalid.
func (n Number) OrZero() decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	return n.Value
}

// OrDefault returns the value, or def when the field was empty or invalid.
func (n Number) OrDefault(def decimal.Decimal) decimal.Decimal {
	if !n.Valid {
		return def
	}
	return n.Value
}

// UnmarshalJSON implements json.Unmarshaler. It never returns an error for
// well-formed JSON scalars.
func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if v, ok := ParseNumber(s); ok {
			n.Value, n.Valid = v, true
		}
		return nil
	}

	if v, err := decimal.NewFromString(string(data)); err == nil {
		n.Value, n.Valid = v, true
	}
	return nil
}

// MarshalJSON implements json.Marshaler; invalid numbers encode as null.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return []byte(n.Value.String()), nil
}

// ParseNumber parses a user-entered number. Thousands separators, surrounding
// whitespace and a leading currency code are tolerated.
func ParseNumber(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, CurrencyAED)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return v, true
}
