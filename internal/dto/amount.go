package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a money value that travels as a fixed two-decimal string ("5" is sent as "5.00").
// It accepts either a JSON string or a JSON number when decoding.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps d.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// NewAmountPtr wraps d, returning nil for a nil input.
func NewAmountPtr(d *decimal.Decimal) *Amount {
	if d == nil {
		return nil
	}
	a := NewAmount(*d)
	return &a
}

// String renders the amount rounded half away from zero to two places.
func (a Amount) String() string {
	return a.Decimal.StringFixed(2)
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		a.Decimal = decimal.Zero
		return nil
	}
	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	}
	d, err := ParseAmount(raw)
	if err != nil {
		return err
	}
	a.Decimal = d
	return nil
}

// ParseAmount reads a user or wire supplied amount. Thousands separators and surrounding
// blanks are ignored.
func ParseAmount(s string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("amount is empty")
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}
