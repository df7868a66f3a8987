package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatGrouped(t *testing.T) {
	tests := map[string]string{
		"0":         "0.00",
		"5":         "5.00",
		"999.995":   "1,000.00",
		"-1000":     "-1,000.00",
		"1234567.5": "1,234,567.50",
		"-0.004":    "0.00",
		"100000":    "100,000.00",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatGrouped(decimal.RequireFromString(in)), in)
	}
}
