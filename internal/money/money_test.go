package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Zero", input: "0", expected: "Rs. 0.00"},
		{name: "Small", input: "999.5", expected: "Rs. 999.50"},
		{name: "Thousands", input: "1000", expected: "Rs. 1,000.00"},
		{name: "Millions", input: "1234567.891", expected: "Rs. 1,234,567.89"},
		{name: "Negative", input: "-25000", expected: "Rs. -25,000.00"},
		{name: "NegativeRoundsToZero", input: "-0.001", expected: "Rs. 0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(decimal.RequireFromString(tt.input)))
		})
	}
}

func TestSum(t *testing.T) {
	total := Sum(decimal.NewFromInt(10), decimal.RequireFromString("2.5"))
	assert.True(t, decimal.RequireFromString("12.5").Equal(total))
	assert.True(t, Sum().IsZero())
}
