package util

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"0", "0.0"},
		{"42.35", "42.4"},
		{"42.34", "42.3"},
		{"100", "100.0"},
	}

	for _, tt := range tests {
		d := decimal.RequireFromString(tt.input)
		assert.Equal(t, tt.expected, FormatDistance(d), "input %s", tt.input)
	}
}

func TestFormatDistanceGrouped(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"999.94", "999.9"},
		{"1000", "1,000.0"},
		{"12345.67", "12,345.7"},
		{"1234567.8", "1,234,567.8"},
		{"-1234.5", "-1,234.5"},
	}

	for _, tt := range tests {
		d := decimal.RequireFromString(tt.input)
		assert.Equal(t, tt.expected, FormatDistanceGrouped(d), "input %s", tt.input)
	}
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "0", FormatCount(0))
	assert.Equal(t, "999", FormatCount(999))
	assert.Equal(t, "1,000", FormatCount(1000))
	assert.Equal(t, "1,234,567", FormatCount(1234567))
}
