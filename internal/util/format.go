package util

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatDistance renders a distance with one decimal place. Rounding
// happens only at display time; calculations keep full precision.
func FormatDistance(d decimal.Decimal) string {
	return d.StringFixed(1)
}

// FormatDistanceGrouped renders a distance with one decimal place and
// comma-separated thousands, for large totals.
func FormatDistanceGrouped(d decimal.Decimal) string {
	str := d.StringFixed(1)
	parts := strings.SplitN(str, ".", 2)
	grouped := groupThousands(parts[0])
	if len(parts) > 1 {
		return grouped + "." + parts[1]
	}
	return grouped
}

// FormatCount renders an integer count with comma-separated thousands.
func FormatCount(n int) string {
	return groupThousands(decimal.NewFromInt(int64(n)).String())
}

func groupThousands(intPart string) string {
	negative := strings.HasPrefix(intPart, "-")
	if negative {
		intPart = intPart[1:]
	}

	if len(intPart) > 3 {
		chars := []rune(intPart)
		result := []rune{}
		for i := len(chars) - 1; i >= 0; i-- {
			if len(result) > 0 && len(result)%4 == 3 {
				result = append([]rune{','}, result...)
			}
			result = append([]rune{chars[i]}, result...)
		}
		intPart = string(result)
	}

	if negative {
		return "-" + intPart
	}
	return intPart
}
