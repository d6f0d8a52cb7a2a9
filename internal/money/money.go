// Package money holds the rounding and formatting rules used for quotations.
package money

import (
	"fmt"
	"math"
	"strings"
)

// Round2 rounds a rupee amount to paise, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round3 rounds a physical quantity (sq.ft, metres, kg) to three decimals.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// FormatINR formats an amount in Indian Rupee notation: after the rightmost
// three digits, digits are grouped in pairs (₹1,23,45,678.90).
func FormatINR(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)
	intPart, decPart, _ := strings.Cut(raw, ".")

	result := "₹" + groupIndian(intPart) + "." + decPart
	if negative && result != "₹0.00" {
		result = "-" + result
	}
	return result
}

func groupIndian(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]
	for len(remaining) > 2 {
		result = remaining[len(remaining)-2:] + "," + result
		remaining = remaining[:len(remaining)-2]
	}
	if remaining != "" {
		result = remaining + "," + result
	}
	return result
}
