// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/resolution/internal/pacing"
)

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatCoins formats a coin amount, e.g. 10000 -> "10,000 coins".
func FormatCoins(n int) string {
	if n == 1 || n == -1 {
		return FormatNumber(int64(n)) + " coin"
	}
	return FormatNumber(int64(n)) + " coins"
}

// FormatEarned formats a reward with an explicit sign, e.g. "+15".
func FormatEarned(n int) string {
	if n < 0 {
		return FormatNumber(int64(n))
	}
	return "+" + FormatNumber(int64(n))
}

// FormatPercent formats a 0-100 value with one decimal.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatRanges joins reading ranges, e.g. "Genesis 49-50, Exodus 1".
func FormatRanges(ranges []pacing.Range) string {
	parts := make([]string, len(ranges))
	for i, r := range ranges {
		parts[i] = r.String()
	}
	return strings.Join(parts, ", ")
}

// FormatChapters pluralizes a chapter count.
func FormatChapters(n int) string {
	if n == 1 {
		return "1 chapter"
	}
	return fmt.Sprintf("%d chapters", n)
}
