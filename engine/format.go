package engine

import (
	"fmt"
	"math"
)

// ============================================================================
// FORMATTING — Display strings for KPI values
// ============================================================================

// FormatCount formats a registration count with comma-grouped thousands.
// Values are counts, so they render without decimals.
func FormatCount(v float64) string {
	return formatInt(int64(math.Round(v)))
}

// FormatSigned is FormatCount with an explicit sign for deltas.
func FormatSigned(v float64) string {
	n := int64(math.Round(v))
	if n >= 0 {
		return "+" + formatInt(n)
	}
	return formatInt(n)
}

// FormatPct renders a percentage to one decimal, or "n/a" when undefined.
func FormatPct(p *float64) string {
	if p == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", *p)
}

// FormatDelta renders an absolute change with its percentage when defined:
// "+1,234 (5.2%)" or "+1,234" when the percentage is undefined.
func FormatDelta(abs *float64, pct *float64) string {
	if abs == nil {
		return "n/a"
	}
	if pct == nil {
		return FormatSigned(*abs)
	}
	return fmt.Sprintf("%s (%.1f%%)", FormatSigned(*abs), *pct)
}

func formatInt(n int64) string {
	if n < 0 {
		return "-" + formatInt(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s,%03d", formatInt(n/1000), n%1000)
}
