package engine

import (
	"fmt"
	"strings"
)

// ============================================================================
// INSIGHT BUILDER — Automatic one-line commentary
// ============================================================================
// Assembles a sentence list conditionally: market share, EV share, 3-year
// trend — each only when its percentage is defined. Falls back to a fixed
// sentence when the window is too short or nothing qualifies.
// ============================================================================

const insightFallback = "Not enough data in the selected range to generate an insight."

// BuildInsight produces the insight text for one selection. fuelLabel is the
// display form of the selected fuel ("All fuel types" for the rollup);
// quarterLabel is the last windowed quarter.
func BuildInsight(k KPIs, fuelLabel, quarterLabel string) string {
	if k.Points < 2 {
		return insightFallback
	}

	var sentences []string

	if k.MarketPct != nil {
		sentences = append(sentences, fmt.Sprintf(
			"%s registrations account for %.1f%% of the market in %s.",
			fuelLabel, *k.MarketPct, quarterLabel))
	}

	if k.EVPct != nil {
		sentences = append(sentences, fmt.Sprintf(
			"Electric-drivetrain fuel types make up %.1f%% of all registrations.",
			*k.EVPct))
	}

	if k.ThreeYearPct != nil {
		direction := "risen"
		pct := *k.ThreeYearPct
		if pct < 0 {
			direction = "fallen"
			pct = -pct
		}
		sentences = append(sentences, fmt.Sprintf(
			"Over the last %d quarters the figure has %s by %.1f%%.",
			threeYearQuarters, direction, pct))
	}

	if len(sentences) == 0 {
		return insightFallback
	}
	return strings.Join(sentences, " ")
}
