package engine

// ============================================================================
// DERIVED METRICS — KPIs over the selected window
// ============================================================================
// Every percentage follows one convention: a divisor of zero (or below a
// stated floor) makes the percentage undefined — a nil pointer — and only
// the absolute figure is shown. Naive division would produce Inf or
// misleadingly large magnitudes off tiny bases.
// ============================================================================

// netChangeFloor suppresses the net-change percentage when the window's
// starting value is below this absolute base.
const netChangeFloor = 50000

// threeYearQuarters is the lookback, in window positions, of the 3-year KPI.
const threeYearQuarters = 12

// KPIs are the derived metrics for one selection. Pointer fields are nil
// when the value is undefined for the current window.
type KPIs struct {
	Latest       float64  // metric at the last windowed point; 0 if empty
	QoQAbs       *float64 // latest minus previous point; needs >= 2 points
	QoQPct       *float64 // nil when the previous value is exactly 0
	SornSharePct float64  // sorn/total at the latest point; 0 when total is 0
	NetAbs       *float64 // latest minus first windowed point; needs >= 2 points
	NetPct       *float64 // nil when the starting value is below the floor
	MarketPct    *float64 // selected fuel vs all-fuel latest; nil when denom 0
	EVPct        *float64 // electric-like fuels vs all-fuel; nil when undefined
	ThreeYearAbs *float64 // latest vs 12 positions earlier; needs >= 13 points
	ThreeYearPct *float64 // nil when the base value is <= 0

	Points int // windowed series length
}

// ComputeKPIs derives all KPIs from the windowed selected series, the
// all-fuel series under the same body/make/window (market and EV share
// denominator), and the pointwise sum of every electric-like fuel's series
// (nil when no fuel key contains "ELECTRIC").
func ComputeKPIs(windowed, allFuel, electric Series, metric Metric) KPIs {
	k := KPIs{Points: len(windowed)}
	if len(windowed) == 0 {
		return k
	}

	last := windowed[len(windowed)-1]
	k.Latest = metric.Of(last)

	if last.Total > 0 {
		k.SornSharePct = last.Sorn / last.Total * 100
	}

	if len(windowed) >= 2 {
		prev := metric.Of(windowed[len(windowed)-2])
		k.QoQAbs = ptr(k.Latest - prev)
		if prev != 0 {
			k.QoQPct = ptr((k.Latest - prev) / prev * 100)
		}

		first := metric.Of(windowed[0])
		k.NetAbs = ptr(k.Latest - first)
		if first >= netChangeFloor {
			k.NetPct = ptr((k.Latest - first) / first * 100)
		}
	}

	if len(allFuel) > 0 {
		denom := metric.Of(allFuel[len(allFuel)-1])
		if denom != 0 {
			k.MarketPct = ptr(k.Latest / denom * 100)
			if len(electric) > 0 {
				ev := metric.Of(electric[len(electric)-1])
				k.EVPct = ptr(ev / denom * 100)
			}
		}
	}

	if len(windowed) >= threeYearQuarters+1 {
		base := metric.Of(windowed[len(windowed)-1-threeYearQuarters])
		k.ThreeYearAbs = ptr(k.Latest - base)
		if base > 0 {
			k.ThreeYearPct = ptr((k.Latest - base) / base * 100)
		}
	}

	return k
}

func ptr(v float64) *float64 { return &v }
