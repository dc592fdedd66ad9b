package engine

import (
	"strings"
)

// ============================================================================
// DERIVED VIEW — deriveView(rollup, filters, window) → ViewModel
// ============================================================================
// Pure recompute-on-change: every user input change re-runs DeriveView
// against the immutable Dataset. Nothing here mutates the rollup or the
// quarter axis, so recomputation is synchronous and re-entrant-safe.
// Selection-consistency issues (stale category, inverted bounds, early
// window with the toggle off) are auto-corrected, never surfaced as errors.
// ============================================================================

// ChartType is the requested chart style.
type ChartType int

const (
	ChartLine ChartType = iota
	ChartBar
)

func (c ChartType) String() string {
	if c == ChartBar {
		return "bar"
	}
	return "line"
}

// SupportsSplitScale reports whether the style can express per-axis dual
// scaling. Bar charts cannot; selecting one forces the combined scale.
func (c ChartType) SupportsSplitScale() bool { return c == ChartLine }

// ScaleMode selects combined or per-axis scaling of the chart.
type ScaleMode int

const (
	ScaleCombined ScaleMode = iota
	ScaleSplit
)

func (s ScaleMode) String() string {
	if s == ScaleSplit {
		return "split"
	}
	return "combined"
}

// Selection is the active filter/window state. Category fields hold
// aggregation keys (uppercase), with KeyAll meaning no restriction.
type Selection struct {
	Fuel   string
	Body   string
	Make   string
	Metric Metric

	From, To     int  // inclusive quarter-index window over the global axis
	IncludeEarly bool // expose the axis before the default start

	Chart ChartType
	Scale ScaleMode
}

// DefaultSelection is the initial state: everything ALL, total metric, the
// window from the default start to the end of the axis.
func DefaultSelection(ds *Dataset) Selection {
	return Selection{
		Fuel: KeyAll,
		Body: KeyAll,
		Make: KeyAll,
		From: ds.DefaultStart(),
		To:   len(ds.Schema.Quarters) - 1,
	}
}

// WithFrom moves the lower bound. Moving it past To snaps To along,
// preserving From <= To.
func (s Selection) WithFrom(i int) Selection {
	s.From = i
	if s.To < i {
		s.To = i
	}
	return s
}

// WithTo moves the upper bound, snapping From when it is overtaken.
func (s Selection) WithTo(i int) Selection {
	s.To = i
	if s.From > i {
		s.From = i
	}
	return s
}

// Normalize auto-corrects a selection against the dataset: stale category
// keys reset to ALL, bounds clamp into the allowed range, and a chart style
// without dual-axis support forces the combined scale.
func (s Selection) Normalize(ds *Dataset) Selection {
	if !s.Chart.SupportsSplitScale() {
		s.Scale = ScaleCombined
	}

	min := 0
	if !s.IncludeEarly {
		min = ds.DefaultStart()
	}
	max := len(ds.Schema.Quarters) - 1
	s.From = clamp(s.From, min, max)
	s.To = clamp(s.To, min, max)
	if s.From > s.To {
		s.To = s.From
	}

	if _, ok := ds.Rollup[s.Fuel]; !ok {
		s.Fuel = KeyAll
	}
	if _, ok := ds.Rollup[KeyAll][s.Body]; !ok {
		s.Body = KeyAll
	}
	if s.Make != KeyAll && !makeRanked(ds.TopMakes(s.Fuel, s.Body), s.Make) {
		s.Make = KeyAll
	}
	return s
}

// KPIDisplay carries the formatted string for every KPI card.
type KPIDisplay struct {
	Latest      string
	QoQ         string
	SornShare   string
	Net         string
	MarketShare string
	EVShare     string
	ThreeYear   string
}

// ViewModel is everything the presentation layer renders: the windowed
// chart-ready series, computed and formatted KPIs, the insight line, and the
// selector option lists.
type ViewModel struct {
	Selection Selection

	Series   Series   // windowed series for the active selection
	Quarters []string // windowed axis labels, same length as Series

	KPIs    KPIs
	Display KPIDisplay
	Insight string

	Makes      []string // up to the top-make limit, rank order
	FuelLabels []string // display-form selector options
	BodyLabels []string
}

// DeriveView recomputes the full view model for a selection. The selection
// is normalized first; the returned ViewModel carries the corrected state.
func DeriveView(ds *Dataset, sel Selection) ViewModel {
	sel = sel.Normalize(ds)

	windowed := ds.Slice(sel.Fuel, sel.Body, sel.Make, sel.From, sel.To)
	allFuel := ds.Slice(KeyAll, sel.Body, sel.Make, sel.From, sel.To)
	electric := electricSeries(ds, sel)

	k := ComputeKPIs(windowed, allFuel, electric, sel.Metric)

	lastLabel := ""
	if sel.To < len(ds.Schema.Quarters) {
		lastLabel = ds.Schema.Quarters[sel.To].Label
	}

	ranks := ds.TopMakes(sel.Fuel, sel.Body)
	makes := make([]string, len(ranks))
	for i, r := range ranks {
		makes[i] = r.Key
	}

	return ViewModel{
		Selection:  sel,
		Series:     windowed,
		Quarters:   windowLabels(windowed),
		KPIs:       k,
		Display:    formatKPIs(k),
		Insight:    BuildInsight(k, fuelDisplayLabel(ds, sel.Fuel), lastLabel),
		Makes:      makes,
		FuelLabels: ds.Schema.FuelLabels,
		BodyLabels: ds.Schema.BodyLabels,
	}
}

// electricSeries sums the windowed series of every fuel key containing
// "ELECTRIC" under the selection's body/make filters. The substring match
// covers battery-electric, hybrids and plug-ins without enumerating them.
// Returns nil when no electric-like fuel key exists.
func electricSeries(ds *Dataset, sel Selection) Series {
	var sum Series
	for fuel := range ds.Rollup {
		if fuel == KeyAll || !strings.Contains(fuel, "ELECTRIC") {
			continue
		}
		sum = SumSeries(sum, ds.Slice(fuel, sel.Body, sel.Make, sel.From, sel.To))
	}
	return sum
}

func formatKPIs(k KPIs) KPIDisplay {
	d := KPIDisplay{
		Latest:      FormatCount(k.Latest),
		QoQ:         FormatDelta(k.QoQAbs, k.QoQPct),
		SornShare:   FormatPct(&k.SornSharePct),
		Net:         FormatDelta(k.NetAbs, k.NetPct),
		MarketShare: FormatPct(k.MarketPct),
		EVShare:     FormatPct(k.EVPct),
		ThreeYear:   FormatDelta(k.ThreeYearAbs, k.ThreeYearPct),
	}
	if k.ThreeYearAbs == nil {
		d.ThreeYear = "needs 12 quarters"
	}
	return d
}

func fuelDisplayLabel(ds *Dataset, fuelKey string) string {
	if fuelKey == KeyAll {
		return "All fuel types"
	}
	for _, label := range ds.Schema.FuelLabels {
		if strings.ToUpper(label) == fuelKey {
			return label
		}
	}
	return fuelKey
}

func windowLabels(s Series) []string {
	labels := make([]string, len(s))
	for i, p := range s {
		labels[i] = p.Quarter
	}
	return labels
}

func makeRanked(ranks []MakeRank, mk string) bool {
	for _, r := range ranks {
		if r.Key == mk {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
