package engine

import (
	"sort"
)

// ============================================================================
// SERIES SELECTOR — Rollup read path
// ============================================================================
// Every downstream consumer (KPIs, chart, dashboard) reads series through
// these lookups. Absent combinations yield an empty series, never an error.
// ============================================================================

// Series returns the full-axis series for a (fuel, body, make) combination,
// or nil when the combination was never observed.
func (d *Dataset) Series(fuel, body, mk string) Series {
	byBody, ok := d.Rollup[fuel]
	if !ok {
		return nil
	}
	byMake, ok := byBody[body]
	if !ok {
		return nil
	}
	return byMake[mk]
}

// Slice returns the inclusive [from, to] window of the addressed series.
// Callers are responsible for clamping: 0 <= from <= to < len(axis).
func (d *Dataset) Slice(fuel, body, mk string, from, to int) Series {
	s := d.Series(fuel, body, mk)
	if s == nil {
		return nil
	}
	return s[from : to+1]
}

// MakeRank is one entry of the top-make ranking.
type MakeRank struct {
	Key   string
	Total float64 // Total at the last quarter of the global axis
}

// TopMakes ranks the makes observed under (fuel, body) by their Total at the
// last quarter of the global axis (not the filtered window), descending, and
// returns at most the dataset's top-make limit. KeyAll is excluded. Equal
// totals are broken by make key ascending, so the ranking is deterministic
// regardless of map iteration order.
func (d *Dataset) TopMakes(fuel, body string) []MakeRank {
	byBody, ok := d.Rollup[fuel]
	if !ok {
		return nil
	}
	byMake, ok := byBody[body]
	if !ok {
		return nil
	}

	last := len(d.Schema.Quarters) - 1
	ranks := make([]MakeRank, 0, len(byMake))
	for mk, series := range byMake {
		if mk == KeyAll || len(series) == 0 {
			continue
		}
		ranks = append(ranks, MakeRank{Key: mk, Total: series[last].Total})
	}

	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].Total != ranks[j].Total {
			return ranks[i].Total > ranks[j].Total
		}
		return ranks[i].Key < ranks[j].Key
	})

	if limit := d.TopMakeLimit(); len(ranks) > limit {
		ranks = ranks[:limit]
	}
	return ranks
}

// SumSeries adds b into a pointwise and returns the result. A nil operand
// passes the other through unchanged. Totals are recomputed so the
// Total == Licensed + Sorn invariant holds on the sum.
func SumSeries(a, b Series) Series {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	out := make(Series, n)
	for i := 0; i < n; i++ {
		out[i] = Point{
			Quarter:  a[i].Quarter,
			Licensed: a[i].Licensed + b[i].Licensed,
			Sorn:     a[i].Sorn + b[i].Sorn,
			Total:    a[i].Total + b[i].Total,
		}
	}
	return out
}
