package engine

import (
	"github.com/Arminmsc/uk-vehicle-dashboard/schema"
)

// ============================================================================
// ENGINE TYPES — Registration rollup structures
// ============================================================================
// The engine folds raw CSV rows once into a three-level rollup
// (fuel → body type → make → Series) and answers every later question from
// it. The rollup and quarter axis are immutable after Build; selections and
// derived KPIs are recomputed from them on every input change.
// ============================================================================

// Sentinel category keys. KeyAll addresses the rollup across all values of
// an axis; KeyUnknown buckets rows whose body type or make is blank. Real
// category keys are uppercased data, so neither collides in practice — a
// source row literally labeled "ALL" merges silently into the rollup bucket.
const (
	KeyAll     = "ALL"
	KeyUnknown = "UNKNOWN"
)

// Registration statuses that contribute to aggregation. Any other
// normalized status excludes the row (it still counts toward RawRows).
const (
	StatusLicensed = "LICENSED"
	StatusSorn     = "SORN"
)

// Point is one per-quarter observation. Total == Licensed + Sorn always
// holds by construction.
type Point struct {
	Quarter  string  `json:"quarter"`
	Licensed float64 `json:"licensed"`
	Sorn     float64 `json:"sorn"`
	Total    float64 `json:"total"`
}

// Series is one Point per quarter column, in global axis order, covering the
// entire axis for one (fuel, body, make) combination.
type Series []Point

// Rollup maps fuel key → body key → make key → Series. Every observed
// (fuel, body, make) triple is stored 8 ways: the real triple plus each axis
// independently replaced by KeyAll, so every marginal and the grand total
// are queryable without re-scanning raw rows.
type Rollup map[string]map[string]map[string]Series

// Metric selects which Point field a view reads.
type Metric int

const (
	MetricTotal Metric = iota
	MetricLicensed
	MetricSorn
)

// Of returns the metric's field from a point.
func (m Metric) Of(p Point) float64 {
	switch m {
	case MetricLicensed:
		return p.Licensed
	case MetricSorn:
		return p.Sorn
	default:
		return p.Total
	}
}

func (m Metric) String() string {
	switch m {
	case MetricLicensed:
		return "licensed"
	case MetricSorn:
		return "sorn"
	default:
		return "total"
	}
}

// ParseMetric resolves a metric name; unknown names fall back to total.
func ParseMetric(name string) Metric {
	switch name {
	case "licensed":
		return MetricLicensed
	case "sorn":
		return MetricSorn
	default:
		return MetricTotal
	}
}

// Dataset is the session-lifetime aggregate: schema plus rollup, built once
// after load and never mutated. Pass it by reference into DeriveView and the
// selector functions.
type Dataset struct {
	Schema *schema.Schema
	Rollup Rollup

	// RawRows counts every parsed row; AggregatedRows counts rows that
	// contributed to the rollup (valid fuel and status).
	RawRows        int
	AggregatedRows int

	defaultStart int // first axis index at/after the default start quarter
	topMakeLimit int
}

// DefaultStart returns the axis index where the window starts when early
// years are excluded.
func (d *Dataset) DefaultStart() int { return d.defaultStart }

// TopMakeLimit returns the make-ranking cutoff (20 unless overridden).
func (d *Dataset) TopMakeLimit() int { return d.topMakeLimit }
