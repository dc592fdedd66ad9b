package engine

import (
	"log"

	"github.com/Arminmsc/uk-vehicle-dashboard/schema"
)

// ============================================================================
// AGGREGATION ENGINE — One pass over all rows → complete Rollup
// ============================================================================
// For each row, the per-quarter vector is accumulated into all 8 buckets
// formed by {real, ALL} on each of the three axes, on the channel selected
// by the row's status. Accumulation is commutative and associative per
// bucket and quarter, so the output is independent of row order.
//
// O(rows × quarters), independent of filter cardinality. This is the design
// reason for pre-aggregating: every later filter operation is an O(1) map
// lookup plus an O(window) slice, never a re-scan of raw rows.
// ============================================================================

// acc is a bucket's accumulated channel vectors before conversion to Series.
type acc struct {
	licensed []float64
	sorn     []float64
}

// Build discovers the schema from a parsed table and aggregates its rows.
// This is the whole load pipeline after CSV parsing; the returned Dataset
// is immutable for the rest of the session.
func Build(headers []string, rows []map[string]string, opts ...Option) (*Dataset, error) {
	sch, err := schema.Discover(headers, rows)
	if err != nil {
		return nil, err
	}
	ds := Aggregate(sch, rows, opts...)
	log.Printf("vehdash: aggregated %d of %d rows across %d quarters (%d fuel types, %d body types)",
		ds.AggregatedRows, ds.RawRows, len(sch.Quarters), len(sch.FuelLabels), len(sch.BodyLabels))
	return ds, nil
}

// Aggregate folds normalized rows into the complete Rollup.
func Aggregate(sch *schema.Schema, rows []map[string]string, opts ...Option) *Dataset {
	cfg := applyOptions(opts)
	nq := len(sch.Quarters)
	buckets := make(map[string]map[string]map[string]*acc)

	aggregated := 0
	for _, row := range rows {
		n, ok := normalizeRow(row, sch.Quarters)
		if !ok {
			continue
		}
		aggregated++

		for _, fuel := range [2]string{n.fuel, KeyAll} {
			for _, body := range [2]string{n.body, KeyAll} {
				for _, mk := range [2]string{n.make, KeyAll} {
					a := bucketFor(buckets, fuel, body, mk, nq)
					ch := a.sorn
					if n.licensed {
						ch = a.licensed
					}
					for i, v := range n.values {
						ch[i] += v
					}
				}
			}
		}
	}

	// Convert accumulated vectors into Series of Points.
	rollup := make(Rollup, len(buckets))
	for fuel, byBody := range buckets {
		rollup[fuel] = make(map[string]map[string]Series, len(byBody))
		for body, byMake := range byBody {
			rollup[fuel][body] = make(map[string]Series, len(byMake))
			for mk, a := range byMake {
				series := make(Series, nq)
				for i := 0; i < nq; i++ {
					series[i] = Point{
						Quarter:  sch.Quarters[i].Label,
						Licensed: a.licensed[i],
						Sorn:     a.sorn[i],
						Total:    a.licensed[i] + a.sorn[i],
					}
				}
				rollup[fuel][body][mk] = series
			}
		}
	}

	return &Dataset{
		Schema:         sch,
		Rollup:         rollup,
		RawRows:        len(rows),
		AggregatedRows: aggregated,
		defaultStart:   sch.IndexAtOrAfter(cfg.startYear, cfg.startQuarter),
		topMakeLimit:   cfg.topMakeLimit,
	}
}

func bucketFor(buckets map[string]map[string]map[string]*acc, fuel, body, mk string, nq int) *acc {
	byBody, ok := buckets[fuel]
	if !ok {
		byBody = make(map[string]map[string]*acc)
		buckets[fuel] = byBody
	}
	byMake, ok := byBody[body]
	if !ok {
		byMake = make(map[string]*acc)
		byBody[body] = byMake
	}
	a, ok := byMake[mk]
	if !ok {
		a = &acc{
			licensed: make([]float64, nq),
			sorn:     make([]float64, nq),
		}
		byMake[mk] = a
	}
	return a
}
