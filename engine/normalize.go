package engine

import (
	"math"
	"strconv"
	"strings"

	"github.com/Arminmsc/uk-vehicle-dashboard/schema"
)

// ============================================================================
// ROW NORMALIZER — Raw row → normalized contribution
// ============================================================================
// Data quality policy: malformed rows degrade gracefully, they never abort
// the load. An empty fuel drops the row; an unrecognized status excludes it
// from aggregation; blank body/make bucket under UNKNOWN; unparseable
// numeric cells contribute zero. Zero is both "missing" and "explicitly
// zero" — the two are not distinguished downstream (known limitation).
// ============================================================================

// normalizedRow is one row's contribution to the rollup: category keys, the
// status channel, and a numeric vector aligned to the quarter axis.
type normalizedRow struct {
	fuel     string
	body     string
	make     string
	licensed bool // true → licensed channel, false → SORN channel
	values   []float64
}

// normalizeRow maps a raw row to its contribution. ok is false when the row
// is excluded (empty fuel, or status other than LICENSED/SORN).
func normalizeRow(row map[string]string, quarters []schema.Quarter) (normalizedRow, bool) {
	fuel := normalizeKey(row[schema.ColFuel])
	if fuel == "" {
		return normalizedRow{}, false
	}

	status := normalizeKey(row[schema.ColStatus])
	if status != StatusLicensed && status != StatusSorn {
		return normalizedRow{}, false
	}

	n := normalizedRow{
		fuel:     fuel,
		body:     keyOrUnknown(row[schema.ColBodyType]),
		make:     keyOrUnknown(row[schema.ColMake]),
		licensed: status == StatusLicensed,
		values:   make([]float64, len(quarters)),
	}
	for i, q := range quarters {
		n.values[i] = parseCount(row[q.Label])
	}
	return n, true
}

// normalizeKey produces an aggregation key: uppercase, whitespace-trimmed.
func normalizeKey(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func keyOrUnknown(s string) string {
	if key := normalizeKey(s); key != "" {
		return key
	}
	return KeyUnknown
}

// parseCount parses a numeric cell. Absent, empty, unparseable, or
// non-finite values parse to zero — never an error. Comma thousands
// separators are accepted.
func parseCount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
