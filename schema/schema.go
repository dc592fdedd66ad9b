package schema

// ============================================================================
// SCHEMA — Shape of the registration dataset
// ============================================================================
// Discovered once from the CSV header row + parsed rows, then treated as
// immutable for the rest of the session. The quarter axis is the shared time
// axis for every series the engine produces.
// ============================================================================

// Required categorical columns in the source CSV.
const (
	ColFuel     = "Fuel"
	ColBodyType = "BodyType"
	ColMake     = "Make"
	ColStatus   = "LicenceStatus"
)

// Quarter is one time-axis column, labeled "YYYY Q#".
type Quarter struct {
	Label string // exact column header, e.g. "2014 Q3"
	Year  int
	Q     int // 1..4
}

// Order returns the sortable key year*10+quarter.
func (q Quarter) Order() int { return q.Year*10 + q.Q }

// Schema describes the discovered dataset shape.
type Schema struct {
	// Quarters is the ordered time axis, ascending by Order. Fixed at load.
	Quarters []Quarter

	// FuelLabels and BodyLabels are display-form category labels: original
	// case, trimmed, deduplicated, sorted case-insensitively. Aggregation
	// keys are the same labels uppercased.
	FuelLabels []string
	BodyLabels []string
}

// QuarterLabels returns the axis labels in order.
func (s *Schema) QuarterLabels() []string {
	labels := make([]string, len(s.Quarters))
	for i, q := range s.Quarters {
		labels[i] = q.Label
	}
	return labels
}

// IndexAtOrAfter returns the first axis index whose quarter is >= the given
// year/quarter, or 0 if every quarter is earlier.
func (s *Schema) IndexAtOrAfter(year, q int) int {
	want := year*10 + q
	for i, qu := range s.Quarters {
		if qu.Order() >= want {
			return i
		}
	}
	return 0
}
