package schema

import (
	"errors"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ============================================================================
// DISCOVERY — Header inspection + category label extraction
// ============================================================================
// A column is a quarter column iff its header matches quarterPattern exactly.
// Everything else the schema needs (fuel and body-type label sets) comes from
// scanning the parsed rows once.
// ============================================================================

// Terminal load errors. Neither is recoverable within a session.
var (
	ErrNoQuarterColumns = errors.New("no quarter columns found in CSV header")
	ErrNoFuelCategories = errors.New("no fuel categories found in CSV data")
)

// quarterPattern: 4 digits, one space, "Q", one digit 1..4. No slack.
var quarterPattern = regexp.MustCompile(`^(\d{4}) Q([1-4])$`)

// ParseQuarter parses a header label of the form "YYYY Q#".
func ParseQuarter(label string) (Quarter, bool) {
	m := quarterPattern.FindStringSubmatch(label)
	if m == nil {
		return Quarter{}, false
	}
	year, _ := strconv.Atoi(m[1])
	q, _ := strconv.Atoi(m[2])
	return Quarter{Label: label, Year: year, Q: q}, true
}

// Discover inspects the header row and data rows and returns the dataset
// schema: the ordered quarter axis plus the distinct fuel and body-type
// display labels.
func Discover(headers []string, rows []map[string]string) (*Schema, error) {
	var quarters []Quarter
	for _, h := range headers {
		if q, ok := ParseQuarter(h); ok {
			quarters = append(quarters, q)
		}
	}
	if len(quarters) == 0 {
		return nil, ErrNoQuarterColumns
	}
	sort.Slice(quarters, func(i, j int) bool {
		return quarters[i].Order() < quarters[j].Order()
	})

	fuels := distinctLabels(rows, ColFuel)
	if len(fuels) == 0 {
		return nil, ErrNoFuelCategories
	}
	bodies := distinctLabels(rows, ColBodyType)

	return &Schema{
		Quarters:   quarters,
		FuelLabels: fuels,
		BodyLabels: bodies,
	}, nil
}

// distinctLabels collects trimmed non-empty values of a column, deduplicated
// by their uppercased key (first-seen display form wins), sorted
// case-insensitively.
func distinctLabels(rows []map[string]string, column string) []string {
	seen := make(map[string]bool)
	var labels []string
	for _, row := range rows {
		val := strings.TrimSpace(row[column])
		if val == "" {
			continue
		}
		key := strings.ToUpper(val)
		if !seen[key] {
			seen[key] = true
			labels = append(labels, val)
		}
	}
	sort.Slice(labels, func(i, j int) bool {
		return strings.ToLower(labels[i]) < strings.ToLower(labels[j])
	})
	return labels
}
