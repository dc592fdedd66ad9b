package engine

import (
	"fmt"
	"testing"

	"github.com/Arminmsc/uk-vehicle-dashboard/schema"
)

// ============================================================================
// SELECTOR TESTS
// ============================================================================

func TestSliceWindow(t *testing.T) {
	ds := buildTestDataset(t, testRows())
	s := ds.Slice("PETROL", "CARS", "FORD", 1, 2)
	if len(s) != 2 {
		t.Fatalf("window length = %d, want 2", len(s))
	}
	if s[0].Quarter != "2020 Q2" || s[1].Quarter != "2020 Q3" {
		t.Errorf("window = [%s, %s], want [2020 Q2, 2020 Q3]", s[0].Quarter, s[1].Quarter)
	}
}

func TestSliceAbsentCombination(t *testing.T) {
	ds := buildTestDataset(t, testRows())
	if s := ds.Slice("HYDROGEN", "CARS", "FORD", 0, 2); s != nil {
		t.Errorf("absent combination = %v, want empty", s)
	}
	if s := ds.Slice("PETROL", "VANS", "FORD", 0, 2); s != nil {
		t.Errorf("absent combination = %v, want empty", s)
	}
}

func TestTopMakesRanking(t *testing.T) {
	// 25 distinct makes with distinct latest totals: the list must hold
	// exactly 20 entries in descending total order.
	var rows []map[string]string
	for i := 1; i <= 25; i++ {
		mk := fmt.Sprintf("MAKE%02d", i)
		rows = append(rows, testRow("Petrol", "Cars", mk, "Licensed",
			"1", "1", fmt.Sprintf("%d", i*10)))
	}
	ds := buildTestDataset(t, rows)

	ranks := ds.TopMakes("PETROL", "CARS")
	if len(ranks) != 20 {
		t.Fatalf("top makes = %d entries, want 20", len(ranks))
	}
	if ranks[0].Key != "MAKE25" || ranks[0].Total != 250 {
		t.Errorf("rank 0 = %+v, want MAKE25/250", ranks[0])
	}
	for i := 1; i < len(ranks); i++ {
		if ranks[i].Total > ranks[i-1].Total {
			t.Fatalf("ranking not descending at %d: %v after %v", i, ranks[i], ranks[i-1])
		}
	}
	// MAKE05 (total 50) is rank 21 and must be cut.
	for _, r := range ranks {
		if r.Key == "MAKE05" {
			t.Error("MAKE05 should fall outside the top 20")
		}
	}
}

func TestTopMakesTieBreak(t *testing.T) {
	rows := []map[string]string{
		testRow("Petrol", "Cars", "ZEBRA", "Licensed", "1", "1", "100"),
		testRow("Petrol", "Cars", "APEX", "Licensed", "1", "1", "100"),
		testRow("Petrol", "Cars", "MIDDLE", "Licensed", "1", "1", "200"),
	}
	ds := buildTestDataset(t, rows)
	ranks := ds.TopMakes("PETROL", "CARS")
	want := []string{"MIDDLE", "APEX", "ZEBRA"}
	for i, w := range want {
		if ranks[i].Key != w {
			t.Errorf("rank %d = %s, want %s (ties break by key ascending)", i, ranks[i].Key, w)
		}
	}
}

func TestTopMakesExcludesAll(t *testing.T) {
	ds := buildTestDataset(t, testRows())
	for _, r := range ds.TopMakes(KeyAll, KeyAll) {
		if r.Key == KeyAll {
			t.Fatal("TopMakes must exclude the ALL sentinel")
		}
	}
}

func TestTopMakesUsesGlobalAxisLastQuarter(t *testing.T) {
	// TESLA overtakes BMW only in the final quarter; the ranking reads the
	// last quarter of the global axis, not any filtered window.
	rows := []map[string]string{
		testRow("Petrol", "Cars", "BMW", "Licensed", "100", "100", "30"),
		testRow("Petrol", "Cars", "TESLA", "Licensed", "1", "2", "40"),
	}
	ds := buildTestDataset(t, rows)
	ranks := ds.TopMakes("PETROL", "CARS")
	if ranks[0].Key != "TESLA" {
		t.Errorf("rank 0 = %s, want TESLA (latest-quarter total)", ranks[0].Key)
	}
}

func TestSumSeries(t *testing.T) {
	a := Series{{Quarter: "2020 Q1", Licensed: 1, Sorn: 2, Total: 3}}
	b := Series{{Quarter: "2020 Q1", Licensed: 10, Sorn: 20, Total: 30}}
	sum := SumSeries(a, b)
	if sum[0].Total != 33 || sum[0].Licensed != 11 || sum[0].Sorn != 22 {
		t.Errorf("sum = %+v, want {11,22,33}", sum[0])
	}
	if got := SumSeries(nil, a); len(got) != 1 || got[0].Total != 3 {
		t.Errorf("SumSeries(nil, a) = %v, want a", got)
	}
	if got := SumSeries(a, nil); len(got) != 1 || got[0].Total != 3 {
		t.Errorf("SumSeries(a, nil) = %v, want a", got)
	}
}

func TestSchemaAxisHelper(t *testing.T) {
	sch := &schema.Schema{Quarters: []schema.Quarter{
		{Label: "2019 Q4", Year: 2019, Q: 4},
		{Label: "2020 Q1", Year: 2020, Q: 1},
	}}
	ds := Aggregate(sch, nil)
	if got := len(ds.Schema.Quarters); got != 2 {
		t.Fatalf("quarters = %d, want 2", got)
	}
	if s := ds.Series(KeyAll, KeyAll, KeyAll); s != nil {
		t.Errorf("empty dataset grand total = %v, want nil", s)
	}
}
