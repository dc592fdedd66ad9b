package engine

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Arminmsc/uk-vehicle-dashboard/schema"
)

// ============================================================================
// DERIVED VIEW TESTS
// ============================================================================

var earlyHeaders = []string{
	schema.ColFuel, schema.ColBodyType, schema.ColMake, schema.ColStatus,
	"2008 Q4", "2009 Q1", "2009 Q2",
}

func earlyRow(fuel string, vals ...string) map[string]string {
	row := map[string]string{
		schema.ColFuel:     fuel,
		schema.ColBodyType: "Cars",
		schema.ColMake:     "FORD",
		schema.ColStatus:   "Licensed",
	}
	for i, v := range vals {
		row[earlyHeaders[4+i]] = v
	}
	return row
}

func buildEarlyDataset(t *testing.T) *Dataset {
	t.Helper()
	ds, err := Build(earlyHeaders, []map[string]string{
		earlyRow("Petrol", "10", "20", "30"),
		earlyRow("Battery Electric", "1", "2", "3"),
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return ds
}

func TestDefaultStartExcludesEarlyYears(t *testing.T) {
	ds := buildEarlyDataset(t)
	sel := DefaultSelection(ds)
	if sel.From != 1 {
		t.Errorf("default From = %d, want 1 (first index >= 2009 Q1)", sel.From)
	}

	vm := DeriveView(ds, sel)
	if vm.Quarters[0] != "2009 Q1" {
		t.Errorf("visible range starts at %s, want 2009 Q1", vm.Quarters[0])
	}
}

func TestIncludeEarlyExposesFullAxis(t *testing.T) {
	ds := buildEarlyDataset(t)
	sel := DefaultSelection(ds)
	sel.IncludeEarly = true
	sel.From = 0
	vm := DeriveView(ds, sel)
	if vm.Quarters[0] != "2008 Q4" {
		t.Errorf("visible range starts at %s, want 2008 Q4", vm.Quarters[0])
	}
}

func TestEarlyBoundsClampForwardWhenToggleOff(t *testing.T) {
	ds := buildEarlyDataset(t)
	sel := DefaultSelection(ds)
	sel.From = 0 // before the default start, toggle off
	vm := DeriveView(ds, sel)
	if vm.Selection.From != 1 {
		t.Errorf("From = %d, want clamped forward to 1", vm.Selection.From)
	}
}

func TestBoundSnapping(t *testing.T) {
	ds := buildEarlyDataset(t)
	sel := DefaultSelection(ds).WithTo(2).WithFrom(2)
	if sel.From != 2 || sel.To != 2 {
		t.Fatalf("selection = [%d,%d], want [2,2]", sel.From, sel.To)
	}

	// Moving From past To drags To along.
	sel = Selection{Fuel: KeyAll, Body: KeyAll, Make: KeyAll, From: 1, To: 1}.WithFrom(2)
	if sel.To != 2 {
		t.Errorf("To = %d, want snapped to 2", sel.To)
	}
	// Moving To before From drags From along.
	sel = Selection{Fuel: KeyAll, Body: KeyAll, Make: KeyAll, From: 2, To: 2}.WithTo(1)
	if sel.From != 1 {
		t.Errorf("From = %d, want snapped to 1", sel.From)
	}
}

func TestNormalizeInvertedBounds(t *testing.T) {
	ds := buildEarlyDataset(t)
	sel := DefaultSelection(ds)
	sel.From, sel.To = 2, 1
	norm := sel.Normalize(ds)
	if norm.From > norm.To {
		t.Errorf("normalized bounds [%d,%d] violate From <= To", norm.From, norm.To)
	}
}

func TestStaleCategoriesResetToAll(t *testing.T) {
	ds := buildEarlyDataset(t)
	sel := DefaultSelection(ds)
	sel.Fuel = "HYDROGEN"
	sel.Body = "TANKS"
	sel.Make = "NONESUCH"
	vm := DeriveView(ds, sel)
	if vm.Selection.Fuel != KeyAll || vm.Selection.Body != KeyAll || vm.Selection.Make != KeyAll {
		t.Errorf("selection = %+v, want all reset to ALL", vm.Selection)
	}
}

func TestMakeOutsideTopTwentyResets(t *testing.T) {
	var rows []map[string]string
	for i := 1; i <= 25; i++ {
		rows = append(rows, testRow("Petrol", "Cars", fmt.Sprintf("MAKE%02d", i),
			"Licensed", "1", "1", fmt.Sprintf("%d", i*10)))
	}
	ds := buildTestDataset(t, rows)

	sel := DefaultSelection(ds)
	sel.Make = "MAKE01" // rank 25, outside the list
	vm := DeriveView(ds, sel)
	if vm.Selection.Make != KeyAll {
		t.Errorf("make = %s, want reset to ALL", vm.Selection.Make)
	}

	sel.Make = "MAKE25" // rank 1, stays selected
	vm = DeriveView(ds, sel)
	if vm.Selection.Make != "MAKE25" {
		t.Errorf("make = %s, want MAKE25 kept", vm.Selection.Make)
	}
	if len(vm.Makes) != 20 {
		t.Errorf("make list = %d entries, want 20", len(vm.Makes))
	}
}

func TestBarChartForcesCombinedScale(t *testing.T) {
	ds := buildEarlyDataset(t)
	sel := DefaultSelection(ds)
	sel.Chart = ChartBar
	sel.Scale = ScaleSplit
	vm := DeriveView(ds, sel)
	if vm.Selection.Scale != ScaleCombined {
		t.Errorf("scale = %v, want forced to combined", vm.Selection.Scale)
	}

	sel.Chart = ChartLine
	sel.Scale = ScaleSplit
	vm = DeriveView(ds, sel)
	if vm.Selection.Scale != ScaleSplit {
		t.Errorf("scale = %v, want split kept for line charts", vm.Selection.Scale)
	}
}

func TestEVShareFromRollup(t *testing.T) {
	// Electric-like fuels are matched by substring, covering hybrids and
	// plug-ins without enumeration.
	rows := []map[string]string{
		testRow("Petrol", "Cars", "FORD", "Licensed", "0", "0", "750"),
		testRow("Battery Electric", "Cars", "TESLA", "Licensed", "0", "0", "150"),
		testRow("Plug-in Hybrid Electric", "Cars", "BMW", "Licensed", "0", "0", "100"),
	}
	ds := buildTestDataset(t, rows)
	sel := DefaultSelection(ds)
	sel.IncludeEarly = true
	vm := DeriveView(ds, sel)
	wantPct(t, "EVPct", vm.KPIs.EVPct, 25)
	if !strings.Contains(vm.Insight, "25.0%") {
		t.Errorf("insight %q should mention the EV share", vm.Insight)
	}
}

func TestInsightFallback(t *testing.T) {
	ds := buildEarlyDataset(t)
	sel := DefaultSelection(ds).WithFrom(2).WithTo(2) // single-point window
	vm := DeriveView(ds, sel)
	if vm.Insight != insightFallback {
		t.Errorf("insight = %q, want fallback", vm.Insight)
	}
}

func TestViewDisplayFormatting(t *testing.T) {
	rows := []map[string]string{
		testRow("Petrol", "Cars", "FORD", "Licensed", "60000", "90000", "120000"),
	}
	ds := buildTestDataset(t, rows)
	sel := DefaultSelection(ds)
	sel.IncludeEarly = true
	vm := DeriveView(ds, sel)

	if vm.Display.Latest != "120,000" {
		t.Errorf("Latest = %q, want 120,000", vm.Display.Latest)
	}
	if vm.Display.Net != "+60,000 (100.0%)" {
		t.Errorf("Net = %q, want +60,000 (100.0%%)", vm.Display.Net)
	}
	if vm.Display.ThreeYear != "needs 12 quarters" {
		t.Errorf("ThreeYear = %q, want needs 12 quarters", vm.Display.ThreeYear)
	}
}

func TestDeriveViewDoesNotMutateDataset(t *testing.T) {
	ds := buildEarlyDataset(t)
	before := ds.Series("PETROL", "CARS", "FORD")[0]
	for i := 0; i < 3; i++ {
		DeriveView(ds, DefaultSelection(ds))
	}
	after := ds.Series("PETROL", "CARS", "FORD")[0]
	if before != after {
		t.Error("DeriveView mutated the rollup")
	}
}
