package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Arminmsc/uk-vehicle-dashboard/dashboard"
	"github.com/Arminmsc/uk-vehicle-dashboard/engine"
	"github.com/Arminmsc/uk-vehicle-dashboard/helpers"
	"github.com/Arminmsc/uk-vehicle-dashboard/render"
)

// ============================================================================
// VEHDASH CLI — UK vehicle registration dashboard
// ============================================================================

const version = "1.0.0"

var validMetrics = []string{"total", "licensed", "sorn"}

func main() {
	// ── Flags ─────────────────────────────────────────────────────────────
	source := flag.String("file", "", "Path or URL of the registrations CSV")
	fuel := flag.String("fuel", "ALL", "Fuel type filter")
	body := flag.String("body", "ALL", "Body type filter")
	mk := flag.String("make", "ALL", "Manufacturer filter")
	metric := flag.String("metric", "total", "Metric: total, licensed, sorn")
	from := flag.String("from", "", `Window start quarter, e.g. "2015 Q1" (default: 2009 Q1)`)
	to := flag.String("to", "", "Window end quarter (default: last quarter)")
	allYears := flag.Bool("all-years", false, "Include quarters before 2009 Q1")
	format := flag.String("format", "text", "Output format: text, json, pretty")
	chartOut := flag.String("chart", "", "Write the windowed chart to a file (.pdf, .png, .svg)")
	tui := flag.Bool("tui", false, "Open the interactive dashboard")
	quiet := flag.Bool("quiet", false, "Suppress load-progress logging")
	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `vehdash — UK vehicle registration analytics

Usage:
  vehdash --file registrations.csv --tui
  vehdash --file registrations.csv --fuel Petrol --metric licensed
  vehdash --file https://example.org/registrations.csv --chart out.pdf
  vehdash --file registrations.csv --from "2015 Q1" --to "2020 Q4" --format json

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Settings:
  ~/.vehdash.yaml may set defaults for source, metric and includeEarly.

Formats:
  text      KPI summary and insight (default)
  json      Full view model as JSON
  pretty    Pretty-printed JSON
`)
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("vehdash %s\n", version)
		os.Exit(0)
	}

	settings, err := dashboard.LoadSettings(dashboard.SettingsPath())
	if err != nil {
		log.Printf("ignoring settings: %v", err)
		settings = nil
	}
	src := *source
	if src == "" {
		src = settings.SourceOr("")
	}
	if src == "" {
		fmt.Fprintln(os.Stderr, "Error: --file is required")
		flag.Usage()
		os.Exit(1)
	}
	if !flagSet("metric") {
		*metric = settings.MetricOr(*metric)
	}
	if !contains(validMetrics, *metric) {
		fatalf("invalid --metric %q; valid options: %s", *metric, strings.Join(validMetrics, ", "))
	}
	if *quiet {
		log.SetOutput(nopWriter{})
	}

	// ── Load pipeline: fetch → parse → discover → aggregate ───────────────
	raw, err := helpers.Load(src)
	if err != nil {
		fatalf("%v", err)
	}
	table, err := helpers.ParseCSV(raw)
	if err != nil {
		fatalf("%v", err)
	}
	ds, err := engine.Build(table.Headers, table.Rows)
	if err != nil {
		fatalf("%v", err)
	}

	// ── Selection ─────────────────────────────────────────────────────────
	sel := engine.DefaultSelection(ds)
	sel.Fuel = keyOrAll(*fuel)
	sel.Body = keyOrAll(*body)
	sel.Make = keyOrAll(*mk)
	sel.Metric = engine.ParseMetric(*metric)
	sel.IncludeEarly = *allYears || settings.EarlyYears()
	if idx, ok := quarterIndex(ds, *from); ok {
		sel = sel.WithFrom(idx)
	} else if *from != "" {
		fatalf("unknown quarter %q", *from)
	}
	if idx, ok := quarterIndex(ds, *to); ok {
		sel = sel.WithTo(idx)
	} else if *to != "" {
		fatalf("unknown quarter %q", *to)
	}

	if *tui {
		if err := dashboard.Run(ds, sel); err != nil {
			fatalf("dashboard: %v", err)
		}
		return
	}

	vm := engine.DeriveView(ds, sel)

	if *chartOut != "" {
		if err := render.WriteChart(*chartOut, vm); err != nil {
			fatalf("chart: %v", err)
		}
		fmt.Printf("wrote %s\n", *chartOut)
		return
	}

	switch *format {
	case "json", "pretty":
		writeJSON(os.Stdout, vm, *format)
	default:
		writeText(os.Stdout, vm)
	}
}

// ── Output ────────────────────────────────────────────────────────────────

func writeText(w *os.File, vm engine.ViewModel) {
	sel := vm.Selection
	window := "-"
	if len(vm.Quarters) > 0 {
		window = fmt.Sprintf("%s – %s", vm.Quarters[0], vm.Quarters[len(vm.Quarters)-1])
	}
	fmt.Fprintf(w, "%s / %s / %s — %s, %s\n\n", sel.Fuel, sel.Body, sel.Make, sel.Metric, window)

	d := vm.Display
	rows := [][2]string{
		{"Latest", d.Latest},
		{"QoQ change", d.QoQ},
		{"SORN share", d.SornShare},
		{"Net change", d.Net},
		{"Market share", d.MarketShare},
		{"EV share", d.EVShare},
		{"3-year change", d.ThreeYear},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "  %-14s %s\n", r[0], r[1])
	}
	fmt.Fprintf(w, "\n%s\n", vm.Insight)
}

func writeJSON(w *os.File, v interface{}, format string) {
	var out []byte
	var err error
	if format == "pretty" {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		fatalf("failed to marshal output: %v", err)
	}
	fmt.Fprintln(w, string(out))
}

// ── Helpers ───────────────────────────────────────────────────────────────

func keyOrAll(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return engine.KeyAll
	}
	return s
}

func quarterIndex(ds *engine.Dataset, label string) (int, bool) {
	if label == "" {
		return 0, false
	}
	for i, q := range ds.Schema.Quarters {
		if q.Label == label {
			return i, true
		}
	}
	return 0, false
}

func contains(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}

func flagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
