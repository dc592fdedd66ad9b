// Package vehdash is an in-memory analytics view over the UK quarterly
// vehicle registration dataset.
//
// Usage:
//
//	import (
//	    "github.com/Arminmsc/uk-vehicle-dashboard/engine"
//	    "github.com/Arminmsc/uk-vehicle-dashboard/helpers"
//	    "github.com/Arminmsc/uk-vehicle-dashboard/schema"
//	)
//
//	raw, _ := helpers.Load("registrations.csv")
//	table, _ := helpers.ParseCSV(raw)
//	ds, _ := engine.Build(table.Headers, table.Rows)
//	view := engine.DeriveView(ds, engine.DefaultSelection(ds))
//
// The whole file is parsed and aggregated once into an immutable rollup
// (fuel × body type × make → per-quarter licensed/SORN series, with "ALL"
// buckets on every axis). Filter changes never re-scan raw rows — every
// read path is a map lookup plus a window slice. The engine performs no
// I/O; the only network or disk access is the single dataset load.
package vehdash
