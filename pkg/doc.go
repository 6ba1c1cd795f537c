// Package pkg provides the core libraries for facadeplan facade layout.
//
// # Overview
//
// Facadeplan turns a building footprint and a short building description
// into panelised elevations. Every wall of the footprint is divided into
// fixed-width panel slots, and floor bands are stacked on those slots from
// the ground band up to the roof. The pkg directory is organized into:
//
//  1. [facade] - Domain logic (height solving, facade division, planning)
//  2. [geom] - Footprint polygons and wall edges
//  3. [render] - Output (SVG elevations, JSON placements, layout trees)
//  4. [pipeline] - Orchestration (validate → plan → render, with caching)
//  5. [config] - TOML building files
//
// # Architecture
//
// The typical data flow through facadeplan:
//
//	building.toml
//	     ↓
//	[config] package (decode, defaults)
//	     ↓
//	[facade] package (solve heights, divide faces, build layout trees)
//	     ↓
//	[render] packages (resolve placements, draw)
//	     ↓
//	SVG/JSON/DOT/PNG/PDF output
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/facadeplan/pkg/facade"
//	    "github.com/matzehuels/facadeplan/pkg/geom"
//	    "github.com/matzehuels/facadeplan/pkg/render/sink"
//	)
//
//	footprint := geom.Polygon{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
//	res, _ := facade.NewPlanner(facade.WithSeed(1)).Plan(footprint, facade.DefaultConfig())
//	svg := sink.RenderSVG(res)
//
// # Main Packages
//
// [facade] - Building types, the floor height solver, the knapsack facade
// divider and the planner that assembles one layout tree per face.
//
// [facade/layout] - The vertical/horizontal container tree and [layout.Walk].
//
// [render/sink] - Placement resolution plus SVG and JSON writers.
//
// [render/tree] - Graphviz diagrams of the layout tree.
//
// [pipeline] - The plan and render pipeline shared by every command. Results
// are cached through [cache] keyed by a hash of the inputs.
//
// [observability] - Hooks for plan, render and cache events.
//
// [errors] - Coded errors and validation helpers.
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/facade/...   # Specific package
//	go test -run Example       # Examples only
//
// [facade]: https://pkg.go.dev/github.com/matzehuels/facadeplan/pkg/facade
// [facade/layout]: https://pkg.go.dev/github.com/matzehuels/facadeplan/pkg/facade/layout
// [layout.Walk]: https://pkg.go.dev/github.com/matzehuels/facadeplan/pkg/facade/layout#Walk
// [geom]: https://pkg.go.dev/github.com/matzehuels/facadeplan/pkg/geom
// [render]: https://pkg.go.dev/github.com/matzehuels/facadeplan/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/facadeplan/pkg/render/sink
// [render/tree]: https://pkg.go.dev/github.com/matzehuels/facadeplan/pkg/render/tree
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/facadeplan/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/facadeplan/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/facadeplan/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/facadeplan/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/facadeplan/pkg/errors
package pkg
