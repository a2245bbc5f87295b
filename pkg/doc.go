// Package pkg provides the core libraries for wiresketch, which turns photos
// of hand-drawn circuit diagrams into LTspice schematics.
//
// # Overview
//
// A detection network looks at a square photo through a coarse grid and
// predicts, per cell, whether a symbol is centered there, how confident it
// is, where the center lies inside the cell, how big the symbol is and which
// of the known symbol types it belongs to. The packages below carry that
// prediction through to a netlist-style drawing:
//
//	grid of predictions (or a label file)
//	         ↓
//	    [grid] package (decode cells into pixel boxes)
//	         ↓
//	    [box] package (merge overlapping detections)
//	         ↓
//	    [schematic] package (components, corners and wires)
//	         ↓
//	    .asc / JSON / SVG output
//
// # Quick Start
//
// Rebuild a schematic from a YOLO label file:
//
//	import (
//	    "os"
//
//	    "github.com/wiresketch/wiresketch/pkg/box"
//	    "github.com/wiresketch/wiresketch/pkg/schematic"
//	)
//
//	s, _ := box.ReadFile("drawing.txt", 416, 416)
//	s.MergeOverlapping(box.DefaultIOUThreshold, box.ScanLegacy)
//	g, _ := schematic.FromBoxes(s, 416, 416, 13)
//	g.BuildWiring()
//	_ = g.WriteASC(os.Stdout, 13)
//
// The [pipeline] package runs the same steps with validation, caching and
// hooks, and is what the CLI and the HTTP API call into.
//
// # Main Packages
//
// ## Domain
//
// [symbol] - The symbol taxonomy: classes, the types they collapse into and
// how each class maps under rotation and mirroring.
//
// [box] - Labelled boxes in pixel space, IOU, union, the overlap merge and
// the affine transforms used during augmentation.
//
// [grid] - The S×S×(5+types) tensor the detection network reads and writes,
// plus the codec between box sets and grids.
//
// [schematic] - Components placed on the grid, the wiring pass that joins
// them through corners, and the LTspice writer.
//
// ## Training Data
//
// [augment] - An image together with its boxes, transformed in lockstep.
//
// [dataset] - Generators for augmented copies, tracking grids and
// identification crops.
//
// ## Infrastructure
//
// [pipeline] - decode → reconstruct → render, shared by every entry point.
//
// [cache] - File, Redis and no-op caches with content-addressed keys.
//
// [io] - JSON import and export of schematic graphs.
//
// [observability] - Hook registries for pipeline, dataset, cache and HTTP
// events.
//
// [errors] - Coded errors shared across packages.
//
// [buildinfo] - Version information injected at link time.
//
// # Testing
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/schematic/...  # Specific package
//	go test -run Example ./...   # Examples only
//
// [symbol]: https://pkg.go.dev/github.com/wiresketch/wiresketch/pkg/symbol
// [box]: https://pkg.go.dev/github.com/wiresketch/wiresketch/pkg/box
// [grid]: https://pkg.go.dev/github.com/wiresketch/wiresketch/pkg/grid
// [schematic]: https://pkg.go.dev/github.com/wiresketch/wiresketch/pkg/schematic
// [augment]: https://pkg.go.dev/github.com/wiresketch/wiresketch/pkg/augment
// [dataset]: https://pkg.go.dev/github.com/wiresketch/wiresketch/pkg/dataset
// [pipeline]: https://pkg.go.dev/github.com/wiresketch/wiresketch/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/wiresketch/wiresketch/pkg/cache
// [io]: https://pkg.go.dev/github.com/wiresketch/wiresketch/pkg/io
// [observability]: https://pkg.go.dev/github.com/wiresketch/wiresketch/pkg/observability
// [errors]: https://pkg.go.dev/github.com/wiresketch/wiresketch/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/wiresketch/wiresketch/pkg/buildinfo
package pkg
