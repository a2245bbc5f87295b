// Package pipeline provides the reconstruction pipeline for wiresketch.
//
// This package implements the complete decode → reconstruct → render
// pipeline used by the CLI and the HTTP API, so both entry points share the
// same defaults, caching and hooks.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Decode: turn a detector output grid into a box set
//  2. Reconstruct: optionally merge overlapping boxes, place the boxes on
//     the schematic grid and wire the corners
//  3. Render: produce the requested artifacts (asc, json, svg, boxes)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    ImageWidth:  416,
//	    ImageHeight: 416,
//	    Merge:       true,
//	    Formats:     []string{"asc"},
//	}
//	result, err := runner.Execute(ctx, g, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	asc := result.Artifacts["asc"]
//
// Run individual stages:
//
//	set, err := runner.Decode(ctx, g, opts)
//	result, err := runner.Reconstruct(ctx, set, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/wiresketch/wiresketch/pkg/box"
	"github.com/wiresketch/wiresketch/pkg/cache"
	errs "github.com/wiresketch/wiresketch/pkg/errors"
	"github.com/wiresketch/wiresketch/pkg/grid"
	"github.com/wiresketch/wiresketch/pkg/schematic"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultImageSize is the side of the square detector input in pixels.
	DefaultImageSize = 416.0

	// DefaultSubdivisions is the number of grid cells per side.
	DefaultSubdivisions = grid.DefaultSubdivisions

	// DefaultConfidence is the decode threshold.
	DefaultConfidence = grid.DefaultConfidence

	// DefaultIOUThreshold is the overlap above which same-class boxes merge.
	DefaultIOUThreshold = box.DefaultIOUThreshold
)

// Format constants for output formats.
const (
	FormatASC   = "asc"
	FormatJSON  = "json"
	FormatSVG   = "svg"
	FormatBoxes = "boxes"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatASC:   true,
	FormatJSON:  true,
	FormatSVG:   true,
	FormatBoxes: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the reconstruction pipeline.
// This struct supports JSON serialization for API requests.
//
// Zero numeric values select the defaults above. A confidence threshold of
// exactly zero therefore cannot be requested; use a tiny positive value.
type Options struct {
	// Geometry
	ImageWidth   float64 `json:"width"`
	ImageHeight  float64 `json:"height"`
	Subdivisions int     `json:"subdivisions,omitempty"`

	// Decode
	Confidence float64 `json:"confidence,omitempty"`

	// Reconstruct
	Merge        bool    `json:"merge,omitempty"`
	IOUThreshold float64 `json:"iou_threshold,omitempty"`
	MergeScan    string  `json:"merge_scan,omitempty"`

	// Render
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // cell coordinates in the svg preview

	// Refresh skips cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	scan      box.MergeScan
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Boxes is the box set the schematic was built from, after merging.
	Boxes *box.Set

	// Graph is the wired schematic.
	Graph *schematic.Graph

	// SchematicHash is the content hash of the graph JSON.
	SchematicHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Boxes           int // boxes received
	Merged          int // unions added by the merge step
	Components      int
	Wires           int
	Symbols         int
	DecodeTime      time.Duration
	ReconstructTime time.Duration
	RenderTime      time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	DecodeHit    bool
	SchematicHit bool
	RenderHit    bool // every requested artifact came from the cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidInput,
			"invalid format: %q (must be one of: asc, json, svg, boxes)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// Derive returns a copy of o whose next ValidateAndSetDefaults call checks
// every field again. Per-request options built on shared defaults start here.
func (o Options) Derive() Options {
	o.validated = false
	o.scan = 0
	return o
}

// ValidateAndSetDefaults checks the options and fills in defaults.
// Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.ImageWidth == 0 && o.ImageHeight == 0 {
		o.ImageWidth, o.ImageHeight = DefaultImageSize, DefaultImageSize
	}
	if err := errs.ValidateSquare(o.ImageWidth, o.ImageHeight); err != nil {
		return err
	}

	if o.Subdivisions == 0 {
		o.Subdivisions = DefaultSubdivisions
	}
	if err := errs.ValidateSubdivisions(o.Subdivisions); err != nil {
		return err
	}

	if o.Confidence == 0 {
		o.Confidence = DefaultConfidence
	}
	if err := errs.ValidateThreshold("confidence", o.Confidence); err != nil {
		return err
	}

	if o.IOUThreshold == 0 {
		o.IOUThreshold = DefaultIOUThreshold
	}
	if err := errs.ValidateThreshold("iou_threshold", o.IOUThreshold); err != nil {
		return err
	}
	scan, err := box.ParseMergeScan(o.MergeScan)
	if err != nil {
		return err
	}
	o.scan = scan
	o.MergeScan = scan.String()

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatASC}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// GridKeyOpts returns cache key options for decoding.
func (o *Options) GridKeyOpts() cache.GridKeyOpts {
	return cache.GridKeyOpts{
		ImageWidth:  o.ImageWidth,
		ImageHeight: o.ImageHeight,
		Confidence:  o.Confidence,
	}
}

// SchematicKeyOpts returns cache key options for reconstruction.
// Merge settings only take part when merging is enabled.
func (o *Options) SchematicKeyOpts() cache.SchematicKeyOpts {
	k := cache.SchematicKeyOpts{
		ImageWidth:   o.ImageWidth,
		ImageHeight:  o.ImageHeight,
		Subdivisions: o.Subdivisions,
		Merge:        o.Merge,
	}
	if o.Merge {
		k.IOUThreshold = o.IOUThreshold
		k.MergeScan = o.MergeScan
	}
	return k
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	if format == FormatSVG {
		k.Detailed = o.Detailed
	}
	return k
}
