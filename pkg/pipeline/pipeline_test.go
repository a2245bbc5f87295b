package pipeline

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/wiresketch/wiresketch/pkg/box"
	"github.com/wiresketch/wiresketch/pkg/cache"
	errs "github.com/wiresketch/wiresketch/pkg/errors"
	"github.com/wiresketch/wiresketch/pkg/observability"
)

const loopASC = `Version 4
SHEET 1 1040 1040
WIRE 128 368 128 128
WIRE 448 128 128 128
WIRE 448 368 448 128
WIRE 448 368 128 368
SYMBOL res 272 112 R0
SYMATTR InstName R0
`

// loopSet is a rectangle of four corners with a resistor on its top edge.
func loopSet() *box.Set {
	const step = DefaultImageSize / DefaultSubdivisions
	return box.NewSet(
		box.New(3, 1.5*step, 1.5*step, step, step),
		box.New(2, 5.5*step, 1.5*step, step, step),
		box.New(0, 1.5*step, 4.5*step, step, step),
		box.New(1, 5.5*step, 4.5*step, step, step),
		box.New(13, 3.5*step, 1.5*step, 2*step, step/2),
	)
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"asc", false},
		{"json", false},
		{"svg", false},
		{"boxes", false},
		{"png", true},
		{"ASC", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"asc", "json"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"asc", "pdf"}); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("Invalid format should fail with INVALID_INPUT, got %v", err)
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() = %v", err)
	}
	if o.ImageWidth != DefaultImageSize || o.ImageHeight != DefaultImageSize {
		t.Errorf("image = %gx%g, want %g square", o.ImageWidth, o.ImageHeight, DefaultImageSize)
	}
	if o.Subdivisions != DefaultSubdivisions {
		t.Errorf("Subdivisions = %d, want %d", o.Subdivisions, DefaultSubdivisions)
	}
	if o.Confidence != DefaultConfidence {
		t.Errorf("Confidence = %g, want %g", o.Confidence, DefaultConfidence)
	}
	if o.IOUThreshold != DefaultIOUThreshold {
		t.Errorf("IOUThreshold = %g, want %g", o.IOUThreshold, DefaultIOUThreshold)
	}
	if o.MergeScan != "legacy" {
		t.Errorf("MergeScan = %q, want legacy", o.MergeScan)
	}
	if len(o.Formats) != 1 || o.Formats[0] != FormatASC {
		t.Errorf("Formats = %v, want [asc]", o.Formats)
	}
	if o.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second call = %v", err)
	}
}

func TestValidateAndSetDefaultsErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errs.Code
	}{
		{"not square", Options{ImageWidth: 640, ImageHeight: 480}, errs.ErrCodeGeometry},
		{"negative subdivisions", Options{Subdivisions: -1}, errs.ErrCodeInvalidInput},
		{"confidence above one", Options{Confidence: 1.5}, errs.ErrCodeInvalidInput},
		{"bad merge scan", Options{MergeScan: "sideways"}, errs.ErrCodeInvalidInput},
		{"bad format", Options{Formats: []string{"pdf"}}, errs.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errs.Is(err, tt.code) {
				t.Errorf("ValidateAndSetDefaults() = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestDeriveRevalidates(t *testing.T) {
	base := Options{MergeScan: "all-pairs"}
	if err := base.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}

	bad := base.Derive()
	bad.MergeScan = "sideways"
	if err := bad.ValidateAndSetDefaults(); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("derived options with a bad scan = %v, want INVALID_INPUT", err)
	}

	legacy := base.Derive()
	legacy.MergeScan = "legacy"
	if err := legacy.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() = %v", err)
	}
	if legacy.scan != box.ScanLegacy {
		t.Errorf("scan = %v, want legacy", legacy.scan)
	}
}

func TestSchematicKeyOptsIgnoresMergeSettingsWhenOff(t *testing.T) {
	a := Options{IOUThreshold: 0.3}
	b := Options{IOUThreshold: 0.6}
	_ = a.ValidateAndSetDefaults()
	_ = b.ValidateAndSetDefaults()
	if a.SchematicKeyOpts() != b.SchematicKeyOpts() {
		t.Error("IOU threshold should not affect the key when merging is off")
	}

	a.Merge, b.Merge = true, true
	if a.SchematicKeyOpts() == b.SchematicKeyOpts() {
		t.Error("IOU threshold should affect the key when merging is on")
	}
}

func TestRunnerReconstruct(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, nil)

	res, err := r.Reconstruct(ctx, loopSet(), Options{Formats: []string{FormatASC, FormatBoxes}})
	if err != nil {
		t.Fatalf("Reconstruct() = %v", err)
	}
	if got := string(res.Artifacts[FormatASC]); got != loopASC {
		t.Errorf("asc =\n%s\nwant\n%s", got, loopASC)
	}
	if lines := strings.Count(string(res.Artifacts[FormatBoxes]), "\n"); lines != 5 {
		t.Errorf("boxes artifact has %d records, want 5", lines)
	}
	if res.Stats.Boxes != 5 || res.Stats.Components != 5 {
		t.Errorf("Stats = %+v, want 5 boxes and components", res.Stats)
	}
	if res.Stats.Wires != 4 || res.Stats.Symbols != 1 {
		t.Errorf("Stats wires=%d symbols=%d, want 4 and 1", res.Stats.Wires, res.Stats.Symbols)
	}
	if res.SchematicHash == "" {
		t.Error("SchematicHash should be set")
	}
	if res.CacheInfo.SchematicHit || res.CacheInfo.RenderHit {
		t.Error("NullCache should never hit")
	}
}

func TestRunnerCaching(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)
	opts := Options{Formats: []string{FormatASC, FormatJSON}}

	first, err := r.Reconstruct(ctx, loopSet(), opts)
	if err != nil {
		t.Fatalf("first Reconstruct() = %v", err)
	}
	if first.CacheInfo.SchematicHit || first.CacheInfo.RenderHit {
		t.Errorf("first run CacheInfo = %+v, want misses", first.CacheInfo)
	}

	second, err := r.Reconstruct(ctx, loopSet(), opts)
	if err != nil {
		t.Fatalf("second Reconstruct() = %v", err)
	}
	if !second.CacheInfo.SchematicHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run CacheInfo = %+v, want hits", second.CacheInfo)
	}
	if string(second.Artifacts[FormatASC]) != string(first.Artifacts[FormatASC]) {
		t.Error("cached asc differs from the rendered one")
	}
	if second.Stats.Wires != first.Stats.Wires {
		t.Errorf("cached graph has %d wires, want %d", second.Stats.Wires, first.Stats.Wires)
	}

	opts.Refresh = true
	third, err := r.Reconstruct(ctx, loopSet(), opts)
	if err != nil {
		t.Fatalf("refresh Reconstruct() = %v", err)
	}
	if third.CacheInfo.SchematicHit || third.CacheInfo.RenderHit {
		t.Error("Refresh should bypass cache reads")
	}
}

func TestRunnerMerge(t *testing.T) {
	tests := []struct {
		name   string
		scan   string
		merged int
		boxes  int
	}{
		{"all pairs", "all-pairs", 1, 1},
		// The legacy bound never pairs the last member, so two boxes stay apart.
		{"legacy keeps a pair", "legacy", 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRunner(nil, nil, nil)
			in := box.NewSet(
				box.New(13, 100, 100, 40, 20),
				box.New(13, 104, 100, 40, 20),
			)
			opts := Options{Merge: true, MergeScan: tt.scan, Formats: []string{FormatBoxes}}
			res, err := r.Reconstruct(context.Background(), in, opts)
			if err != nil {
				t.Fatalf("Reconstruct() = %v", err)
			}
			if res.Stats.Merged != tt.merged {
				t.Errorf("Merged = %d, want %d", res.Stats.Merged, tt.merged)
			}
			if res.Boxes.Len() != tt.boxes {
				t.Errorf("merged set has %d boxes, want %d", res.Boxes.Len(), tt.boxes)
			}
			if in.Len() != 2 {
				t.Errorf("input set was modified: %d boxes", in.Len())
			}
		})
	}
}

func TestRunnerExecute(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)

	g, err := r.Encode(ctx, loopSet(), Options{})
	if err != nil {
		t.Fatalf("Encode() = %v", err)
	}
	if g.Occupied() != 5 {
		t.Fatalf("Occupied() = %d, want 5", g.Occupied())
	}

	res, err := r.Execute(ctx, g, Options{})
	if err != nil {
		t.Fatalf("Execute() = %v", err)
	}
	if res.Stats.Boxes != 5 {
		t.Errorf("decoded %d boxes, want 5", res.Stats.Boxes)
	}
	if res.CacheInfo.DecodeHit {
		t.Error("first decode should miss")
	}

	again, err := r.Execute(ctx, g, Options{})
	if err != nil {
		t.Fatalf("second Execute() = %v", err)
	}
	if !again.CacheInfo.DecodeHit {
		t.Error("second decode should hit")
	}
	if again.Stats.Boxes != 5 {
		t.Errorf("cached decode gave %d boxes, want 5", again.Stats.Boxes)
	}
}

func TestRunnerEncodeConflict(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	s := box.NewSet(
		box.New(13, 100, 100, 10, 10),
		box.New(9, 101, 101, 10, 10),
	)
	_, err := r.Encode(context.Background(), s, Options{})
	if !errs.Is(err, errs.ErrCodeEncodingConflict) {
		t.Errorf("Encode() = %v, want ENCODING_CONFLICT", err)
	}
}

func TestRunnerCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner(nil, nil, nil)
	if _, err := r.Reconstruct(ctx, loopSet(), Options{}); err == nil {
		t.Error("Reconstruct() with canceled context should fail")
	}
}

type countingHooks struct {
	observability.NoopPipelineHooks
	decodes, reconstructs, renders int
	wires                          int
}

func (h *countingHooks) OnDecodeComplete(context.Context, int, time.Duration, error) { h.decodes++ }
func (h *countingHooks) OnReconstructComplete(_ context.Context, wires, _ int, _ time.Duration, _ error) {
	h.reconstructs++
	h.wires = wires
}
func (h *countingHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
	h.renders++
}

func TestRunnerHooks(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetPipelineHooks(hooks)
	t.Cleanup(observability.Reset)

	ctx := context.Background()
	r := NewRunner(nil, nil, nil)
	g, err := r.Encode(ctx, loopSet(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.Execute(ctx, g, Options{}); err != nil {
		t.Fatal(err)
	}

	if hooks.decodes != 1 || hooks.reconstructs != 1 || hooks.renders != 1 {
		t.Errorf("hook calls = %d/%d/%d, want 1/1/1", hooks.decodes, hooks.reconstructs, hooks.renders)
	}
}
