package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/wiresketch/wiresketch/pkg/box"
	"github.com/wiresketch/wiresketch/pkg/cache"
	"github.com/wiresketch/wiresketch/pkg/grid"
	schemaio "github.com/wiresketch/wiresketch/pkg/io"
	"github.com/wiresketch/wiresketch/pkg/observability"
	"github.com/wiresketch/wiresketch/pkg/schematic"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so the caching logic lives in one place.
//
// The Runner holds no per-run state. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs decode → reconstruct → render with caching.
func (r *Runner) Execute(ctx context.Context, g *grid.Grid, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	decodeStart := time.Now()
	s, decodeHit, err := r.DecodeWithCacheInfo(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	decodeTime := time.Since(decodeStart)

	result, err := r.Reconstruct(ctx, s, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.DecodeTime = decodeTime
	result.CacheInfo.DecodeHit = decodeHit
	return result, nil
}

// DecodeWithCacheInfo decodes a grid with caching and returns cache hit info.
func (r *Runner) DecodeWithCacheInfo(ctx context.Context, g *grid.Grid, opts Options) (*box.Set, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	hooks := observability.Pipeline()
	hooks.OnDecodeStart(ctx, g.Size())
	start := time.Now()

	var raw bytes.Buffer
	if err := g.Write(&raw); err != nil {
		return nil, false, fmt.Errorf("serialize grid for cache key: %w", err)
	}
	cacheKey := r.Keyer.GridKey(cache.Hash(raw.Bytes()), opts.GridKeyOpts())

	if data, ok := r.cached(ctx, cacheKey, "grid", opts.Refresh); ok {
		s, err := box.ParseSet(bytes.NewReader(data), opts.ImageWidth, opts.ImageHeight)
		if err == nil {
			hooks.OnDecodeComplete(ctx, s.Len(), time.Since(start), nil)
			return s, true, nil
		}
		r.Logger.Warn("discarding unreadable cached box set", "key", cacheKey, "err", err)
	}

	s, err := Decode(g, opts)
	hooks.OnDecodeComplete(ctx, setLen(s), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}
	r.store(ctx, cacheKey, "grid", []byte(s.Format(opts.ImageWidth, opts.ImageHeight)), cache.GridTTL)

	r.Logger.Info("decoded grid", "size", g.Size(), "boxes", s.Len())
	return s, false, nil
}

// Decode is a convenience wrapper that calls DecodeWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Decode(ctx context.Context, g *grid.Grid, opts Options) (*box.Set, error) {
	s, _, err := r.DecodeWithCacheInfo(ctx, g, opts)
	return s, err
}

// Encode turns a box set into a grid. Encoding is not cached.
func (r *Runner) Encode(ctx context.Context, s *box.Set, opts Options) (*grid.Grid, error) {
	r.applyLogger(&opts)
	start := time.Now()
	g, err := Encode(s, opts)

	occupied := 0
	if g != nil {
		occupied = g.Occupied()
	}
	observability.Pipeline().OnEncodeComplete(ctx, occupied, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Reconstruct builds the schematic for s and renders the requested formats.
// The schematic and each artifact are cached under a hash of the box
// records together with the options that change them.
func (r *Runner) Reconstruct(ctx context.Context, s *box.Set, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{Artifacts: make(map[string][]byte)}
	result.Stats.Boxes = s.Len()

	hooks := observability.Pipeline()
	hooks.OnReconstructStart(ctx, s.Len())
	start := time.Now()

	work, merged, err := Prepare(s, opts)
	if err != nil {
		hooks.OnReconstructComplete(ctx, 0, 0, time.Since(start), err)
		return nil, fmt.Errorf("merge: %w", err)
	}
	result.Boxes = work
	result.Stats.Merged = merged

	inputHash := cache.Hash([]byte(s.Format(opts.ImageWidth, opts.ImageHeight)))
	schematicKey := r.Keyer.SchematicKey(inputHash, opts.SchematicKeyOpts())

	g, hit, err := r.schematic(ctx, work, schematicKey, opts)
	hooks.OnReconstructComplete(ctx, wireCount(g), symbolCount(g), time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("reconstruct: %w", err)
	}
	result.Graph = g
	result.CacheInfo.SchematicHit = hit
	result.Stats.ReconstructTime = time.Since(start)
	result.Stats.Components = g.Len()
	result.Stats.Wires = len(g.Wires())
	result.Stats.Symbols = g.Symbols()

	var gj bytes.Buffer
	if err := schemaio.WriteJSON(g, &gj); err == nil {
		result.SchematicHash = cache.Hash(gj.Bytes())
	}

	r.Logger.Info("reconstructed schematic",
		"boxes", s.Len(),
		"merged", merged,
		"wires", result.Stats.Wires,
		"symbols", result.Stats.Symbols,
		"duration", result.Stats.ReconstructTime)

	renderStart := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, work, g, schematicKey, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// schematic loads the wired graph from the cache or builds it.
func (r *Runner) schematic(ctx context.Context, work *box.Set, key string, opts Options) (*schematic.Graph, bool, error) {
	if data, ok := r.cached(ctx, key, "schematic", opts.Refresh); ok {
		g, err := schemaio.ReadJSON(bytes.NewReader(data))
		if err == nil {
			return g, true, nil
		}
		r.Logger.Warn("discarding unreadable cached schematic", "key", key, "err", err)
	}

	g, err := Reconstruct(work, opts)
	if err != nil {
		return nil, false, err
	}
	var buf bytes.Buffer
	if err := schemaio.WriteJSON(g, &buf); err == nil {
		r.store(ctx, key, "schematic", buf.Bytes(), cache.SchematicTTL)
	}
	return g, false, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache
// hit info. schematicKey identifies the input and options g was built from.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, s *box.Set, g *schematic.Graph, schematicKey string, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(schematicKey, opts.ArtifactKeyOpts(format))
		data, ok := r.cached(ctx, key, "artifact", opts.Refresh)
		if !ok {
			break
		}
		artifacts[format] = data
	}
	if len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	rendered, err := Render(ctx, s, g, opts)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(schematicKey, opts.ArtifactKeyOpts(format))
		r.store(ctx, key, "artifact", data, cache.ArtifactTTL)
	}
	return rendered, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// cached reads key unless refresh is set. Backend errors count as misses.
func (r *Runner) cached(ctx context.Context, key, keyType string, refresh bool) ([]byte, bool) {
	if refresh {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "type", keyType, "err", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

// store writes key. A failed write is logged and otherwise ignored.
func (r *Runner) store(ctx context.Context, key, keyType string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func setLen(s *box.Set) int {
	if s == nil {
		return 0
	}
	return s.Len()
}

func wireCount(g *schematic.Graph) int {
	if g == nil {
		return 0
	}
	return len(g.Wires())
}

func symbolCount(g *schematic.Graph) int {
	if g == nil {
		return 0
	}
	return g.Symbols()
}
