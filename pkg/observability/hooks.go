// Package observability lets a host program watch wiresketch at work.
//
// Four hook sets exist: pipeline stages (decode, encode, reconstruct,
// render), dataset samples, cache lookups and HTTP requests. Each starts as a
// no-op; a program that exports metrics installs its own at startup:
//
//	observability.SetPipelineHooks(promPipeline{})
//	observability.SetCacheHooks(promCache{})
//
// Packages emit events through the getters:
//
//	observability.Pipeline().OnDecodeStart(ctx, gridSize)
//	// ... decode ...
//	observability.Pipeline().OnDecodeComplete(ctx, boxCount, duration, err)
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the reconstruction pipeline.
type PipelineHooks interface {
	// Grid codec events
	OnDecodeStart(ctx context.Context, gridSize int)
	OnDecodeComplete(ctx context.Context, boxCount int, duration time.Duration, err error)
	OnEncodeComplete(ctx context.Context, occupied int, duration time.Duration, err error)

	// Reconstruction events
	OnReconstructStart(ctx context.Context, boxCount int)
	OnReconstructComplete(ctx context.Context, wireCount, symbolCount int, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// Dataset Hooks
// =============================================================================

// DatasetHooks receives events from dataset generation.
type DatasetHooks interface {
	// OnSampleWritten records a sample written to disk.
	OnSampleWritten(ctx context.Context, kind string, index int)

	// OnSampleRejected records a sample discarded before writing, with the
	// error code or reason.
	OnSampleRejected(ctx context.Context, kind string, reason string)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP API server.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, path, requestID string)

	// OnResponse records the response sent for a request.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnDecodeStart(context.Context, int)                                  {}
func (NoopPipelineHooks) OnDecodeComplete(context.Context, int, time.Duration, error)         {}
func (NoopPipelineHooks) OnEncodeComplete(context.Context, int, time.Duration, error)         {}
func (NoopPipelineHooks) OnReconstructStart(context.Context, int)                             {}
func (NoopPipelineHooks) OnReconstructComplete(context.Context, int, int, time.Duration, error) {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                             {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error)    {}

// NoopDatasetHooks is a no-op implementation of DatasetHooks.
type NoopDatasetHooks struct{}

func (NoopDatasetHooks) OnSampleWritten(context.Context, string, int)     {}
func (NoopDatasetHooks) OnSampleRejected(context.Context, string, string) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)               {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Registry
// =============================================================================

// registry holds the hooks of one kind. Reads never block; a Set swaps the
// whole value.
type registry[T any] struct {
	cur  atomic.Pointer[T]
	noop T
}

func newRegistry[T any](noop T) *registry[T] {
	r := &registry[T]{noop: noop}
	r.reset()
	return r
}

func (r *registry[T]) load() T   { return *r.cur.Load() }
func (r *registry[T]) store(h T) { r.cur.Store(&h) }
func (r *registry[T]) reset()    { r.store(r.noop) }

var (
	pipelineHooks = newRegistry[PipelineHooks](NoopPipelineHooks{})
	datasetHooks  = newRegistry[DatasetHooks](NoopDatasetHooks{})
	cacheHooks    = newRegistry[CacheHooks](NoopCacheHooks{})
	httpHooks     = newRegistry[HTTPHooks](NoopHTTPHooks{})
)

// SetPipelineHooks registers pipeline hooks. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		pipelineHooks.store(h)
	}
}

// SetDatasetHooks registers dataset hooks. A nil h is ignored.
func SetDatasetHooks(h DatasetHooks) {
	if h != nil {
		datasetHooks.store(h)
	}
}

// SetCacheHooks registers cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheHooks.store(h)
	}
}

// SetHTTPHooks registers HTTP hooks. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		httpHooks.store(h)
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks { return pipelineHooks.load() }

// Dataset returns the registered dataset hooks.
func Dataset() DatasetHooks { return datasetHooks.load() }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return cacheHooks.load() }

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks { return httpHooks.load() }

// Reset restores every registry to its no-op hooks. Tests call it in
// t.Cleanup after installing recorders.
func Reset() {
	pipelineHooks.reset()
	datasetHooks.reset()
	cacheHooks.reset()
	httpHooks.reset()
}
