package observability

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnDecodeStart(ctx, 13)
	p.OnDecodeComplete(ctx, 12, time.Second, nil)
	p.OnEncodeComplete(ctx, 12, time.Second, nil)
	p.OnReconstructStart(ctx, 12)
	p.OnReconstructComplete(ctx, 4, 3, time.Second, nil)
	p.OnRenderStart(ctx, []string{"asc"})
	p.OnRenderComplete(ctx, []string{"asc"}, time.Second, nil)

	d := NoopDatasetHooks{}
	d.OnSampleWritten(ctx, "tracking", 0)
	d.OnSampleRejected(ctx, "tracking", "ENCODING_CONFLICT")

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "schematic")
	c.OnCacheMiss(ctx, "artifact")
	c.OnCacheSet(ctx, "artifact", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/v1/schematic", "id")
	h.OnResponse(ctx, "POST", "/v1/schematic", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Dataset().(NoopDatasetHooks); !ok {
		t.Error("Dataset() should return NoopDatasetHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customDataset := &testDatasetHooks{}
	SetDatasetHooks(customDataset)
	if Dataset() != customDataset {
		t.Error("SetDatasetHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
	if _, ok := Dataset().(NoopDatasetHooks); !ok {
		t.Error("Reset() should restore NoopDatasetHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	SetPipelineHooks(nil)

	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}

	Reset()
}

func TestHooksConcurrentAccess(t *testing.T) {
	t.Cleanup(Reset)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetCacheHooks(&testCacheHooks{})
		}()
		go func() {
			defer wg.Done()
			Cache().OnCacheHit(context.Background(), "schematic")
		}()
	}
	wg.Wait()

	if _, ok := Cache().(*testCacheHooks); !ok {
		t.Errorf("Cache() = %T, want *testCacheHooks", Cache())
	}
}

type testPipelineHooks struct{ NoopPipelineHooks }
type testDatasetHooks struct{ NoopDatasetHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
