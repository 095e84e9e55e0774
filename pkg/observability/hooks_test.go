package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Collect hooks
	co := NoopCollectHooks{}
	co.OnListComplete(ctx, 1200, time.Second, nil)
	co.OnStationStart(ctx, 46042)
	co.OnStationComplete(ctx, 46042, time.Second, nil)
	co.OnSyncComplete(ctx, 1150, 50, time.Minute)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "page")
	c.OnCacheMiss(ctx, "page")
	c.OnCacheSet(ctx, "page", 1024)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "www.ndbc.noaa.gov", "/station_page.php")
	h.OnResponse(ctx, "GET", "www.ndbc.noaa.gov", "/station_page.php", 200, time.Second)
	h.OnError(ctx, "GET", "www.ndbc.noaa.gov", "/station_page.php", nil)
}

type testCollectHooks struct{ NoopCollectHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	// Verify defaults are noop
	if _, ok := Collect().(NoopCollectHooks); !ok {
		t.Error("Collect() should return NoopCollectHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	// Set custom hooks
	customCollect := &testCollectHooks{}
	SetCollectHooks(customCollect)
	if Collect() != customCollect {
		t.Error("SetCollectHooks should set custom hooks")
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

	// Reset and verify
	Reset()
	if _, ok := Collect().(NoopCollectHooks); !ok {
		t.Error("Reset() should restore NoopCollectHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testCollectHooks{}
	SetCollectHooks(custom)
	SetCollectHooks(nil)
	if Collect() != custom {
		t.Error("SetCollectHooks(nil) should keep existing hooks")
	}

	SetCacheHooks(nil)
	SetHTTPHooks(nil)
	Reset()
}
