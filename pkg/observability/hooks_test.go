package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// CMS hooks
	c := NoopCMSHooks{}
	c.OnQueryStart(ctx, "sanity", "projects")
	c.OnQueryComplete(ctx, "sanity", "projects", 12, time.Second, nil)
	c.OnReload(ctx, "file", 12, nil)

	// Cache hooks
	k := NoopCacheHooks{}
	k.OnCacheHit(ctx, "query")
	k.OnCacheMiss(ctx, "query")
	k.OnCacheSet(ctx, "query", 1024)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "sjr8w888.api.sanity.io", "/v2026-01-08/data/query/production")
	h.OnResponse(ctx, "GET", "localhost:8080", "/projects/nike", 200, time.Second)
	h.OnError(ctx, "GET", "localhost:8080", "/", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := CMS().(NoopCMSHooks); !ok {
		t.Error("CMS() should return NoopCMSHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	// Set custom hooks
	customCMS := &testCMSHooks{}
	SetCMSHooks(customCMS)
	if CMS() != customCMS {
		t.Error("SetCMSHooks should set custom hooks")
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
	if _, ok := CMS().(NoopCMSHooks); !ok {
		t.Error("Reset() should restore NoopCMSHooks")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("Reset() should restore NoopHTTPHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testCacheHooks{}
	SetCacheHooks(custom)

	// Setting nil should be ignored
	SetCacheHooks(nil)

	if Cache() != custom {
		t.Error("SetCacheHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testCMSHooks struct{ NoopCMSHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
