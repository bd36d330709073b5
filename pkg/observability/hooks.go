// Package observability provides hooks for metrics and tracing.
//
// Libraries call hooks to emit events; the binary decides what listens. The
// defaults are no-ops, and [Prometheus] implements every hook interface for
// the HTTP server's /metrics endpoint.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    p := observability.NewPrometheus()
//	    observability.SetPipelineHooks(p)
//	    observability.SetCacheHooks(p)
//	    observability.SetSessionHooks(p)
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnBuildStart(ctx, category, len(values))
//	// ... build the tree ...
//	observability.Pipeline().OnBuildComplete(ctx, category, tree.Len(), time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the render pipeline.
type PipelineHooks interface {
	// Build events
	OnBuildStart(ctx context.Context, category string, valueCount int)
	OnBuildComplete(ctx context.Context, category string, nodeCount int, duration time.Duration, err error)

	// Layout events
	OnLayoutComplete(ctx context.Context, nodeCount, depth int, duration time.Duration)

	// Render events
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
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
// Session Hooks
// =============================================================================

// SessionHooks receives events from interactive stepping sessions.
type SessionHooks interface {
	// OnSessionCreated records a new session.
	OnSessionCreated(ctx context.Context, category string, valueCount int)

	// OnStep records one stepper event by kind ("compare", "place-left", ...).
	OnStep(ctx context.Context, kind string)

	// OnDelete records a delete request by shape, or "not-found".
	OnDelete(ctx context.Context, shape string)

	// OnSessionEvicted records a session removed for inactivity.
	OnSessionEvicted(ctx context.Context)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnBuildStart(context.Context, string, int) {}
func (NoopPipelineHooks) OnBuildComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, int, int, time.Duration)       {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopSessionHooks is a no-op implementation of SessionHooks.
type NoopSessionHooks struct{}

func (NoopSessionHooks) OnSessionCreated(context.Context, string, int) {}
func (NoopSessionHooks) OnStep(context.Context, string)                {}
func (NoopSessionHooks) OnDelete(context.Context, string)              {}
func (NoopSessionHooks) OnSessionEvicted(context.Context)              {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	sessionHooks  SessionHooks  = NoopSessionHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetSessionHooks registers custom session hooks.
func SetSessionHooks(h SessionHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		sessionHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Session returns the registered session hooks.
func Session() SessionHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return sessionHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
	sessionHooks = NoopSessionHooks{}
}
