// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about label passes and design file access.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so the core packages
// never import an observability backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetDesignHooks(&myDesignHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnPassStart(ctx, "serial", "serial-1")
//	// ... build requests ...
//	observability.Pipeline().OnPassComplete(ctx, "serial", "serial-1", requests, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from job execution.
type PipelineHooks interface {
	// Pass events. kind is "array" or "serial".
	OnPassStart(ctx context.Context, kind, name string)
	OnPassComplete(ctx context.Context, kind, name string, requests int, duration time.Duration, err error)

	// Emit events
	OnEmitStart(ctx context.Context, container string, requests int)
	OnEmitComplete(ctx context.Context, container string, instances int, duration time.Duration, err error)
}

// =============================================================================
// Design Hooks
// =============================================================================

// DesignHooks receives events from design file access.
type DesignHooks interface {
	// OnDesignRead records a design file import.
	OnDesignRead(ctx context.Context, path string, cells int, duration time.Duration, err error)

	// OnDesignWrite records a design file export.
	OnDesignWrite(ctx context.Context, path string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnPassStart(context.Context, string, string) {}
func (NoopPipelineHooks) OnPassComplete(context.Context, string, string, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnEmitStart(context.Context, string, int)                          {}
func (NoopPipelineHooks) OnEmitComplete(context.Context, string, int, time.Duration, error) {}

// NoopDesignHooks is a no-op implementation of DesignHooks.
type NoopDesignHooks struct{}

func (NoopDesignHooks) OnDesignRead(context.Context, string, int, time.Duration, error) {}
func (NoopDesignHooks) OnDesignWrite(context.Context, string, time.Duration, error)     {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	designHooks   DesignHooks   = NoopDesignHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any job runs.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetDesignHooks registers custom design file hooks.
func SetDesignHooks(h DesignHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		designHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Design returns the registered design file hooks.
func Design() DesignHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return designHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	designHooks = NoopDesignHooks{}
}
