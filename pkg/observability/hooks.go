// Package observability lets a host process watch umlgraph at work.
//
// Three event streams exist: pipeline stages (build, assemble, render),
// artifact cache lookups and writes, and requests to a PlantUML server.
// Each stream is an interface with a no-op default. A host that wants
// metrics or traces installs its own implementation once at startup;
// nothing in pkg imports a metrics library.
//
// # Usage
//
//	func main() {
//	    observability.SetCacheHooks(hitCounter{})
//	    cli.New(os.Stderr, cli.LogInfo).RootCommand().Execute()
//	}
//
// Emitters look the hooks up per event:
//
//	observability.Pipeline().OnBuildStart(ctx, source)
//	observability.Pipeline().OnBuildComplete(ctx, source, classCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the diagram pipeline.
//
// source is "description" for a decoded relationship description and "scan"
// for introspected source code. dim is the effective dimensionality.
type PipelineHooks interface {
	// Build events: normalize, discover, classify
	OnBuildStart(ctx context.Context, source string)
	OnBuildComplete(ctx context.Context, source string, classCount int, duration time.Duration, err error)

	// Assemble events
	OnAssembleStart(ctx context.Context, dim string, classCount int)
	OnAssembleComplete(ctx context.Context, dim string, duration time.Duration, err error)

	// Render events. renderer is "graphviz" or a PlantUML renderer name.
	OnRenderStart(ctx context.Context, renderer string, formats []string)
	OnRenderComplete(ctx context.Context, renderer string, formats []string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives artifact cache events from pipeline.Runner. keyType
// is cache.KindDiagram for Graphviz artifacts and cache.KindPlantUML for
// PlantUML renders. Lookups skipped by --refresh report nothing.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	// OnCacheMiss also fires when the cache backend returns an error.
	OnCacheMiss(ctx context.Context, keyType string)
	// OnCacheSet fires after a successful write of size bytes.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives the PlantUML server adapter's requests. path is the
// request path without the encoded diagram text.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	// OnResponse fires for every status, including non-2xx replies that
	// the adapter turns into collaborator errors.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)
	// OnError fires when no response arrived at all.
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks ignores every event.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnBuildStart(context.Context, string)                                   {}
func (NoopPipelineHooks) OnBuildComplete(context.Context, string, int, time.Duration, error)       {}
func (NoopPipelineHooks) OnAssembleStart(context.Context, string, int)                             {}
func (NoopPipelineHooks) OnAssembleComplete(context.Context, string, time.Duration, error)         {}
func (NoopPipelineHooks) OnRenderStart(context.Context, string, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, []string, time.Duration, error) {}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks ignores every event.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks installs h. A nil h keeps the current hooks.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks installs h. A nil h keeps the current hooks.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks installs h. A nil h keeps the current hooks.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Pipeline returns the installed pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the installed cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the installed PlantUML server hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset reinstalls the no-op hooks. Tests that install hooks defer it.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
