// Package observability lets a host process watch hexwalk at work.
//
// Library code reports events through [Pipeline], [Cache], [Archive] and
// [Preview]. Nothing is reported anywhere until a host registers its own
// hooks, typically once in main:
//
//	observability.SetPipelineHooks(metrics.Pipeline())
//
// Embed the Noop types to implement only some of the methods.
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PipelineHooks receives generate and render events.
type PipelineHooks interface {
	OnGenerateStart(ctx context.Context, seed uint64, cells int)
	OnGenerateComplete(ctx context.Context, seed uint64, instructions int, duration time.Duration, err error)
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives cache lookups and writes. kind is "drawing" or
// "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, kind string)
	OnCacheMiss(ctx context.Context, kind string)
	OnCacheSet(ctx context.Context, kind string, size int)
}

// ArchiveHooks receives one event per recorded export.
type ArchiveHooks interface {
	OnRecord(ctx context.Context, backend string, number int, duration time.Duration, err error)
}

// PreviewHooks receives websocket clients joining and leaving the preview
// server.
type PreviewHooks interface {
	OnClient(ctx context.Context, connected bool)
}

type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnGenerateStart(context.Context, uint64, int)                          {}
func (NoopPipelineHooks) OnGenerateComplete(context.Context, uint64, int, time.Duration, error) {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                               {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error)      {}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

type NoopArchiveHooks struct{}

func (NoopArchiveHooks) OnRecord(context.Context, string, int, time.Duration, error) {}

type NoopPreviewHooks struct{}

func (NoopPreviewHooks) OnClient(context.Context, bool) {}

// slot holds the registered implementation of one hook interface.
type slot[T any] struct {
	p    atomic.Pointer[T]
	noop T
}

func (s *slot[T]) get() T {
	if h := s.p.Load(); h != nil {
		return *h
	}
	return s.noop
}

func (s *slot[T]) set(h T) { s.p.Store(&h) }

func (s *slot[T]) reset() { s.p.Store(nil) }

var (
	pipelineHooks = slot[PipelineHooks]{noop: NoopPipelineHooks{}}
	cacheHooks    = slot[CacheHooks]{noop: NoopCacheHooks{}}
	archiveHooks  = slot[ArchiveHooks]{noop: NoopArchiveHooks{}}
	previewHooks  = slot[PreviewHooks]{noop: NoopPreviewHooks{}}
)

// SetPipelineHooks registers h. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		pipelineHooks.set(h)
	}
}

// SetCacheHooks registers h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheHooks.set(h)
	}
}

// SetArchiveHooks registers h. A nil h is ignored.
func SetArchiveHooks(h ArchiveHooks) {
	if h != nil {
		archiveHooks.set(h)
	}
}

// SetPreviewHooks registers h. A nil h is ignored.
func SetPreviewHooks(h PreviewHooks) {
	if h != nil {
		previewHooks.set(h)
	}
}

func Pipeline() PipelineHooks { return pipelineHooks.get() }
func Cache() CacheHooks       { return cacheHooks.get() }
func Archive() ArchiveHooks   { return archiveHooks.get() }
func Preview() PreviewHooks   { return previewHooks.get() }

// Reset unregisters all hooks.
func Reset() {
	pipelineHooks.reset()
	cacheHooks.reset()
	archiveHooks.reset()
	previewHooks.reset()
}
