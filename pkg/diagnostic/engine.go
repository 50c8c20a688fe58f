// Package diagnostic validates scripts and publishes the results to the
// client.
package diagnostic

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/a-h/templ/lsp/protocol"
	"github.com/lavigneer/gdscript-lsp/pkg/config"
	"github.com/lavigneer/gdscript-lsp/pkg/host"
	"github.com/lavigneer/gdscript-lsp/pkg/lint"
	"github.com/lavigneer/gdscript-lsp/pkg/symbols"
)

var ErrDisposed = errors.New("diagnostic engine disposed")

type Publisher interface {
	Publish(ctx context.Context, params protocol.PublishDiagnosticsParams) error
}

type PublisherFunc func(ctx context.Context, params protocol.PublishDiagnosticsParams) error

func (f PublisherFunc) Publish(ctx context.Context, params protocol.PublishDiagnosticsParams) error {
	return f(ctx, params)
}

type published struct {
	version     int
	seq         uint64
	diagnostics []protocol.Diagnostic
}

// Engine lints documents and publishes one diagnostic set per URI. Results
// for a version older than the one already recorded are dropped.
//
// mu guards the recorded sets and is never held while publishing. publishMu
// orders writes to the client, and a set is only sent while it is still the
// one recorded for its URI.
type Engine struct {
	executor  *lint.Executor
	publisher Publisher
	logger    *slog.Logger

	publishMu sync.Mutex
	mu        sync.Mutex
	published map[protocol.DocumentURI]published
	seq       uint64
	disposed  bool
}

func New(settings config.Lint, publisher Publisher, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		executor:  lint.New(settings),
		publisher: publisher,
		logger:    logger,
		published: make(map[protocol.DocumentURI]published),
	}
}

func (e *Engine) Validate(ctx context.Context, doc *host.Document, syms *symbols.Symbols) error {
	if e.isDisposed() {
		return ErrDisposed
	}
	diagnostics := e.executor.Lint(lint.NewFile(doc.Path, doc.Text, syms))

	e.mu.Lock()
	if e.disposed {
		e.mu.Unlock()
		return ErrDisposed
	}
	if prev, ok := e.published[doc.URI]; ok && prev.version > doc.Version {
		e.mu.Unlock()
		e.logger.Debug("Dropping stale diagnostics", "uri", doc.URI, "version", doc.Version, "published", prev.version)
		return nil
	}
	e.seq++
	seq := e.seq
	e.published[doc.URI] = published{version: doc.Version, seq: seq, diagnostics: diagnostics}
	e.mu.Unlock()

	e.publishMu.Lock()
	defer e.publishMu.Unlock()
	if !e.current(doc.URI, seq) {
		e.logger.Debug("Superseded before publishing", "uri", doc.URI, "version", doc.Version)
		return nil
	}
	e.logger.Debug("Publishing diagnostics", "uri", doc.URI, "version", doc.Version, "count", len(diagnostics))
	return e.publisher.Publish(ctx, protocol.PublishDiagnosticsParams{
		URI: doc.URI,
		//nolint:gosec
		Version:     uint32(doc.Version),
		Diagnostics: diagnostics,
	})
}

// Diagnostics returns the last set recorded for uri.
func (e *Engine) Diagnostics(uri protocol.DocumentURI) ([]protocol.Diagnostic, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, ok := e.published[uri]
	return p.diagnostics, ok
}

// Clear withdraws the diagnostics of uri, e.g. once its document is closed.
func (e *Engine) Clear(ctx context.Context, uri protocol.DocumentURI) error {
	e.mu.Lock()
	if _, ok := e.published[uri]; !ok || e.disposed {
		e.mu.Unlock()
		return nil
	}
	delete(e.published, uri)
	e.mu.Unlock()

	e.publishMu.Lock()
	defer e.publishMu.Unlock()
	return e.publisher.Publish(ctx, protocol.PublishDiagnosticsParams{URI: uri, Diagnostics: []protocol.Diagnostic{}})
}

// Dispose withdraws every published set. Later Validate calls fail with
// ErrDisposed.
func (e *Engine) Dispose() {
	e.mu.Lock()
	if e.disposed {
		e.mu.Unlock()
		return
	}
	e.disposed = true
	uris := slices.Sorted(maps.Keys(e.published))
	clear(e.published)
	e.mu.Unlock()

	e.publishMu.Lock()
	defer e.publishMu.Unlock()
	var errs error
	for _, uri := range uris {
		errs = errors.Join(errs, e.publisher.Publish(context.Background(), protocol.PublishDiagnosticsParams{
			URI:         uri,
			Diagnostics: []protocol.Diagnostic{},
		}))
	}
	if errs != nil {
		e.logger.Warn("Could not clear diagnostics", "error", errs)
	}
}

// current reports whether seq is still the set recorded for uri.
func (e *Engine) current(uri protocol.DocumentURI, seq uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, ok := e.published[uri]
	return ok && !e.disposed && p.seq == seq
}

func (e *Engine) isDisposed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.disposed
}
