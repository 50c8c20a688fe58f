// Package watcher revalidates the focused script whenever the editor moves
// to a document revision it has not seen yet.
package watcher

import (
	"context"
	"log/slog"
	"sync"

	"github.com/lavigneer/gdscript-lsp/pkg/config"
	"github.com/lavigneer/gdscript-lsp/pkg/host"
	"github.com/lavigneer/gdscript-lsp/pkg/symbols"
)

// Fingerprint identifies one revision of one document.
type Fingerprint struct {
	Path    string
	Version int
}

// Sentinel is the initial fingerprint. Hosts never assign negative versions,
// so no document matches it.
var Sentinel = Fingerprint{Path: "-1", Version: -1}

type SymbolLoader interface {
	Load(ctx context.Context, path string) (*symbols.Symbols, error)
}

type Validator interface {
	Validate(ctx context.Context, doc *host.Document, syms *symbols.Symbols) error
}

// Gate decides whether a candidate document needs validating. It must be
// driven from a single goroutine; only the work it spawns runs concurrently.
type Gate struct {
	loader    SymbolLoader
	validator Validator
	config    config.Configuration
	logger    *slog.Logger

	ctx      context.Context
	lastSeen Fingerprint
	tasks    sync.WaitGroup
}

func NewGate(ctx context.Context, loader SymbolLoader, validator Validator, cfg config.Configuration, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{
		loader:    loader,
		validator: validator,
		config:    cfg,
		logger:    logger,
		ctx:       context.WithoutCancel(ctx),
		lastSeen:  Sentinel,
	}
}

// OnCandidateDocument starts a symbol load, and a validation when syntax
// checking is enabled, for doc unless its fingerprint equals the last one
// seen. A nil doc means no editor has focus and is ignored.
//
// The spawned work is not awaited and its errors are only logged.
func (g *Gate) OnCandidateDocument(doc *host.Document) {
	if doc == nil {
		return
	}
	current := Fingerprint{Path: doc.Path, Version: doc.Version}
	if current == g.lastSeen {
		g.logger.Debug("Document unchanged, skipping validation", "path", current.Path, "version", current.Version)
		return
	}
	g.lastSeen = current

	validate := g.config.Get(config.EnableSyntaxChecking, config.DefaultEnableSyntaxChecking)
	snapshot := *doc

	g.tasks.Add(1)
	go func() {
		defer g.tasks.Done()
		syms, err := g.loader.Load(g.ctx, snapshot.Path)
		if err != nil {
			g.logger.Debug("Could not load symbols", "path", snapshot.Path, "error", err)
		}
		if !validate {
			return
		}
		if err := g.validator.Validate(g.ctx, &snapshot, syms); err != nil {
			g.logger.Debug("Validation failed", "path", snapshot.Path, "version", snapshot.Version, "error", err)
		}
	}()
}

// Forget resets the gate to Sentinel when the last document seen is path.
// Call it when the editor closes path, so reopening it at the same version is
// validated again.
func (g *Gate) Forget(path string) {
	if g.lastSeen.Path == path {
		g.lastSeen = Sentinel
	}
}

func (g *Gate) LastSeen() Fingerprint {
	return g.lastSeen
}

// Wait blocks until the work spawned so far has finished.
func (g *Gate) Wait() {
	g.tasks.Wait()
}
