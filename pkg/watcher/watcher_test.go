package watcher

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/lavigneer/gdscript-lsp/pkg/config"
	"github.com/lavigneer/gdscript-lsp/pkg/host"
	"github.com/lavigneer/gdscript-lsp/pkg/symbols"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLoader struct {
	mu    sync.Mutex
	paths []string
	err   error
}

func (f *fakeLoader) Load(_ context.Context, path string) (*symbols.Symbols, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paths = append(f.paths, path)
	if f.err != nil {
		return nil, f.err
	}
	return symbols.New(path), nil
}

func (f *fakeLoader) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.paths...)
}

type fakeValidator struct {
	mu       sync.Mutex
	seen     []Fingerprint
	err      error
	disposed int
}

func (f *fakeValidator) Validate(_ context.Context, doc *host.Document, _ *symbols.Symbols) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = append(f.seen, Fingerprint{Path: doc.Path, Version: doc.Version})
	return f.err
}

func (f *fakeValidator) Dispose() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disposed++
}

func (f *fakeValidator) calls() []Fingerprint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Fingerprint(nil), f.seen...)
}

func newGate(cfg config.Configuration) (*Gate, *fakeLoader, *fakeValidator) {
	loader := &fakeLoader{}
	validator := &fakeValidator{}
	return NewGate(context.Background(), loader, validator, cfg, nil), loader, validator
}

func gdDoc(path string, version int) *host.Document {
	return &host.Document{URI: "file://" + path, Path: path, Version: version}
}

func TestGateDispatchesOnNewFingerprintOnly(t *testing.T) {
	gate, loader, validator := newGate(config.NewStore(nil))

	for _, d := range []*host.Document{
		gdDoc("a.gd", 1),
		gdDoc("a.gd", 1),
		gdDoc("a.gd", 2),
		gdDoc("b.gd", 1),
	} {
		gate.OnCandidateDocument(d)
	}
	gate.Wait()

	assert.ElementsMatch(t, []Fingerprint{{"a.gd", 1}, {"a.gd", 2}, {"b.gd", 1}}, validator.calls())
	assert.ElementsMatch(t, []string{"a.gd", "a.gd", "b.gd"}, loader.calls())
	assert.Equal(t, Fingerprint{"b.gd", 1}, gate.LastSeen())
}

func TestGateFirstDocumentAlwaysDispatches(t *testing.T) {
	gate, _, validator := newGate(config.NewStore(nil))
	require.Equal(t, Sentinel, gate.LastSeen())

	gate.OnCandidateDocument(gdDoc("a.gd", 0))
	gate.Wait()

	assert.Equal(t, []Fingerprint{{"a.gd", 0}}, validator.calls())
}

func TestGateRepeatedFingerprintDispatchesOnce(t *testing.T) {
	gate, loader, validator := newGate(config.NewStore(nil))
	for range 10 {
		gate.OnCandidateDocument(gdDoc("a.gd", 7))
	}
	gate.Wait()

	assert.Len(t, validator.calls(), 1)
	assert.Len(t, loader.calls(), 1)
}

func TestGateReturningToPreviousFingerprintDispatches(t *testing.T) {
	gate, _, validator := newGate(config.NewStore(nil))
	gate.OnCandidateDocument(gdDoc("a.gd", 1))
	gate.OnCandidateDocument(gdDoc("b.gd", 1))
	gate.OnCandidateDocument(gdDoc("a.gd", 1))
	gate.Wait()

	assert.Len(t, validator.calls(), 3)
}

func TestGateForgetClosedDocument(t *testing.T) {
	gate, _, validator := newGate(config.NewStore(nil))
	gate.OnCandidateDocument(gdDoc("a.gd", 1))

	gate.Forget("b.gd")
	assert.Equal(t, Fingerprint{"a.gd", 1}, gate.LastSeen())

	gate.Forget("a.gd")
	assert.Equal(t, Sentinel, gate.LastSeen())
	gate.OnCandidateDocument(gdDoc("a.gd", 1))
	gate.Wait()

	assert.Len(t, validator.calls(), 2)
}

func TestGateSyntaxCheckingDisabled(t *testing.T) {
	store := config.NewStore(map[string]any{config.EnableSyntaxChecking: false})
	gate, loader, validator := newGate(store)

	gate.OnCandidateDocument(gdDoc("a.gd", 1))
	gate.Wait()

	assert.Equal(t, Fingerprint{"a.gd", 1}, gate.LastSeen())
	assert.Equal(t, []string{"a.gd"}, loader.calls())
	assert.Empty(t, validator.calls())

	store.Update(map[string]any{config.EnableSyntaxChecking: true})
	gate.OnCandidateDocument(gdDoc("a.gd", 2))
	gate.Wait()
	assert.Equal(t, []Fingerprint{{"a.gd", 2}}, validator.calls(), "setting changes apply to the next event")
}

func TestGateNilDocument(t *testing.T) {
	gate, loader, validator := newGate(config.NewStore(nil))

	gate.OnCandidateDocument(nil)
	gate.Wait()

	assert.Equal(t, Sentinel, gate.LastSeen())
	assert.Empty(t, loader.calls())
	assert.Empty(t, validator.calls())
}

func TestGateIgnoresCollaboratorFailures(t *testing.T) {
	loader := &fakeLoader{err: errors.New("unreadable")}
	validator := &fakeValidator{err: errors.New("engine down")}
	gate := NewGate(context.Background(), loader, validator, config.NewStore(nil), nil)

	gate.OnCandidateDocument(gdDoc("a.gd", 1))
	gate.OnCandidateDocument(gdDoc("a.gd", 1))
	gate.Wait()

	assert.Len(t, validator.calls(), 1, "a failed load still validates and still updates the gate")
	assert.Equal(t, Fingerprint{"a.gd", 1}, gate.LastSeen())
}

func TestWindowWatcherRoutesChannels(t *testing.T) {
	state := host.NewState(nil)
	gate, _, validator := newGate(config.NewStore(nil))
	w := NewWindowWatcher(state, gate, validator, nil)

	a1 := &host.Editor{Document: gdDoc("a.gd", 1)}
	state.SetActiveEditor(a1)
	state.ChangeSelection(a1)
	state.ChangeOptions(&host.Editor{Document: gdDoc("a.gd", 2)})
	state.ChangeViewColumn(&host.Editor{Document: gdDoc("c.gd", 1)})
	state.ChangeSelection(&host.Editor{Document: gdDoc("a.gd", 3)})
	state.ChangeSelection(nil)
	state.SetActiveEditor(nil)
	state.SetActiveEditor(&host.Editor{Document: gdDoc("b.gd", 1)})
	gate.Wait()

	assert.ElementsMatch(t, []Fingerprint{{"a.gd", 1}, {"a.gd", 3}, {"b.gd", 1}}, validator.calls())
	w.Dispose()
}

func TestWindowWatcherDispose(t *testing.T) {
	state := host.NewState(nil)
	gate, _, validator := newGate(config.NewStore(nil))
	w := NewWindowWatcher(state, gate, validator, nil)
	for _, ch := range host.Channels {
		require.Equal(t, 1, state.Len(ch))
	}

	w.Dispose()
	w.Dispose()

	for _, ch := range host.Channels {
		assert.Zero(t, state.Len(ch))
	}
	assert.Equal(t, 1, validator.disposed)

	state.SetActiveEditor(&host.Editor{Document: gdDoc("a.gd", 1)})
	gate.Wait()
	assert.Empty(t, validator.calls())
}
