package watcher

import (
	"log/slog"

	"github.com/lavigneer/gdscript-lsp/pkg/host"
)

// WindowWatcher feeds editor focus and selection changes through a Gate.
type WindowWatcher struct {
	gate       *Gate
	logger     *slog.Logger
	disposable host.Disposable
}

// NewWindowWatcher subscribes to every window channel. The diagnostics handle
// is released together with the subscriptions on Dispose.
func NewWindowWatcher(window host.Window, gate *Gate, diagnostics host.Disposable, logger *slog.Logger) *WindowWatcher {
	if logger == nil {
		logger = slog.Default()
	}
	w := &WindowWatcher{gate: gate, logger: logger}
	subscriptions := []host.Disposable{
		host.FromSubscription(window.Subscribe(host.SelectionChanged, w.onDidChangeTextEditorSelection)),
		host.FromSubscription(window.Subscribe(host.ActiveEditorChanged, w.onDidChangeActiveTextEditor)),
		host.FromSubscription(window.Subscribe(host.OptionsChanged, w.onDidChangeTextEditorOptions)),
		host.FromSubscription(window.Subscribe(host.ViewColumnChanged, w.onDidChangeTextEditorViewColumn)),
	}
	w.disposable = host.From(append(subscriptions, diagnostics)...)
	return w
}

func (w *WindowWatcher) Gate() *Gate {
	return w.gate
}

// Dispose releases the subscriptions and the diagnostics handle. Calls after
// the first do nothing.
func (w *WindowWatcher) Dispose() {
	w.disposable.Dispose()
}

// The event also fires when focus leaves every editor; Doc is nil then.
func (w *WindowWatcher) onDidChangeActiveTextEditor(e host.Event) {
	w.logger.Debug("Active editor changed", "document", docPath(e))
	w.gate.OnCandidateDocument(e.Doc())
}

// Some clients report a switch or reload only through a selection change, so
// the same check runs here.
func (w *WindowWatcher) onDidChangeTextEditorSelection(e host.Event) {
	w.gate.OnCandidateDocument(e.Doc())
}

func (w *WindowWatcher) onDidChangeTextEditorOptions(e host.Event) {
	w.logger.Debug("Editor options changed", "document", docPath(e))
}

func (w *WindowWatcher) onDidChangeTextEditorViewColumn(e host.Event) {
	w.logger.Debug("Editor view column changed", "document", docPath(e))
}

func docPath(e host.Event) string {
	if d := e.Doc(); d != nil {
		return d.Path
	}
	return ""
}
