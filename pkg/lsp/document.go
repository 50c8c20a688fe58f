package lsp

import (
	"context"

	"github.com/a-h/templ/lsp/protocol"
	"github.com/lavigneer/gdscript-lsp/pkg/host"
	"github.com/sourcegraph/jsonrpc2"
)

// Opening a document focuses its editor.
func (h *Handler) handleTextDocumentDidOpen(ctx context.Context, req *jsonrpc2.Request) error {
	var params protocol.DidOpenTextDocumentParams
	if err := unmarshalParams(req, &params); err != nil {
		return err
	}
	doc := h.workspace.AddDocument(ctx, params.TextDocument)
	h.window.SetActiveEditor(&host.Editor{Document: doc})
	return nil
}

// An edit moves the cursor of the editor showing the document, so it is
// reported as a selection change carrying the new revision.
func (h *Handler) handleTextDocumentDidChange(ctx context.Context, req *jsonrpc2.Request) error {
	var params protocol.DidChangeTextDocumentParams
	if err := unmarshalParams(req, &params); err != nil {
		return err
	}
	doc, err := h.workspace.UpdateDocument(ctx, params.TextDocument, params.ContentChanges)
	if err != nil {
		return err
	}
	h.window.ChangeSelection(h.editorFor(doc))
	return nil
}

func (h *Handler) handleTextDocumentDidClose(ctx context.Context, req *jsonrpc2.Request) error {
	var params protocol.DidCloseTextDocumentParams
	if err := unmarshalParams(req, &params); err != nil {
		return err
	}
	doc, ok := h.workspace.RemoveDocument(ctx, params.TextDocument)
	if !ok {
		return nil
	}
	if h.loader != nil {
		h.loader.Invalidate(doc.Path)
	}
	if h.watcher != nil {
		h.watcher.Gate().Forget(doc.Path)
	}
	if active := h.window.ActiveEditor(); active != nil && active.Document != nil && active.Document.URI == doc.URI {
		h.window.SetActiveEditor(nil)
	}
	if h.engine != nil {
		return h.engine.Clear(ctx, doc.URI)
	}
	return nil
}

func (h *Handler) handleTextDocumentDidSave(ctx context.Context, req *jsonrpc2.Request) error {
	var params protocol.DidSaveTextDocumentParams
	if err := unmarshalParams(req, &params); err != nil {
		return err
	}
	if doc, ok := h.workspace.Document(params.TextDocument.URI); ok && h.loader != nil {
		h.loader.Invalidate(doc.Path)
	}
	return nil
}

// editorFor returns an editor showing doc, keeping the selections and options
// of the focused editor when it shows the same document.
func (h *Handler) editorFor(doc *host.Document) *host.Editor {
	editor := &host.Editor{Document: doc}
	if active := h.window.ActiveEditor(); active != nil && active.Document != nil && active.Document.URI == doc.URI {
		next := *active
		next.Document = doc
		editor = &next
	}
	return editor
}
