package lsp

import (
	"context"
	"fmt"

	"github.com/a-h/templ/lsp/protocol"
	"github.com/lavigneer/gdscript-lsp/pkg/host"
	"github.com/lavigneer/gdscript-lsp/pkg/project"
	"github.com/sourcegraph/jsonrpc2"
)

// Editor window notifications. LSP has no equivalent, so the client extension
// forwards them under these methods.
const (
	MethodDidChangeActiveTextEditor     = "gdscript/didChangeActiveTextEditor"
	MethodDidChangeTextEditorSelection  = "gdscript/didChangeTextEditorSelection"
	MethodDidChangeTextEditorOptions    = "gdscript/didChangeTextEditorOptions"
	MethodDidChangeTextEditorViewColumn = "gdscript/didChangeTextEditorViewColumn"
)

// DidChangeActiveTextEditorParams has a nil TextDocument when focus left every
// editor.
type DidChangeActiveTextEditorParams struct {
	TextDocument *protocol.TextDocumentIdentifier `json:"textDocument,omitempty"`
}

type DidChangeTextEditorSelectionParams struct {
	TextDocument protocol.TextDocumentIdentifier `json:"textDocument"`
	Selections   []protocol.Range                `json:"selections"`
}

type DidChangeTextEditorOptionsParams struct {
	TextDocument protocol.TextDocumentIdentifier `json:"textDocument"`
	Options      host.EditorOptions              `json:"options"`
}

type DidChangeTextEditorViewColumnParams struct {
	TextDocument protocol.TextDocumentIdentifier `json:"textDocument"`
	ViewColumn   int                             `json:"viewColumn"`
}

func (h *Handler) handleDidChangeActiveTextEditor(_ context.Context, req *jsonrpc2.Request) error {
	var params DidChangeActiveTextEditorParams
	if err := unmarshalParams(req, &params); err != nil {
		return err
	}
	if params.TextDocument == nil {
		h.window.SetActiveEditor(nil)
		return nil
	}
	doc, ok := h.workspace.Document(params.TextDocument.URI)
	if !ok {
		// Focus moved to something that was never opened with us.
		h.window.SetActiveEditor(nil)
		return nil
	}
	h.window.SetActiveEditor(&host.Editor{Document: doc})
	return nil
}

func (h *Handler) handleDidChangeTextEditorSelection(_ context.Context, req *jsonrpc2.Request) error {
	var params DidChangeTextEditorSelectionParams
	if err := unmarshalParams(req, &params); err != nil {
		return err
	}
	editor, err := h.openEditor(params.TextDocument.URI)
	if err != nil {
		return err
	}
	editor.Selections = params.Selections
	h.window.ChangeSelection(editor)
	return nil
}

func (h *Handler) handleDidChangeTextEditorOptions(_ context.Context, req *jsonrpc2.Request) error {
	var params DidChangeTextEditorOptionsParams
	if err := unmarshalParams(req, &params); err != nil {
		return err
	}
	editor, err := h.openEditor(params.TextDocument.URI)
	if err != nil {
		return err
	}
	editor.Options = params.Options
	h.window.ChangeOptions(editor)
	return nil
}

func (h *Handler) handleDidChangeTextEditorViewColumn(_ context.Context, req *jsonrpc2.Request) error {
	var params DidChangeTextEditorViewColumnParams
	if err := unmarshalParams(req, &params); err != nil {
		return err
	}
	editor, err := h.openEditor(params.TextDocument.URI)
	if err != nil {
		return err
	}
	editor.ViewColumn = params.ViewColumn
	h.window.ChangeViewColumn(editor)
	return nil
}

func (h *Handler) openEditor(docURI protocol.DocumentURI) (*host.Editor, error) {
	doc, ok := h.workspace.Document(docURI)
	if !ok {
		return nil, fmt.Errorf("%w: %s", project.ErrDocumentNotFound, docURI)
	}
	return h.editorFor(doc), nil
}
