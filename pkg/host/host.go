// Package host models the editor notification surface the language server
// reacts to: which editor is focused, and the four editor-lifecycle channels
// an extension host fires as the user moves around.
package host

import (
	"github.com/a-h/templ/lsp/protocol"
)

type Channel int

const (
	ActiveEditorChanged Channel = iota
	SelectionChanged
	OptionsChanged
	ViewColumnChanged
)

func (c Channel) String() string {
	switch c {
	case ActiveEditorChanged:
		return "active-editor-changed"
	case SelectionChanged:
		return "selection-changed"
	case OptionsChanged:
		return "options-changed"
	case ViewColumnChanged:
		return "view-column-changed"
	}
	return "unknown"
}

// Channels lists every channel in subscription order.
var Channels = []Channel{ActiveEditorChanged, SelectionChanged, OptionsChanged, ViewColumnChanged}

// Document is a snapshot of an open text document. Version is assigned by the
// client and never decreases for a given Path.
type Document struct {
	URI        protocol.DocumentURI
	Path       string
	LanguageID string
	Version    int
	Text       string
}

type EditorOptions struct {
	TabSize      int  `json:"tabSize"`
	InsertSpaces bool `json:"insertSpaces"`
}

type Editor struct {
	Document   *Document
	Selections []protocol.Range
	Options    EditorOptions
	ViewColumn int
}

// Event is delivered on a Channel. Editor is nil when no editor has focus.
type Event struct {
	Channel Channel
	Editor  *Editor
}

// Doc returns the event's document, or nil when there is no editor.
func (e Event) Doc() *Document {
	if e.Editor == nil {
		return nil
	}
	return e.Editor.Document
}

type Handler func(Event)

type Subscription interface {
	Unsubscribe()
}

// Window is the subset of the editor's window API the server depends on.
type Window interface {
	Subscribe(ch Channel, handler Handler) Subscription
	ActiveEditor() *Editor
}
