package project

import (
	"context"
	"testing"

	"github.com/a-h/templ/lsp/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scriptURI = protocol.DocumentURI("file:///game/player.gd")

func open(t *testing.T, w *Workspace) {
	t.Helper()
	d := w.AddDocument(context.Background(), protocol.TextDocumentItem{
		URI:        scriptURI,
		LanguageID: "gdscript",
		Version:    1,
		Text:       "extends Node\n",
	})
	require.Equal(t, "/game/player.gd", d.Path)
}

func TestUpdateDocument(t *testing.T) {
	w := New("/game")
	open(t, w)
	before, _ := w.Document(scriptURI)

	d, err := w.UpdateDocument(context.Background(),
		protocol.VersionedTextDocumentIdentifier{TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: scriptURI}, Version: 2},
		[]protocol.TextDocumentContentChangeEvent{{Text: "extends Node2D\n"}})
	require.NoError(t, err)

	assert.Equal(t, 2, d.Version)
	assert.Equal(t, "extends Node2D\n", d.Text)
	assert.Equal(t, 1, before.Version, "earlier snapshots are not mutated")

	text, ok := w.Text("/game/player.gd")
	assert.True(t, ok)
	assert.Equal(t, "extends Node2D\n", text)
}

func TestUpdateDocumentErrors(t *testing.T) {
	w := New("/game")
	_, err := w.UpdateDocument(context.Background(),
		protocol.VersionedTextDocumentIdentifier{TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: scriptURI}, Version: 2}, nil)
	assert.ErrorIs(t, err, ErrDocumentNotFound)

	open(t, w)
	_, err = w.UpdateDocument(context.Background(),
		protocol.VersionedTextDocumentIdentifier{TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: scriptURI}, Version: 0}, nil)
	assert.ErrorIs(t, err, ErrStaleVersion)
}

func TestRemoveDocument(t *testing.T) {
	w := New("/game")
	open(t, w)

	d, ok := w.RemoveDocument(context.Background(), protocol.TextDocumentIdentifier{URI: scriptURI})
	require.True(t, ok)
	assert.Equal(t, "/game/player.gd", d.Path)

	_, ok = w.Text("/game/player.gd")
	assert.False(t, ok)
	_, ok = w.RemoveDocument(context.Background(), protocol.TextDocumentIdentifier{URI: scriptURI})
	assert.False(t, ok)
}
