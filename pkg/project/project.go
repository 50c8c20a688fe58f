package project

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/a-h/templ/lsp/protocol"
	"github.com/a-h/templ/lsp/uri"
	"github.com/lavigneer/gdscript-lsp/pkg/host"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrStaleVersion     = errors.New("document version is older than the stored one")
)

// Workspace holds the documents the client has open.
type Workspace struct {
	rootPath string

	mu            sync.RWMutex
	textDocuments map[protocol.DocumentURI]*host.Document
	byPath        map[string]protocol.DocumentURI
}

func New(rootPath string) *Workspace {
	return &Workspace{
		rootPath:      rootPath,
		textDocuments: make(map[protocol.DocumentURI]*host.Document),
		byPath:        make(map[string]protocol.DocumentURI),
	}
}

func (w *Workspace) Root() string {
	return w.rootPath
}

// Filename converts a document URI to a file path.
func Filename(docURI protocol.DocumentURI) string {
	return uri.New(string(docURI)).Filename()
}

func (w *Workspace) AddDocument(_ context.Context, item protocol.TextDocumentItem) *host.Document {
	d := &host.Document{
		URI:        item.URI,
		Path:       Filename(item.URI),
		LanguageID: string(item.LanguageID),
		Version:    int(item.Version),
		Text:       item.Text,
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.textDocuments[item.URI] = d
	w.byPath[d.Path] = item.URI
	return d
}

func (w *Workspace) RemoveDocument(_ context.Context, docID protocol.TextDocumentIdentifier) (*host.Document, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	d, ok := w.textDocuments[docID.URI]
	if !ok {
		return nil, false
	}
	delete(w.textDocuments, docID.URI)
	delete(w.byPath, d.Path)
	return d, true
}

// UpdateDocument replaces the text of an open document with the full content
// change and returns the new revision. Stored documents are never mutated, so
// earlier snapshots stay valid.
func (w *Workspace) UpdateDocument(_ context.Context, docID protocol.VersionedTextDocumentIdentifier, changes []protocol.TextDocumentContentChangeEvent) (*host.Document, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	doc, ok := w.textDocuments[docID.URI]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, docID.URI)
	}
	version := int(docID.Version)
	if version < doc.Version {
		return nil, fmt.Errorf("%w: %s got %d, have %d", ErrStaleVersion, docID.URI, version, doc.Version)
	}
	next := *doc
	next.Version = version
	if len(changes) > 0 {
		next.Text = changes[len(changes)-1].Text
	}
	w.textDocuments[docID.URI] = &next
	return &next, nil
}

func (w *Workspace) Document(docURI protocol.DocumentURI) (*host.Document, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	d, ok := w.textDocuments[docURI]
	return d, ok
}

// Text returns the unsaved contents of the document open at path.
func (w *Workspace) Text(path string) (string, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	docURI, ok := w.byPath[path]
	if !ok {
		return "", false
	}
	return w.textDocuments[docURI].Text, true
}
