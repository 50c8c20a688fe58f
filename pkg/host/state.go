package host

import (
	"log/slog"
	"sync"
)

// State tracks the focused editor and fires the matching channel on every
// change. It is the Window handed to the watcher.
type State struct {
	*Bus

	mu     sync.RWMutex
	active *Editor
}

var _ Window = (*State)(nil)

func NewState(logger *slog.Logger) *State {
	return &State{Bus: NewBus(logger)}
}

func (s *State) ActiveEditor() *Editor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// SetActiveEditor focuses e, or clears focus when e is nil. The event fires
// even when e is nil.
func (s *State) SetActiveEditor(e *Editor) {
	s.mu.Lock()
	s.active = e
	s.mu.Unlock()
	s.Publish(Event{Channel: ActiveEditorChanged, Editor: e})
}

func (s *State) ChangeSelection(e *Editor) {
	s.replaceActive(e)
	s.Publish(Event{Channel: SelectionChanged, Editor: e})
}

func (s *State) ChangeOptions(e *Editor) {
	s.replaceActive(e)
	s.Publish(Event{Channel: OptionsChanged, Editor: e})
}

func (s *State) ChangeViewColumn(e *Editor) {
	s.replaceActive(e)
	s.Publish(Event{Channel: ViewColumnChanged, Editor: e})
}

// replaceActive swaps in e when it shows the same document as the focused
// editor, so ActiveEditor reflects the latest revision.
func (s *State) replaceActive(e *Editor) {
	if e == nil || e.Document == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != nil && s.active.Document != nil && s.active.Document.URI == e.Document.URI {
		s.active = e
	}
}
