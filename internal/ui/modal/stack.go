// Package modal implements the modal stack: an ordered (LIFO) collection of
// blocking dialogs with confirm/cancel actions, progress reporting and
// dismissal policy, plus the Bubble Tea host that renders and drives it.
package modal

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/rungrid/rungrid/internal/log"
)

// BaseZ is the z-index of the bottom modal. Each layer above adds two, so the
// backdrop and card of one modal both sit strictly between its neighbours.
const BaseZ = 200

// ZIndex returns the layer of the modal at stack index i.
func ZIndex(i int) int {
	return BaseZ + i*2
}

// Stack is the modal store. Index 0 is the bottom; the last entry is the top,
// which receives input and Escape. A Stack is owned by the Bubble Tea update
// loop and is not safe for concurrent use.
type Stack struct {
	entries []Entry
	ctx     context.Context
	newID   func() string
}

// StackOption configures a Stack.
type StackOption func(*Stack)

// WithContext sets the context passed to confirm and cancel actions.
func WithContext(ctx context.Context) StackOption {
	return func(s *Stack) { s.ctx = ctx }
}

// WithIDGenerator replaces the uuid generator, mainly for tests.
func WithIDGenerator(fn func() string) StackOption {
	return func(s *Stack) { s.newID = fn }
}

// NewStack creates an empty stack.
func NewStack(opts ...StackOption) *Stack {
	s := &Stack{
		ctx:   context.Background(),
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open pushes a modal and returns its id. Kind and Title are required; an
// invalid payload is logged and "" is returned. Opening an id that is
// already present leaves the stack unchanged and returns that id.
func (s *Stack) Open(p Payload) string {
	if !p.Kind.Valid() || p.Title == "" {
		log.Warn(log.CatModal, "Rejected modal payload", "kind", p.Kind.String(), "title", p.Title)
		return ""
	}

	id := p.ID
	if id == "" {
		id = s.newID()
	}
	if s.indexOf(id) >= 0 {
		log.Debug(log.CatModal, "Modal already open", "id", id)
		return id
	}

	s.entries = append(s.entries, p.entry(id))
	log.Debug(log.CatModal, "Opened modal", "id", id, "kind", p.Kind.String(), "depth", len(s.entries))
	return id
}

// Update merges patch into the modal with the given id without reordering.
// Unknown ids are ignored.
func (s *Stack) Update(id string, patch Patch) {
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	s.entries[i].apply(patch)
}

// Close removes the modal with the given id from any position.
// Reports whether a modal was removed.
func (s *Stack) Close(id string) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.entries = append(s.entries[:i:i], s.entries[i+1:]...)
	log.Debug(log.CatModal, "Closed modal", "id", id, "depth", len(s.entries))
	return true
}

// CloseTop removes the topmost modal and returns its id.
func (s *Stack) CloseTop() (string, bool) {
	if len(s.entries) == 0 {
		return "", false
	}
	id := s.entries[len(s.entries)-1].ID
	s.entries = s.entries[:len(s.entries)-1]
	return id, true
}

// Clear removes every modal.
func (s *Stack) Clear() {
	s.entries = nil
}

// Top returns the topmost modal.
func (s *Stack) Top() (Entry, bool) {
	if len(s.entries) == 0 {
		return Entry{}, false
	}
	return s.entries[len(s.entries)-1], true
}

// Get returns the modal with the given id.
func (s *Stack) Get(id string) (Entry, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return Entry{}, false
	}
	return s.entries[i], true
}

// Entries returns a copy of the stack, bottom first.
func (s *Stack) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of open modals.
func (s *Stack) Len() int {
	return len(s.entries)
}

// Escape applies the Escape key to the topmost modal. handled is false only
// when the stack is empty; a non-closable top swallows the key.
func (s *Stack) Escape() (closed string, handled bool) {
	top, ok := s.Top()
	if !ok {
		return "", false
	}
	if !top.Closable {
		return "", true
	}
	s.Close(top.ID)
	return top.ID, true
}

// Backdrop applies a backdrop click to the modal with the given id. It
// closes only when the modal is both closable and backdrop-closable.
func (s *Stack) Backdrop(id string) bool {
	e, ok := s.Get(id)
	if !ok || !e.Closable || !e.BackdropClose {
		return false
	}
	return s.Close(id)
}

// Confirm runs the primary action of the modal with the given id.
func (s *Stack) Confirm(id string) tea.Cmd {
	return s.press(id, ButtonPrimary)
}

// Cancel runs the secondary action of the modal with the given id.
func (s *Stack) Cancel(id string) tea.Cmd {
	return s.press(id, ButtonSecondary)
}

// press marks the modal pending and returns a command running its action.
// A press on a pending modal is ignored. Without an action the press
// resolves immediately and nil is returned.
func (s *Stack) press(id string, which Button) tea.Cmd {
	i := s.indexOf(id)
	if i < 0 || s.entries[i].Pending {
		return nil
	}

	action := s.entries[i].action(which)
	if action == nil {
		_ = s.Resolve(ActionDoneMsg{ID: id, Which: which})
		return nil
	}

	s.entries[i].Pending = true
	ctx := s.ctx
	return func() tea.Msg {
		follow, err := action(ctx)
		return ActionDoneMsg{ID: id, Which: which, Follow: follow, Err: err}
	}
}

// Resolve records the outcome of an action. On success the modal closes
// unless AutoClose is off. On failure the modal stays open and the error is
// returned for the caller to surface. A modal closed while its action was
// in flight is simply gone; the error, if any, is still returned.
func (s *Stack) Resolve(msg ActionDoneMsg) error {
	i := s.indexOf(msg.ID)
	if i < 0 {
		log.Debug(log.CatModal, "Action finished after modal closed", "id", msg.ID, "button", msg.Which.String())
		return msg.Err
	}

	s.entries[i].Pending = false
	if msg.Err != nil {
		log.ErrorErr(log.CatModal, "Modal action failed", msg.Err, "id", msg.ID, "button", msg.Which.String())
		return msg.Err
	}
	if s.entries[i].AutoClose {
		s.Close(msg.ID)
	}
	return nil
}

func (s *Stack) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.entries {
		if s.entries[i].ID == id {
			return i
		}
	}
	return -1
}
