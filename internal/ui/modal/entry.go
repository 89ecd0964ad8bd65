package modal

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rungrid/rungrid/internal/geom"
)

// Action is a confirm or cancel side effect. It runs off the update loop;
// a non-nil message is delivered to the program once the action finishes.
type Action func(ctx context.Context) (tea.Msg, error)

// Content is an opaque caller-supplied body.
type Content interface {
	View(width int) string
}

// Interactive content sees messages before the modal's buttons do.
// Update reports whether it consumed msg.
type Interactive interface {
	Content
	Update(msg tea.Msg) (handled bool, cmd tea.Cmd)
}

// Bounded content is told where its block sits on screen before it sees a
// mouse event, so it can hit-test in screen coordinates.
type Bounded interface {
	SetBounds(r geom.Rect)
}

// Payload describes a modal to open. Nil pointer options take their defaults:
// Closable, BackdropClose and AutoClose all default to true.
type Payload struct {
	ID             string
	Kind           Kind
	Title          string
	Description    string
	Size           Size
	Tone           Tone
	Closable       *bool
	BackdropClose  *bool
	AutoClose      *bool
	PrimaryLabel   string
	SecondaryLabel string
	Progress       *float64 // 0-100; nil renders an indeterminate indicator
	Path           string
	Details        string
	Content        Content
	OnConfirm      Action
	OnCancel       Action
}

// Entry is an open modal.
type Entry struct {
	ID             string
	Kind           Kind
	Title          string
	Description    string
	Size           Size
	Tone           Tone
	Closable       bool
	BackdropClose  bool
	AutoClose      bool
	PrimaryLabel   string
	SecondaryLabel string
	Progress       *float64
	Path           string
	Details        string
	Content        Content
	OnConfirm      Action
	OnCancel       Action

	// Pending is set while a confirm or cancel action is in flight.
	Pending bool
}

// Patch is a shallow update for an open modal. Nil fields are left untouched.
type Patch struct {
	Kind           *Kind
	Title          *string
	Description    *string
	Size           *Size
	Tone           *Tone
	Closable       *bool
	BackdropClose  *bool
	AutoClose      *bool
	PrimaryLabel   *string
	SecondaryLabel *string
	Progress       *float64
	ClearProgress  bool // back to indeterminate; wins over Progress
	Path           *string
	Details        *string
	Content        Content
	OnConfirm      Action
	OnCancel       Action
}

// ActionDoneMsg reports that a confirm or cancel action finished.
type ActionDoneMsg struct {
	ID     string
	Which  Button
	Follow tea.Msg
	Err    error
}

// ActionFailedMsg is emitted by the Host when an action fails. The modal
// stays open so the user can retry or dismiss it.
type ActionFailedMsg struct {
	ID    string
	Which Button
	Err   error
}

// ClosedMsg is emitted by the Host whenever user input closes a modal.
type ClosedMsg struct {
	ID string
}

// Bool returns a pointer to v, for Payload and Patch options.
func Bool(v bool) *bool { return &v }

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }

func orTrue(v *bool) bool {
	return v == nil || *v
}

func (p Payload) entry(id string) Entry {
	e := Entry{
		ID:             id,
		Kind:           p.Kind,
		Title:          p.Title,
		Description:    p.Description,
		Size:           p.Size,
		Tone:           p.Tone,
		Closable:       orTrue(p.Closable),
		BackdropClose:  orTrue(p.BackdropClose),
		AutoClose:      orTrue(p.AutoClose),
		PrimaryLabel:   p.PrimaryLabel,
		SecondaryLabel: p.SecondaryLabel,
		Path:           p.Path,
		Details:        p.Details,
		Content:        p.Content,
		OnConfirm:      p.OnConfirm,
		OnCancel:       p.OnCancel,
	}
	if p.Progress != nil {
		v := *p.Progress
		e.Progress = &v
	}
	return e
}

func (e *Entry) apply(p Patch) {
	if p.Kind != nil && p.Kind.Valid() {
		e.Kind = *p.Kind
	}
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Size != nil {
		e.Size = *p.Size
	}
	if p.Tone != nil {
		e.Tone = *p.Tone
	}
	if p.Closable != nil {
		e.Closable = *p.Closable
	}
	if p.BackdropClose != nil {
		e.BackdropClose = *p.BackdropClose
	}
	if p.AutoClose != nil {
		e.AutoClose = *p.AutoClose
	}
	if p.PrimaryLabel != nil {
		e.PrimaryLabel = *p.PrimaryLabel
	}
	if p.SecondaryLabel != nil {
		e.SecondaryLabel = *p.SecondaryLabel
	}
	switch {
	case p.ClearProgress:
		e.Progress = nil
	case p.Progress != nil:
		v := *p.Progress
		e.Progress = &v
	}
	if p.Path != nil {
		e.Path = *p.Path
	}
	if p.Details != nil {
		e.Details = *p.Details
	}
	if p.Content != nil {
		e.Content = p.Content
	}
	if p.OnConfirm != nil {
		e.OnConfirm = p.OnConfirm
	}
	if p.OnCancel != nil {
		e.OnCancel = p.OnCancel
	}
}

// action returns the handler bound to a button.
func (e Entry) action(which Button) Action {
	if which == ButtonSecondary {
		return e.OnCancel
	}
	return e.OnConfirm
}
