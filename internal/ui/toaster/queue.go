// Package toaster provides the toast queue: ordered, auto-expiring
// notifications with tone-dependent lifetimes, and the overlay that renders them.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/rungrid/rungrid/internal/log"
)

// Tone determines a toast's colour, icon and default lifetime.
type Tone int

const (
	ToneInfo Tone = iota // zero value, the default
	ToneSuccess
	ToneWarning
	ToneError
)

// String returns the tone name.
func (t Tone) String() string {
	switch t {
	case ToneSuccess:
		return "success"
	case ToneWarning:
		return "warning"
	case ToneError:
		return "error"
	default:
		return "info"
	}
}

// Lifetimes holds the default lifetime per tone.
type Lifetimes struct {
	Success time.Duration
	Info    time.Duration
	Warning time.Duration
	Error   time.Duration
}

// DefaultLifetimes returns the built-in lifetimes.
func DefaultLifetimes() Lifetimes {
	return Lifetimes{
		Success: 2400 * time.Millisecond,
		Info:    2600 * time.Millisecond,
		Warning: 3200 * time.Millisecond,
		Error:   4200 * time.Millisecond,
	}
}

// For returns the lifetime of a tone.
func (l Lifetimes) For(t Tone) time.Duration {
	switch t {
	case ToneSuccess:
		return l.Success
	case ToneWarning:
		return l.Warning
	case ToneError:
		return l.Error
	default:
		return l.Info
	}
}

// Payload describes a toast to show.
type Payload struct {
	ID       string
	Tone     Tone
	Title    string
	Message  string
	Duration *time.Duration // nil uses the tone default; <= 0 never expires
}

// Entry is a visible toast.
type Entry struct {
	ID       string
	Tone     Tone
	Title    string
	Message  string
	Duration *time.Duration

	gen uint64
}

// ExpireMsg is delivered when a toast's timer fires. It only dismisses the
// toast it was scheduled for: a toast dismissed early, or re-notified under
// the same id, ignores it.
type ExpireMsg struct {
	ID  string
	Gen uint64
}

// TickFunc schedules a message after d. tea.Tick is the default.
type TickFunc func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

// Queue is the toast store. Insertion order is display order and no cap is
// enforced. It is owned by the Bubble Tea update loop.
type Queue struct {
	entries   []Entry
	lifetimes Lifetimes
	gen       uint64
	tick      TickFunc
	newID     func() string
}

// Option configures a Queue.
type Option func(*Queue)

// WithLifetimes overrides the per-tone defaults. Zero fields keep the built-in value.
func WithLifetimes(l Lifetimes) Option {
	return func(q *Queue) {
		d := DefaultLifetimes()
		if l.Success != 0 {
			d.Success = l.Success
		}
		if l.Info != 0 {
			d.Info = l.Info
		}
		if l.Warning != 0 {
			d.Warning = l.Warning
		}
		if l.Error != 0 {
			d.Error = l.Error
		}
		q.lifetimes = d
	}
}

// WithTick replaces the timer source, mainly for tests.
func WithTick(fn TickFunc) Option {
	return func(q *Queue) { q.tick = fn }
}

// WithIDGenerator replaces the uuid generator.
func WithIDGenerator(fn func() string) Option {
	return func(q *Queue) { q.newID = fn }
}

// NewQueue creates an empty queue.
func NewQueue(opts ...Option) *Queue {
	q := &Queue{
		lifetimes: DefaultLifetimes(),
		tick:      tea.Tick,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Notify appends a toast and returns its id and the command that expires it.
// The command is nil when the toast never expires. Notifying an id that is
// already visible replaces that toast in place and restarts its timer.
func (q *Queue) Notify(p Payload) (string, tea.Cmd) {
	id := p.ID
	if id == "" {
		id = q.newID()
	}
	q.gen++
	e := Entry{ID: id, Tone: p.Tone, Title: p.Title, Message: p.Message, Duration: p.Duration, gen: q.gen}

	if i := q.indexOf(id); i >= 0 {
		q.entries[i] = e
	} else {
		q.entries = append(q.entries, e)
	}
	log.Debug(log.CatToast, "Toast shown", "id", id, "tone", p.Tone.String(), "title", p.Title)

	lifetime := q.Lifetime(e)
	if lifetime <= 0 {
		return id, nil
	}
	msg := ExpireMsg{ID: id, Gen: e.gen}
	return id, q.tick(lifetime, func(time.Time) tea.Msg { return msg })
}

// Lifetime returns how long a toast stays visible; <= 0 means until dismissed.
func (q *Queue) Lifetime(e Entry) time.Duration {
	if e.Duration != nil {
		return *e.Duration
	}
	return q.lifetimes.For(e.Tone)
}

// Expire handles a timer message and reports whether a toast was removed.
func (q *Queue) Expire(msg ExpireMsg) bool {
	i := q.indexOf(msg.ID)
	if i < 0 || q.entries[i].gen != msg.Gen {
		return false
	}
	q.remove(i)
	return true
}

// Dismiss removes the toast with the given id.
func (q *Queue) Dismiss(id string) bool {
	i := q.indexOf(id)
	if i < 0 {
		return false
	}
	q.remove(i)
	return true
}

// Clear removes every toast.
func (q *Queue) Clear() {
	q.entries = nil
}

// Entries returns a copy of the visible toasts, oldest first.
func (q *Queue) Entries() []Entry {
	out := make([]Entry, len(q.entries))
	copy(out, q.entries)
	return out
}

// Len returns the number of visible toasts.
func (q *Queue) Len() int {
	return len(q.entries)
}

func (q *Queue) remove(i int) {
	id := q.entries[i].ID
	q.entries = append(q.entries[:i:i], q.entries[i+1:]...)
	log.Debug(log.CatToast, "Toast dismissed", "id", id, "remaining", len(q.entries))
}

func (q *Queue) indexOf(id string) int {
	for i := range q.entries {
		if q.entries[i].ID == id {
			return i
		}
	}
	return -1
}
