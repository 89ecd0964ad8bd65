package backend

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rungrid/rungrid/internal/log"
	"github.com/rungrid/rungrid/internal/pubsub"
)

// Event names.
const (
	EventIconsUpdated  pubsub.EventType = "icons:updated"
	EventScanProgress  pubsub.EventType = "scan:progress"
	EventWindowShow    pubsub.EventType = "window:show"
	EventHotkeyTrigger pubsub.EventType = "hotkey:trigger"
)

// EventMsg is a bus event delivered to the Bubble Tea loop.
// Payload is a ScanProgress for scan:progress, the action id string for
// hotkey:trigger and nil otherwise.
type EventMsg struct {
	Name    pubsub.EventType
	Payload any
	Sub     *Subscription
}

// Bus multiplexes backend events by name. Emit never blocks.
type Bus struct {
	broker *pubsub.Broker[any]
}

// NewBus creates an event bus.
func NewBus() *Bus {
	return &Bus{broker: pubsub.NewBroker[any]()}
}

// Emit publishes an event to every subscriber of name.
func (b *Bus) Emit(name pubsub.EventType, payload any) {
	log.Debug(log.CatEvents, "Event emitted", "name", string(name), "subscribers", b.broker.SubscriberCount())
	b.broker.Publish(name, payload)
}

// Subscribe listens for the named events, or all events when none are
// given, until ctx is cancelled.
func (b *Bus) Subscribe(ctx context.Context, names ...pubsub.EventType) *Subscription {
	return &Subscription{listener: pubsub.NewContinuousListener(ctx, b.broker, names...)}
}

// Subscribers returns the number of live subscriptions.
func (b *Bus) Subscribers() int {
	return b.broker.SubscriberCount()
}

// Close ends every subscription.
func (b *Bus) Close() {
	b.broker.Close()
}

// Subscription is one listener on the bus.
type Subscription struct {
	listener *pubsub.ContinuousListener[any]
}

// Listen waits for the next event and delivers it as an EventMsg. Call it
// again after handling each event. The command yields nil once the
// subscription ends.
func (s *Subscription) Listen() tea.Cmd {
	next := s.listener.Listen()
	return func() tea.Msg {
		ev, ok := next().(pubsub.Event[any])
		if !ok {
			return nil
		}
		return EventMsg{Name: ev.Type, Payload: ev.Payload, Sub: s}
	}
}
