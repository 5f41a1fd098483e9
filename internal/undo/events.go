package undo

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// EventType identifies a lifecycle notification emitted by a Manager.
type EventType int

const (
	// ActionAdded is emitted after Add accepted an action, merged or not.
	ActionAdded EventType = iota

	// BeforeCanceling opens a sequence of ActionCanceled events caused by
	// a redo-branch discard or a trim.
	BeforeCanceling

	// ActionCanceled is emitted for every discarded action with the index
	// it occupied.
	ActionCanceled

	// CancelingFinished closes a BeforeCanceling sequence.
	CancelingFinished

	// BeforeUndo opens an undo run. It carries the action only when the
	// step is asynchronous.
	BeforeUndo

	// ActionUndone is emitted after each synchronous undo step.
	ActionUndone

	// UndoFinished closes an undo run, or reports the completion of an
	// asynchronous step (with the action as payload).
	UndoFinished

	// BeforeRedo opens a redo run. It carries the action only when the
	// step is asynchronous.
	BeforeRedo

	// ActionRedone is emitted after each synchronous redo step.
	ActionRedone

	// RedoFinished closes a redo run, or reports the completion of an
	// asynchronous step (with the action as payload).
	RedoFinished
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case ActionAdded:
		return "actionAdded"
	case BeforeCanceling:
		return "beforeCanceling"
	case ActionCanceled:
		return "actionCanceled"
	case CancelingFinished:
		return "cancelingFinished"
	case BeforeUndo:
		return "beforeUndo"
	case ActionUndone:
		return "actionUndone"
	case UndoFinished:
		return "undoFinished"
	case BeforeRedo:
		return "beforeRedo"
	case ActionRedone:
		return "actionRedone"
	case RedoFinished:
		return "redoFinished"
	default:
		return "unknown"
	}
}

// NoIndex is the Index of events that do not refer to a history position.
const NoIndex = -1

// Event is a notification emitted by a Manager.
type Event struct {
	// ID is a unique identifier for this event instance.
	ID string

	// Type is the kind of notification.
	Type EventType

	// Action is the payload action, nil when the event carries none.
	Action Action

	// Index is the history position of Action, or NoIndex.
	Index int

	// Time is when the event was emitted.
	Time time.Time
}

// Observer receives events from a Manager.
type Observer func(evt Event)

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	types    []EventType
	observer Observer
	notifier *notifier
}

// Unsubscribe removes this subscription. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.unsubscribe(s.id)
		s.notifier = nil
	}
}

// wants reports whether the subscription receives events of type t.
func (s *Subscription) wants(t EventType) bool {
	return len(s.types) == 0 || slices.Contains(s.types, t)
}

// notifier delivers events to subscriptions in the order they subscribed.
type notifier struct {
	subs   []*Subscription
	nextID uint64
}

func (n *notifier) subscribe(observer Observer, types []EventType) *Subscription {
	n.nextID++
	sub := &Subscription{
		id:       n.nextID,
		types:    types,
		observer: observer,
		notifier: n,
	}
	n.subs = append(n.subs, sub)
	return sub
}

func (n *notifier) unsubscribe(id uint64) {
	n.subs = slices.DeleteFunc(n.subs, func(s *Subscription) bool {
		return s.id == id
	})
}

// notify delivers evt to a snapshot of the subscriptions so observers may
// subscribe or unsubscribe while being called.
func (n *notifier) notify(evt Event) {
	if len(n.subs) == 0 {
		return
	}
	for _, sub := range slices.Clone(n.subs) {
		if sub.notifier == nil || !sub.wants(evt.Type) {
			continue
		}
		sub.observer(evt)
	}
}

// Subscribe registers an observer for all events.
func (m *Manager) Subscribe(observer Observer) *Subscription {
	return m.notifier.subscribe(observer, nil)
}

// SubscribeType registers an observer for the listed event types only.
func (m *Manager) SubscribeType(observer Observer, types ...EventType) *Subscription {
	return m.notifier.subscribe(observer, slices.Clone(types))
}

// emit builds and delivers an event.
func (m *Manager) emit(t EventType, action Action, index int) {
	if len(m.notifier.subs) == 0 {
		return
	}
	m.notifier.notify(Event{
		ID:     uuid.NewString(),
		Type:   t,
		Action: action,
		Index:  index,
		Time:   time.Now(),
	})
}
