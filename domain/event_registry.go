package domain

import "context"

// Func is the shape every bound callback is invoked with. Returning a non-nil
// error (or panicking) marks the callback as failed for that firing.
type Func func(ctx context.Context, args Args) error

// Listener is a value whose EventHandler method can be bound to an event.
// Listeners are compared by equality, so the dynamic type must be comparable.
type Listener interface {
	EventHandler(ctx context.Context, args Args) error
}

// FailureReporter receives callback failures that were tolerated while firing.
type FailureReporter func(ctx context.Context, event, callback string, err error)

type EventRegistry interface {
	RegisterEvent(name string) bool
	UnregisterEvent(name string) bool
	IsEventRegistered(name string) bool
	ClearEvents() bool

	Link(callback any, event string) (bool, error)
	Unlink(callback any, event string) bool
	IsCallbackInEvent(event string, callback any) bool

	// Fire invokes the callbacks bound to event in the order they were linked.
	Fire(ctx context.Context, event string, args ...any) (bool, error)
}
