package shared

import "context"

// EventHandler consumes domain events, e.g. the low-stock alerter listening
// for StockBelowThreshold.
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	// EventTypes names the events this handler wants. Empty means all.
	EventTypes() []string
}

// EventPublisher emits domain events raised by aggregates after a state
// change has been persisted.
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventSubscriber manages handler registrations.
type EventSubscriber interface {
	// Subscribe registers a handler, for the given types or for the
	// handler's own EventTypes() when none are given.
	Subscribe(handler EventHandler, eventTypes ...string)
	Unsubscribe(handler EventHandler)
}

// EventBus is the publish side and subscribe side together, with lifecycle
// hooks for implementations that run background delivery.
type EventBus interface {
	EventPublisher
	EventSubscriber
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}
