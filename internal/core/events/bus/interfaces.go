package bus

import "time"

// EventBus is a thread-safe, in-process pub/sub channel.
//
// Key characteristics:
// - Type-based fan-out: handlers subscribe by Event.Type() string.
// - Synchronous delivery: Publish calls handler callbacks in the caller
//   goroutine, in per-operation emission order. Ordering across independent
//   subscribers of the same event is not specified.
// - Error aggregation: multiple handler errors are joined and returned.
// - Optional observability: metrics are produced only while observers are
//   registered.
//
// Containers publish their state-change notifications through an EventBus;
// it is the only integration surface toward presentation layers. Handlers
// should be quick or offload heavy work to avoid blocking mutations.
type EventBus interface {
	// Publish delivers the event synchronously to all active subscribers of
	// event.Type(). If one or more handlers return an error, a joined error
	// is returned; delivery still reaches every subscriber.
	Publish(event Event) error
	// PublishBatch publishes events sequentially and aggregates errors.
	PublishBatch(events ...Event) error

	// Subscribe registers a handler for an event type and returns a
	// Subscription handle used to cancel later.
	Subscribe(eventType string, handler EventHandler) (Subscription, error)
	// Unsubscribe cancels the given Subscription. Safe to call with nil.
	Unsubscribe(sub Subscription) error

	// AddObserver registers an observer to receive delivery callbacks.
	AddObserver(obs Observer)
	// RemoveObserver unregisters a previously added observer.
	RemoveObserver(obs Observer)
	// Metrics returns a best-effort snapshot of accumulated counters.
	// Counters advance only while at least one observer is registered.
	Metrics() BusMetrics
}

// Event is an immutable message transported by the EventBus. Type is the
// routing key; Source identifies the publishing container; Data is an opaque
// payload for consumers. Implementations should treat Event values as
// read-only.
type Event interface {
	Type() string
	Source() string
	Timestamp() time.Time
	Data() any
}

// EventHandler is a user callback invoked per delivered event. A returned
// error is aggregated into the Publish result.
type EventHandler func(event Event) error

// Subscription represents a registered handler bound to an event type.
type Subscription interface {
	// ID is a unique identifier for this subscription.
	ID() string
	// EventType returns the event type this subscription listens to.
	EventType() string
	// IsActive reports whether this subscription is still registered.
	IsActive() bool
	// Cancel de-registers the handler from the bus. Multiple calls are safe.
	Cancel() error
}

// Observer is notified about deliveries and errors. Implementations can
// export metrics, tracing, or logs. Observers should return quickly.
type Observer interface {
	OnPublish(eventType string, event Event)
	OnDelivered(eventType string, handlers int, err error, durationMicros int64)
}

// BusMetrics is a minimal counter set, updated only while at least one
// observer is registered.
type BusMetrics struct {
	Published         uint64
	DeliveredHandlers uint64
	Errors            uint64
	SubscribersActive uint64
}
