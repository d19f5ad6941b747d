package ports

import "context"

// Handle identifies a single registration with a Notifier.
// It is an opaque token: callers only ever pass it back to Cancel.
// Handles are unique for the lifetime of a Notifier and are never
// reused, so a stale handle can never accidentally match a newer
// subscription. The zero value is never issued.
type Handle uint64

// Subscriber is the contract any interested party implements to be
// told about a change. The payload is opaque to the notification
// core; subscribers type-assert it themselves.
//
// Receive is always called synchronously on the goroutine that called
// Publish. A subscriber must not assume any particular goroutine and
// must provide its own synchronization for non-idempotent work.
type Subscriber interface {
	Receive(ctx context.Context, payload interface{}) error
}

// SubscriberFunc lets a plain function act as a Subscriber.
type SubscriberFunc func(ctx context.Context, payload interface{}) error

// Receive implements Subscriber.
func (f SubscriberFunc) Receive(ctx context.Context, payload interface{}) error {
	return f(ctx, payload)
}

// Notifier is the interface for our in-process change-notification core.
// These three operations are the only surface other components may
// depend on.
type Notifier interface {
	// Register adds a subscriber and returns the handle that refers
	// to this registration. Registration always succeeds, and is safe
	// to call from inside a Receive callback: the new subscriber is
	// only visible to publishes that start afterwards.
	Register(sub Subscriber) Handle

	// Cancel removes the registration identified by the handle.
	// It reports whether an active registration was found. Cancelling
	// an unknown or already-cancelled handle is a no-op, not an error,
	// so concurrent cancellers and self-cancellation mid-notification
	// are both fine.
	Cancel(h Handle) bool

	// Publish delivers the payload to every subscriber that was
	// registered (and not cancelled) when the call began, in
	// registration order, exactly once each. Subscriber errors and
	// panics do not stop delivery to the rest; Publish returns them
	// joined together afterwards.
	Publish(ctx context.Context, payload interface{}) error
}
