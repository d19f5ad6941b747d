package notify

import (
	"NotifyHub/internal/core/ports"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// subscription is one registration record. The registry owns these
// exclusively; the registering caller only ever holds the handle.
type subscription struct {
	handle    ports.Handle
	sub       ports.Subscriber
	cancelled bool
}

// registry implements the ports.Notifier interface
type registry struct {
	log zerolog.Logger

	mu         sync.Mutex      // guards everything below
	subs       []*subscription // registration order; may contain cancelled records during a publish
	nextHandle ports.Handle    // monotonic, never reused, first issued handle is 1
	publishing int             // number of publishes currently iterating (re-entrant ones included)
}

// NewRegistry creates a new, empty subject registry
func NewRegistry(baseLogger *zerolog.Logger) ports.Notifier {
	return &registry{
		log: baseLogger.With().Str("component", "notify_registry").Logger(),
	}
}

// Register appends a new subscription and hands back its token.
// Safe to call from inside a Receive callback: the in-flight publish
// took its snapshot before we got the lock, so the newcomer is only
// seen by later publishes.
func (r *registry) Register(sub ports.Subscriber) ports.Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextHandle++
	h := r.nextHandle
	r.subs = append(r.subs, &subscription{handle: h, sub: sub})

	r.log.Debug().
		Uint64("handle", uint64(h)).
		Int("active", len(r.subs)).
		Msg("Subscriber registered")
	return h
}

// Cancel marks the matching subscription cancelled. The record is
// evicted immediately when no publish is iterating, otherwise it stays
// (marked) until the outermost publish finishes, so in-flight snapshots
// are never invalidated.
func (r *registry) Cancel(h ports.Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, s := range r.subs {
		if s.handle != h {
			continue
		}
		if s.cancelled {
			// Already cancelled by someone else; idempotent no-op.
			return false
		}
		s.cancelled = true

		if r.publishing == 0 {
			r.subs = append(r.subs[:i], r.subs[i+1:]...)
		}
		r.log.Debug().Uint64("handle", uint64(h)).Msg("Subscription cancelled")
		return true
	}

	// Unknown or foreign handle. Not an error, just "not found".
	r.log.Debug().Uint64("handle", uint64(h)).Msg("Cancel found no active subscription")
	return false
}

// Publish fans the payload out to every subscriber that was active when
// the call began, in registration order. The lock is never held across
// a Receive call, so subscribers are free to call Register, Cancel and
// even Publish on this same registry from their callback.
func (r *registry) Publish(ctx context.Context, payload interface{}) error {
	r.mu.Lock()
	// The delivery set is fixed here. Anything registered after this
	// point waits for the next publish.
	snapshot := make([]*subscription, len(r.subs))
	copy(snapshot, r.subs)
	r.publishing++
	depth := r.publishing
	r.mu.Unlock()

	var errs []error
	delivered := 0
	for _, s := range snapshot {
		// Re-check under the lock: an earlier subscriber in this very
		// pass may have cancelled this one.
		r.mu.Lock()
		skip := s.cancelled
		r.mu.Unlock()
		if skip {
			continue
		}

		if err := r.deliver(ctx, s, payload); err != nil {
			r.log.Error().
				Err(err).
				Uint64("handle", uint64(s.handle)).
				Msg("Subscriber failed during publish")
			errs = append(errs, err)
		}
		delivered++
	}

	r.mu.Lock()
	r.publishing--
	if r.publishing == 0 {
		r.evictCancelled()
	}
	r.mu.Unlock()

	r.log.Debug().
		Int("delivered", delivered).
		Int("failed", len(errs)).
		Int("depth", depth).
		Msg("Publish complete")

	return errors.Join(errs...)
}

// deliver invokes a single subscriber with the lock released.
// A panicking subscriber is converted to an error so the remaining
// subscribers in the pass still get the notification.
func (r *registry) deliver(ctx context.Context, s *subscription, payload interface{}) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("subscriber %d panicked: %v", s.handle, rec)
		}
	}()

	if err := s.sub.Receive(ctx, payload); err != nil {
		return fmt.Errorf("subscriber %d: %w", s.handle, err)
	}
	return nil
}

// evictCancelled compacts the subscription list in place, dropping
// records that were cancelled while a publish was iterating.
// Caller must hold r.mu.
func (r *registry) evictCancelled() {
	kept := r.subs[:0]
	for _, s := range r.subs {
		if !s.cancelled {
			kept = append(kept, s)
		}
	}
	// Zero the tail so evicted subscribers can be collected.
	for i := len(kept); i < len(r.subs); i++ {
		r.subs[i] = nil
	}
	r.subs = kept
}
