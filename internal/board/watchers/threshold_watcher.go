package watchers

import (
	"NotifyHub/internal/core/domain"
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// AlertPolicy decides whether a rate movement is worth alerting on.
// Policies are stateless; swapping one in changes what the watcher
// reacts to without touching how notifications are delivered.
type AlertPolicy func(update domain.RateUpdate) bool

// RelativeMove returns a policy that fires when the move from the
// previous value is at least frac (0.05 means 5%).
func RelativeMove(frac float64) AlertPolicy {
	return func(u domain.RateUpdate) bool {
		if u.Previous == 0 {
			return false
		}
		move := (u.Current - u.Previous) / u.Previous
		if move < 0 {
			move = -move
		}
		return move >= frac
	}
}

// ThresholdWatcher raises an alert (a log line in this MVP) whenever
// its policy says a rate moved too far in one step.
type ThresholdWatcher struct {
	log    zerolog.Logger
	policy AlertPolicy

	mu    sync.Mutex
	fired int
}

// NewThresholdWatcher creates a watcher with the given alert policy.
func NewThresholdWatcher(policy AlertPolicy, baseLogger *zerolog.Logger) *ThresholdWatcher {
	return &ThresholdWatcher{
		log:    baseLogger.With().Str("component", "threshold_watcher").Logger(),
		policy: policy,
	}
}

// Receive implements ports.Subscriber.
func (w *ThresholdWatcher) Receive(ctx context.Context, payload interface{}) error {
	update, ok := payload.(domain.RateUpdate)
	if !ok {
		w.log.Error().Msg("Received unexpected payload type")
		return nil // Nothing to retry
	}

	if !w.policy(update) {
		return nil
	}

	w.mu.Lock()
	w.fired++
	w.mu.Unlock()

	w.log.Warn().
		Str("asset", update.Asset).
		Float64("previous", update.Previous).
		Float64("current", update.Current).
		Str("event_id", update.EventID.String()).
		Msg("Rate moved past alert threshold")
	return nil
}

// Fired returns how many alerts this watcher has raised.
func (w *ThresholdWatcher) Fired() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fired
}
