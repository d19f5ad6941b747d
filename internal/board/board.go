package board

import (
	"NotifyHub/internal/core/domain"
	"NotifyHub/internal/core/ports"
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

var (
	ErrEmptyAsset  = errors.New("board: asset code must not be empty")
	ErrInvalidRate = errors.New("board: rate must be positive")
)

// RateBoard owns the current exchange rates and tells everyone who is
// watching whenever a rate changes. It holds exactly one notifier and
// publishes a domain.RateUpdate after each successful mutation.
type RateBoard struct {
	log      zerolog.Logger
	notifier ports.Notifier

	mu    sync.RWMutex
	rates map[string]float64
}

// NewRateBoard creates a rate board that announces changes through
// the given notifier.
func NewRateBoard(notifier ports.Notifier, baseLogger *zerolog.Logger) *RateBoard {
	return &RateBoard{
		log:      baseLogger.With().Str("component", "rate_board").Logger(),
		notifier: notifier,
		rates:    make(map[string]float64),
	}
}

// SetRate stores a new quote for the asset and publishes the change.
// The board's own lock is released before publishing, so watchers may
// read rates back (or adjust their subscriptions) from their callback.
func (b *RateBoard) SetRate(ctx context.Context, asset string, value float64) error {
	if asset == "" {
		return ErrEmptyAsset
	}
	if value <= 0 {
		return ErrInvalidRate
	}

	b.mu.Lock()
	prev, known := b.rates[asset]
	if !known {
		// The first quote for an asset is not a movement.
		prev = value
	}
	b.rates[asset] = value
	b.mu.Unlock()

	update := domain.NewRateUpdate(asset, prev, value)
	b.log.Info().
		Str("asset", asset).
		Float64("previous", update.Previous).
		Float64("current", update.Current).
		Str("direction", string(update.Direction)).
		Msg("Rate updated")

	// The state change already happened; a failing watcher cannot roll
	// it back. We still surface the aggregate so the caller can log it.
	if err := b.notifier.Publish(ctx, update); err != nil {
		b.log.Warn().Err(err).Str("asset", asset).Msg("Some watchers failed to process the update")
		return err
	}
	return nil
}

// Rate returns the current quote for the asset, if one was ever set.
func (b *RateBoard) Rate(asset string) (float64, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	value, ok := b.rates[asset]
	return value, ok
}

// Watch registers a watcher for rate changes and returns the handle
// needed to stop watching.
func (b *RateBoard) Watch(sub ports.Subscriber) ports.Handle {
	return b.notifier.Register(sub)
}

// Unwatch cancels a previously issued watch handle. It reports whether
// the handle still referred to an active watcher.
func (b *RateBoard) Unwatch(h ports.Handle) bool {
	return b.notifier.Cancel(h)
}
