package watchers

import (
	"NotifyHub/internal/core/domain"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// JournalEntry is one recorded rate change.
type JournalEntry struct {
	EventID    uuid.UUID
	Asset      string
	Value      float64
	ReceivedAt time.Time
}

// JournalWatcher keeps an in-memory record of every rate update it was
// delivered, in delivery order. It refuses duplicates by event ID, so
// a delivery bug upstream shows up as an error instead of a silently
// padded journal.
type JournalWatcher struct {
	log zerolog.Logger

	mu      sync.Mutex
	entries []JournalEntry
	seen    map[uuid.UUID]struct{}
}

// NewJournalWatcher creates an empty journal.
func NewJournalWatcher(baseLogger *zerolog.Logger) *JournalWatcher {
	return &JournalWatcher{
		log:  baseLogger.With().Str("component", "journal_watcher").Logger(),
		seen: make(map[uuid.UUID]struct{}),
	}
}

// Receive implements ports.Subscriber.
func (w *JournalWatcher) Receive(ctx context.Context, payload interface{}) error {
	update, ok := payload.(domain.RateUpdate)
	if !ok {
		w.log.Error().Msg("Received unexpected payload type")
		return nil // Nothing to retry
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, dup := w.seen[update.EventID]; dup {
		return fmt.Errorf("journal: duplicate delivery of event %s", update.EventID)
	}
	w.seen[update.EventID] = struct{}{}
	w.entries = append(w.entries, JournalEntry{
		EventID:    update.EventID,
		Asset:      update.Asset,
		Value:      update.Current,
		ReceivedAt: time.Now().UTC(),
	})
	return nil
}

// Entries returns a copy of the journal in delivery order.
func (w *JournalWatcher) Entries() []JournalEntry {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]JournalEntry, len(w.entries))
	copy(out, w.entries)
	return out
}
