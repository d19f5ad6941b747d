package watchers

import (
	"NotifyHub/internal/core/domain"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelativeMove(t *testing.T) {
	policy := RelativeMove(0.05)

	testCases := []struct {
		name     string
		previous float64
		current  float64
		want     bool
	}{
		{name: "move above threshold up", previous: 100, current: 106, want: true},
		{name: "move above threshold down", previous: 100, current: 94, want: true},
		{name: "move exactly at threshold", previous: 100, current: 105, want: true},
		{name: "small move", previous: 100, current: 101, want: false},
		{name: "no move", previous: 100, current: 100, want: false},
		{name: "zero previous never fires", previous: 0, current: 100, want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			update := domain.RateUpdate{Asset: "USD", Previous: tc.previous, Current: tc.current}
			assert.Equal(t, tc.want, policy(update))
		})
	}
}

func TestThresholdWatcher_FiresPerPolicy(t *testing.T) {
	nopLogger := zerolog.Nop()
	watcher := NewThresholdWatcher(RelativeMove(0.10), &nopLogger)
	ctx := context.Background()

	// Below threshold: delivered but not alert-worthy.
	require.NoError(t, watcher.Receive(ctx, domain.NewRateUpdate("USD", 100, 104)))
	assert.Equal(t, 0, watcher.Fired())

	// Above threshold: alert.
	require.NoError(t, watcher.Receive(ctx, domain.NewRateUpdate("USD", 100, 120)))
	assert.Equal(t, 1, watcher.Fired())
}

func TestThresholdWatcher_IgnoresForeignPayloads(t *testing.T) {
	nopLogger := zerolog.Nop()
	watcher := NewThresholdWatcher(RelativeMove(0.01), &nopLogger)

	// A payload the watcher does not understand is dropped, not an error.
	require.NoError(t, watcher.Receive(context.Background(), "not a rate update"))
	assert.Equal(t, 0, watcher.Fired())
}

func TestJournalWatcher_RecordsInDeliveryOrder(t *testing.T) {
	nopLogger := zerolog.Nop()
	journal := NewJournalWatcher(&nopLogger)
	ctx := context.Background()

	first := domain.NewRateUpdate("USD", 100, 101)
	second := domain.NewRateUpdate("EUR", 90, 89)

	require.NoError(t, journal.Receive(ctx, first))
	require.NoError(t, journal.Receive(ctx, second))

	entries := journal.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, first.EventID, entries[0].EventID)
	assert.Equal(t, "USD", entries[0].Asset)
	assert.Equal(t, 101.0, entries[0].Value)
	assert.Equal(t, second.EventID, entries[1].EventID)
}

func TestJournalWatcher_RejectsDuplicateEvents(t *testing.T) {
	nopLogger := zerolog.Nop()
	journal := NewJournalWatcher(&nopLogger)
	ctx := context.Background()

	update := domain.NewRateUpdate("USD", 100, 101)
	require.NoError(t, journal.Receive(ctx, update))

	err := journal.Receive(ctx, update)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate delivery")
	assert.Len(t, journal.Entries(), 1)
}

func TestJournalWatcher_IgnoresForeignPayloads(t *testing.T) {
	nopLogger := zerolog.Nop()
	journal := NewJournalWatcher(&nopLogger)

	require.NoError(t, journal.Receive(context.Background(), 12345))
	assert.Empty(t, journal.Entries())
}
