package domain

import (
	"time"

	"github.com/google/uuid"
)

// RateDirection is a custom type for our movement ENUM
type RateDirection string

const (
	DirectionUp        RateDirection = "up"
	DirectionDown      RateDirection = "down"
	DirectionUnchanged RateDirection = "unchanged"
)

// RateUpdate describes one change to a quoted exchange rate.
// It is the payload the rate board publishes through the notifier;
// the notification core itself never looks inside it.
type RateUpdate struct {
	EventID   uuid.UUID
	Asset     string // e.g. "USD", "EUR"
	Previous  float64
	Current   float64
	Direction RateDirection
	ChangedAt time.Time
}

// NewRateUpdate builds a RateUpdate with a fresh event ID and the
// direction derived from the two values.
func NewRateUpdate(asset string, previous, current float64) RateUpdate {
	dir := DirectionUnchanged
	switch {
	case current > previous:
		dir = DirectionUp
	case current < previous:
		dir = DirectionDown
	}

	return RateUpdate{
		EventID:   uuid.New(),
		Asset:     asset,
		Previous:  previous,
		Current:   current,
		Direction: dir,
		ChangedAt: time.Now().UTC(),
	}
}
