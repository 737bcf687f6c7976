package types

import (
	"context"
	"time"
)

// WeatherProvider supplies one weather snapshot per (location, date) pair.
// date is interpreted at calendar-day granularity in UTC. Implementations
// MUST return an *AppError with an upstream_* or not_found_forecast code
// rather than a partially populated snapshot; the engine applies a per-date
// skip policy on any such failure.
//
// Any caching of snapshots is the provider's concern, not the engine's.
type WeatherProvider interface {
	GetSnapshot(ctx context.Context, loc Location, date time.Time) (*WeatherSnapshot, error)
}

// SuitabilityEvaluator produces a scoring breakdown for one snapshot.
// Implementations are pure: no I/O, no shared state, deterministic output.
type SuitabilityEvaluator interface {
	Evaluate(snapshot *WeatherSnapshot, eventType EventType) SuitabilityBreakdown
}

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the real system time (always UTC).
type RealClock struct{}

// Now returns the current time in UTC.
func (RealClock) Now() time.Time { return time.Now().UTC() }
