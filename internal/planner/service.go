// Package planner ties the scoring engine to a weather provider: it assesses
// the suitability of a single event date and searches a window of nearby
// dates for better alternatives.
//
// The planner itself holds no state between calls and never persists
// anything. All weather data flows in through the injected
// types.WeatherProvider and is discarded once scored.
package planner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fairweather/internal/scoring"
	"fairweather/internal/types"
)

// Defaults applied by Options.withDefaults.
const (
	DefaultConcurrency   = 4
	DefaultFetchTimeout  = 5 * time.Second
	DefaultSearchTimeout = 30 * time.Second
	DefaultMaxResults    = 5
	DefaultHorizonDays   = 5
)

// Options configures planner behavior. The zero value gets sensible
// defaults; the concurrency limit exists so batched provider fetches respect
// upstream rate limits.
type Options struct {
	// Concurrency bounds simultaneous provider fetches during a search.
	Concurrency int
	// FetchTimeout bounds each individual provider fetch.
	FetchTimeout time.Duration
	// SearchTimeout bounds a whole alternative-date search. Dates still
	// pending when it elapses are treated as failed for that search.
	SearchTimeout time.Duration
	// MaxResults is the default truncation for search results.
	MaxResults int
	// HorizonDays is the number of days ahead of today for which forecast
	// data is supportable. Dates outside the horizon are skipped during
	// search and rejected for single-date assessment.
	HorizonDays int
}

func (o Options) withDefaults() Options {
	if o.Concurrency <= 0 {
		o.Concurrency = DefaultConcurrency
	}
	if o.FetchTimeout <= 0 {
		o.FetchTimeout = DefaultFetchTimeout
	}
	if o.SearchTimeout <= 0 {
		o.SearchTimeout = DefaultSearchTimeout
	}
	if o.MaxResults <= 0 {
		o.MaxResults = DefaultMaxResults
	}
	if o.HorizonDays <= 0 {
		o.HorizonDays = DefaultHorizonDays
	}
	return o
}

// Service assesses event dates and recommends alternatives.
type Service struct {
	provider  types.WeatherProvider
	evaluator types.SuitabilityEvaluator
	logger    *slog.Logger
	clock     types.Clock
	opts      Options
}

// NewService creates a planner Service with the provided dependencies.
func NewService(
	provider types.WeatherProvider,
	evaluator types.SuitabilityEvaluator,
	logger *slog.Logger,
	clock types.Clock,
	opts Options,
) *Service {
	if evaluator == nil {
		evaluator = scoring.Engine{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if clock == nil {
		clock = types.RealClock{}
	}
	return &Service{
		provider:  provider,
		evaluator: evaluator,
		logger:    logger,
		clock:     clock,
		opts:      opts.withDefaults(),
	}
}

// DateAssessment is the scored outcome for a single (location, event type,
// date) triple.
type DateAssessment struct {
	Date      time.Time                  `json:"-"`
	EventType types.EventType            `json:"event_type"`
	Breakdown types.SuitabilityBreakdown `json:"suitability_details"`
	Rating    string                     `json:"rating"`
	Snapshot  *types.WeatherSnapshot     `json:"weather_at_date,omitempty"`
}

// Score returns the normalized suitability score.
func (a *DateAssessment) Score() int {
	return a.Breakdown.FinalScoreNormalized
}

// AssessDate fetches the snapshot for the target date and evaluates it.
//
// Invalid locations and dates outside the forecast horizon fail with
// validation_* codes. A provider failure surfaces as an upstream_* or
// not_found_forecast error that callers render as "no weather data
// available"; the planner does not retry (retry policy belongs to the
// provider client).
func (s *Service) AssessDate(ctx context.Context, loc types.Location, eventType types.EventType, date time.Time) (*DateAssessment, error) {
	if err := types.ValidateLocation(loc); err != nil {
		return nil, err
	}

	day := dateOnly(date)
	if err := s.checkHorizon(day); err != nil {
		return nil, err
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.opts.FetchTimeout)
	defer cancel()

	snapshot, err := s.provider.GetSnapshot(fetchCtx, loc, day)
	if err != nil {
		s.logger.WarnContext(ctx, "snapshot fetch failed for assessment",
			"date", day.Format(types.DateLayout),
			"error", err,
		)
		return nil, err
	}

	et := types.ParseEventType(string(eventType))
	breakdown := s.evaluator.Evaluate(snapshot, et)

	return &DateAssessment{
		Date:      day,
		EventType: et,
		Breakdown: breakdown,
		Rating:    scoring.Rating(breakdown.FinalScoreNormalized),
		Snapshot:  snapshot,
	}, nil
}

// checkHorizon rejects dates the provider cannot plausibly cover.
func (s *Service) checkHorizon(day time.Time) error {
	today := dateOnly(s.clock.Now())
	last := today.AddDate(0, 0, s.opts.HorizonDays)
	if day.Before(today) || day.After(last) {
		return types.NewAppError(
			types.ErrCodeValidationDateHorizon,
			fmt.Sprintf("date %s outside supportable forecast horizon [%s, %s]",
				day.Format(types.DateLayout), today.Format(types.DateLayout), last.Format(types.DateLayout)),
			nil,
		)
	}
	return nil
}

// inHorizon is the non-erroring form used by the window search.
func (s *Service) inHorizon(day, today time.Time) bool {
	return !day.Before(today) && !day.After(today.AddDate(0, 0, s.opts.HorizonDays))
}

// dateOnly truncates a timestamp to its UTC calendar date.
func dateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
