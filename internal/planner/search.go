package planner

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"fairweather/internal/types"
)

// SearchRequest describes one alternative-date search.
type SearchRequest struct {
	Location     types.Location
	EventType    types.EventType
	OriginalDate time.Time
	// WindowBefore and WindowAfter are day counts on each side of the
	// original date.
	WindowBefore int
	WindowAfter  int
	// MaxResults overrides the service default when positive.
	MaxResults int
}

// outcome is the per-date result slot for the concurrent fetch phase. Each
// goroutine writes only its own index, so ranking input is fixed by date
// position and cannot depend on completion order.
type outcome struct {
	date      time.Time
	snapshot  *types.WeatherSnapshot
	breakdown types.SuitabilityBreakdown
	err       error
}

// FindAlternatives enumerates every date in the window around the original
// date (excluding the original itself and anything outside the forecast
// horizon), fetches snapshots concurrently, scores them, and returns the
// dates that strictly improve on the original date's score, ranked.
//
// Ordering: score descending, then absolute day distance from the original
// (nearer first), then chronological. Ranks are assigned 1..N after
// truncation.
//
// An empty result is a successful outcome, returned both when no date
// improves on the original and when every fetch in the window failed. Only
// invalid input or caller cancellation produce an error.
func (s *Service) FindAlternatives(ctx context.Context, req SearchRequest) ([]types.AlternativeDateCandidate, error) {
	if err := types.ValidateLocation(req.Location); err != nil {
		return nil, err
	}
	if err := types.ValidateWindow(req.WindowBefore, req.WindowAfter); err != nil {
		return nil, err
	}

	searchID := types.GetRequestID(ctx)
	if searchID == "" {
		searchID = uuid.NewString()
		ctx = types.WithRequestID(ctx, searchID)
	}

	et := types.ParseEventType(string(req.EventType))
	original := dateOnly(req.OriginalDate)
	today := dateOnly(s.clock.Now())

	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = s.opts.MaxResults
	}

	// The whole search, baseline fetch included, is bounded by SearchTimeout;
	// dates still pending when it elapses record a deadline error and are
	// skipped.
	searchCtx, cancel := context.WithTimeout(ctx, s.opts.SearchTimeout)
	defer cancel()

	// Baseline: the original date's own score. If it cannot be established,
	// every successfully scored candidate is kept.
	originalScore, originalKnown := s.baselineScore(searchCtx, req.Location, et, original, today, searchID)

	// Enumerate candidate dates, oldest first. The original date is never a
	// candidate.
	var dates []time.Time
	for offset := -req.WindowBefore; offset <= req.WindowAfter; offset++ {
		if offset == 0 {
			continue
		}
		day := original.AddDate(0, 0, offset)
		if !s.inHorizon(day, today) {
			continue
		}
		dates = append(dates, day)
	}

	if len(dates) == 0 {
		s.logger.InfoContext(ctx, "alternative search window empty after horizon filtering",
			"search_id", searchID,
			"original_date", original.Format(types.DateLayout),
		)
		return []types.AlternativeDateCandidate{}, nil
	}

	outcomes := make([]outcome, len(dates))
	g := new(errgroup.Group)
	g.SetLimit(s.opts.Concurrency)

	for i, day := range dates {
		i, day := i, day
		g.Go(func() error {
			fetchCtx, fetchCancel := context.WithTimeout(searchCtx, s.opts.FetchTimeout)
			defer fetchCancel()

			snapshot, err := s.provider.GetSnapshot(fetchCtx, req.Location, day)
			if err != nil {
				// Per-date isolation: a failed date is excluded from
				// ranking, the rest of the window proceeds.
				outcomes[i] = outcome{date: day, err: err}
				s.logger.WarnContext(ctx, "candidate date skipped",
					"search_id", searchID,
					"date", day.Format(types.DateLayout),
					"error", err,
				)
				return nil
			}

			outcomes[i] = outcome{
				date:      day,
				snapshot:  snapshot,
				breakdown: s.evaluator.Evaluate(snapshot, et),
			}
			return nil
		})
	}

	// Goroutines never return errors; Wait only synchronizes.
	_ = g.Wait()

	// Caller cancellation discards partial results entirely: no
	// partial-ranking leakage.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	candidates := make([]types.AlternativeDateCandidate, 0, len(outcomes))
	failed := 0
	for _, o := range outcomes {
		if o.err != nil {
			failed++
			continue
		}
		if originalKnown && o.breakdown.FinalScoreNormalized <= originalScore {
			continue
		}
		candidates = append(candidates, types.AlternativeDateCandidate{
			Date:      o.date,
			Breakdown: o.breakdown,
			Snapshot:  o.snapshot,
		})
	}

	sortCandidates(candidates, original)

	if len(candidates) > maxResults {
		candidates = candidates[:maxResults]
	}
	for i := range candidates {
		candidates[i].Rank = i + 1
	}

	s.logger.InfoContext(ctx, "alternative search complete",
		"search_id", searchID,
		"original_date", original.Format(types.DateLayout),
		"window_dates", len(dates),
		"failed_dates", failed,
		"results", len(candidates),
		"baseline_known", originalKnown,
	)

	return candidates, nil
}

// baselineScore fetches and scores the original date. An unknown baseline is
// not an error; it widens the filter to every scored candidate.
func (s *Service) baselineScore(ctx context.Context, loc types.Location, et types.EventType, original, today time.Time, searchID string) (int, bool) {
	if !s.inHorizon(original, today) {
		return 0, false
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.opts.FetchTimeout)
	defer cancel()

	snapshot, err := s.provider.GetSnapshot(fetchCtx, loc, original)
	if err != nil {
		s.logger.WarnContext(ctx, "original date score unavailable, keeping all scored candidates",
			"search_id", searchID,
			"date", original.Format(types.DateLayout),
			"error", err,
		)
		return 0, false
	}

	return s.evaluator.Evaluate(snapshot, et).FinalScoreNormalized, true
}

// sortCandidates orders by score descending, then absolute day distance
// from the original date ascending, then chronologically.
func sortCandidates(candidates []types.AlternativeDateCandidate, original time.Time) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Breakdown.FinalScoreNormalized != b.Breakdown.FinalScoreNormalized {
			return a.Breakdown.FinalScoreNormalized > b.Breakdown.FinalScoreNormalized
		}
		da, db := dayDistance(a.Date, original), dayDistance(b.Date, original)
		if da != db {
			return da < db
		}
		return a.Date.Before(b.Date)
	})
}

// dayDistance returns the absolute distance in whole days between two
// date-only timestamps.
func dayDistance(a, b time.Time) int {
	d := int(a.Sub(b).Hours() / 24)
	if d < 0 {
		return -d
	}
	return d
}
