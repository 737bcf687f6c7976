package scoring

import (
	"fairweather/internal/types"
)

// Engine is the stateless suitability evaluator. The zero value is ready to
// use; an instance exists only so the evaluator can be injected behind
// types.SuitabilityEvaluator.
type Engine struct{}

var _ types.SuitabilityEvaluator = Engine{}

// Evaluate runs the four dimension scorers for the event type's profile,
// applies temperature-sensitivity and event-type adjustments, and combines
// everything into a breakdown. Pure and deterministic; a nil snapshot yields
// an all-No-Data breakdown with a raw score of zero.
func (Engine) Evaluate(snapshot *types.WeatherSnapshot, eventType types.EventType) types.SuitabilityBreakdown {
	return Evaluate(snapshot, eventType)
}

// Evaluate is the package-level form of Engine.Evaluate.
func Evaluate(snapshot *types.WeatherSnapshot, eventType types.EventType) types.SuitabilityBreakdown {
	profile := ProfileFor(types.ParseEventType(string(eventType)))

	b := types.SuitabilityBreakdown{
		Temperature:   ScoreTemperature(snapshot, profile),
		Precipitation: ScorePrecipitation(snapshot, profile),
		Wind:          ScoreWind(snapshot, profile),
		Sky:           ScoreSky(snapshot, profile),
	}

	if snapshot != nil {
		b.Adjustments = append(b.Adjustments, temperatureSwingAdjustments(snapshot, profile, b.Temperature)...)
		for _, rule := range profile.Rules {
			if rule.Applies(snapshot) {
				b.Adjustments = append(b.Adjustments, types.Adjustment{Label: rule.Label, Points: rule.Points})
			}
		}
	}

	raw := b.Temperature.Points + b.Precipitation.Points + b.Wind.Points + b.Sky.Points
	for _, adj := range b.Adjustments {
		raw += adj.Points
	}

	b.FinalScoreRaw = raw
	b.FinalScoreNormalized = clamp(raw, 0, 100)
	return b
}

// temperatureSwingAdjustments penalizes days whose sampled temperature sits
// inside the ideal band while the daily extremes stray outside it. The
// sample is usually taken near midday; without this the afternoon high of a
// hot day would be invisible to the score.
func temperatureSwingAdjustments(s *types.WeatherSnapshot, p Profile, temp types.DimensionScore) []types.Adjustment {
	if temp.Label != LabelIdeal {
		return nil
	}

	var adjs []types.Adjustment
	if validTemp(s.MaxTempC) && s.MaxTempC > p.IdealTempHigh {
		adjs = append(adjs, types.Adjustment{Label: AdjAfternoonHigh, Points: tempSwingPenalty})
	}
	if validTemp(s.MinTempC) && s.MinTempC < p.IdealTempLow {
		adjs = append(adjs, types.Adjustment{Label: AdjOvernightLow, Points: tempSwingPenalty})
	}
	return adjs
}

// Rating bands used by presentation layers.
const (
	RatingExcellent = "Excellent"
	RatingGood      = "Good"
	RatingFair      = "Fair"
	RatingPoor      = "Poor"
)

// Rating maps a normalized score to its qualitative band. This mapping is a
// presentation concern and is intentionally not embedded in the breakdown.
func Rating(normalized int) string {
	switch {
	case normalized >= 80:
		return RatingExcellent
	case normalized >= 60:
		return RatingGood
	case normalized >= 40:
		return RatingFair
	default:
		return RatingPoor
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
