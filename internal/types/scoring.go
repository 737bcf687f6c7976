package types

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates in serialized results.
const DateLayout = "2006-01-02"

// DimensionScore is the outcome of scoring a single weather dimension.
// Points are signed and bounded per dimension; Label is one of the fixed
// qualitative labels for that dimension ("Ideal", "High Wind", "No Data", ...).
type DimensionScore struct {
	Dimension Dimension `json:"dimension"`
	Points    int       `json:"points"`
	Label     string    `json:"label"`
}

// String renders the score in the stable presentation form used by the
// serialized breakdown, e.g. "+30 (Ideal)", "-10 (High Wind)", "0 (No Data)".
func (d DimensionScore) String() string {
	if d.Points == 0 {
		return fmt.Sprintf("0 (%s)", d.Label)
	}
	return fmt.Sprintf("%+d (%s)", d.Points, d.Label)
}

// MarshalJSON emits the rendered label+points string. Presentation layers
// consume breakdowns as strings per dimension, not nested objects.
func (d DimensionScore) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// Adjustment is a typed score modification applied on top of the four
// dimension scores, e.g. an event-type-specific penalty. Modeled as an
// explicit ordered list so consumers can enumerate adjustments without
// reflecting over open map keys.
type Adjustment struct {
	Label  string `json:"label"`
	Points int    `json:"points"`
}

// String renders the adjustment in the same form as a dimension score.
func (a Adjustment) String() string {
	if a.Points == 0 {
		return fmt.Sprintf("0 (%s)", a.Label)
	}
	return fmt.Sprintf("%+d (%s)", a.Points, a.Label)
}

// SuitabilityBreakdown is the full scoring result for one snapshot and one
// event type. It is a pure value: re-evaluating the same snapshot with the
// same event type always produces an identical breakdown.
//
// Invariant: FinalScoreNormalized == clamp(FinalScoreRaw, 0, 100).
type SuitabilityBreakdown struct {
	Temperature   DimensionScore `json:"temperature_score"`
	Precipitation DimensionScore `json:"precipitation_score"`
	Wind          DimensionScore `json:"wind_score"`
	Sky           DimensionScore `json:"sky_score"`

	Adjustments []Adjustment `json:"adjustments,omitempty"`

	FinalScoreRaw        int `json:"final_score_raw"`
	FinalScoreNormalized int `json:"final_score_normalized"`
}

// AlternativeDateCandidate is one ranked entry in an alternative-date search
// result. Candidates are created during a single search call, ordered, and
// handed to the caller as a read-only sequence.
type AlternativeDateCandidate struct {
	Date      time.Time
	Rank      int
	Breakdown SuitabilityBreakdown
	Snapshot  *WeatherSnapshot
}

// MarshalJSON serializes the candidate with the stable field names expected
// by presentation layers, rendering the date as YYYY-MM-DD.
func (c AlternativeDateCandidate) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date             string               `json:"date"`
		Rank             int                  `json:"rank"`
		SuitabilityScore int                  `json:"suitability_score"`
		Details          SuitabilityBreakdown `json:"suitability_details"`
		Weather          *WeatherSnapshot     `json:"weather_at_date,omitempty"`
	}{
		Date:             c.Date.UTC().Format(DateLayout),
		Rank:             c.Rank,
		SuitabilityScore: c.Breakdown.FinalScoreNormalized,
		Details:          c.Breakdown,
		Weather:          c.Snapshot,
	})
}
