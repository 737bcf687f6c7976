// Package scoring implements the suitability scoring engine: per-event-type
// profiles, the four dimension scorers (temperature, precipitation, wind,
// sky), and the evaluator that combines them into a breakdown.
//
// Everything in this package is pure and deterministic. Scorers never perform
// I/O and never mutate their inputs; identical inputs always produce
// identical breakdowns, which is what makes results cacheable upstream and
// test fixtures reproducible.
package scoring

import (
	"fairweather/internal/types"
)

// Qualitative labels attached to dimension scores. These are fixed template
// strings consumed verbatim by presentation layers; do not reword them.
const (
	LabelIdeal       = "Ideal"
	LabelAcceptable  = "Acceptable"
	LabelUnfavorable = "Unfavorable"
	LabelNoData      = "No Data"

	LabelLowRain      = "Low Rain Risk"
	LabelModerateRain = "Moderate Rain Risk"
	LabelHighRain     = "High Rain Risk"

	LabelLowWind      = "Low Wind"
	LabelModerateWind = "Moderate Wind"
	LabelHighWind     = "High Wind"

	LabelClearSky     = "Clear/Cloudy"
	LabelPartlyCloudy = "Partly Cloudy"
	LabelOvercast     = "Overcast"
	LabelReducedVis   = "Reduced Visibility"
	LabelPoorSky      = "Poor Sky Condition"
)

// Per-dimension point values. Calibrated so that the reference fixture
// (28.5C party day with a 31.4C afternoon high, 10% rain, light wind, clear
// sky) lands on exactly 85.
const (
	TempIdealPoints       = 30
	TempAcceptablePoints  = 15
	TempUnfavorablePoints = -10

	PrecipLowPoints         = 25
	PrecipModeratePoints    = 10
	PrecipModerateWetPoints = 5
	PrecipHighPoints        = -10

	WindLowPoints      = 20
	WindModeratePoints = 10
	WindHighPoints     = -10

	SkyClearPoints       = 25
	SkyPartlyPoints      = 12
	SkyOvercastPoints    = 5
	SkyAtmosphericPoints = 5
	SkyPoorPoints        = -10
)

// Dimension thresholds.
const (
	// Precipitation probability bands (0..1).
	lowRainProbMax      = 0.10
	moderateRainProbMax = 0.40

	// Wind speed bands (m/s). calmWindMaxMS is ~20 km/h.
	calmWindMaxMS     = 5.5
	moderateWindMaxMS = 11.0

	// Cloud cover bands (percent), applied only under Clear/Clouds categories.
	clearCloudMax  = 40
	partlyCloudMax = 80
)

// Temperature sensitivity penalty: applied when the sampled air temperature
// sits inside the ideal band but the day's min/max strays outside it.
const tempSwingPenalty = -15

// Labels for temperature sensitivity adjustments.
const (
	AdjAfternoonHigh = "Afternoon High Above Ideal"
	AdjOvernightLow  = "Overnight Low Below Ideal"
)

// AdjustmentRule is a profile-specific score modification. Applies inspects
// the snapshot; when it returns true, the rule's label and points are
// appended to the breakdown's adjustment list.
type AdjustmentRule struct {
	Label   string
	Points  int
	Applies func(s *types.WeatherSnapshot) bool
}

// Profile holds the threshold tables for one event type.
type Profile struct {
	Event types.EventType

	// Ideal temperature band in degrees Celsius. Temperatures inside the
	// band score maximum points; within TempTolerance of the band, partial
	// points; beyond that, the unfavorable minimum.
	IdealTempLow  float64
	IdealTempHigh float64
	TempTolerance float64

	Rules []AdjustmentRule
}

// sportsWindLimitMS is the wind speed above which outdoor sports become
// impractical (30 km/h).
const sportsWindLimitMS = 30.0 / 3.6

var sportsRules = []AdjustmentRule{
	{
		Label:  "Very High Wind for Sports",
		Points: -15,
		Applies: func(s *types.WeatherSnapshot) bool {
			return s.WindSpeedMS > sportsWindLimitMS && s.WindSpeedMS <= types.MaxValidWindMS
		},
	},
	{
		Label:  "Non-Ideal Sky for Sports",
		Points: -10,
		Applies: func(s *types.WeatherSnapshot) bool {
			return s.Category != types.CategoryClear && s.Category != types.CategoryClouds &&
				s.Category != types.CategoryUnknown
		},
	},
}

var weddingRules = []AdjustmentRule{
	{
		Label:  "Rain Risk for Wedding",
		Points: -20,
		Applies: func(s *types.WeatherSnapshot) bool {
			return s.RainProbability > 0.10 && s.RainProbability <= 1.0
		},
	},
	{
		Label:  "Extreme Temperature for Wedding",
		Points: -15,
		Applies: func(s *types.WeatherSnapshot) bool {
			if s.TemperatureC < types.MinValidTempC || s.TemperatureC > types.MaxValidTempC {
				return false
			}
			return s.TemperatureC < 10 || s.TemperatureC > 35
		},
	},
}

// profiles maps each known event type to its threshold tables. Outdoor types
// with low tolerance for discomfort (picnic, wedding) get a narrower ideal
// band; indoor-leaning types (conference) get a wider one.
var profiles = map[types.EventType]Profile{
	types.EventSports: {
		Event:         types.EventSports,
		IdealTempLow:  15,
		IdealTempHigh: 30,
		TempTolerance: 5,
		Rules:         sportsRules,
	},
	types.EventWedding: {
		Event:         types.EventWedding,
		IdealTempLow:  18,
		IdealTempHigh: 28,
		TempTolerance: 5,
		Rules:         weddingRules,
	},
	types.EventPicnic: {
		Event:         types.EventPicnic,
		IdealTempLow:  18,
		IdealTempHigh: 28,
		TempTolerance: 5,
	},
	types.EventConcert: {
		Event:         types.EventConcert,
		IdealTempLow:  15,
		IdealTempHigh: 30,
		TempTolerance: 5,
	},
	types.EventFestival: {
		Event:         types.EventFestival,
		IdealTempLow:  15,
		IdealTempHigh: 30,
		TempTolerance: 5,
	},
	types.EventConference: {
		Event:         types.EventConference,
		IdealTempLow:  5,
		IdealTempHigh: 32,
		TempTolerance: 5,
	},
	types.EventParty: {
		Event:         types.EventParty,
		IdealTempLow:  15,
		IdealTempHigh: 30,
		TempTolerance: 5,
	},
	types.EventOther: {
		Event:         types.EventOther,
		IdealTempLow:  15,
		IdealTempHigh: 30,
		TempTolerance: 5,
	},
}

// ProfileFor returns the threshold tables for the given event type. Unknown
// types fall back to the default profile rather than failing.
func ProfileFor(et types.EventType) Profile {
	if p, ok := profiles[et]; ok {
		return p
	}
	return profiles[types.EventOther]
}
