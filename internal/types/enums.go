package types

import "strings"

// EventType identifies the kind of event being planned. The set is open:
// unrecognized values parse to EventOther rather than failing, and scoring
// falls back to the default profile.
type EventType string

const (
	EventSports     EventType = "sports"
	EventWedding    EventType = "wedding"
	EventPicnic     EventType = "picnic"
	EventConcert    EventType = "concert"
	EventFestival   EventType = "festival"
	EventConference EventType = "conference"
	EventParty      EventType = "party"
	EventOther      EventType = "other"
)

// KnownEventTypes lists the event types with dedicated scoring profiles.
var KnownEventTypes = []EventType{
	EventSports,
	EventWedding,
	EventPicnic,
	EventConcert,
	EventFestival,
	EventConference,
	EventParty,
	EventOther,
}

// ParseEventType normalizes a raw event type string. Unknown values map to
// EventOther; this is deliberate so that a typo in an event type degrades to
// default scoring instead of rejecting the request.
func ParseEventType(raw string) EventType {
	et := EventType(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range KnownEventTypes {
		if et == known {
			return et
		}
	}
	return EventOther
}

// Dimension identifies one independently scored weather axis.
type Dimension string

const (
	DimTemperature   Dimension = "temperature"
	DimPrecipitation Dimension = "precipitation"
	DimWind          Dimension = "wind"
	DimSky           Dimension = "sky"
)

// WeatherCategory is the coarse condition classification attached to a
// snapshot by the forecast source (OpenWeatherMap "main" field vocabulary).
type WeatherCategory string

const (
	CategoryClear        WeatherCategory = "Clear"
	CategoryClouds       WeatherCategory = "Clouds"
	CategoryDrizzle      WeatherCategory = "Drizzle"
	CategoryRain         WeatherCategory = "Rain"
	CategorySnow         WeatherCategory = "Snow"
	CategoryThunderstorm WeatherCategory = "Thunderstorm"
	CategoryMist         WeatherCategory = "Mist"
	CategorySmoke        WeatherCategory = "Smoke"
	CategoryHaze         WeatherCategory = "Haze"
	CategoryDust         WeatherCategory = "Dust"
	CategoryFog          WeatherCategory = "Fog"
	CategorySand         WeatherCategory = "Sand"
	CategoryAsh          WeatherCategory = "Ash"
	CategorySquall       WeatherCategory = "Squall"
	CategoryTornado      WeatherCategory = "Tornado"
	CategoryUnknown      WeatherCategory = ""
)

// IsPrecipitation reports whether the category describes significant
// precipitation or convective weather. Drizzle is excluded: it degrades
// visibility rather than ruining the sky outright, and is grouped with the
// atmospheric categories.
func (c WeatherCategory) IsPrecipitation() bool {
	switch c {
	case CategoryRain, CategorySnow, CategoryThunderstorm:
		return true
	}
	return false
}

// IsAtmospheric reports whether the category describes reduced-visibility
// conditions (drizzle, mist, smoke, dust and similar).
func (c WeatherCategory) IsAtmospheric() bool {
	switch c {
	case CategoryDrizzle, CategoryMist, CategorySmoke, CategoryHaze, CategoryDust,
		CategoryFog, CategorySand, CategoryAsh, CategorySquall, CategoryTornado:
		return true
	}
	return false
}
