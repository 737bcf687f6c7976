package types

import "time"

// Location represents a geographic coordinate with an optional display name.
type Location struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	DisplayName string  `json:"display_name,omitempty"`
}

// WeatherSnapshot is one forecast sample for a point in time and space.
// It is a value type: constructed once by a provider and never mutated.
// The engine does not cache snapshots; each evaluation owns the snapshot
// it was handed and discards it after scoring.
type WeatherSnapshot struct {
	TemperatureC float64 `json:"temperature"`
	FeelsLikeC   float64 `json:"feels_like"`
	MinTempC     float64 `json:"min_temp"`
	MaxTempC     float64 `json:"max_temp"`

	PressureHPa float64 `json:"pressure"`
	Humidity    int     `json:"humidity"`

	WindSpeedMS float64 `json:"wind_speed"`
	WindDeg     int     `json:"wind_deg"`

	CloudCover  int             `json:"clouds"`
	Category    WeatherCategory `json:"weather_main"`
	Description string          `json:"weather_description,omitempty"`
	Icon        string          `json:"weather_icon,omitempty"`

	RainProbability float64 `json:"rain_probability"`
	RainVolume1hMM  float64 `json:"rain_volume_1h"`
	RainVolume3hMM  float64 `json:"rain_volume_3h"`

	ObservedAt time.Time `json:"dt_txt"`
}
