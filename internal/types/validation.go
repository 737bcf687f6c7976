package types

import "fmt"

// Validation constraint constants.
const (
	MinLat = -90.0
	MaxLat = 90.0
	MinLon = -180.0
	MaxLon = 180.0

	// MaxSearchWindowDays bounds one side of an alternative-date window.
	MaxSearchWindowDays = 14

	// Plausible physical bounds used by the scorers to decide whether a
	// snapshot field carries usable data. Values outside these ranges score
	// as "No Data" for the affected dimension.
	MinValidTempC  = -90.0
	MaxValidTempC  = 60.0
	MaxValidWindMS = 120.0
)

// ValidateLocation checks coordinate ranges. A zero-valued location (0, 0)
// is accepted; callers that require a location at all must check for its
// presence before this point.
func ValidateLocation(loc Location) error {
	if loc.Lat < MinLat || loc.Lat > MaxLat {
		return NewAppError(
			ErrCodeValidationInvalidLat,
			fmt.Sprintf("latitude %.4f outside valid range [%.0f, %.0f]", loc.Lat, MinLat, MaxLat),
			nil,
		)
	}
	if loc.Lon < MinLon || loc.Lon > MaxLon {
		return NewAppError(
			ErrCodeValidationInvalidLon,
			fmt.Sprintf("longitude %.4f outside valid range [%.0f, %.0f]", loc.Lon, MinLon, MaxLon),
			nil,
		)
	}
	return nil
}

// ValidateWindow checks alternative-date window sizes.
func ValidateWindow(before, after int) error {
	if before < 0 || after < 0 {
		return NewAppError(ErrCodeValidationWindow, "window sizes must be non-negative", nil)
	}
	if before > MaxSearchWindowDays || after > MaxSearchWindowDays {
		return NewAppError(
			ErrCodeValidationWindow,
			fmt.Sprintf("window sizes may not exceed %d days per side", MaxSearchWindowDays),
			nil,
		)
	}
	return nil
}
