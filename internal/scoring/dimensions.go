package scoring

import (
	"fairweather/internal/types"
)

// noData returns the neutral score for a dimension whose input is missing or
// implausible. Partial data must never prevent scoring of the remaining
// dimensions, so scorers degrade to this instead of returning errors.
func noData(dim types.Dimension) types.DimensionScore {
	return types.DimensionScore{Dimension: dim, Points: 0, Label: LabelNoData}
}

func validTemp(c float64) bool {
	return c >= types.MinValidTempC && c <= types.MaxValidTempC
}

// ScoreTemperature compares the sampled air temperature against the
// profile's ideal band. Inside the band scores maximum; within the tolerance
// margin on either side, partial; beyond tolerance, the unfavorable minimum.
func ScoreTemperature(s *types.WeatherSnapshot, p Profile) types.DimensionScore {
	if s == nil || !validTemp(s.TemperatureC) {
		return noData(types.DimTemperature)
	}

	t := s.TemperatureC
	switch {
	case t >= p.IdealTempLow && t <= p.IdealTempHigh:
		return types.DimensionScore{Dimension: types.DimTemperature, Points: TempIdealPoints, Label: LabelIdeal}
	case t >= p.IdealTempLow-p.TempTolerance && t <= p.IdealTempHigh+p.TempTolerance:
		return types.DimensionScore{Dimension: types.DimTemperature, Points: TempAcceptablePoints, Label: LabelAcceptable}
	default:
		return types.DimensionScore{Dimension: types.DimTemperature, Points: TempUnfavorablePoints, Label: LabelUnfavorable}
	}
}

// ScorePrecipitation bands the rain probability. Measured rain volume acts
// as a secondary penalty when the probability is borderline: a moderate-risk
// forecast that is already producing rain scores lower than a dry one.
func ScorePrecipitation(s *types.WeatherSnapshot, _ Profile) types.DimensionScore {
	if s == nil || s.RainProbability < 0 || s.RainProbability > 1 {
		return noData(types.DimPrecipitation)
	}

	switch {
	case s.RainProbability <= lowRainProbMax:
		return types.DimensionScore{Dimension: types.DimPrecipitation, Points: PrecipLowPoints, Label: LabelLowRain}
	case s.RainProbability <= moderateRainProbMax:
		points := PrecipModeratePoints
		if s.RainVolume1hMM > 0 || s.RainVolume3hMM > 0 {
			points = PrecipModerateWetPoints
		}
		return types.DimensionScore{Dimension: types.DimPrecipitation, Points: points, Label: LabelModerateRain}
	default:
		return types.DimensionScore{Dimension: types.DimPrecipitation, Points: PrecipHighPoints, Label: LabelHighRain}
	}
}

// ScoreWind bands the wind speed. Direction is informational only and is
// never penalized.
func ScoreWind(s *types.WeatherSnapshot, _ Profile) types.DimensionScore {
	if s == nil || s.WindSpeedMS < 0 || s.WindSpeedMS > types.MaxValidWindMS {
		return noData(types.DimWind)
	}

	switch {
	case s.WindSpeedMS < calmWindMaxMS:
		return types.DimensionScore{Dimension: types.DimWind, Points: WindLowPoints, Label: LabelLowWind}
	case s.WindSpeedMS < moderateWindMaxMS:
		return types.DimensionScore{Dimension: types.DimWind, Points: WindModeratePoints, Label: LabelModerateWind}
	default:
		return types.DimensionScore{Dimension: types.DimWind, Points: WindHighPoints, Label: LabelHighWind}
	}
}

// ScoreSky derives a score from the coarse weather category and the numeric
// cloud cover. The category takes precedence when the two disagree: it
// reflects derived forecast judgment (a Thunderstorm classification forces
// the minimum regardless of the cloud percentage), which this engine does
// not second-guess.
//
// Resolution table:
//   - precipitation category  -> minimum, whatever the cloud percent
//   - atmospheric category    -> reduced-visibility partial score
//   - Clear                   -> maximum (a Clear call implies few clouds
//     even when the percent field is unusable)
//   - Clouds / Unknown        -> banded by cloud percent; No Data when the
//     percent is out of range
func ScoreSky(s *types.WeatherSnapshot, _ Profile) types.DimensionScore {
	if s == nil {
		return noData(types.DimSky)
	}

	switch {
	case s.Category.IsPrecipitation():
		return types.DimensionScore{Dimension: types.DimSky, Points: SkyPoorPoints, Label: LabelPoorSky}
	case s.Category.IsAtmospheric():
		return types.DimensionScore{Dimension: types.DimSky, Points: SkyAtmosphericPoints, Label: LabelReducedVis}
	}

	cloudsValid := s.CloudCover >= 0 && s.CloudCover <= 100
	if !cloudsValid {
		if s.Category == types.CategoryClear {
			return types.DimensionScore{Dimension: types.DimSky, Points: SkyClearPoints, Label: LabelClearSky}
		}
		return noData(types.DimSky)
	}

	switch {
	case s.CloudCover <= clearCloudMax:
		return types.DimensionScore{Dimension: types.DimSky, Points: SkyClearPoints, Label: LabelClearSky}
	case s.CloudCover <= partlyCloudMax:
		return types.DimensionScore{Dimension: types.DimSky, Points: SkyPartlyPoints, Label: LabelPartlyCloudy}
	default:
		return types.DimensionScore{Dimension: types.DimSky, Points: SkyOvercastPoints, Label: LabelOvercast}
	}
}
