package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"fairweather/internal/types"
)

// DefaultBaseURL is the production OpenWeatherMap API root.
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

// ForecastHorizonDays is the coverage of the 5-day/3-hour forecast product.
const ForecastHorizonDays = 5

// dtTxtLayout is the timestamp format of the dt_txt field (UTC).
const dtTxtLayout = "2006-01-02 15:04:05"

// Config configures the provider.
type Config struct {
	APIKey    types.SecretString
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	Retry     RetryPolicy
}

// Provider implements types.WeatherProvider against the OpenWeatherMap
// 5-day/3-hour forecast endpoint. For a requested date it selects the sample
// closest to 12:00 UTC, mirroring how callers think about "the weather on
// that day".
type Provider struct {
	http    *httpClient
	baseURL string
	apiKey  types.SecretString
	logger  *slog.Logger
	clock   types.Clock
}

var _ types.WeatherProvider = (*Provider)(nil)

// NewProvider creates an OpenWeatherMap provider.
func NewProvider(cfg Config, logger *slog.Logger, clock types.Clock, opts ...clientOption) *Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Retry == (RetryPolicy{}) {
		cfg.Retry = DefaultRetryPolicy()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if clock == nil {
		clock = types.RealClock{}
	}

	return &Provider{
		http:    newHTTPClient(&http.Client{Timeout: cfg.Timeout}, "openweathermap", cfg.Retry, cfg.UserAgent, opts...),
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		logger:  logger,
		clock:   clock,
	}
}

// GetSnapshot fetches the 5-day forecast for the location and extracts the
// sample for the requested UTC date. It never returns a partially populated
// snapshot: any failure surfaces as a typed AppError and the caller decides
// whether the date is skippable.
func (p *Provider) GetSnapshot(ctx context.Context, loc types.Location, date time.Time) (*types.WeatherSnapshot, error) {
	if err := types.ValidateLocation(loc); err != nil {
		return nil, err
	}

	day := dateOnly(date)
	if err := p.checkHorizon(day); err != nil {
		return nil, err
	}

	payload, err := p.fetchForecast(ctx, loc)
	if err != nil {
		return nil, err
	}

	snapshot := snapshotForDate(payload, day)
	if snapshot == nil {
		return nil, types.NewAppErrorWithDetails(
			types.ErrCodeNotFoundForecast,
			fmt.Sprintf("no forecast sample available for %s", day.Format(types.DateLayout)),
			nil,
			map[string]any{"date": day.Format(types.DateLayout)},
		)
	}

	return snapshot, nil
}

func (p *Provider) checkHorizon(day time.Time) error {
	today := dateOnly(p.clock.Now())
	last := today.AddDate(0, 0, ForecastHorizonDays)
	if day.Before(today) || day.After(last) {
		return types.NewAppError(
			types.ErrCodeValidationDateHorizon,
			fmt.Sprintf("date %s outside the %d-day forecast horizon", day.Format(types.DateLayout), ForecastHorizonDays),
			nil,
		)
	}
	return nil
}

func (p *Provider) fetchForecast(ctx context.Context, loc types.Location) (*forecastResponse, error) {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%.4f", loc.Lat))
	q.Set("lon", fmt.Sprintf("%.4f", loc.Lon))
	q.Set("units", "metric")
	q.Set("appid", p.apiKey.Unmask())

	resp, err := p.http.get(ctx, p.baseURL+"/forecast?"+q.Encode())
	if err != nil {
		return nil, err
	}

	body, err := readBody(resp)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeUpstreamUnavailable, "failed to read provider response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, p.mapStatus(resp.StatusCode, body)
	}

	var payload forecastResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, types.NewAppError(types.ErrCodeUpstreamUnavailable, "malformed provider response", err)
	}

	return &payload, nil
}

// mapStatus translates non-200 API statuses the retry layer passed through
// (auth errors, unknown coordinates) into typed AppErrors.
func (p *Provider) mapStatus(status int, body []byte) *types.AppError {
	var apiErr errorResponse
	_ = json.Unmarshal(body, &apiErr)

	msg := apiErr.Message
	if msg == "" {
		msg = fmt.Sprintf("provider returned status %d", status)
	}

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return types.NewAppError(types.ErrCodeUpstreamAuth, "weather provider rejected the API key: "+msg, nil)
	case http.StatusNotFound:
		return types.NewAppError(types.ErrCodeNotFoundForecast, "no forecast for requested coordinates: "+msg, nil)
	default:
		return types.NewAppError(types.ErrCodeUpstreamUnavailable, "weather provider error: "+msg, nil)
	}
}

// snapshotForDate picks the 3-hourly sample on the target date closest to
// noon UTC and maps it to the domain snapshot. Returns nil when the payload
// holds no sample for that date.
func snapshotForDate(payload *forecastResponse, day time.Time) *types.WeatherSnapshot {
	noon := day.Add(12 * time.Hour)

	var best *forecastItem
	var bestAt time.Time
	var bestDiff time.Duration

	for i := range payload.List {
		item := &payload.List[i]
		at, err := time.ParseInLocation(dtTxtLayout, item.DtTxt, time.UTC)
		if err != nil {
			continue
		}
		if !dateOnly(at).Equal(day) {
			continue
		}

		diff := at.Sub(noon)
		if diff < 0 {
			diff = -diff
		}
		if best == nil || diff < bestDiff {
			best, bestAt, bestDiff = item, at, diff
		}
	}

	if best == nil {
		return nil
	}

	return toSnapshot(best, bestAt)
}

func toSnapshot(item *forecastItem, at time.Time) *types.WeatherSnapshot {
	s := &types.WeatherSnapshot{
		TemperatureC:    item.Main.Temp,
		FeelsLikeC:      item.Main.FeelsLike,
		MinTempC:        item.Main.TempMin,
		MaxTempC:        item.Main.TempMax,
		PressureHPa:     item.Main.Pressure,
		Humidity:        item.Main.Humidity,
		WindSpeedMS:     item.Wind.Speed,
		WindDeg:         item.Wind.Deg,
		CloudCover:      item.Clouds.All,
		RainProbability: item.Pop,
		ObservedAt:      at,
	}

	if len(item.Weather) > 0 {
		s.Category = types.WeatherCategory(item.Weather[0].Main)
		s.Description = item.Weather[0].Description
		s.Icon = item.Weather[0].Icon
	}

	if item.Rain != nil {
		s.RainVolume1hMM = item.Rain.OneHour
		s.RainVolume3hMM = item.Rain.ThreeHour
	}

	return s
}

func dateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
