package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fairweather/internal/types"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

var (
	testNow      = time.Date(2026, 9, 1, 8, 30, 0, 0, time.UTC)
	testLocation = types.Location{Lat: 51.5074, Lon: -0.1278, DisplayName: "London"}
)

// forecastItemJSON renders one 3-hourly sample. Temperature doubles as the
// marker for which sample got picked.
func forecastItemJSON(dtTxt string, temp float64) string {
	return fmt.Sprintf(`{
		"dt": 0,
		"main": {"temp": %.1f, "feels_like": %.1f, "temp_min": 18.0, "temp_max": 24.5, "pressure": 1014, "humidity": 55},
		"weather": [{"main": "Clouds", "description": "scattered clouds", "icon": "03d"}],
		"clouds": {"all": 35},
		"wind": {"speed": 3.2, "deg": 180},
		"rain": {"3h": 0.4},
		"pop": 0.2,
		"dt_txt": "%s"
	}`, temp, temp+1, dtTxt)
}

func forecastJSON(items ...string) string {
	body := `{"cod": "200", "list": [`
	for i, item := range items {
		if i > 0 {
			body += ","
		}
		body += item
	}
	return body + `]}`
}

func newTestProvider(t *testing.T, baseURL string) *Provider {
	t.Helper()
	return NewProvider(
		Config{
			APIKey:    types.SecretString("test-api-key"),
			BaseURL:   baseURL,
			UserAgent: "fairweather-test/1.0",
			Retry:     RetryPolicy{MaxRetries: 2, MinWait: time.Millisecond, MaxWait: 5 * time.Millisecond},
		},
		nil,
		fixedClock{now: testNow},
		withSleepFunc(func(time.Duration) {}),
	)
}

func TestGetSnapshotPicksSampleClosestToNoon(t *testing.T) {
	var gotQuery atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery.Store(r.URL.Query())
		fmt.Fprint(w, forecastJSON(
			forecastItemJSON("2026-09-02 21:00:00", 15.0),
			forecastItemJSON("2026-09-03 09:00:00", 19.0),
			forecastItemJSON("2026-09-03 15:00:00", 23.0),
			forecastItemJSON("2026-09-03 18:00:00", 21.0),
			forecastItemJSON("2026-09-04 12:00:00", 25.0),
		))
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL)
	got, err := p.GetSnapshot(context.Background(), testLocation, time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	// 09:00 and 15:00 are equidistant from noon; the earlier sample wins
	// because later samples only replace on strictly smaller distance.
	assert.Equal(t, 19.0, got.TemperatureC)
	assert.Equal(t, 20.0, got.FeelsLikeC)
	assert.Equal(t, 18.0, got.MinTempC)
	assert.Equal(t, 24.5, got.MaxTempC)
	assert.Equal(t, 1014.0, got.PressureHPa)
	assert.Equal(t, 55, got.Humidity)
	assert.Equal(t, 3.2, got.WindSpeedMS)
	assert.Equal(t, 180, got.WindDeg)
	assert.Equal(t, 35, got.CloudCover)
	assert.Equal(t, types.CategoryClouds, got.Category)
	assert.Equal(t, "scattered clouds", got.Description)
	assert.Equal(t, "03d", got.Icon)
	assert.Equal(t, 0.2, got.RainProbability)
	assert.Equal(t, 0.4, got.RainVolume3hMM)
	assert.Equal(t, time.Date(2026, 9, 3, 9, 0, 0, 0, time.UTC), got.ObservedAt)

	q := gotQuery.Load().(url.Values)
	assert.Equal(t, "51.5074", q.Get("lat"))
	assert.Equal(t, "-0.1278", q.Get("lon"))
	assert.Equal(t, "metric", q.Get("units"))
	assert.Equal(t, "test-api-key", q.Get("appid"))
}

func TestGetSnapshotDecodesGzipResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "gzip", r.Header.Get("Accept-Encoding"))

		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		fmt.Fprint(gz, forecastJSON(forecastItemJSON("2026-09-02 12:00:00", 22.5)))
		require.NoError(t, gz.Close())
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL)
	got, err := p.GetSnapshot(context.Background(), testLocation, time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 22.5, got.TemperatureC)
}

func TestGetSnapshotPropagatesHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "req-123", r.Header.Get("X-Request-Id"))
		assert.Equal(t, "fairweather-test/1.0", r.Header.Get("User-Agent"))
		fmt.Fprint(w, forecastJSON(forecastItemJSON("2026-09-02 12:00:00", 20.0)))
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL)
	ctx := types.WithRequestID(context.Background(), "req-123")
	_, err := p.GetSnapshot(ctx, testLocation, time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
}

func TestGetSnapshotNoSampleForDate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, forecastJSON(forecastItemJSON("2026-09-02 12:00:00", 20.0)))
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL)
	_, err := p.GetSnapshot(context.Background(), testLocation, time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)
	assert.Equal(t, types.ErrCodeNotFoundForecast, types.CodeOf(err))
	assert.True(t, types.IsProviderUnavailable(err))
}

func TestGetSnapshotValidation(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, forecastJSON())
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL)

	tests := []struct {
		name     string
		loc      types.Location
		date     time.Time
		wantCode types.ErrorCode
	}{
		{"latitude out of range", types.Location{Lat: 91, Lon: 0}, testNow, types.ErrCodeValidationInvalidLat},
		{"longitude out of range", types.Location{Lat: 0, Lon: -181}, testNow, types.ErrCodeValidationInvalidLon},
		{"date in the past", testLocation, testNow.AddDate(0, 0, -2), types.ErrCodeValidationDateHorizon},
		{"date beyond horizon", testLocation, testNow.AddDate(0, 0, 6), types.ErrCodeValidationDateHorizon},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.GetSnapshot(context.Background(), tt.loc, tt.date)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, types.CodeOf(err))
		})
	}

	assert.Equal(t, int64(0), hits.Load(), "validation failures must not reach the network")
}

func TestGetSnapshotAuthError(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{"cod": 401, "message": "Invalid API key"})
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL)
	_, err := p.GetSnapshot(context.Background(), testLocation, time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)
	assert.Equal(t, types.ErrCodeUpstreamAuth, types.CodeOf(err))
	assert.Contains(t, err.Error(), "Invalid API key")
	assert.Equal(t, int64(1), hits.Load(), "auth failures are not retried")
}

func TestGetSnapshotNotFoundCoordinates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{"cod": "404", "message": "city not found"})
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL)
	_, err := p.GetSnapshot(context.Background(), testLocation, time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)
	assert.Equal(t, types.ErrCodeNotFoundForecast, types.CodeOf(err))
}

func TestGetSnapshotRetriesServerErrors(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, forecastJSON(forecastItemJSON("2026-09-02 12:00:00", 20.0)))
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL)
	got, err := p.GetSnapshot(context.Background(), testLocation, time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 20.0, got.TemperatureC)
	assert.Equal(t, int64(2), hits.Load())
}

func TestGetSnapshotRateLimitedAfterRetries(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Header().Set("Retry-After", "1")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL)
	_, err := p.GetSnapshot(context.Background(), testLocation, time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)
	assert.Equal(t, types.ErrCodeUpstreamRateLimited, types.CodeOf(err))
	assert.Equal(t, int64(3), hits.Load(), "one initial attempt plus two retries")
}

func TestGetSnapshotCircuitBreakerOpens(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL)
	date := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	// Two failing calls (three attempts each) push consecutive failures past
	// the trip threshold.
	for i := 0; i < 2; i++ {
		_, err := p.GetSnapshot(context.Background(), testLocation, date)
		require.Error(t, err)
	}
	before := hits.Load()

	_, err := p.GetSnapshot(context.Background(), testLocation, date)
	require.Error(t, err)
	assert.Equal(t, types.ErrCodeUpstreamUnavailable, types.CodeOf(err))
	assert.Equal(t, before, hits.Load(), "open breaker must short-circuit without hitting upstream")
}

func TestGetSnapshotMalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"cod": "200", "list": `)
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL)
	_, err := p.GetSnapshot(context.Background(), testLocation, time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)
	assert.Equal(t, types.ErrCodeUpstreamUnavailable, types.CodeOf(err))
}

func TestGetSnapshotSkipsUnparseableSamples(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, forecastJSON(
			forecastItemJSON("not-a-timestamp", 99.0),
			forecastItemJSON("2026-09-02 12:00:00", 21.0),
		))
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL)
	got, err := p.GetSnapshot(context.Background(), testLocation, time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 21.0, got.TemperatureC)
}
