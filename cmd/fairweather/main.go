// Package main implements the fairweather CLI for one-off suitability
// scoring and alternative-date search.
//
// Usage:
//
//	go run ./cmd/fairweather \
//	  -mode=score -lat=48.8566 -lon=2.3522 -type=wedding -date=2026-09-04
//
//	go run ./cmd/fairweather \
//	  -mode=alternatives -lat=48.8566 -lon=2.3522 -type=picnic \
//	  -date=2026-09-04 -before=3 -after=3 -max=5
//
// Environment variables (see internal/config):
//
//	OPENWEATHER_API_KEY - OpenWeatherMap API key (required)
//	APP_ENV, LOG_LEVEL  - runtime settings
//
// Results are printed as JSON on stdout; logs go to stderr.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"fairweather/internal/config"
	"fairweather/internal/openweather"
	"fairweather/internal/planner"
	"fairweather/internal/scoring"
	"fairweather/internal/types"
)

func main() {
	mode := flag.String("mode", "score", "Operation: score or alternatives")
	lat := flag.Float64("lat", 0, "Latitude of the event location")
	lon := flag.Float64("lon", 0, "Longitude of the event location")
	eventType := flag.String("type", "other", "Event type (sports, wedding, picnic, ...)")
	dateStr := flag.String("date", "", "Event date (YYYY-MM-DD), defaults to today")
	before := flag.Int("before", 2, "Days before the event date to search (alternatives mode)")
	after := flag.Int("after", 2, "Days after the event date to search (alternatives mode)")
	maxResults := flag.Int("max", 0, "Maximum alternatives to return (0 = configured default)")
	dotenv := flag.String("env-file", ".env", "Path to a dotenv file")

	flag.Parse()

	cfg, err := config.Load(*dotenv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	date := time.Now().UTC()
	if *dateStr != "" {
		date, err = time.ParseInLocation(types.DateLayout, *dateStr, time.UTC)
		if err != nil {
			logger.Error("invalid -date, expected YYYY-MM-DD", "value", *dateStr)
			os.Exit(1)
		}
	}

	clock := types.RealClock{}
	provider := openweather.NewProvider(openweather.Config{
		APIKey:    cfg.Provider.APIKey,
		BaseURL:   cfg.Provider.BaseURL,
		UserAgent: cfg.Provider.UserAgent,
		Timeout:   cfg.Provider.Timeout,
	}, logger, clock)

	svc := planner.NewService(provider, scoring.Engine{}, logger, clock, planner.Options{
		Concurrency:   cfg.Search.Concurrency,
		FetchTimeout:  cfg.Search.FetchTimeout,
		SearchTimeout: cfg.Search.SearchTimeout,
		MaxResults:    cfg.Search.MaxResults,
		HorizonDays:   cfg.Search.HorizonDays,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = types.WithRequestID(ctx, uuid.NewString())

	loc := types.Location{Lat: *lat, Lon: *lon}
	et := types.ParseEventType(*eventType)

	var result any
	switch *mode {
	case "score":
		assessment, err := svc.AssessDate(ctx, loc, et, date)
		if err != nil {
			if types.IsProviderUnavailable(err) {
				logger.Warn("no weather data available for date", "date", date.Format(types.DateLayout), "error", err)
				result = map[string]any{"message": "no weather data available", "code": types.CodeOf(err)}
				break
			}
			logger.Error("assessment failed", "error", err)
			os.Exit(1)
		}
		result = assessment

	case "alternatives":
		candidates, err := svc.FindAlternatives(ctx, planner.SearchRequest{
			Location:     loc,
			EventType:    et,
			OriginalDate: date,
			WindowBefore: *before,
			WindowAfter:  *after,
			MaxResults:   *maxResults,
		})
		if err != nil {
			logger.Error("alternative search failed", "error", err)
			os.Exit(1)
		}
		result = candidates

	default:
		logger.Error("unsupported mode", "mode", *mode)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		logger.Error("failed to encode result", "error", err)
		os.Exit(1)
	}
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
