package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorErrorAndUnwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := NewAppError(ErrCodeUpstreamUnavailable, "provider down", inner)

	assert.Equal(t, "upstream_provider_unavailable: provider down", err.Error())
	assert.True(t, errors.Is(err, inner))

	var appErr *AppError
	require.True(t, errors.As(fmt.Errorf("wrapped: %w", err), &appErr))
	assert.Equal(t, ErrCodeUpstreamUnavailable, appErr.Code)
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{
			name: "direct app error",
			err:  NewAppError(ErrCodeValidationInvalidLat, "bad lat", nil),
			want: ErrCodeValidationInvalidLat,
		},
		{
			name: "wrapped app error",
			err:  fmt.Errorf("search: %w", NewAppError(ErrCodeNotFoundForecast, "no sample", nil)),
			want: ErrCodeNotFoundForecast,
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: ErrCodeInternalUnexpected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeOf(tt.err))
		})
	}
}

func TestErrorCategoryHelpers(t *testing.T) {
	assert.True(t, IsInvalidInput(NewAppError(ErrCodeValidationInvalidLon, "bad lon", nil)))
	assert.False(t, IsInvalidInput(NewAppError(ErrCodeUpstreamTimeout, "slow", nil)))

	assert.True(t, IsProviderUnavailable(NewAppError(ErrCodeUpstreamRateLimited, "429", nil)))
	assert.True(t, IsProviderUnavailable(NewAppError(ErrCodeNotFoundForecast, "no sample", nil)))
	assert.False(t, IsProviderUnavailable(NewAppError(ErrCodeValidationWindow, "bad window", nil)))
}

func TestNewAppErrorWithDetails(t *testing.T) {
	err := NewAppErrorWithDetails(ErrCodeNotFoundForecast, "no sample", nil, map[string]any{"date": "2026-09-05"})
	assert.Equal(t, "2026-09-05", err.Details["date"])
}
