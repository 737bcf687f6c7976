package types

import "context"

type contextKey string

const requestIDKey contextKey = "request_id"

// WithRequestID stores a correlation ID in the context. Search runs and CLI
// invocations tag their contexts so provider calls and log lines can be
// correlated.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// GetRequestID retrieves the correlation ID from the context, or "" when
// none was set.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
