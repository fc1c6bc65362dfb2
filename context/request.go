package context

import (
	"context"
)

type contextkey string

const (
	requestIDKey contextkey = "requestID"
)

// ContextSetRequestID binds the request ID to ctx.
func ContextSetRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// ContextGetRequestID retrieves the request ID from ctx.
// Returns "" if none was set.
func ContextGetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
