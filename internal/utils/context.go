// Package utils holds small helpers shared across the application: typed
// context keys, JWT issuing and validation, password and one-time-code
// hashing, JSON response writing, and the resty HTTP client wrapper.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
type contextKey string

// String implements fmt.Stringer.
func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey stores the authenticated owner id in a request context.
//
//	ctx := context.WithValue(ctx, utils.UserIDCtxKey, int64(42))
var UserIDCtxKey = contextKey("userID")

// TraceIDCtxKey stores the request trace id.
var TraceIDCtxKey = contextKey("traceID")

// GetUserIDFromContext retrieves the owner id stored under [UserIDCtxKey].
// ok is false when the value is missing or has an unexpected type.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}

// GetTraceIDFromContext retrieves the trace id stored under [TraceIDCtxKey].
func GetTraceIDFromContext(ctx context.Context) string {
	traceID, _ := ctx.Value(TraceIDCtxKey).(string)
	return traceID
}
