// Package ctxmeta is the neutral layer for request metadata carried
// through context.Context (request id, authenticated user, trace ids).
// The HTTP layer and the logger both depend on this small package
// instead of on each other.
package ctxmeta

import "context"

type ctxKey string

const (
	// Unexported key type avoids collisions with other packages.
	KeyRequestID ctxKey = "request_id"
	KeyUserID    ctxKey = "user_id"
	KeyUserRole  ctxKey = "user_role"
)

// WithRequestID stores the request id (no-op when empty).
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil || requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// RequestIDFromContext extracts the request id.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(KeyRequestID).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithUser stores the authenticated user identity supplied by the
// auth collaborator (no-op when the id is empty).
func WithUser(ctx context.Context, userID, role string) context.Context {
	if ctx == nil || userID == "" {
		return ctx
	}
	ctx = context.WithValue(ctx, KeyUserID, userID)
	if role != "" {
		ctx = context.WithValue(ctx, KeyUserRole, role)
	}
	return ctx
}

// UserIDFromContext extracts the authenticated user id.
func UserIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(KeyUserID).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// UserRoleFromContext extracts the caller's role name.
func UserRoleFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(KeyUserRole).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
