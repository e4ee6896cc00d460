package auth

import "context"

type contextKey string

const userIDKey contextKey = "trainmate-user-id"

// ContextWithUserID returns a ctx holding the authenticated user id.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the authenticated user id set by the auth
// middleware, or false when the request was not authenticated.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}
