package common

import "context"

type contextKey string

// UserEmailKey holds the authenticated user's email in the request context.
const UserEmailKey contextKey = "user_email"

// GetUserEmailFromContext extracts the authenticated email from the request context.
func GetUserEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(UserEmailKey).(string)
	return email, ok
}
