package context

import (
	"context"

	"boothbuzz-admin/model"
)

const (
	ContextKeyCorrelationID ContextKey = "Correlation-Id"
	ContextKeySessionUser   ContextKey = "Session-User"
	ContextKeySessionToken  ContextKey = "Session-Token"
)

type ContextKey string

func NewContext(correlationID string) context.Context {
	return context.WithValue(context.Background(), ContextKeyCorrelationID, correlationID)
}

func SetContextWithValue(ctx context.Context, key ContextKey, value string) context.Context {
	return context.WithValue(ctx, key, value)
}

func GetContextValue(ctx context.Context, key ContextKey) string {
	v := ctx.Value(key)
	if v != nil {
		if ret, ok := v.(string); ok {
			return ret
		}
	}
	return ""
}

// WithSessionUser stores the signed-in user for the rest of the request.
func WithSessionUser(ctx context.Context, u *model.User) context.Context {
	return context.WithValue(ctx, ContextKeySessionUser, u)
}

// SessionUser returns the signed-in user, or nil for anonymous requests.
func SessionUser(ctx context.Context) *model.User {
	u, _ := ctx.Value(ContextKeySessionUser).(*model.User)
	return u
}
