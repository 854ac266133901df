package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"boothbuzz-admin/auth"
	c "boothbuzz-admin/context"
	"boothbuzz-admin/logger"
	"boothbuzz-admin/model"
	"boothbuzz-admin/nav"
	"boothbuzz-admin/response"
	"boothbuzz-admin/session"
)

type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

type SessionLoader interface {
	LoadUser(ctx context.Context, userID string) (*model.User, error)
}

// Authenticate requires a Bearer token whose user still has a live session.
// The session's user record is put on the request context.
func Authenticate(tokens TokenParser, sessions SessionLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if !strings.HasPrefix(raw, "Bearer ") {
				response.Unauthorized().Send(ctx, w)
				return
			}
			token := strings.TrimSpace(strings.TrimPrefix(raw, "Bearer "))

			claims, err := tokens.Parse(token)
			if err != nil {
				logger.Warnf(ctx, "Authenticate: %v", err)
				response.Unauthorized().Send(ctx, w)
				return
			}

			u, err := sessions.LoadUser(ctx, claims.Subject)
			if errors.Is(err, session.ErrNotFound) {
				response.Unauthorized().Send(ctx, w)
				return
			}
			if err != nil {
				logger.Errorf(ctx, "Authenticate: loading session for %s: %v", claims.Subject, err)
				response.SomethingWrong().Send(ctx, w)
				return
			}

			ctx = c.WithSessionUser(ctx, u)
			ctx = c.SetContextWithValue(ctx, c.ContextKeySessionToken, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRoles renders Access Denied in place of the handler for any other role.
func RequireRoles(roles ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u := c.SessionUser(r.Context())
			if u == nil {
				response.Unauthorized().Send(r.Context(), w)
				return
			}
			if !nav.HasRole(u.Role, roles...) {
				response.AccessDenied().Send(r.Context(), w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
