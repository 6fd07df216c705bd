package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/zaika/pkg/auth"
	"github.com/shashiranjanraj/zaika/pkg/response"
)

// TokenCookie is the cookie consulted when no Authorization header is sent.
const TokenCookie = "token"

type userKey struct{}
type userIDKey struct{}
type roleKey struct{}

// UserResolver loads the account for a validated subject claim. Returning
// ok=false means the user no longer exists.
type UserResolver func(ctx context.Context, id uint) (interface{}, bool)

// Authenticate is the auth gate for protected routes. It extracts the bearer
// token (Authorization header first, then the token cookie), validates the
// signature and expiry, resolves the subject to a live account via resolve,
// and attaches id/role/user to the request context. Any failure short-circuits
// with a 401 envelope.
func Authenticate(resolve UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				response.Err(w, http.StatusUnauthorized, "No token provided")
				return
			}

			claims, err := auth.ValidateToken(token)
			if err != nil {
				if errors.Is(err, auth.ErrExpired) {
					response.Err(w, http.StatusUnauthorized, "Token Expired")
					return
				}
				response.Err(w, http.StatusUnauthorized, "Invalid Token")
				return
			}

			id, ok := claims.UserID()
			if !ok {
				response.Err(w, http.StatusUnauthorized, "Invalid Token")
				return
			}

			// 401 rather than 404: the token was cryptographically valid,
			// but the account behind it is gone.
			user, ok := resolve(r.Context(), id)
			if !ok {
				response.Err(w, http.StatusUnauthorized, "User not found")
				return
			}

			ctx := r.Context()
			ctx = context.WithValue(ctx, userIDKey{}, id)
			ctx = context.WithValue(ctx, roleKey{}, claims.Role)
			ctx = context.WithValue(ctx, userKey{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}

	if c, err := r.Cookie(TokenCookie); err == nil {
		return c.Value
	}
	return ""
}

// UserIDFromCtx returns the authenticated user's id.
func UserIDFromCtx(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(userIDKey{}).(uint)
	return id, ok
}

// RoleFromCtx returns the authenticated user's role claim.
func RoleFromCtx(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(roleKey{}).(string)
	return role, ok
}

// UserFromCtx returns the resolved account attached by Authenticate.
// Callers type-assert to their user model.
func UserFromCtx(ctx context.Context) (interface{}, bool) {
	u := ctx.Value(userKey{})
	return u, u != nil
}
