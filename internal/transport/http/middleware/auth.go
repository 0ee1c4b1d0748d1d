package middleware

import (
	"context"
	"net/http"
	"strings"

	"paydesk/internal/domain/auth"
	"paydesk/internal/transport/http/api"
)

type ctxKey int

const ctxKeyClerk ctxKey = iota

type ClerkContext struct {
	UserID string
	Email  string
}

// Auth rejects any request without a valid bearer token. The whole API is
// clerk-only, so there is no anonymous path past this middleware.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			parts := strings.SplitN(header, " ", 2)
			if header == "" || len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
				return
			}

			claims, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "invalid or expired token", GetRequestID(r.Context()))
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyClerk, ClerkContext{
				UserID: claims.UserID,
				Email:  claims.Email,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetClerk(ctx context.Context) (ClerkContext, bool) {
	clerk, ok := ctx.Value(ctxKeyClerk).(ClerkContext)
	return clerk, ok
}
