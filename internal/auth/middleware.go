package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

type contextKey int

const userContextKey contextKey = iota

// ContextWithUser returns a new context carrying the given user.
func ContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext extracts the user from the context, or nil if not present.
func UserFromContext(ctx context.Context) *User {
	user, _ := ctx.Value(userContextKey).(*User)
	return user
}

// SessionMiddleware validates the bearer token, loads the subject user and
// injects it into the request context. Any role is accepted; role checks are
// left to the handlers. onFailure, if given, is called with a short reason on
// every rejected request.
func SessionMiddleware(tokens *TokenIssuer, users UserLookup, onFailure ...func(reason string)) func(http.Handler) http.Handler {
	fail := func(w http.ResponseWriter, reason, message string) {
		for _, fn := range onFailure {
			fn(reason)
		}
		writeUnauthorized(w, message)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractBearerToken(r)
			if token == "" {
				fail(w, "missing_token", "missing or malformed authorization header")
				return
			}

			userID, err := tokens.Verify(token)
			if err != nil {
				if errors.Is(err, ErrTokenExpired) {
					fail(w, "expired_token", "token has expired")
					return
				}
				fail(w, "invalid_token", "invalid token")
				return
			}

			user, err := users.LookupUser(r.Context(), userID)
			if err != nil || user == nil {
				fail(w, "unknown_subject", "invalid token")
				return
			}

			ctx := ContextWithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ExtractBearerToken returns the token from an "Authorization: Bearer" header,
// or "" when the header is absent or malformed.
func ExtractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Code:    "unauthorized",
		Message: message,
	})
}
