package auth

import (
	"context"
	"encoding/json"
	"net/http"
)

type contextKey string

const adminKey contextKey = "admin_email"

// AdminFromContext returns the signed-in admin's e-mail address.
func AdminFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(adminKey).(string)
	return v, ok
}

// WithAdmin stores the admin e-mail in ctx.
func WithAdmin(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, adminKey, email)
}

func writeUnauthorized(w http.ResponseWriter, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}

// RequireAdmin rejects requests without a valid session cookie and puts the
// admin on the request context.
func RequireAdmin(sessionSecret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName())
			if err != nil {
				writeUnauthorized(w, "unauthorized")
				return
			}

			email, err := VerifySessionToken(cookie.Value, sessionSecret)
			if err != nil {
				writeUnauthorized(w, "invalid_session")
				return
			}

			ctx := WithAdmin(r.Context(), email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// DevAdmin is the placeholder admin used when AUTH_REQUIRED=false.
const DevAdmin = "dev-admin@localhost"

// DevAuth puts DevAdmin on every request context.
func DevAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := WithAdmin(r.Context(), DevAdmin)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
