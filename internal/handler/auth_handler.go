package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ledgerline/backend/pkg/auth"
)

// AuthHandler handles admin login and logout.
type AuthHandler struct {
	credentials   auth.Credentials
	sessionSecret []byte
	secureCookies bool
	now           func() time.Time
}

func NewAuthHandler(credentials auth.Credentials, sessionSecret []byte, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		credentials:   credentials,
		sessionSecret: sessionSecret,
		secureCookies: secureCookies,
		now:           time.Now,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName(),
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// Login handles POST /api/admin/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "credentials_required")
		return
	}
	if !h.credentials.Check(req.Email, req.Password) {
		slog.Warn("admin login rejected", "request_id", RequestIDFromContext(r.Context()))
		writeError(w, http.StatusUnauthorized, "invalid_credentials")
		return
	}

	token, err := auth.CreateSessionToken(h.credentials.Email, h.sessionSecret, h.now())
	if err != nil {
		slog.Error("failed to create session token", "error", err)
		writeError(w, http.StatusInternalServerError, "login_failed")
		return
	}
	h.setSessionCookie(w, token, int(auth.SessionTTL.Seconds()))
	writeJSON(w, http.StatusOK, map[string]string{"ok": "true", "email": h.credentials.Email})
}

// Logout handles POST /api/admin/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.setSessionCookie(w, "", -1)
	writeJSON(w, http.StatusOK, map[string]string{"ok": "true"})
}

// Session handles GET /api/admin/session. It sits behind the admin middleware.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	email, ok := auth.AdminFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"email": email})
}
