package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/alecgard/candor/internal/auth"
	"github.com/alecgard/candor/internal/metrics"
	"github.com/alecgard/candor/internal/user"
)

// Authenticator checks a login and returns an access token.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (string, *user.User, error)
}

type authHandler struct {
	authenticator Authenticator
	users         user.Getter
	metrics       *metrics.Metrics
}

func newAuthHandler(a Authenticator, users user.Getter, m *metrics.Metrics) *authHandler {
	return &authHandler{authenticator: a, users: users, metrics: m}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string     `json:"access_token"`
	User        *user.User `json:"user"`
}

// Login handles POST /api/auth/login.
func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := readJSON(w, r, &req); err != nil {
		writeInvalidBody(w, err)
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "email and password are required")
		return
	}

	token, u, err := h.authenticator.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			if h.metrics != nil {
				h.metrics.IncAuthFailure("invalid_credentials")
			}
			auditLog(r, "login_failed", "session", "", "email", req.Email)
		}
		writeServiceError(w, r, err)
		return
	}

	if h.metrics != nil {
		h.metrics.IncAuthSuccess()
	}
	auditLog(r, "login", "session", u.ID, "user_id", u.ID, "user_role", u.Role.String())

	writeJSON(w, http.StatusOK, loginResponse{AccessToken: token, User: u})
}

// Me handles GET /api/auth/me.
func (h *authHandler) Me(w http.ResponseWriter, r *http.Request) {
	requester := auth.UserFromContext(r.Context())
	if requester == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	u, err := h.users.GetByID(r.Context(), requester.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}
