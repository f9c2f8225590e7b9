package handler

import (
	"errors"
	"net/http"

	"github.com/rosterhq/roster/internal/server/middleware"
	"github.com/rosterhq/roster/internal/service"
)

// AuthHandler handles session login, logout, and login history.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// Login exchanges credentials for a session token and opens a login-log
// row.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	token, user, err := h.auth.Login(r.Context(), req.Username, req.Password,
		clientIP(r), r.UserAgent())
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid username or password")
		return
	case errors.Is(err, service.ErrUserDisabled):
		writeError(w, http.StatusForbidden, "account is disabled")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "login: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
	})
}

// Logout closes the session's login-log row, computing its duration.
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	p := middleware.GetPrincipal(r.Context())
	if p == nil {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	if err := h.auth.Logout(r.Context(), *p, clientIP(r), r.UserAgent()); err != nil {
		writeError(w, http.StatusInternalServerError, "logout: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Logins returns the caller's login history, newest first.
// GET /api/v1/auth/logins
func (h *AuthHandler) Logins(w http.ResponseWriter, r *http.Request) {
	p := middleware.GetPrincipal(r.Context())
	if p == nil {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	events, err := h.auth.LoginHistory(r.Context(), p.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "login history: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, events)
}
