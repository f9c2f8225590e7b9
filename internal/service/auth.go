// Package service holds the authentication flow: credential verification,
// JWT session tokens, login-log bookkeeping, and CSV audit events.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rosterhq/roster/internal/audit"
	"github.com/rosterhq/roster/internal/cryptox"
	"github.com/rosterhq/roster/internal/model"
	"github.com/rosterhq/roster/internal/store"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserDisabled       = errors.New("user is disabled")
)

// Principal is the authenticated identity carried through request
// contexts. LogID identifies the login-log row opened at login so logout
// closes exactly that session.
type Principal struct {
	UserID   int64
	Username string
	LogID    int64
}

// AuthService verifies credentials, issues and validates JWTs, and records
// authentication events in both the login-log table and the CSV audit log.
type AuthService struct {
	store     *store.Store
	auditLog  *audit.Logger
	jwtSecret []byte
	tokenTTL  time.Duration
	logger    *slog.Logger
}

// NewAuthService wires an AuthService. auditLog may be nil, in which case
// no CSV events are written.
func NewAuthService(st *store.Store, auditLog *audit.Logger, jwtSecret string, tokenTTL time.Duration, logger *slog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 12 * time.Hour
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		store:     st,
		auditLog:  auditLog,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// Login verifies the username/password pair, opens a login-log row, and
// returns a signed session token. Failed attempts are audited; the caller
// only ever learns ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password, ip, userAgent string) (string, *model.User, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.recordAudit(username, "login_failed", ip, userAgent, nil)
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("look up user: %w", err)
	}
	if !user.IsActive {
		s.recordAudit(username, "login_failed", ip, userAgent, nil)
		return "", nil, ErrUserDisabled
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		s.recordAudit(username, "login_failed", ip, userAgent, nil)
		return "", nil, ErrInvalidCredentials
	}

	ev := &model.LoginEvent{
		UserID:    user.ID,
		IPAddress: optional(ip),
		UserAgent: optional(userAgent),
	}
	if err := s.store.CreateLoginEvent(ctx, ev); err != nil {
		return "", nil, fmt.Errorf("record login: %w", err)
	}

	token, err := s.issueToken(user, ev.ID)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	s.recordAudit(username, "login", ip, userAgent, nil)
	return token, user, nil
}

// Logout closes the session's login-log row, setting the logout time and
// session duration exactly once, and audits the event.
func (s *AuthService) Logout(ctx context.Context, p Principal, ip, userAgent string) error {
	ev, err := s.store.CloseLoginEvent(ctx, p.LogID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Token predates the log table or the row is gone; still audit.
			s.recordAudit(p.Username, "logout", ip, userAgent, nil)
			return nil
		}
		return fmt.Errorf("close login log: %w", err)
	}

	s.recordAudit(p.Username, "logout", ip, userAgent, ev.SessionDuration)
	return nil
}

// LoginHistory returns the user's login events, newest first.
func (s *AuthService) LoginHistory(ctx context.Context, userID int64) ([]model.LoginEvent, error) {
	return s.store.ListLoginEvents(ctx, userID)
}

// ValidateToken verifies a session JWT and returns its principal.
func (s *AuthService) ValidateToken(tokenStr string) (*Principal, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidCredentials
	}

	return &Principal{
		UserID:   claims.UserID,
		Username: claims.Username,
		LogID:    claims.LogID,
	}, nil
}

func (s *AuthService) issueToken(user *model.User, logID int64) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		UserID:   user.ID,
		Username: user.Username,
		LogID:    logID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			Issuer:    "roster",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *AuthService) recordAudit(username, action, ip, userAgent string, duration *float64) {
	if s.auditLog == nil {
		return
	}
	if err := s.auditLog.Record(audit.Event{
		Username:        username,
		Action:          action,
		IPAddress:       ip,
		UserAgent:       userAgent,
		SessionDuration: duration,
	}); err != nil {
		s.logger.Warn("audit log write failed", "action", action, "error", err)
	}
}

type sessionClaims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	LogID    int64  `json:"log_id"`
	jwt.RegisteredClaims
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
