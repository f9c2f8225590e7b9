package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rosterhq/roster/internal/model"
)

// CreateUser inserts a new authentication user. Username and email are
// unique; collisions surface as ErrConstraint.
func (s *Store) CreateUser(ctx context.Context, u *model.User) error {
	u.CreatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, email, password_hash, is_active, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		u.Username, u.Email, u.PasswordHash, u.IsActive, u.CreatedAt)
	if err != nil {
		return classifyWriteError("insert user", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("get user id: %w", err)
	}
	u.ID = id
	return nil
}

// GetUserByUsername returns a user by its unique username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	if err := s.db.GetContext(ctx, &u, "SELECT * FROM users WHERE username = ?", username); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return &u, nil
}

// GetUser returns a user by ID.
func (s *Store) GetUser(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	if err := s.db.GetContext(ctx, &u, "SELECT * FROM users WHERE id = ?", id); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// CreateLoginEvent records a successful login and returns the new row.
func (s *Store) CreateLoginEvent(ctx context.Context, ev *model.LoginEvent) error {
	if ev.LoginTime.IsZero() {
		ev.LoginTime = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO login_logs (user_id, login_time, ip_address, user_agent)
		 VALUES (?, ?, ?, ?)`,
		ev.UserID, ev.LoginTime, ev.IPAddress, ev.UserAgent)
	if err != nil {
		return classifyWriteError("insert login log", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("get login log id: %w", err)
	}
	ev.ID = id
	return nil
}

// CloseLoginEvent sets the logout time on an open login log and computes
// the session duration from the stored login time. The duration is written
// once; a log that already has a logout time is returned unchanged.
func (s *Store) CloseLoginEvent(ctx context.Context, id int64, logoutTime time.Time) (*model.LoginEvent, error) {
	var ev model.LoginEvent
	if err := s.db.GetContext(ctx, &ev, "SELECT * FROM login_logs WHERE id = ?", id); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get login log: %w", err)
	}
	if ev.LogoutTime != nil {
		return &ev, nil
	}

	duration := logoutTime.Sub(ev.LoginTime).Seconds()
	_, err := s.db.ExecContext(ctx,
		"UPDATE login_logs SET logout_time = ?, session_duration = ? WHERE id = ?",
		logoutTime, duration, id)
	if err != nil {
		return nil, fmt.Errorf("close login log: %w", err)
	}
	ev.LogoutTime = &logoutTime
	ev.SessionDuration = &duration
	return &ev, nil
}

// OpenLoginEvent returns the most recent login log for the user that has
// no logout time yet.
func (s *Store) OpenLoginEvent(ctx context.Context, userID int64) (*model.LoginEvent, error) {
	var ev model.LoginEvent
	const q = `SELECT * FROM login_logs
		WHERE user_id = ? AND logout_time IS NULL
		ORDER BY login_time DESC LIMIT 1`
	if err := s.db.GetContext(ctx, &ev, q, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get open login log: %w", err)
	}
	return &ev, nil
}

// ListLoginEvents returns the user's login history, newest first.
func (s *Store) ListLoginEvents(ctx context.Context, userID int64) ([]model.LoginEvent, error) {
	events := make([]model.LoginEvent, 0)
	const q = `SELECT * FROM login_logs WHERE user_id = ? ORDER BY login_time DESC`
	if err := s.db.SelectContext(ctx, &events, q, userID); err != nil {
		return nil, fmt.Errorf("list login logs: %w", err)
	}
	return events, nil
}
