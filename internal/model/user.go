package model

import "time"

// User is an authentication principal. PasswordHash is a PHC-format
// Argon2id string and is never serialized.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// LoginEvent is one row of the login-log table. SessionDuration is set
// exactly once, at logout, and holds whole seconds.
type LoginEvent struct {
	ID              int64      `db:"id" json:"id"`
	UserID          int64      `db:"user_id" json:"user_id"`
	LoginTime       time.Time  `db:"login_time" json:"login_time"`
	LogoutTime      *time.Time `db:"logout_time" json:"logout_time,omitempty"`
	SessionDuration *float64   `db:"session_duration" json:"session_duration,omitempty"`
	IPAddress       *string    `db:"ip_address" json:"ip_address,omitempty"`
	UserAgent       *string    `db:"user_agent" json:"user_agent,omitempty"`
}
