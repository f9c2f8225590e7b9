// Package audit appends authentication events to a CSV file. The log is
// append-only: lines are never rewritten or compacted.
package audit

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"
)

var header = []string{"timestamp", "username", "action", "ip_address", "user_agent", "session_duration"}

// Event is one authentication event. SessionDuration is only set for
// logout events.
type Event struct {
	Timestamp       time.Time
	Username        string
	Action          string // "login", "logout", "login_failed"
	IPAddress       string
	UserAgent       string
	SessionDuration *float64 // seconds
}

// Logger writes events to a CSV file, one line per event. Safe for
// concurrent use.
type Logger struct {
	mu   sync.Mutex
	path string
}

// NewLogger opens (or creates) the audit log at path. A header row is
// written when the file does not exist yet.
func NewLogger(path string) (*Logger, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("create audit log: %w", err)
		}
		w := csv.NewWriter(f)
		if err := w.Write(header); err != nil {
			f.Close()
			return nil, fmt.Errorf("write audit log header: %w", err)
		}
		w.Flush()
		if err := w.Error(); err != nil {
			f.Close()
			return nil, fmt.Errorf("flush audit log header: %w", err)
		}
		if err := f.Close(); err != nil {
			return nil, fmt.Errorf("close audit log: %w", err)
		}
	}
	return &Logger{path: path}, nil
}

// Record appends one event. A zero Timestamp is filled with the current
// time.
func (l *Logger) Record(ev Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}

	duration := ""
	if ev.SessionDuration != nil {
		duration = strconv.FormatFloat(*ev.SessionDuration, 'f', -1, 64)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{
		ev.Timestamp.Format("2006-01-02 15:04:05"),
		ev.Username,
		ev.Action,
		ev.IPAddress,
		ev.UserAgent,
		duration,
	}); err != nil {
		return fmt.Errorf("write audit event: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush audit event: %w", err)
	}
	return nil
}
