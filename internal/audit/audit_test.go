package audit

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func readLog(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	return rows
}

func TestNewLoggerWritesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth.csv")

	if _, err := NewLogger(path); err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	// Reopening must not duplicate the header.
	if _, err := NewLogger(path); err != nil {
		t.Fatalf("NewLogger reopen: %v", err)
	}

	rows := readLog(t, path)
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want header only", len(rows))
	}
	want := []string{"timestamp", "username", "action", "ip_address", "user_agent", "session_duration"}
	for i, col := range want {
		if rows[0][i] != col {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], col)
		}
	}
}

func TestRecordAppendsOneLinePerEvent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth.csv")
	logger, err := NewLogger(path)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}

	ts := time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)
	if err := logger.Record(Event{
		Timestamp: ts,
		Username:  "alice",
		Action:    "login",
		IPAddress: "10.0.0.1",
		UserAgent: "curl/8.0",
	}); err != nil {
		t.Fatalf("Record login: %v", err)
	}

	duration := 42.5
	if err := logger.Record(Event{
		Timestamp:       ts.Add(43 * time.Second),
		Username:        "alice",
		Action:          "logout",
		SessionDuration: &duration,
	}); err != nil {
		t.Fatalf("Record logout: %v", err)
	}

	rows := readLog(t, path)
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2 events", len(rows))
	}

	login := rows[1]
	if login[0] != "2024-06-01 10:30:00" || login[1] != "alice" || login[2] != "login" || login[5] != "" {
		t.Errorf("login row = %v", login)
	}
	logout := rows[2]
	if logout[2] != "logout" || logout[5] != "42.5" {
		t.Errorf("logout row = %v", logout)
	}
}

func TestRecordFillsZeroTimestamp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth.csv")
	logger, err := NewLogger(path)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}

	if err := logger.Record(Event{Username: "bob", Action: "login_failed"}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	rows := readLog(t, path)
	if rows[1][0] == "" {
		t.Error("timestamp not filled for zero-time event")
	}
}
