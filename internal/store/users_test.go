package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rosterhq/roster/internal/model"
)

func seedUser(t *testing.T, st *Store, username string) *model.User {
	t.Helper()
	u := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "$argon2id$v=19$m=65536,t=2,p=1$c2FsdA$aGFzaA",
		IsActive:     true,
	}
	if err := st.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	st := newTestStore(t)
	seedUser(t, st, "alice")

	dup := &model.User{
		Username:     "alice",
		Email:        "other@example.com",
		PasswordHash: "x",
		IsActive:     true,
	}
	if err := st.CreateUser(context.Background(), dup); !errors.Is(err, ErrConstraint) {
		t.Errorf("error = %v, want ErrConstraint", err)
	}
}

func TestGetUserByUsername(t *testing.T) {
	st := newTestStore(t)
	u := seedUser(t, st, "alice")

	got, err := st.GetUserByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != u.ID || got.Email != "alice@example.com" || !got.IsActive {
		t.Errorf("user = %+v", got)
	}

	if _, err := st.GetUserByUsername(context.Background(), "nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown user: error = %v, want ErrNotFound", err)
	}
}

func TestLoginEventLifecycle(t *testing.T) {
	st := newTestStore(t)
	u := seedUser(t, st, "alice")
	ctx := context.Background()

	ip := "10.0.0.1"
	loginAt := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	ev := &model.LoginEvent{UserID: u.ID, LoginTime: loginAt, IPAddress: &ip}
	if err := st.CreateLoginEvent(ctx, ev); err != nil {
		t.Fatalf("create login event: %v", err)
	}
	if ev.ID == 0 {
		t.Fatal("login event has no id")
	}

	open, err := st.OpenLoginEvent(ctx, u.ID)
	if err != nil {
		t.Fatalf("open login event: %v", err)
	}
	if open.ID != ev.ID {
		t.Errorf("open event id = %d, want %d", open.ID, ev.ID)
	}

	closed, err := st.CloseLoginEvent(ctx, ev.ID, loginAt.Add(90*time.Second))
	if err != nil {
		t.Fatalf("close login event: %v", err)
	}
	if closed.LogoutTime == nil || closed.SessionDuration == nil {
		t.Fatal("close did not set logout fields")
	}
	if *closed.SessionDuration != 90 {
		t.Errorf("duration = %v, want 90", *closed.SessionDuration)
	}

	// Closing again must not overwrite the stored duration.
	again, err := st.CloseLoginEvent(ctx, ev.ID, loginAt.Add(time.Hour))
	if err != nil {
		t.Fatalf("second close: %v", err)
	}
	if *again.SessionDuration != 90 {
		t.Errorf("duration rewritten to %v", *again.SessionDuration)
	}

	if _, err := st.OpenLoginEvent(ctx, u.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("open event after close: error = %v, want ErrNotFound", err)
	}
}

func TestListLoginEventsNewestFirst(t *testing.T) {
	st := newTestStore(t)
	u := seedUser(t, st, "alice")
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		ev := &model.LoginEvent{UserID: u.ID, LoginTime: base.Add(time.Duration(i) * time.Hour)}
		if err := st.CreateLoginEvent(ctx, ev); err != nil {
			t.Fatalf("create login event %d: %v", i, err)
		}
	}

	events, err := st.ListLoginEvents(ctx, u.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("events = %d, want 3", len(events))
	}
	for i := 1; i < len(events); i++ {
		if events[i].LoginTime.After(events[i-1].LoginTime) {
			t.Fatal("events not ordered newest first")
		}
	}
}
