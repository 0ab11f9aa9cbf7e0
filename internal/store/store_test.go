package store

import (
	"testing"
	"time"

	"github.com/pavelanni/quizmaster/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("newTestStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func createTestUser(t *testing.T, s *Store, email, username string) int64 {
	t.Helper()
	id, err := s.CreateUser(model.User{
		Email:        email,
		Username:     username,
		PasswordHash: "$2a$10$fakehashfortesting",
	})
	if err != nil {
		t.Fatalf("createTestUser: %v", err)
	}
	return id
}

func TestUserCRUD(t *testing.T) {
	s := newTestStore(t)

	count, err := s.UserCount()
	if err != nil {
		t.Fatalf("UserCount: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 users, got %d", count)
	}

	id := createTestUser(t, s, "alice@example.com", "alice")

	u, err := s.GetUserByEmail("alice@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if u == nil {
		t.Fatal("expected user, got nil")
	}
	if u.ID != id {
		t.Errorf("expected id %d, got %d", id, u.ID)
	}
	if u.Username != "alice" {
		t.Errorf("expected username 'alice', got %q", u.Username)
	}
	if u.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}

	u, err = s.GetUserByID(id)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if u == nil || u.Email != "alice@example.com" {
		t.Errorf("unexpected user from GetUserByID: %+v", u)
	}

	// Unknown lookups return nil, not an error.
	u, err = s.GetUserByEmail("nobody@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail unknown: %v", err)
	}
	if u != nil {
		t.Errorf("expected nil for unknown email, got %+v", u)
	}
	u, err = s.GetUserByID(9999)
	if err != nil {
		t.Fatalf("GetUserByID unknown: %v", err)
	}
	if u != nil {
		t.Errorf("expected nil for unknown id, got %+v", u)
	}
}

func TestDuplicateEmailRejected(t *testing.T) {
	s := newTestStore(t)
	createTestUser(t, s, "alice@example.com", "alice")

	_, err := s.CreateUser(model.User{
		Email:        "alice@example.com",
		Username:     "alice2",
		PasswordHash: "hash",
	})
	if err == nil {
		t.Fatal("expected unique constraint error for duplicate email")
	}

	count, err := s.UserCount()
	if err != nil {
		t.Fatalf("UserCount: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 user after rejected duplicate, got %d", count)
	}
}

func TestAuthSessions(t *testing.T) {
	s := newTestStore(t)
	id := createTestUser(t, s, "bob@example.com", "bob")

	token, err := s.CreateAuthSession(id)
	if err != nil {
		t.Fatalf("CreateAuthSession: %v", err)
	}
	if len(token) != 64 {
		t.Errorf("expected 64-char hex token, got %d chars", len(token))
	}

	u, err := s.GetSessionUser(token)
	if err != nil {
		t.Fatalf("GetSessionUser: %v", err)
	}
	if u == nil {
		t.Fatal("expected user for valid session")
	}
	if u.ID != id {
		t.Errorf("expected user id %d, got %d", id, u.ID)
	}

	// Unknown token resolves to nil.
	u, err = s.GetSessionUser("deadbeef")
	if err != nil {
		t.Fatalf("GetSessionUser unknown: %v", err)
	}
	if u != nil {
		t.Errorf("expected nil for unknown token, got %+v", u)
	}

	// Deleting the session revokes it.
	if err := s.DeleteAuthSession(token); err != nil {
		t.Fatalf("DeleteAuthSession: %v", err)
	}
	u, err = s.GetSessionUser(token)
	if err != nil {
		t.Fatalf("GetSessionUser after delete: %v", err)
	}
	if u != nil {
		t.Error("expected nil after session deletion")
	}
}

func TestExpiredSessionNotReturned(t *testing.T) {
	s := newTestStore(t)
	id := createTestUser(t, s, "carol@example.com", "carol")

	token, err := s.CreateAuthSession(id)
	if err != nil {
		t.Fatalf("CreateAuthSession: %v", err)
	}

	// Force the session into the past.
	if _, err := s.db.Exec(
		`UPDATE auth_sessions SET expires_at = ? WHERE id = ?`, time.Now().Add(-time.Hour), token,
	); err != nil {
		t.Fatalf("expire session: %v", err)
	}

	u, err := s.GetSessionUser(token)
	if err != nil {
		t.Fatalf("GetSessionUser: %v", err)
	}
	if u != nil {
		t.Error("expected nil for expired session")
	}

	// The expired row was deleted on read.
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM auth_sessions WHERE id = ?`, token).Scan(&n); err != nil {
		t.Fatalf("count sessions: %v", err)
	}
	if n != 0 {
		t.Errorf("expected expired session row to be removed, found %d", n)
	}
}

func TestDeleteExpiredSessions(t *testing.T) {
	s := newTestStore(t)
	id := createTestUser(t, s, "dave@example.com", "dave")

	live, err := s.CreateAuthSession(id)
	if err != nil {
		t.Fatalf("CreateAuthSession: %v", err)
	}
	stale, err := s.CreateAuthSession(id)
	if err != nil {
		t.Fatalf("CreateAuthSession: %v", err)
	}
	if _, err := s.db.Exec(
		`UPDATE auth_sessions SET expires_at = ? WHERE id = ?`, time.Now().Add(-time.Hour), stale,
	); err != nil {
		t.Fatalf("expire session: %v", err)
	}

	if err := s.DeleteExpiredSessions(); err != nil {
		t.Fatalf("DeleteExpiredSessions: %v", err)
	}

	u, err := s.GetSessionUser(live)
	if err != nil || u == nil {
		t.Errorf("expected live session to survive cleanup, got user=%v err=%v", u, err)
	}
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM auth_sessions`).Scan(&n); err != nil {
		t.Fatalf("count sessions: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 remaining session, got %d", n)
	}
}
