package auth

import (
	"testing"
	"time"
)

func TestSessions(t *testing.T) {
	s := NewSessions("secret", time.Hour)
	user := User{ID: "g-123", Email: "anna@example.com"}

	t.Run("round trip", func(t *testing.T) {
		token, err := s.Issue(user)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, err := s.Parse(token)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if *got != user {
			t.Errorf("expected %+v, got %+v", user, *got)
		}
	})

	t.Run("rejects another key", func(t *testing.T) {
		token, _ := NewSessions("other", time.Hour).Issue(user)
		if _, err := s.Parse(token); err != ErrInvalidSession {
			t.Errorf("expected ErrInvalidSession, got %v", err)
		}
	})

	t.Run("rejects expired", func(t *testing.T) {
		past := NewSessions("secret", time.Hour)
		past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, _ := past.Issue(user)
		if _, err := s.Parse(token); err != ErrInvalidSession {
			t.Errorf("expected ErrInvalidSession, got %v", err)
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		if _, err := s.Parse("not-a-token"); err != ErrInvalidSession {
			t.Errorf("expected ErrInvalidSession, got %v", err)
		}
	})
}
