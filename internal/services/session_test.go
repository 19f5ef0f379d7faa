package services

import (
	"testing"
	"time"

	"github.com/fondago/fonda-backend/internal/models"
	"github.com/fondago/fonda-backend/internal/storage"
)

func TestSessionCreateExpiry(t *testing.T) {
	store := storage.NewMemoryStore()
	sessions := NewSessionService(store, time.Hour)

	session, err := sessions.Create("+507000")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if session.State != models.SessionStarted {
		t.Errorf("state = %s, want %s", session.State, models.SessionStarted)
	}
	if got := session.ExpiresAt.Sub(session.CreatedAt); got != time.Hour {
		t.Errorf("ExpiresAt - CreatedAt = %s, want %s", got, time.Hour)
	}
}

func TestSessionCreateNormalizesPhone(t *testing.T) {
	store := storage.NewMemoryStore()
	sessions := NewSessionService(store, time.Hour)

	session, err := sessions.Create("whatsapp:+507000")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if session.Phone != "+507000" {
		t.Errorf("phone = %q, want %q", session.Phone, "+507000")
	}
}

func TestSessionTokenUniqueness(t *testing.T) {
	store := storage.NewMemoryStore()
	sessions := NewSessionService(store, time.Hour)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		session, err := sessions.Create("+507000")
		if err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
		if seen[session.Token] {
			t.Fatalf("duplicate token generated: %s", session.Token)
		}
		seen[session.Token] = true
	}
}

func TestSessionUpdateByToken(t *testing.T) {
	store := storage.NewMemoryStore()
	sessions := NewSessionService(store, time.Hour)

	session, err := sessions.Create("+507000")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	orderID := uint(42)
	inProgress := models.SessionOrderInProgress
	updated, err := sessions.UpdateByToken(session.Token, SessionUpdate{
		State:   &inProgress,
		OrderID: &orderID,
	})
	if err != nil {
		t.Fatalf("UpdateByToken returned error: %v", err)
	}
	if updated.State != models.SessionOrderInProgress {
		t.Errorf("state = %s, want %s", updated.State, models.SessionOrderInProgress)
	}
	if updated.OrderID == nil || *updated.OrderID != 42 {
		t.Errorf("order ID not updated: %v", updated.OrderID)
	}
	if updated.ExpiresAt != session.ExpiresAt {
		t.Error("update must not extend the session expiry")
	}
}

func TestSessionUpdateNotFound(t *testing.T) {
	store := storage.NewMemoryStore()
	sessions := NewSessionService(store, time.Hour)

	menuSent := models.SessionMenuSent
	_, err := sessions.UpdateByToken("missing", SessionUpdate{State: &menuSent})
	if err != storage.ErrNotFound {
		t.Errorf("UpdateByToken on missing token = %v, want ErrNotFound", err)
	}
}

func TestSessionUpdateRejectsInvalidState(t *testing.T) {
	store := storage.NewMemoryStore()
	sessions := NewSessionService(store, time.Hour)

	session, err := sessions.Create("+507000")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	bogus := models.SessionState("paused")
	if _, err := sessions.UpdateByToken(session.Token, SessionUpdate{State: &bogus}); err == nil {
		t.Error("UpdateByToken should reject an unknown state")
	}
}

func TestSessionDeleteIdempotent(t *testing.T) {
	store := storage.NewMemoryStore()
	sessions := NewSessionService(store, time.Hour)

	session, err := sessions.Create("+507000")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := sessions.DeleteByToken(session.Token); err != nil {
		t.Errorf("DeleteByToken returned error: %v", err)
	}
	// Deleting again is not an error
	if err := sessions.DeleteByToken(session.Token); err != nil {
		t.Errorf("second DeleteByToken returned error: %v", err)
	}
}

func TestCleanupExpiredBoundary(t *testing.T) {
	store := storage.NewMemoryStore()
	sessions := NewSessionService(store, time.Hour)
	now := time.Now()

	seed := []struct {
		token     string
		expiresAt time.Time
	}{
		{"past", now.Add(-time.Minute)},
		{"boundary", now}, // exactly at the cutoff is expired too
		{"future", now.Add(time.Minute)},
	}
	for _, s := range seed {
		_, err := store.CreateSession(&models.Session{
			Token:     s.token,
			Phone:     "+507000",
			State:     models.SessionStarted,
			ExpiresAt: s.expiresAt,
		})
		if err != nil {
			t.Fatalf("failed to seed session %s: %v", s.token, err)
		}
	}

	removed, err := sessions.CleanupExpired(now)
	if err != nil {
		t.Fatalf("CleanupExpired returned error: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}

	if _, err := store.GetSessionByToken("future"); err != nil {
		t.Error("unexpired session must survive the sweep")
	}
	if _, err := store.GetSessionByToken("past"); err != storage.ErrNotFound {
		t.Error("expired session must be removed by the sweep")
	}
}
