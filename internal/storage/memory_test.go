package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/fondago/fonda-backend/internal/models"
)

func TestFindOrCreateCustomerByPhone(t *testing.T) {
	store := NewMemoryStore()

	first, err := store.FindOrCreateCustomerByPhone("whatsapp:+507000")
	if err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	if first.PhoneNumber != "+507000" {
		t.Errorf("phone = %q, want normalized %q", first.PhoneNumber, "+507000")
	}

	second, err := store.FindOrCreateCustomerByPhone("+507000")
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("second call created a new customer: %d != %d", second.ID, first.ID)
	}
}

func TestFindOrCreateConversation(t *testing.T) {
	store := NewMemoryStore()

	customer, err := store.FindOrCreateCustomerByPhone("+507000")
	if err != nil {
		t.Fatalf("failed to create customer: %v", err)
	}

	first, err := store.FindOrCreateConversation(customer.ID)
	if err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	if first.State != models.StateGreeting {
		t.Errorf("new conversation state = %s, want %s", first.State, models.StateGreeting)
	}

	// One conversation per customer, reused across orders
	second, err := store.FindOrCreateConversation(customer.ID)
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("second call created a new conversation: %d != %d", second.ID, first.ID)
	}
}

func TestSessionLookupNotFound(t *testing.T) {
	store := NewMemoryStore()

	if _, err := store.GetSessionByToken("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetSessionByToken = %v, want ErrNotFound", err)
	}
	if err := store.DeleteSessionByToken("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteSessionByToken = %v, want ErrNotFound", err)
	}
}

func TestDeleteExpiredSessions(t *testing.T) {
	store := NewMemoryStore()
	now := time.Now()

	for _, s := range []*models.Session{
		{Token: "a", Phone: "+1", State: models.SessionStarted, ExpiresAt: now.Add(-time.Hour)},
		{Token: "b", Phone: "+2", State: models.SessionMenuSent, ExpiresAt: now},
		{Token: "c", Phone: "+3", State: models.SessionStarted, ExpiresAt: now.Add(time.Hour)},
	} {
		if _, err := store.CreateSession(s); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	removed, err := store.DeleteExpiredSessions(now)
	if err != nil {
		t.Fatalf("DeleteExpiredSessions failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
	if _, err := store.GetSessionByToken("c"); err != nil {
		t.Errorf("session c should survive: %v", err)
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	store := NewMemoryStore()

	order, err := store.CreateOrder(&models.Order{Name: "Pedido de prueba"})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	if order.Status != models.OrderStatusPending {
		t.Errorf("new order status = %q, want %q", order.Status, models.OrderStatusPending)
	}

	if err := store.UpdateOrderStatus(order.ID, models.OrderStatusConfirmed); err != nil {
		t.Fatalf("UpdateOrderStatus failed: %v", err)
	}
	got, _ := store.GetOrder(order.ID)
	if got.Status != models.OrderStatusConfirmed {
		t.Errorf("status = %q, want %q", got.Status, models.OrderStatusConfirmed)
	}

	if err := store.UpdateOrderStatus(999, models.OrderStatusConfirmed); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateOrderStatus on missing order = %v, want ErrNotFound", err)
	}
}
