package services

import (
	"strings"
	"testing"
	"time"

	"github.com/fondago/fonda-backend/internal/models"
	"github.com/fondago/fonda-backend/internal/storage"
)

func newTestWhatsApp(t *testing.T) (*WhatsAppService, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	sessions := NewSessionService(store, time.Hour)
	engine := NewConversationEngine(sessions, "http://menu.test")
	return NewWhatsAppService(store, engine), store
}

func TestProcessMessageFullFlow(t *testing.T) {
	whatsapp, store := newTestWhatsApp(t)

	// Turn 1: greeting
	reply, err := whatsapp.ProcessMessage("whatsapp:+507000", "hola")
	if err != nil {
		t.Fatalf("turn 1 failed: %v", err)
	}
	if !strings.Contains(reply, "delivery") {
		t.Errorf("greeting reply should mention delivery, got %q", reply)
	}

	// The transport prefix must be stripped before customer lookup
	customer, err := store.GetCustomerByPhone("+507000")
	if err != nil {
		t.Fatalf("customer was not created: %v", err)
	}

	conversation, err := store.GetConversationByCustomer(customer.ID)
	if err != nil {
		t.Fatalf("conversation was not created: %v", err)
	}
	if conversation.State != models.StateSelectingType {
		t.Errorf("state after turn 1 = %s, want %s", conversation.State, models.StateSelectingType)
	}

	// Turn 2: choose delivery, session gets minted
	reply, err = whatsapp.ProcessMessage("whatsapp:+507000", "Delivery")
	if err != nil {
		t.Fatalf("turn 2 failed: %v", err)
	}
	if !strings.Contains(reply, "/menu?token=") {
		t.Errorf("reply should contain a menu link, got %q", reply)
	}

	conversation, err = store.GetConversationByCustomer(customer.ID)
	if err != nil {
		t.Fatalf("conversation lookup failed: %v", err)
	}
	if conversation.State != models.StateAwaitingAddress {
		t.Errorf("state after turn 2 = %s, want %s", conversation.State, models.StateAwaitingAddress)
	}

	scratch := models.DecodeScratch(conversation.TemporaryData)
	if scratch.OrderType != models.OrderTypeDelivery {
		t.Errorf("persisted order type = %q, want %q", scratch.OrderType, models.OrderTypeDelivery)
	}
	if scratch.SessionToken == "" {
		t.Fatal("persisted scratch should carry the session token")
	}

	// Turn 3: address. The scratch written in turn 2 must round-trip.
	_, err = whatsapp.ProcessMessage("whatsapp:+507000", "Calle 50, Edificio Torre")
	if err != nil {
		t.Fatalf("turn 3 failed: %v", err)
	}

	conversation, _ = store.GetConversationByCustomer(customer.ID)
	if conversation.State != models.StateSelectingItems {
		t.Errorf("state after turn 3 = %s, want %s", conversation.State, models.StateSelectingItems)
	}
	scratch = models.DecodeScratch(conversation.TemporaryData)
	if scratch.Address != "Calle 50, Edificio Torre" {
		t.Errorf("persisted address = %q", scratch.Address)
	}
	if scratch.SessionToken == "" {
		t.Error("session token must survive the address turn")
	}

	session, err := store.GetSessionByToken(scratch.SessionToken)
	if err != nil {
		t.Fatalf("session lookup failed: %v", err)
	}
	if session.State != models.SessionMenuSent {
		t.Errorf("session state = %s, want %s", session.State, models.SessionMenuSent)
	}
}

func TestProcessMessageMalformedScratch(t *testing.T) {
	whatsapp, store := newTestWhatsApp(t)

	customer, err := store.FindOrCreateCustomerByPhone("+507000")
	if err != nil {
		t.Fatalf("failed to seed customer: %v", err)
	}
	conversation, err := store.FindOrCreateConversation(customer.ID)
	if err != nil {
		t.Fatalf("failed to seed conversation: %v", err)
	}
	conversation.State = models.StateAwaitingAddress
	conversation.TemporaryData = "{not json"
	if err := store.UpdateConversation(conversation); err != nil {
		t.Fatalf("failed to corrupt scratch: %v", err)
	}

	reply, err := whatsapp.ProcessMessage("+507000", "123 Main St")
	if err != nil {
		t.Fatalf("malformed scratch must not fail the turn: %v", err)
	}
	if reply == "" {
		t.Error("reply should not be empty")
	}

	conversation, _ = store.GetConversationByCustomer(customer.ID)
	if !conversation.State.Valid() {
		t.Errorf("state %q is not a valid state", conversation.State)
	}
}

func TestProcessMessageReusesConversation(t *testing.T) {
	whatsapp, store := newTestWhatsApp(t)

	if _, err := whatsapp.ProcessMessage("+507000", "hola"); err != nil {
		t.Fatalf("turn 1 failed: %v", err)
	}
	if _, err := whatsapp.ProcessMessage("+507000", "buenas"); err != nil {
		t.Fatalf("turn 2 failed: %v", err)
	}

	customers, err := store.GetAllCustomers()
	if err != nil {
		t.Fatalf("GetAllCustomers failed: %v", err)
	}
	if len(customers) != 1 {
		t.Errorf("customer count = %d, want 1", len(customers))
	}
}
