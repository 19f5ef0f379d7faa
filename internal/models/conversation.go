package models

import (
	"encoding/json"
	"log"
	"time"

	"gorm.io/gorm"
)

// ConversationState is the current position of a customer in the ordering dialogue
type ConversationState string

const (
	StateGreeting        ConversationState = "greeting"
	StateSelectingType   ConversationState = "selecting_type"
	StateAwaitingAddress ConversationState = "awaiting_address"
	StateSelectingItems  ConversationState = "selecting_items"
	StateConfirmingOrder ConversationState = "confirming_order"
	StateOrderConfirmed  ConversationState = "order_confirmed"
)

// Valid reports whether s is one of the known conversation states.
// Legacy rows may carry states from older versions of the flow; callers
// must treat those as a reset, never as an error.
func (s ConversationState) Valid() bool {
	switch s {
	case StateGreeting, StateSelectingType, StateAwaitingAddress,
		StateSelectingItems, StateConfirmingOrder, StateOrderConfirmed:
		return true
	}
	return false
}

// Order type choices stored in the conversation scratch data
const (
	OrderTypeDelivery = "delivery"
	OrderTypePickup   = "pickup"
)

// Conversation tracks one customer's WhatsApp ordering dialogue.
// Exactly one row per customer - the row is reused across orders.
type Conversation struct {
	gorm.Model

	CustomerID    uint              `json:"customer_id" gorm:"uniqueIndex"`
	State         ConversationState `json:"state" gorm:"type:varchar(32)"`
	TemporaryData string            `json:"temporary_data"` // JSON-encoded Scratch, opaque to storage
	LastMessageAt time.Time         `json:"last_message_at"`
	CartID        string            `json:"cart_id"` // reference to the frontend cart
}

// Scratch is the per-conversation data carried between turns. It is
// serialized into Conversation.TemporaryData after every turn.
type Scratch struct {
	OrderType      string `json:"orderType,omitempty"`
	SessionToken   string `json:"sessionToken,omitempty"`
	Address        string `json:"address,omitempty"`
	PickupLocation string `json:"pickupLocation,omitempty"`
}

// DecodeScratch parses raw temporary data. Malformed payloads degrade to
// an empty Scratch so a bad row can never break a conversation turn.
func DecodeScratch(raw string) Scratch {
	var s Scratch
	if raw == "" {
		return s
	}
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		log.Printf("⚠️  Discarding malformed conversation scratch data: %v", err)
		return Scratch{}
	}
	return s
}

// Encode serializes the scratch data for storage.
func (s Scratch) Encode() string {
	data, err := json.Marshal(s)
	if err != nil {
		return "{}"
	}
	return string(data)
}
