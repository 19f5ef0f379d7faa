package models

import (
	"time"

	"gorm.io/gorm"
)

// SessionState tracks how far a web ordering session has progressed.
// Transitions are driven by callers (the conversation flow and the
// frontend menu app) - the store does not enforce ordering.
type SessionState string

const (
	SessionStarted         SessionState = "started"
	SessionMenuSent        SessionState = "menu_sent"
	SessionOrderInProgress SessionState = "order_in_progress"
	SessionOrderConfirmed  SessionState = "order_confirmed"
	SessionOrderCompleted  SessionState = "order_completed"
	SessionExpired         SessionState = "expired"
)

// Valid reports whether s is a known session state.
func (s SessionState) Valid() bool {
	switch s {
	case SessionStarted, SessionMenuSent, SessionOrderInProgress,
		SessionOrderConfirmed, SessionOrderCompleted, SessionExpired:
		return true
	}
	return false
}

// Session is a short-lived credential linking a phone number to an
// in-progress web ordering flow. The token is the sole lookup key and
// is embedded in the menu link sent over WhatsApp.
type Session struct {
	gorm.Model

	Token     string       `json:"token" gorm:"uniqueIndex"`
	Phone     string       `json:"phone" gorm:"index"`
	State     SessionState `json:"state" gorm:"type:varchar(32)"`
	OrderID   *uint        `json:"order_id"`
	ExpiresAt time.Time    `json:"expires_at"` // always CreatedAt + TTL, never extended
}
