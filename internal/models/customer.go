package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Customer represents someone ordering through WhatsApp or the web menu
type Customer struct {
	gorm.Model

	PhoneNumber   string     `json:"phone_number" gorm:"uniqueIndex"` // WhatsApp number - unique
	Name          string     `json:"name"`
	LastOrderDate *time.Time `json:"last_order_date"`
}

// BeforeCreate hook to normalize the phone number before it hits the database
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	c.PhoneNumber = NormalizePhone(c.PhoneNumber)
	return nil
}

// NormalizePhone strips the transport scheme marker Twilio prepends
// (e.g. "whatsapp:+50760001234" -> "+50760001234")
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	return strings.TrimPrefix(phone, "whatsapp:")
}
