package models

import (
	"gorm.io/gorm"
)

// Location is a restaurant branch customers can order from
type Location struct {
	gorm.Model

	Name                  string  `json:"name"`
	Address               string  `json:"address"`
	Latitude              float64 `json:"latitude"`
	Longitude             float64 `json:"longitude"`
	CashierPhone          string  `json:"cashier_phone"` // WhatsApp number for the cashier
	DeliveryRadius        float64 `json:"delivery_radius"`
	MinimumOrder          float64 `json:"minimum_order"`
	EstimatedDeliveryTime int     `json:"estimated_delivery_time"` // in minutes
}
