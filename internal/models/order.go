package models

import (
	"gorm.io/gorm"
)

// Order statuses
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Order is created by the frontend menu app once a customer submits a cart
type Order struct {
	gorm.Model

	Name   string      `json:"name"`
	Status string      `json:"status" gorm:"default:pending"`
	Items  []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
}

// OrderItem is one line of an order
type OrderItem struct {
	gorm.Model

	OrderID    uint    `json:"order_id" gorm:"index"`
	MenuItemID uint    `json:"menu_item_id"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"` // TODO: snapshot from MenuItem.Price once pricing rules land
}
