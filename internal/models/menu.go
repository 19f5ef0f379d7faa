package models

import (
	"gorm.io/gorm"
)

// MenuCategory groups menu items ("Desayunos", "Bebidas", ...)
type MenuCategory struct {
	gorm.Model

	Name        string     `json:"name"`
	Description string     `json:"description"`
	ImageURL    string     `json:"image_url"`
	Items       []MenuItem `json:"items,omitempty" gorm:"foreignKey:CategoryID"`
}

// MenuItem is a single orderable dish or drink
type MenuItem struct {
	gorm.Model

	CategoryID  uint    `json:"category_id" gorm:"index"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
	Available   bool    `json:"available" gorm:"default:true"`
}
