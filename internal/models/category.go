package models

import (
	"time"

	"gorm.io/gorm"
)

type Category struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name" gorm:"not null"`
	Description  string         `json:"description"`
	SortOrder    int            `json:"sort_order" gorm:"default:0"`
	Active       bool           `json:"active" gorm:"default:true"`
	RestaurantID uint           `json:"restaurant_id" gorm:"not null;index"`
	MenuItems    []MenuItem     `json:"menu_items,omitempty" gorm:"foreignKey:CategoryID"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}
