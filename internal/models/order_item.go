package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem snapshots quantity and unit price at order time. It is never
// edited after the order is created.
type OrderItem struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	OrderID    uint           `json:"order_id" gorm:"not null;index"`
	MenuItemID uint           `json:"menu_item_id" gorm:"not null;index"`
	Quantity   int            `json:"quantity" gorm:"not null"`
	Price      float64        `json:"price" gorm:"not null"`
	MenuItem   *MenuItem      `json:"menu_item,omitempty" gorm:"foreignKey:MenuItemID"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}
