package models

import (
	"time"

	"gorm.io/gorm"
)

type Order struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	OrderNumber  string         `json:"order_number" gorm:"unique;not null"`
	Status       string         `json:"status" gorm:"default:'PENDING';index"`
	Total        float64        `json:"total" gorm:"not null"`
	TableLabel   string         `json:"table" gorm:"column:table_label"`
	Customer     string         `json:"customer"`
	Notes        string         `json:"notes" gorm:"type:text"`
	RestaurantID uint           `json:"restaurant_id" gorm:"not null;index"`
	Items        []OrderItem    `json:"items" gorm:"foreignKey:OrderID"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderPreparing OrderStatus = "PREPARING"
	OrderReady     OrderStatus = "READY"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// ValidStatus reports whether s is one of the five order statuses. Any of
// them may be written at any time, there is no transition table.
func ValidStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderPending, OrderPreparing, OrderReady, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}
