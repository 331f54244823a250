package models

import (
	"time"
)

// ChatInteraction is an append-only log of assistant turns.
type ChatInteraction struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	SessionID    string    `json:"session_id" gorm:"index"`
	Message      string    `json:"message" gorm:"type:text;not null"`
	Response     string    `json:"response" gorm:"type:text"`
	Keywords     string    `json:"keywords"`
	RestaurantID uint      `json:"restaurant_id" gorm:"index"`
	CreatedAt    time.Time `json:"created_at"`
}
