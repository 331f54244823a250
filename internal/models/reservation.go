package models

import (
	"time"

	"gorm.io/gorm"
)

type Reservation struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name" gorm:"not null"`
	Phone        string         `json:"phone" gorm:"not null"`
	Email        string         `json:"email"`
	Date         string         `json:"date" gorm:"not null;index"` // YYYY-MM-DD
	Time         string         `json:"time" gorm:"not null"`       // HH:MM
	People       int            `json:"people" gorm:"not null"`
	TableSize    int            `json:"table_size" gorm:"not null"`
	Notes        string         `json:"notes" gorm:"type:text"`
	Status       string         `json:"status" gorm:"default:'CONFIRMED'"`
	RestaurantID uint           `json:"restaurant_id" gorm:"index"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type ReservationStatus string

const (
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationCancelled ReservationStatus = "CANCELLED"
)
