package models

import (
	"time"

	"gorm.io/gorm"
)

type MenuItem struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name" gorm:"not null"`
	Description  string         `json:"description" gorm:"type:text"`
	Price        float64        `json:"price" gorm:"not null"`
	Image        string         `json:"image"`
	Ingredients  string         `json:"ingredients" gorm:"type:text"`
	PrepTime     int            `json:"prep_time"`
	Active       bool           `json:"active" gorm:"default:true"`
	CategoryID   uint           `json:"category_id" gorm:"not null;index"`
	RestaurantID uint           `json:"restaurant_id" gorm:"not null;index"`
	Category     *Category      `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}
