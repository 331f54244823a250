package models

import (
	"time"

	"gorm.io/gorm"
)

type Payment struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	OrderID        uint           `json:"order_id" gorm:"not null;index"`
	Amount         float64        `json:"amount" gorm:"not null"`
	Method         string         `json:"method" gorm:"not null"` // PIX, CARD, CASH
	Status         string         `json:"status" gorm:"default:'PENDING'"`
	AsaasPaymentID string         `json:"asaas_payment_id" gorm:"index"`
	CardLast4      string         `json:"card_last4"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type PaymentMethod string

const (
	PaymentPix  PaymentMethod = "PIX"
	PaymentCard PaymentMethod = "CARD"
	PaymentCash PaymentMethod = "CASH"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentCancelled PaymentStatus = "CANCELLED"
)
