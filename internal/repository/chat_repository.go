package repository

import (
	"cardapio_digital/internal/models"

	"gorm.io/gorm"
)

type ChatRepository interface {
	Create(interaction *models.ChatInteraction) error
	GetBySession(sessionID string, limit int) ([]models.ChatInteraction, error)
	CountByRestaurant(restaurantID uint) (int64, error)
}

type chatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) Create(interaction *models.ChatInteraction) error {
	return r.db.Create(interaction).Error
}

func (r *chatRepository) GetBySession(sessionID string, limit int) ([]models.ChatInteraction, error) {
	var interactions []models.ChatInteraction
	query := r.db.Where("session_id = ?", sessionID).Order("created_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&interactions).Error
	return interactions, err
}

func (r *chatRepository) CountByRestaurant(restaurantID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.ChatInteraction{}).
		Where("restaurant_id = ?", restaurantID).
		Count(&count).Error
	return count, err
}
