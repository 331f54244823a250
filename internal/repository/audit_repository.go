package repository

import (
	"cardapio_digital/internal/models"

	"gorm.io/gorm"
)

type AuditRepository interface {
	Create(entry *models.AuditLog) error
	GetRecent(limit int) ([]models.AuditLog, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(entry *models.AuditLog) error {
	return r.db.Create(entry).Error
}

func (r *auditRepository) GetRecent(limit int) ([]models.AuditLog, error) {
	var entries []models.AuditLog
	query := r.db.Order("created_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&entries).Error
	return entries, err
}
