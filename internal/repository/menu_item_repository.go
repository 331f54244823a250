package repository

import (
	"cardapio_digital/internal/models"

	"gorm.io/gorm"
)

type MenuItemRepository interface {
	Create(item *models.MenuItem) error
	GetByID(id uint) (*models.MenuItem, error)
	GetActiveByRestaurant(restaurantID uint) ([]models.MenuItem, error)
	GetByRestaurant(restaurantID uint) ([]models.MenuItem, error)
	Update(item *models.MenuItem) error
	Delete(id uint) error
	CountByCategory(categoryID uint) (int64, error)
	CountActive() (int64, error)
	Count() (int64, error)
}

type menuItemRepository struct {
	db *gorm.DB
}

func NewMenuItemRepository(db *gorm.DB) MenuItemRepository {
	return &menuItemRepository{db: db}
}

func (r *menuItemRepository) Create(item *models.MenuItem) error {
	return r.db.Create(item).Error
}

func (r *menuItemRepository) GetByID(id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.db.Preload("Category").First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *menuItemRepository) GetActiveByRestaurant(restaurantID uint) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := r.db.Preload("Category").
		Where("restaurant_id = ? AND active = ?", restaurantID, true).
		Find(&items).Error
	return items, err
}

func (r *menuItemRepository) GetByRestaurant(restaurantID uint) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := r.db.Preload("Category").
		Where("restaurant_id = ?", restaurantID).
		Find(&items).Error
	return items, err
}

func (r *menuItemRepository) Update(item *models.MenuItem) error {
	return r.db.Save(item).Error
}

func (r *menuItemRepository) Delete(id uint) error {
	return r.db.Delete(&models.MenuItem{}, id).Error
}

func (r *menuItemRepository) CountByCategory(categoryID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.MenuItem{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

func (r *menuItemRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&models.MenuItem{}).Where("active = ?", true).Count(&count).Error
	return count, err
}

func (r *menuItemRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.MenuItem{}).Count(&count).Error
	return count, err
}
