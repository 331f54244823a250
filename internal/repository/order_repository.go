package repository

import (
	"time"

	"cardapio_digital/internal/models"

	"gorm.io/gorm"
)

// OrderListOptions narrows List results. Zero values mean "no filter".
type OrderListOptions struct {
	Status string
	From   *time.Time
	To     *time.Time
	Limit  int
}

type OrderRepository interface {
	CreateWithItems(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	List(opts OrderListOptions) ([]models.Order, error)
	UpdateStatus(id uint, status string) error
	Delete(id uint) error
	CountByStatuses(statuses []string) (int64, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// CreateWithItems persists the order and its items in one transaction.
func (r *orderRepository) CreateWithItems(order *models.Order) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
}

func (r *orderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items.MenuItem").First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) List(opts OrderListOptions) ([]models.Order, error) {
	query := r.db.Preload("Items.MenuItem").Order("created_at desc")

	if opts.Status != "" && opts.Status != "all" {
		query = query.Where("status = ?", opts.Status)
	}
	if opts.From != nil {
		query = query.Where("created_at >= ?", *opts.From)
	}
	if opts.To != nil {
		query = query.Where("created_at < ?", *opts.To)
	}
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}

	var orders []models.Order
	err := query.Find(&orders).Error
	return orders, err
}

func (r *orderRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.Order{}).Where("id = ?", id).Update("status", status).Error
}

func (r *orderRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, id).Error
	})
}

func (r *orderRepository) CountByStatuses(statuses []string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Order{}).Where("status IN ?", statuses).Count(&count).Error
	return count, err
}
