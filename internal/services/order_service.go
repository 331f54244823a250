package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"cardapio_digital/internal/models"
	"cardapio_digital/internal/repository"

	"github.com/google/uuid"
)

var ErrNoItems = errors.New("order must contain at least one item")

type OrderItemInput struct {
	MenuItemID uint    `json:"menu_item_id" binding:"required"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
}

type CreateOrderInput struct {
	Items    []OrderItemInput `json:"items" binding:"required"`
	Total    float64          `json:"total" binding:"required"`
	Table    string           `json:"table"`
	Customer string           `json:"customer"`
	Notes    string           `json:"notes"`
}

// OrderStats are computed over the returned set at call time, never cached.
type OrderStats struct {
	Total        int     `json:"total"`
	Pending      int     `json:"pending"`
	Preparing    int     `json:"preparing"`
	Ready        int     `json:"ready"`
	Delivered    int     `json:"delivered"`
	TotalRevenue float64 `json:"total_revenue"`
}

type OrderService interface {
	CreateOrder(restaurantID uint, input CreateOrderInput) (*models.Order, error)
	GetOrder(id uint) (*models.Order, error)
	ListOrders(opts repository.OrderListOptions) ([]models.Order, OrderStats, error)
	UpdateStatus(id uint, status string) (*models.Order, error)
	DeleteOrder(id uint) error
	QueueLength() (int, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
}

func NewOrderService(orderRepo repository.OrderRepository) OrderService {
	return &orderService{orderRepo: orderRepo}
}

// CreateOrder persists the order with its item snapshot in one transaction.
// The client-supplied prices and total are stored as given; there is no
// re-validation against current menu prices.
func (s *orderService) CreateOrder(restaurantID uint, input CreateOrderInput) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, ErrNoItems
	}

	items := make([]models.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		quantity := item.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		items = append(items, models.OrderItem{
			MenuItemID: item.MenuItemID,
			Quantity:   quantity,
			Price:      item.Price,
		})
	}

	table := input.Table
	if table == "" {
		table = "Balcão"
	}
	customer := input.Customer
	if customer == "" {
		customer = "Cliente"
	}

	order := &models.Order{
		OrderNumber:  newOrderNumber(),
		Status:       string(models.OrderPending),
		Total:        input.Total,
		TableLabel:   table,
		Customer:     customer,
		Notes:        input.Notes,
		RestaurantID: restaurantID,
		Items:        items,
	}

	if err := s.orderRepo.CreateWithItems(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Re-read so the response carries resolved menu item references.
	return s.orderRepo.GetByID(order.ID)
}

func (s *orderService) GetOrder(id uint) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

func (s *orderService) ListOrders(opts repository.OrderListOptions) ([]models.Order, OrderStats, error) {
	orders, err := s.orderRepo.List(opts)
	if err != nil {
		return nil, OrderStats{}, err
	}

	stats := OrderStats{Total: len(orders)}
	for _, order := range orders {
		stats.TotalRevenue += order.Total
		switch models.OrderStatus(order.Status) {
		case models.OrderPending:
			stats.Pending++
		case models.OrderPreparing:
			stats.Preparing++
		case models.OrderReady:
			stats.Ready++
		case models.OrderDelivered:
			stats.Delivered++
		}
	}
	return orders, stats, nil
}

// UpdateStatus overwrites the status field with any of the five values.
// Transitions are deliberately unrestricted so staff can correct mistakes
// (e.g. move DELIVERED back to READY).
func (s *orderService) UpdateStatus(id uint, status string) (*models.Order, error) {
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("unknown order status %q", status)
	}

	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	return s.orderRepo.GetByID(id)
}

func (s *orderService) DeleteOrder(id uint) error {
	return s.orderRepo.Delete(id)
}

// QueueLength counts orders currently waiting on the kitchen. The assistant
// turns it into a rough wait-time estimate.
func (s *orderService) QueueLength() (int, error) {
	count, err := s.orderRepo.CountByStatuses([]string{
		string(models.OrderPending),
		string(models.OrderPreparing),
	})
	return int(count), err
}

func newOrderNumber() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102"), id[:8])
}
