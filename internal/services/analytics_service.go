package services

import (
	"fmt"
	"sort"
	"time"

	"cardapio_digital/internal/models"
	"cardapio_digital/internal/repository"
)

type PeriodStats struct {
	Orders    int     `json:"orders"`
	Revenue   float64 `json:"revenue"`
	AvgTicket float64 `json:"avg_ticket,omitempty"`
}

type TopItem struct {
	MenuItemID uint    `json:"menu_item_id"`
	Name       string  `json:"name"`
	Image      string  `json:"image"`
	Quantity   int     `json:"quantity"`
	Revenue    float64 `json:"revenue"`
	Orders     int     `json:"orders"`
}

type HourlyPoint struct {
	Hour    string  `json:"hour"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

type DashboardData struct {
	Today      PeriodStats   `json:"today"`
	Week       PeriodStats   `json:"week"`
	Month      PeriodStats   `json:"month"`
	TopItems   []TopItem     `json:"top_items"`
	HourlyData []HourlyPoint `json:"hourly_data"`
}

type DailySales struct {
	Date    string  `json:"date"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

type StatusBreakdown struct {
	Status  string  `json:"status"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

type CategoryPerformance struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
	Items    int     `json:"items"`
}

type SalesReport struct {
	Summary         PeriodStats       `json:"summary"`
	Orders          []models.Order    `json:"orders"`
	DailySales      []DailySales      `json:"daily_sales"`
	TopItems        []TopItem         `json:"top_items"`
	StatusBreakdown []StatusBreakdown `json:"status_breakdown"`
}

type ProductsReport struct {
	TotalItems  int64                 `json:"total_items"`
	ActiveItems int64                 `json:"active_items"`
	Products    []TopItem             `json:"products"`
	Categories  []CategoryPerformance `json:"categories"`
}

type AnalyticsService interface {
	Dashboard() (*DashboardData, error)
	SalesReport(from, to time.Time) (*SalesReport, error)
	ProductsReport(from, to time.Time) (*ProductsReport, error)
}

type analyticsService struct {
	orderRepo    repository.OrderRepository
	menuItemRepo repository.MenuItemRepository
}

func NewAnalyticsService(orderRepo repository.OrderRepository, menuItemRepo repository.MenuItemRepository) AnalyticsService {
	return &analyticsService{orderRepo: orderRepo, menuItemRepo: menuItemRepo}
}

func (s *analyticsService) Dashboard() (*DashboardData, error) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfWeek := now.AddDate(0, 0, -7)
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	todayOrders, err := s.orderRepo.List(repository.OrderListOptions{From: &startOfDay})
	if err != nil {
		return nil, fmt.Errorf("failed to load today's orders: %w", err)
	}
	weekOrders, err := s.orderRepo.List(repository.OrderListOptions{From: &startOfWeek})
	if err != nil {
		return nil, fmt.Errorf("failed to load week orders: %w", err)
	}
	monthOrders, err := s.orderRepo.List(repository.OrderListOptions{From: &startOfMonth})
	if err != nil {
		return nil, fmt.Errorf("failed to load month orders: %w", err)
	}

	data := &DashboardData{
		Today:      periodStats(todayOrders, true),
		Week:       periodStats(weekOrders, false),
		Month:      periodStats(monthOrders, false),
		TopItems:   topItems(monthOrders, 5),
		HourlyData: hourlyData(todayOrders),
	}
	return data, nil
}

func (s *analyticsService) SalesReport(from, to time.Time) (*SalesReport, error) {
	orders, err := s.orderRepo.List(repository.OrderListOptions{From: &from, To: &to})
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	return &SalesReport{
		Summary:         periodStats(orders, true),
		Orders:          orders,
		DailySales:      dailySales(orders),
		TopItems:        topItems(orders, 10),
		StatusBreakdown: statusBreakdown(orders),
	}, nil
}

func (s *analyticsService) ProductsReport(from, to time.Time) (*ProductsReport, error) {
	orders, err := s.orderRepo.List(repository.OrderListOptions{From: &from, To: &to})
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	total, err := s.menuItemRepo.Count()
	if err != nil {
		return nil, err
	}
	active, err := s.menuItemRepo.CountActive()
	if err != nil {
		return nil, err
	}

	return &ProductsReport{
		TotalItems:  total,
		ActiveItems: active,
		Products:    topItems(orders, 50),
		Categories:  categoryPerformance(orders),
	}, nil
}

func periodStats(orders []models.Order, withAvg bool) PeriodStats {
	stats := PeriodStats{Orders: len(orders)}
	for _, order := range orders {
		stats.Revenue += order.Total
	}
	if withAvg && len(orders) > 0 {
		stats.AvgTicket = stats.Revenue / float64(len(orders))
	}
	return stats
}

func topItems(orders []models.Order, limit int) []TopItem {
	byItem := make(map[uint]*TopItem)
	for _, order := range orders {
		for _, item := range order.Items {
			entry, ok := byItem[item.MenuItemID]
			if !ok {
				entry = &TopItem{MenuItemID: item.MenuItemID}
				if item.MenuItem != nil {
					entry.Name = item.MenuItem.Name
					entry.Image = item.MenuItem.Image
				}
				byItem[item.MenuItemID] = entry
			}
			entry.Quantity += item.Quantity
			entry.Revenue += float64(item.Quantity) * item.Price
			entry.Orders++
		}
	}

	result := make([]TopItem, 0, len(byItem))
	for _, entry := range byItem {
		result = append(result, *entry)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Quantity > result[j].Quantity })
	if len(result) > limit {
		result = result[:limit]
	}
	return result
}

func hourlyData(orders []models.Order) []HourlyPoint {
	points := make([]HourlyPoint, 24)
	for hour := range points {
		points[hour].Hour = fmt.Sprintf("%d:00", hour)
	}
	for _, order := range orders {
		hour := order.CreatedAt.Hour()
		points[hour].Orders++
		points[hour].Revenue += order.Total
	}
	return points
}

func dailySales(orders []models.Order) []DailySales {
	byDay := make(map[string]*DailySales)
	for _, order := range orders {
		day := order.CreatedAt.Format("2006-01-02")
		entry, ok := byDay[day]
		if !ok {
			entry = &DailySales{Date: day}
			byDay[day] = entry
		}
		entry.Orders++
		entry.Revenue += order.Total
	}

	result := make([]DailySales, 0, len(byDay))
	for _, entry := range byDay {
		result = append(result, *entry)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result
}

func statusBreakdown(orders []models.Order) []StatusBreakdown {
	byStatus := make(map[string]*StatusBreakdown)
	for _, order := range orders {
		entry, ok := byStatus[order.Status]
		if !ok {
			entry = &StatusBreakdown{Status: order.Status}
			byStatus[order.Status] = entry
		}
		entry.Count++
		entry.Revenue += order.Total
	}

	result := make([]StatusBreakdown, 0, len(byStatus))
	for _, entry := range byStatus {
		result = append(result, *entry)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Status < result[j].Status })
	return result
}

func categoryPerformance(orders []models.Order) []CategoryPerformance {
	byCategory := make(map[string]*CategoryPerformance)
	for _, order := range orders {
		for _, item := range order.Items {
			name := "Sem categoria"
			if item.MenuItem != nil && item.MenuItem.Category != nil {
				name = item.MenuItem.Category.Name
			}
			entry, ok := byCategory[name]
			if !ok {
				entry = &CategoryPerformance{Name: name}
				byCategory[name] = entry
			}
			entry.Quantity += item.Quantity
			entry.Revenue += float64(item.Quantity) * item.Price
			entry.Items++
		}
	}

	result := make([]CategoryPerformance, 0, len(byCategory))
	for _, entry := range byCategory {
		result = append(result, *entry)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Revenue > result[j].Revenue })
	return result
}
