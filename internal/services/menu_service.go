package services

import (
	"errors"
	"fmt"
	"time"

	"cardapio_digital/internal/models"
	"cardapio_digital/internal/repository"
)

// ErrCategoryNotEmpty blocks deletion of a category that still has menu
// items attached. The items must be moved or deleted first.
var ErrCategoryNotEmpty = errors.New("category still has menu items attached")

// MenuCache keeps the active menu hot between item mutations. *redis.Client
// satisfies it; a nil cache disables caching.
type MenuCache interface {
	GetCached(key string, dest interface{}) error
	SetCached(key string, value interface{}, ttl time.Duration) error
	DeleteCached(key string) error
}

type CreateMenuItemInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required"`
	CategoryID  uint    `json:"category_id" binding:"required"`
	Image       string  `json:"image"`
	Ingredients string  `json:"ingredients"`
	PrepTime    int     `json:"prep_time"`
}

type UpdateMenuItemInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Active      *bool    `json:"active"`
	Image       *string  `json:"image"`
	CategoryID  *uint    `json:"category_id"`
}

type CategoryWithCount struct {
	models.Category
	ItemCount int64 `json:"item_count"`
}

type MenuService interface {
	GetActiveMenu(restaurantID uint) ([]models.MenuItem, error)
	ListMenuItems(restaurantID uint) ([]models.MenuItem, error)
	GetMenuItem(id uint) (*models.MenuItem, error)
	CreateMenuItem(restaurantID uint, input CreateMenuItemInput) (*models.MenuItem, error)
	UpdateMenuItem(id uint, input UpdateMenuItemInput) (*models.MenuItem, error)
	DeleteMenuItem(id uint) error
	ListCategories(restaurantID uint) ([]CategoryWithCount, error)
	CreateCategory(restaurantID uint, name, description string) (*models.Category, error)
	DeleteCategory(id uint) error
}

type menuService struct {
	menuItemRepo repository.MenuItemRepository
	categoryRepo repository.CategoryRepository
	cache        MenuCache
	cacheTTL     time.Duration
}

func NewMenuService(menuItemRepo repository.MenuItemRepository, categoryRepo repository.CategoryRepository, cache MenuCache, cacheTTL time.Duration) MenuService {
	return &menuService{
		menuItemRepo: menuItemRepo,
		categoryRepo: categoryRepo,
		cache:        cache,
		cacheTTL:     cacheTTL,
	}
}

func menuCacheKey(restaurantID uint) string {
	return fmt.Sprintf("menu:%d", restaurantID)
}

func (s *menuService) GetActiveMenu(restaurantID uint) ([]models.MenuItem, error) {
	if s.cache != nil {
		var items []models.MenuItem
		if err := s.cache.GetCached(menuCacheKey(restaurantID), &items); err == nil {
			return items, nil
		}
	}

	items, err := s.menuItemRepo.GetActiveByRestaurant(restaurantID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		// Cache failures only cost the next read a trip to the database.
		s.cache.SetCached(menuCacheKey(restaurantID), items, s.cacheTTL)
	}
	return items, nil
}

func (s *menuService) invalidateMenu(restaurantID uint) {
	if s.cache != nil {
		s.cache.DeleteCached(menuCacheKey(restaurantID))
	}
}

// ListMenuItems returns every item, inactive included, for admin screens.
func (s *menuService) ListMenuItems(restaurantID uint) ([]models.MenuItem, error) {
	return s.menuItemRepo.GetByRestaurant(restaurantID)
}

func (s *menuService) GetMenuItem(id uint) (*models.MenuItem, error) {
	return s.menuItemRepo.GetByID(id)
}

func (s *menuService) CreateMenuItem(restaurantID uint, input CreateMenuItemInput) (*models.MenuItem, error) {
	if _, err := s.categoryRepo.GetByID(input.CategoryID); err != nil {
		return nil, fmt.Errorf("category not found: %w", err)
	}

	image := input.Image
	if image == "" {
		image = "🍕"
	}

	item := &models.MenuItem{
		Name:         input.Name,
		Description:  input.Description,
		Price:        input.Price,
		Image:        image,
		Ingredients:  input.Ingredients,
		PrepTime:     input.PrepTime,
		Active:       true,
		CategoryID:   input.CategoryID,
		RestaurantID: restaurantID,
	}
	if err := s.menuItemRepo.Create(item); err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}
	s.invalidateMenu(restaurantID)
	return s.menuItemRepo.GetByID(item.ID)
}

func (s *menuService) UpdateMenuItem(id uint, input UpdateMenuItemInput) (*models.MenuItem, error) {
	item, err := s.menuItemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Price != nil {
		item.Price = *input.Price
	}
	if input.Active != nil {
		item.Active = *input.Active
	}
	if input.Image != nil {
		item.Image = *input.Image
	}
	if input.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(*input.CategoryID); err != nil {
			return nil, fmt.Errorf("category not found: %w", err)
		}
		item.CategoryID = *input.CategoryID
	}

	if err := s.menuItemRepo.Update(item); err != nil {
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}
	s.invalidateMenu(item.RestaurantID)
	return s.menuItemRepo.GetByID(item.ID)
}

func (s *menuService) DeleteMenuItem(id uint) error {
	item, err := s.menuItemRepo.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.menuItemRepo.Delete(id); err != nil {
		return err
	}
	s.invalidateMenu(item.RestaurantID)
	return nil
}

func (s *menuService) ListCategories(restaurantID uint) ([]CategoryWithCount, error) {
	categories, err := s.categoryRepo.GetByRestaurant(restaurantID)
	if err != nil {
		return nil, err
	}

	result := make([]CategoryWithCount, 0, len(categories))
	for _, category := range categories {
		count, err := s.menuItemRepo.CountByCategory(category.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, CategoryWithCount{Category: category, ItemCount: count})
	}
	return result, nil
}

func (s *menuService) CreateCategory(restaurantID uint, name, description string) (*models.Category, error) {
	category := &models.Category{
		Name:         name,
		Description:  description,
		Active:       true,
		RestaurantID: restaurantID,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

// DeleteCategory refuses to delete while menu items reference the category.
func (s *menuService) DeleteCategory(id uint) error {
	if _, err := s.categoryRepo.GetByID(id); err != nil {
		return err
	}

	count, err := s.menuItemRepo.CountByCategory(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryNotEmpty
	}
	return s.categoryRepo.Delete(id)
}
