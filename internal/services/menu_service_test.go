package services

import (
	"testing"
	"time"

	"cardapio_digital/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMenuItemRepo struct {
	items  map[uint]*models.MenuItem
	nextID uint
}

func newFakeMenuItemRepo() *fakeMenuItemRepo {
	return &fakeMenuItemRepo{items: map[uint]*models.MenuItem{}, nextID: 1}
}

func (r *fakeMenuItemRepo) Create(item *models.MenuItem) error {
	item.ID = r.nextID
	r.nextID++
	stored := *item
	r.items[item.ID] = &stored
	return nil
}

func (r *fakeMenuItemRepo) GetByID(id uint) (*models.MenuItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, assert.AnError
	}
	copied := *item
	return &copied, nil
}

func (r *fakeMenuItemRepo) GetActiveByRestaurant(restaurantID uint) ([]models.MenuItem, error) {
	var items []models.MenuItem
	for _, item := range r.items {
		if item.RestaurantID == restaurantID && item.Active {
			items = append(items, *item)
		}
	}
	return items, nil
}

func (r *fakeMenuItemRepo) GetByRestaurant(restaurantID uint) ([]models.MenuItem, error) {
	var items []models.MenuItem
	for _, item := range r.items {
		if item.RestaurantID == restaurantID {
			items = append(items, *item)
		}
	}
	return items, nil
}

func (r *fakeMenuItemRepo) Update(item *models.MenuItem) error {
	stored := *item
	r.items[item.ID] = &stored
	return nil
}

func (r *fakeMenuItemRepo) Delete(id uint) error {
	delete(r.items, id)
	return nil
}

func (r *fakeMenuItemRepo) CountByCategory(categoryID uint) (int64, error) {
	var count int64
	for _, item := range r.items {
		if item.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

func (r *fakeMenuItemRepo) CountActive() (int64, error) {
	var count int64
	for _, item := range r.items {
		if item.Active {
			count++
		}
	}
	return count, nil
}

func (r *fakeMenuItemRepo) Count() (int64, error) {
	return int64(len(r.items)), nil
}

type fakeCategoryRepo struct {
	categories map[uint]*models.Category
	nextID     uint
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: map[uint]*models.Category{}, nextID: 1}
}

func (r *fakeCategoryRepo) Create(category *models.Category) error {
	category.ID = r.nextID
	r.nextID++
	stored := *category
	r.categories[category.ID] = &stored
	return nil
}

func (r *fakeCategoryRepo) GetByID(id uint) (*models.Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, assert.AnError
	}
	copied := *category
	return &copied, nil
}

func (r *fakeCategoryRepo) GetByRestaurant(restaurantID uint) ([]models.Category, error) {
	var categories []models.Category
	for _, category := range r.categories {
		if category.RestaurantID == restaurantID {
			categories = append(categories, *category)
		}
	}
	return categories, nil
}

func (r *fakeCategoryRepo) Update(category *models.Category) error {
	stored := *category
	r.categories[category.ID] = &stored
	return nil
}

func (r *fakeCategoryRepo) Delete(id uint) error {
	delete(r.categories, id)
	return nil
}

type fakeMenuCache struct {
	entries map[string][]models.MenuItem
	hits    int
	misses  int
}

func newFakeMenuCache() *fakeMenuCache {
	return &fakeMenuCache{entries: map[string][]models.MenuItem{}}
}

func (c *fakeMenuCache) GetCached(key string, dest interface{}) error {
	items, ok := c.entries[key]
	if !ok {
		c.misses++
		return assert.AnError
	}
	c.hits++
	*(dest.(*[]models.MenuItem)) = items
	return nil
}

func (c *fakeMenuCache) SetCached(key string, value interface{}, ttl time.Duration) error {
	c.entries[key] = value.([]models.MenuItem)
	return nil
}

func (c *fakeMenuCache) DeleteCached(key string) error {
	delete(c.entries, key)
	return nil
}

func TestGetActiveMenuCacheAside(t *testing.T) {
	itemRepo := newFakeMenuItemRepo()
	categoryRepo := newFakeCategoryRepo()
	require.NoError(t, categoryRepo.Create(&models.Category{Name: "Pizzas", RestaurantID: 1}))
	require.NoError(t, itemRepo.Create(&models.MenuItem{Name: "Pizza", CategoryID: 1, RestaurantID: 1, Active: true}))
	cache := newFakeMenuCache()
	svc := NewMenuService(itemRepo, categoryRepo, cache, time.Minute)

	first, err := svc.GetActiveMenu(1)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, cache.misses)

	second, err := svc.GetActiveMenu(1)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, 1, cache.hits)
}

func TestMenuItemMutationsInvalidateCache(t *testing.T) {
	itemRepo := newFakeMenuItemRepo()
	categoryRepo := newFakeCategoryRepo()
	require.NoError(t, categoryRepo.Create(&models.Category{Name: "Pizzas", RestaurantID: 1}))
	cache := newFakeMenuCache()
	svc := NewMenuService(itemRepo, categoryRepo, cache, time.Minute)

	_, err := svc.GetActiveMenu(1)
	require.NoError(t, err)
	assert.Len(t, cache.entries, 1)

	_, err = svc.CreateMenuItem(1, CreateMenuItemInput{Name: "Pizza Nina Simone", Price: 53, CategoryID: 1})
	require.NoError(t, err)
	assert.Empty(t, cache.entries, "item creation must drop the cached menu")
}

func TestDeleteCategoryBlockedWhileItemsAttached(t *testing.T) {
	itemRepo := newFakeMenuItemRepo()
	categoryRepo := newFakeCategoryRepo()
	require.NoError(t, categoryRepo.Create(&models.Category{Name: "Pizzas", RestaurantID: 1}))
	require.NoError(t, itemRepo.Create(&models.MenuItem{Name: "Pizza Ella Fitzgerald", CategoryID: 1, RestaurantID: 1, Active: true}))
	svc := NewMenuService(itemRepo, categoryRepo, nil, 0)

	err := svc.DeleteCategory(1)

	assert.ErrorIs(t, err, ErrCategoryNotEmpty)
	_, stillThere := categoryRepo.categories[1]
	assert.True(t, stillThere, "category must survive a refused delete")
}

func TestDeleteCategoryEmpty(t *testing.T) {
	itemRepo := newFakeMenuItemRepo()
	categoryRepo := newFakeCategoryRepo()
	require.NoError(t, categoryRepo.Create(&models.Category{Name: "Sobremesas", RestaurantID: 1}))
	svc := NewMenuService(itemRepo, categoryRepo, nil, 0)

	err := svc.DeleteCategory(1)

	require.NoError(t, err)
	_, stillThere := categoryRepo.categories[1]
	assert.False(t, stillThere)
}

func TestCreateMenuItemDefaults(t *testing.T) {
	itemRepo := newFakeMenuItemRepo()
	categoryRepo := newFakeCategoryRepo()
	require.NoError(t, categoryRepo.Create(&models.Category{Name: "Pizzas", RestaurantID: 1}))
	svc := NewMenuService(itemRepo, categoryRepo, nil, 0)

	item, err := svc.CreateMenuItem(1, CreateMenuItemInput{
		Name:       "Pizza Nina Simone",
		Price:      53,
		CategoryID: 1,
	})

	require.NoError(t, err)
	assert.True(t, item.Active)
	assert.Equal(t, "🍕", item.Image)
}

func TestCreateMenuItemUnknownCategory(t *testing.T) {
	svc := NewMenuService(newFakeMenuItemRepo(), newFakeCategoryRepo(), nil, 0)

	_, err := svc.CreateMenuItem(1, CreateMenuItemInput{Name: "Pizza", Price: 50, CategoryID: 99})

	assert.Error(t, err)
}

func TestUpdateMenuItemPartial(t *testing.T) {
	itemRepo := newFakeMenuItemRepo()
	categoryRepo := newFakeCategoryRepo()
	require.NoError(t, categoryRepo.Create(&models.Category{Name: "Pizzas", RestaurantID: 1}))
	require.NoError(t, itemRepo.Create(&models.MenuItem{
		Name: "Pizza Ella Fitzgerald", Description: "Marguerita", Price: 50,
		Active: true, CategoryID: 1, RestaurantID: 1,
	}))
	svc := NewMenuService(itemRepo, categoryRepo, nil, 0)

	newPrice := 55.0
	inactive := false
	item, err := svc.UpdateMenuItem(1, UpdateMenuItemInput{Price: &newPrice, Active: &inactive})

	require.NoError(t, err)
	assert.Equal(t, 55.0, item.Price)
	assert.False(t, item.Active)
	// Untouched fields keep their values.
	assert.Equal(t, "Pizza Ella Fitzgerald", item.Name)
	assert.Equal(t, "Marguerita", item.Description)
}

func TestListCategoriesWithCounts(t *testing.T) {
	itemRepo := newFakeMenuItemRepo()
	categoryRepo := newFakeCategoryRepo()
	require.NoError(t, categoryRepo.Create(&models.Category{Name: "Pizzas", RestaurantID: 1}))
	require.NoError(t, categoryRepo.Create(&models.Category{Name: "Bebidas", RestaurantID: 1}))
	require.NoError(t, itemRepo.Create(&models.MenuItem{Name: "Pizza", CategoryID: 1, RestaurantID: 1}))
	require.NoError(t, itemRepo.Create(&models.MenuItem{Name: "Outra", CategoryID: 1, RestaurantID: 1}))
	svc := NewMenuService(itemRepo, categoryRepo, nil, 0)

	categories, err := svc.ListCategories(1)

	require.NoError(t, err)
	require.Len(t, categories, 2)
	counts := map[string]int64{}
	for _, category := range categories {
		counts[category.Name] = category.ItemCount
	}
	assert.Equal(t, int64(2), counts["Pizzas"])
	assert.Equal(t, int64(0), counts["Bebidas"])
}
