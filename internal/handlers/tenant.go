package handlers

import (
	"net/http"

	"cardapio_digital/internal/models"
	"cardapio_digital/internal/repository"

	"github.com/gin-gonic/gin"
)

// Tenant resolves the default restaurant for a request. Most handlers assume
// a single tenant identified by the configured slug.
type Tenant struct {
	restaurantRepo repository.RestaurantRepository
	slug           string
}

func NewTenant(restaurantRepo repository.RestaurantRepository, slug string) *Tenant {
	return &Tenant{restaurantRepo: restaurantRepo, slug: slug}
}

// Resolve loads the tenant or writes a 404 and returns false.
func (t *Tenant) Resolve(c *gin.Context) (*models.Restaurant, bool) {
	restaurant, err := t.restaurantRepo.GetBySlug(t.slug)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Restaurant not found"})
		return nil, false
	}
	return restaurant, true
}
