package handlers

import (
	"net/http"

	"cardapio_digital/internal/services"

	"github.com/gin-gonic/gin"
)

type MenuHandler struct {
	tenant      *Tenant
	menuService services.MenuService
}

func NewMenuHandler(tenant *Tenant, menuService services.MenuService) *MenuHandler {
	return &MenuHandler{tenant: tenant, menuService: menuService}
}

// GetMenu returns the active menu items for the default tenant.
func (h *MenuHandler) GetMenu(c *gin.Context) {
	restaurant, ok := h.tenant.Resolve(c)
	if !ok {
		return
	}

	items, err := h.menuService.GetActiveMenu(restaurant.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch menu"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": items})
}
