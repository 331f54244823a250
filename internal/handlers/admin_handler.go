package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"cardapio_digital/internal/broadcast"
	"cardapio_digital/internal/models"
	"cardapio_digital/internal/repository"
	"cardapio_digital/internal/services"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
)

type AdminHandler struct {
	tenant           *Tenant
	menuService      services.MenuService
	analyticsService services.AnalyticsService
	auditRepo        repository.AuditRepository
	chatRepo         repository.ChatRepository
	broadcaster      broadcast.Broadcaster
	frontendURL      string
}

func NewAdminHandler(
	tenant *Tenant,
	menuService services.MenuService,
	analyticsService services.AnalyticsService,
	auditRepo repository.AuditRepository,
	chatRepo repository.ChatRepository,
	broadcaster broadcast.Broadcaster,
	frontendURL string,
) *AdminHandler {
	return &AdminHandler{
		tenant:           tenant,
		menuService:      menuService,
		analyticsService: analyticsService,
		auditRepo:        auditRepo,
		chatRepo:         chatRepo,
		broadcaster:      broadcaster,
		frontendURL:      frontendURL,
	}
}

func (h *AdminHandler) audit(c *gin.Context, action, entity string, entityID uint, detail string) {
	actor := c.GetHeader("X-Admin-User")
	if actor == "" {
		actor = "admin"
	}
	entry := &models.AuditLog{
		Actor:    actor,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Detail:   detail,
	}
	if err := h.auditRepo.Create(entry); err != nil {
		log.Printf("Failed to write audit entry: %v", err)
	}
}

// Menu management

// ListMenuItems returns the full catalog, inactive items included.
func (h *AdminHandler) ListMenuItems(c *gin.Context) {
	restaurant, ok := h.tenant.Resolve(c)
	if !ok {
		return
	}

	items, err := h.menuService.ListMenuItems(restaurant.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch menu items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": items})
}

func (h *AdminHandler) CreateMenuItem(c *gin.Context) {
	restaurant, ok := h.tenant.Resolve(c)
	if !ok {
		return
	}

	var input services.CreateMenuItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body: " + err.Error()})
		return
	}

	item, err := h.menuService.CreateMenuItem(restaurant.ID, input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create menu item"})
		return
	}

	h.broadcaster.Emit(broadcast.EventMenuItemAdded, item)
	h.audit(c, "create", "menu_item", item.ID, item.Name)
	log.Printf("Menu item added: %s - R$ %.2f", item.Name, item.Price)

	c.JSON(http.StatusOK, gin.H{"success": true, "data": item})
}

func (h *AdminHandler) UpdateMenuItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid menu item id"})
		return
	}

	var input services.UpdateMenuItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body: " + err.Error()})
		return
	}

	item, err := h.menuService.UpdateMenuItem(uint(id), input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update menu item"})
		return
	}

	h.broadcaster.Emit(broadcast.EventMenuItemUpdated, item)
	h.audit(c, "update", "menu_item", item.ID, item.Name)

	c.JSON(http.StatusOK, gin.H{"success": true, "data": item})
}

func (h *AdminHandler) DeleteMenuItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid menu item id"})
		return
	}

	// Look the item up first so the audit trail keeps its name after the
	// row is gone.
	detail := ""
	if item, err := h.menuService.GetMenuItem(uint(id)); err == nil {
		detail = item.Name
	}

	if err := h.menuService.DeleteMenuItem(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete menu item"})
		return
	}

	h.audit(c, "delete", "menu_item", uint(id), detail)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Category management

func (h *AdminHandler) ListCategories(c *gin.Context) {
	restaurant, ok := h.tenant.Resolve(c)
	if !ok {
		return
	}

	categories, err := h.menuService.ListCategories(restaurant.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": categories})
}

type createCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (h *AdminHandler) CreateCategory(c *gin.Context) {
	restaurant, ok := h.tenant.Resolve(c)
	if !ok {
		return
	}

	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body: " + err.Error()})
		return
	}

	category, err := h.menuService.CreateCategory(restaurant.ID, req.Name, req.Description)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create category"})
		return
	}

	h.broadcaster.Emit(broadcast.EventCategoryAdded, category)
	h.audit(c, "create", "category", category.ID, category.Name)
	log.Printf("Category created: %s", category.Name)

	c.JSON(http.StatusOK, gin.H{"success": true, "data": category})
}

// DeleteCategory rejects deletion while menu items are still attached; the
// category and its items are left untouched in that case.
func (h *AdminHandler) DeleteCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid category id"})
		return
	}

	if err := h.menuService.DeleteCategory(uint(id)); err != nil {
		if errors.Is(err, services.ErrCategoryNotEmpty) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete category"})
		return
	}

	h.audit(c, "delete", "category", uint(id), "")
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Analytics and reports

func (h *AdminHandler) Analytics(c *gin.Context) {
	data, err := h.analyticsService.Dashboard()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch analytics"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func (h *AdminHandler) ReportData(c *gin.Context) {
	from, err := time.Parse("2006-01-02", c.DefaultQuery("startDate", time.Now().AddDate(0, -1, 0).Format("2006-01-02")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid startDate"})
		return
	}
	to, err := time.Parse("2006-01-02", c.DefaultQuery("endDate", time.Now().Format("2006-01-02")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid endDate"})
		return
	}
	to = to.AddDate(0, 0, 1) // make the range inclusive of the end day

	switch c.DefaultQuery("type", "sales") {
	case "sales":
		report, err := h.analyticsService.SalesReport(from, to)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to generate report"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": report})
	case "products":
		report, err := h.analyticsService.ProductsReport(from, to)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to generate report"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": report})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Unknown report type"})
	}
}

// TableQRCode renders a PNG QR code pointing a table at the digital menu.
func (h *AdminHandler) TableQRCode(c *gin.Context) {
	table := c.Param("table")
	if table == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing table"})
		return
	}

	link := fmt.Sprintf("%s/menu?table=%s", h.frontendURL, table)
	png, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to generate QR code"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

// AssistantStats exposes basic usage counters for the sommelier panel.
func (h *AdminHandler) AssistantStats(c *gin.Context) {
	restaurant, ok := h.tenant.Resolve(c)
	if !ok {
		return
	}

	total, err := h.chatRepo.CountByRestaurant(restaurant.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"total_interactions": total}})
}

// AuditLog lists recent admin actions.
func (h *AdminHandler) AuditLog(c *gin.Context) {
	limit := 50
	if parsed, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil && parsed > 0 {
		limit = parsed
	}

	entries, err := h.auditRepo.GetRecent(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch audit log"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": entries})
}
