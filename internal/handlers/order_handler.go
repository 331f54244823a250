package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"cardapio_digital/internal/broadcast"
	"cardapio_digital/internal/repository"
	"cardapio_digital/internal/services"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	tenant       *Tenant
	orderService services.OrderService
	broadcaster  broadcast.Broadcaster
}

func NewOrderHandler(tenant *Tenant, orderService services.OrderService, broadcaster broadcast.Broadcaster) *OrderHandler {
	return &OrderHandler{tenant: tenant, orderService: orderService, broadcaster: broadcaster}
}

// CreateOrder persists a new order and notifies all panels. The broadcast is
// fire-and-forget after commit: if it fails, the order still exists and the
// panels catch up on their next fetch.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	restaurant, ok := h.tenant.Resolve(c)
	if !ok {
		return
	}

	var input services.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body: " + err.Error()})
		return
	}

	order, err := h.orderService.CreateOrder(restaurant.ID, input)
	if err != nil {
		if errors.Is(err, services.ErrNoItems) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create order"})
		return
	}

	h.broadcaster.Emit(broadcast.EventOrderCreated, order)
	log.Printf("New order %s created - total R$ %.2f", order.OrderNumber, order.Total)

	c.JSON(http.StatusOK, gin.H{"success": true, "data": order})
}

// ListOrders returns orders newest-first with aggregate stats over the
// filtered set.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	opts := repository.OrderListOptions{
		Status: c.DefaultQuery("status", "all"),
		Limit:  50,
	}
	if limit := c.Query("limit"); limit != "" {
		if parsed, err := strconv.Atoi(limit); err == nil && parsed > 0 {
			opts.Limit = parsed
		}
	}
	if date := c.Query("date"); date != "" {
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid date, expected YYYY-MM-DD"})
			return
		}
		next := day.AddDate(0, 0, 1)
		opts.From = &day
		opts.To = &next
	}

	orders, stats, err := h.orderService.ListOrders(opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"orders": orders, "stats": stats}})
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus overwrites the order status with any of the five enum values.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid order id"})
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body: " + err.Error()})
		return
	}

	order, err := h.orderService.UpdateStatus(uint(id), req.Status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update order status"})
		return
	}

	h.broadcaster.Emit(broadcast.EventOrderStatusChanged, order)
	log.Printf("Order %s moved to %s", order.OrderNumber, order.Status)

	c.JSON(http.StatusOK, gin.H{"success": true, "data": order})
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid order id"})
		return
	}

	if err := h.orderService.DeleteOrder(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order removed"})
}
