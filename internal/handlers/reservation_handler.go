package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"cardapio_digital/internal/broadcast"
	"cardapio_digital/internal/services"

	"github.com/gin-gonic/gin"
)

type ReservationHandler struct {
	tenant             *Tenant
	reservationService services.ReservationService
	broadcaster        broadcast.Broadcaster
}

func NewReservationHandler(tenant *Tenant, reservationService services.ReservationService, broadcaster broadcast.Broadcaster) *ReservationHandler {
	return &ReservationHandler{
		tenant:             tenant,
		reservationService: reservationService,
		broadcaster:        broadcaster,
	}
}

func (h *ReservationHandler) CheckAvailability(c *gin.Context) {
	date := c.Query("date")
	timeSlot := c.Query("time")
	people, err := strconv.Atoi(c.DefaultQuery("people", "2"))
	if date == "" || timeSlot == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "date, time and people are required"})
		return
	}

	availability, availErr := h.reservationService.CheckAvailability(date, timeSlot, people)
	if availErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to check availability"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": availability})
}

func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	restaurant, ok := h.tenant.Resolve(c)
	if !ok {
		return
	}

	var input services.CreateReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body: " + err.Error()})
		return
	}

	reservation, err := h.reservationService.CreateReservation(restaurant.ID, input)
	if err != nil {
		var unavailable *services.NoAvailabilityError
		if errors.As(err, &unavailable) {
			c.JSON(http.StatusConflict, gin.H{
				"success":         false,
				"error":           "Horário não disponível",
				"suggested_times": unavailable.SuggestedTimes,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create reservation"})
		return
	}

	h.broadcaster.Emit(broadcast.EventReservationCreated, reservation)

	c.JSON(http.StatusOK, gin.H{"success": true, "data": reservation})
}

func (h *ReservationHandler) ListByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "date is required"})
		return
	}

	reservations, err := h.reservationService.ListByDate(date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch reservations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": reservations})
}
