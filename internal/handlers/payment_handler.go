package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"cardapio_digital/internal/broadcast"
	"cardapio_digital/internal/services"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentService services.PaymentService
	broadcaster    broadcast.Broadcaster
}

func NewPaymentHandler(paymentService services.PaymentService, broadcaster broadcast.Broadcaster) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, broadcaster: broadcaster}
}

func (h *PaymentHandler) CreatePix(c *gin.Context) {
	var input services.PixPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body: " + err.Error()})
		return
	}

	charge, err := h.paymentService.CreatePixPayment(input)
	if err != nil {
		if errors.Is(err, services.ErrGatewayNotConfigured) {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Asaas não configurado"})
			return
		}
		log.Printf("PIX payment failed for order %d: %v", input.OrderID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Erro ao gerar PIX"})
		return
	}

	log.Printf("PIX created: %s - R$ %.2f", charge.PaymentID, charge.Amount)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": charge})
}

func (h *PaymentHandler) CreateCard(c *gin.Context) {
	var input services.CardPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Dados do cartão incompletos"})
		return
	}

	charge, err := h.paymentService.CreateCardPayment(input)
	if err != nil {
		if errors.Is(err, services.ErrGatewayNotConfigured) {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Asaas não configurado"})
			return
		}
		log.Printf("Card payment failed for order %d: %v", input.OrderID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Erro ao processar cartão"})
		return
	}

	if charge.Status == "approved" {
		h.broadcaster.Emit(broadcast.EventPaymentApproved, gin.H{
			"order_id":   charge.OrderID,
			"payment_id": charge.PaymentID,
			"method":     "CREDIT_CARD",
		})
	}

	log.Printf("Card processed: %s - %s", charge.PaymentID, charge.Status)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": charge})
}

// GetStatus lets the checkout screen poll a PIX charge that has not been
// confirmed through the webhook yet.
func (h *PaymentHandler) GetStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid payment id"})
		return
	}

	payment, err := h.paymentService.GetPaymentStatus(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Pagamento não encontrado"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": payment})
}

func (h *PaymentHandler) ListOrderPayments(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid order id"})
		return
	}

	payments, err := h.paymentService.ListOrderPayments(uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": payments})
}
