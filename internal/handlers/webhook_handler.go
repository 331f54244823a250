package handlers

import (
	"log"
	"net/http"

	"cardapio_digital/internal/broadcast"
	"cardapio_digital/internal/services"

	"github.com/gin-gonic/gin"
)

type WebhookHandler struct {
	paymentService  services.PaymentService
	whatsappService services.WhatsAppService
	broadcaster     broadcast.Broadcaster
}

func NewWebhookHandler(
	paymentService services.PaymentService,
	whatsappService services.WhatsAppService,
	broadcaster broadcast.Broadcaster,
) *WebhookHandler {
	return &WebhookHandler{
		paymentService:  paymentService,
		whatsappService: whatsappService,
		broadcaster:     broadcaster,
	}
}

// HandleAsaas processes the gateway's payment-confirmation callback. The
// gateway retries on non-2xx, so unknown events are acknowledged anyway.
func (h *WebhookHandler) HandleAsaas(c *gin.Context) {
	var event services.WebhookEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook payload"})
		return
	}

	log.Printf("Asaas webhook: %s - %s", event.Event, event.Payment.ID)

	outcome, err := h.paymentService.HandleWebhook(event)
	if err != nil {
		log.Printf("Webhook processing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook processing failed"})
		return
	}

	if outcome.Approved {
		h.broadcaster.Emit(broadcast.EventPaymentApproved, gin.H{
			"order_id":   outcome.OrderID,
			"payment_id": outcome.PaymentID,
			"method":     outcome.Method,
		})
		log.Printf("Payment confirmed: order %d via %s", outcome.OrderID, outcome.Method)
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

type incomingWhatsAppMessage struct {
	From string `json:"From" form:"From" binding:"required"`
	Body string `json:"Body" form:"Body"`
}

// HandleWhatsApp answers incoming customer messages with the keyword bot.
func (h *WebhookHandler) HandleWhatsApp(c *gin.Context) {
	var msg incomingWhatsAppMessage
	if err := c.ShouldBind(&msg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook payload"})
		return
	}

	reply, err := h.whatsappService.AutoReply(msg.From, msg.Body)
	if err != nil {
		log.Printf("WhatsApp auto-reply failed: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"received": true, "reply": reply})
}
