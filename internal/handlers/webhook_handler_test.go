package handlers

import (
	"errors"
	"net/http"
	"testing"

	"cardapio_digital/internal/broadcast"
	"cardapio_digital/internal/models"
	"cardapio_digital/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePaymentService struct {
	pixCharge  *services.PixCharge
	cardCharge *services.CardCharge
	payment    *models.Payment
	payments   []models.Payment
	outcome    *services.WebhookOutcome
	webhookErr error
	createErr  error
}

func (s *fakePaymentService) CreatePixPayment(input services.PixPaymentInput) (*services.PixCharge, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.pixCharge, nil
}

func (s *fakePaymentService) CreateCardPayment(input services.CardPaymentInput) (*services.CardCharge, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.cardCharge, nil
}

func (s *fakePaymentService) GetPaymentStatus(paymentID uint) (*models.Payment, error) {
	if s.payment == nil {
		return nil, errors.New("payment not found")
	}
	return s.payment, nil
}

func (s *fakePaymentService) ListOrderPayments(orderID uint) ([]models.Payment, error) {
	return s.payments, nil
}

func (s *fakePaymentService) HandleWebhook(event services.WebhookEvent) (*services.WebhookOutcome, error) {
	if s.webhookErr != nil {
		return nil, s.webhookErr
	}
	return s.outcome, nil
}

type fakeWhatsAppService struct {
	replies []string
}

func (s *fakeWhatsAppService) SendMessage(phone, message string) error { return nil }

func (s *fakeWhatsAppService) SendReservationConfirmation(reservation *models.Reservation) error {
	return nil
}

func (s *fakeWhatsAppService) SendOrderStatus(phone string, order *models.Order) error { return nil }

func (s *fakeWhatsAppService) AutoReply(phone, body string) (string, error) {
	reply := "🎷 Olá! Bem-vindo ao Muzzajazz!"
	s.replies = append(s.replies, reply)
	return reply, nil
}

func newWebhookRouter(payments services.PaymentService, b broadcast.Broadcaster) *gin.Engine {
	handler := NewWebhookHandler(payments, &fakeWhatsAppService{}, b)
	router := gin.New()
	router.POST("/api/webhooks/asaas", handler.HandleAsaas)
	router.POST("/api/webhooks/whatsapp", handler.HandleWhatsApp)
	return router
}

func TestAsaasWebhookApprovedEmitsExactlyOneEvent(t *testing.T) {
	recorder := &recordingBroadcaster{}
	router := newWebhookRouter(&fakePaymentService{
		outcome: &services.WebhookOutcome{Approved: true, OrderID: 9, PaymentID: "pay_1", Method: "PIX"},
	}, recorder)

	w := performRequest(t, router, "POST", "/api/webhooks/asaas",
		`{"event":"PAYMENT_CONFIRMED","payment":{"id":"pay_1","billingType":"PIX"}}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"received":true`)
	require.Len(t, recorder.events, 1)
	assert.Equal(t, broadcast.EventPaymentApproved, recorder.events[0])
}

func TestAsaasWebhookIgnoredEvent(t *testing.T) {
	recorder := &recordingBroadcaster{}
	router := newWebhookRouter(&fakePaymentService{outcome: &services.WebhookOutcome{}}, recorder)

	w := performRequest(t, router, "POST", "/api/webhooks/asaas",
		`{"event":"PAYMENT_OVERDUE","payment":{"id":"pay_2","billingType":"PIX"}}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, recorder.events)
}

func TestAsaasWebhookBadPayload(t *testing.T) {
	router := newWebhookRouter(&fakePaymentService{}, &recordingBroadcaster{})

	w := performRequest(t, router, "POST", "/api/webhooks/asaas", `{"payment":{"id":"x"}}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWhatsAppWebhook(t *testing.T) {
	router := newWebhookRouter(&fakePaymentService{}, &recordingBroadcaster{})

	w := performRequest(t, router, "POST", "/api/webhooks/whatsapp",
		`{"From":"whatsapp:+5562999998888","Body":"cardapio"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"received":true`)
	assert.Contains(t, w.Body.String(), "Muzzajazz")
}
