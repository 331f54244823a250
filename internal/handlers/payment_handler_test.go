package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"cardapio_digital/internal/broadcast"
	"cardapio_digital/internal/models"
	"cardapio_digital/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPaymentRouter(svc services.PaymentService, b broadcast.Broadcaster) *gin.Engine {
	handler := NewPaymentHandler(svc, b)
	router := gin.New()
	router.POST("/api/payments/pix", handler.CreatePix)
	router.POST("/api/payments/card", handler.CreateCard)
	router.GET("/api/payments/:id/status", handler.GetStatus)
	router.GET("/api/orders/:id/payments", handler.ListOrderPayments)
	return router
}

func TestCreatePixEndpoint(t *testing.T) {
	svc := &fakePaymentService{pixCharge: &services.PixCharge{
		PaymentID: "pay_pix_1", OrderID: 3, Amount: 103, PixCode: "00020126pix", Status: "pending",
	}}
	recorder := &recordingBroadcaster{}
	router := newPaymentRouter(svc, recorder)

	w := performRequest(t, router, "POST", "/api/payments/pix", `{"order_id":3,"amount":103}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "00020126pix")
	assert.Empty(t, recorder.events, "pending PIX must not broadcast approval")
}

func TestCreatePixGatewayNotConfigured(t *testing.T) {
	router := newPaymentRouter(&fakePaymentService{createErr: services.ErrGatewayNotConfigured}, &recordingBroadcaster{})

	w := performRequest(t, router, "POST", "/api/payments/pix", `{"order_id":3,"amount":103}`)

	assertSuccessFalse(t, w, http.StatusInternalServerError)
	assert.Contains(t, w.Body.String(), "Asaas não configurado")
}

func TestCreateCardApprovedEmitsExactlyOneEvent(t *testing.T) {
	svc := &fakePaymentService{cardCharge: &services.CardCharge{
		PaymentID: "pay_card_1", OrderID: 5, Amount: 103, Status: "approved", CardLast4: "8829",
	}}
	recorder := &recordingBroadcaster{}
	router := newPaymentRouter(svc, recorder)

	w := performRequest(t, router, "POST", "/api/payments/card",
		`{"order_id":5,"amount":103,"card_data":{"number":"5162306219378829","name":"Ana","expiry":"12/28","cvv":"318"}}`)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, recorder.events, 1)
	assert.Equal(t, broadcast.EventPaymentApproved, recorder.events[0])
}

func TestCreateCardDeclinedDoesNotBroadcast(t *testing.T) {
	svc := &fakePaymentService{cardCharge: &services.CardCharge{
		PaymentID: "pay_card_2", OrderID: 5, Amount: 103, Status: "declined",
	}}
	recorder := &recordingBroadcaster{}
	router := newPaymentRouter(svc, recorder)

	w := performRequest(t, router, "POST", "/api/payments/card",
		`{"order_id":5,"amount":103,"card_data":{"number":"4111111111111111","name":"Ana","expiry":"12/28","cvv":"123"}}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "declined")
	assert.Empty(t, recorder.events)
}

func TestGetPaymentStatusEndpoint(t *testing.T) {
	svc := &fakePaymentService{payment: &models.Payment{
		ID: 7, OrderID: 3, AsaasPaymentID: "pay_pix_1", Status: "COMPLETED",
	}}
	router := newPaymentRouter(svc, &recordingBroadcaster{})

	w := performRequest(t, router, "GET", "/api/payments/7/status", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"COMPLETED"`)
}

func TestGetPaymentStatusUnknownPayment(t *testing.T) {
	router := newPaymentRouter(&fakePaymentService{}, &recordingBroadcaster{})

	w := performRequest(t, router, "GET", "/api/payments/99/status", "")

	assertSuccessFalse(t, w, http.StatusNotFound)
}

func TestListOrderPaymentsEndpoint(t *testing.T) {
	svc := &fakePaymentService{payments: []models.Payment{
		{ID: 1, OrderID: 3, Method: "PIX"},
		{ID: 2, OrderID: 3, Method: "CREDIT_CARD"},
	}}
	router := newPaymentRouter(svc, &recordingBroadcaster{})

	w := performRequest(t, router, "GET", "/api/orders/3/payments", "")

	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Success bool             `json:"success"`
		Data    []models.Payment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Len(t, body.Data, 2)
}

func TestCreateCardMissingCardData(t *testing.T) {
	router := newPaymentRouter(&fakePaymentService{}, &recordingBroadcaster{})

	w := performRequest(t, router, "POST", "/api/payments/card", `{"order_id":5,"amount":103}`)

	assertSuccessFalse(t, w, http.StatusBadRequest)
}
