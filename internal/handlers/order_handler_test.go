package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"cardapio_digital/internal/broadcast"
	"cardapio_digital/internal/models"
	"cardapio_digital/internal/repository"
	"cardapio_digital/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderService struct {
	order     *models.Order
	createErr error
	updateErr error
	lastOpts  repository.OrderListOptions
	listed    []models.Order
	stats     services.OrderStats
	deleted   []uint
}

func (s *fakeOrderService) CreateOrder(restaurantID uint, input services.CreateOrderInput) (*models.Order, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.order, nil
}

func (s *fakeOrderService) GetOrder(id uint) (*models.Order, error) {
	return s.order, nil
}

func (s *fakeOrderService) ListOrders(opts repository.OrderListOptions) ([]models.Order, services.OrderStats, error) {
	s.lastOpts = opts
	return s.listed, s.stats, nil
}

func (s *fakeOrderService) UpdateStatus(id uint, status string) (*models.Order, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	s.order.Status = status
	return s.order, nil
}

func (s *fakeOrderService) DeleteOrder(id uint) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *fakeOrderService) QueueLength() (int, error) {
	return 0, nil
}

func newOrderRouter(svc services.OrderService, b broadcast.Broadcaster) *gin.Engine {
	handler := NewOrderHandler(newTestTenant(), svc, b)
	router := gin.New()
	router.POST("/api/orders", handler.CreateOrder)
	router.GET("/api/orders", handler.ListOrders)
	router.PUT("/api/orders/:id/status", handler.UpdateStatus)
	router.DELETE("/api/orders/:id", handler.DeleteOrder)
	return router
}

func TestCreateOrderEmitsExactlyOneEvent(t *testing.T) {
	order := &models.Order{ID: 12, OrderNumber: "ORD-20260830-ABCD1234", Status: "PENDING", Total: 103}
	recorder := &recordingBroadcaster{}
	router := newOrderRouter(&fakeOrderService{order: order}, recorder)

	w := performRequest(t, router, "POST", "/api/orders",
		`{"items":[{"menu_item_id":1,"quantity":2,"price":50}],"total":103,"table":"Mesa 4"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, recorder.events, 1)
	assert.Equal(t, broadcast.EventOrderCreated, recorder.events[0])
	emitted, ok := recorder.payloads[0].(*models.Order)
	require.True(t, ok)
	assert.Equal(t, uint(12), emitted.ID)
}

func TestCreateOrderBadBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{not json`},
		{name: "missing items", body: `{"total":10}`},
		{name: "missing total", body: `{"items":[{"menu_item_id":1}]}`},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			recorder := &recordingBroadcaster{}
			router := newOrderRouter(&fakeOrderService{}, recorder)

			w := performRequest(t, router, "POST", "/api/orders", testCase.body)

			assertSuccessFalse(t, w, http.StatusBadRequest)
			assert.Empty(t, recorder.events, "nothing may be broadcast for a rejected request")
		})
	}
}

func TestCreateOrderEmptyItems(t *testing.T) {
	recorder := &recordingBroadcaster{}
	router := newOrderRouter(&fakeOrderService{createErr: services.ErrNoItems}, recorder)

	w := performRequest(t, router, "POST", "/api/orders", `{"items":[],"total":10}`)

	assertSuccessFalse(t, w, http.StatusBadRequest)
	assert.Empty(t, recorder.events)
}

func TestUpdateStatusEmitsExactlyOneEvent(t *testing.T) {
	order := &models.Order{ID: 7, OrderNumber: "ORD-20260830-AAAA0000", Status: "PENDING"}
	recorder := &recordingBroadcaster{}
	router := newOrderRouter(&fakeOrderService{order: order}, recorder)

	w := performRequest(t, router, "PUT", "/api/orders/7/status", `{"status":"READY"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, recorder.events, 1)
	assert.Equal(t, broadcast.EventOrderStatusChanged, recorder.events[0])
	emitted := recorder.payloads[0].(*models.Order)
	assert.Equal(t, "READY", emitted.Status)
}

func TestUpdateStatusInvalidID(t *testing.T) {
	recorder := &recordingBroadcaster{}
	router := newOrderRouter(&fakeOrderService{}, recorder)

	w := performRequest(t, router, "PUT", "/api/orders/abc/status", `{"status":"READY"}`)

	assertSuccessFalse(t, w, http.StatusBadRequest)
	assert.Empty(t, recorder.events)
}

func TestListOrdersDefaults(t *testing.T) {
	svc := &fakeOrderService{}
	router := newOrderRouter(svc, &recordingBroadcaster{})

	w := performRequest(t, router, "GET", "/api/orders", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "all", svc.lastOpts.Status)
	assert.Equal(t, 50, svc.lastOpts.Limit)
	assert.Nil(t, svc.lastOpts.From)
}

func TestListOrdersFilters(t *testing.T) {
	svc := &fakeOrderService{}
	router := newOrderRouter(svc, &recordingBroadcaster{})

	w := performRequest(t, router, "GET", "/api/orders?status=PENDING&limit=10&date=2026-08-30", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "PENDING", svc.lastOpts.Status)
	assert.Equal(t, 10, svc.lastOpts.Limit)
	require.NotNil(t, svc.lastOpts.From)
	require.NotNil(t, svc.lastOpts.To)
	assert.Equal(t, "2026-08-30", svc.lastOpts.From.Format("2006-01-02"))
	assert.Equal(t, "2026-08-31", svc.lastOpts.To.Format("2006-01-02"))
}

func TestListOrdersBadDate(t *testing.T) {
	router := newOrderRouter(&fakeOrderService{}, &recordingBroadcaster{})

	w := performRequest(t, router, "GET", "/api/orders?date=30-08-2026", "")

	assertSuccessFalse(t, w, http.StatusBadRequest)
}

func TestListOrdersResponseShape(t *testing.T) {
	svc := &fakeOrderService{
		listed: []models.Order{{ID: 1, Status: "PENDING", Total: 50}},
		stats:  services.OrderStats{Total: 1, Pending: 1, TotalRevenue: 50},
	}
	router := newOrderRouter(svc, &recordingBroadcaster{})

	w := performRequest(t, router, "GET", "/api/orders", "")

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Orders []models.Order      `json:"orders"`
			Stats  services.OrderStats `json:"stats"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Len(t, body.Data.Orders, 1)
	assert.Equal(t, 1, body.Data.Stats.Pending)
}

func TestDeleteOrder(t *testing.T) {
	svc := &fakeOrderService{}
	recorder := &recordingBroadcaster{}
	router := newOrderRouter(svc, recorder)

	w := performRequest(t, router, "DELETE", "/api/orders/4", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []uint{4}, svc.deleted)
	assert.Empty(t, recorder.events)
}

func TestCreateOrderTenantMissing(t *testing.T) {
	handler := NewOrderHandler(emptyTenant(), &fakeOrderService{}, &recordingBroadcaster{})
	router := gin.New()
	router.POST("/api/orders", handler.CreateOrder)

	w := performRequest(t, router, "POST", "/api/orders", `{"items":[{"menu_item_id":1}],"total":10}`)

	assertSuccessFalse(t, w, http.StatusNotFound)
}
