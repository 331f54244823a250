package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"cardapio_digital/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// recordingBroadcaster captures every emission so tests can assert the
// exact event count per request.
type recordingBroadcaster struct {
	events   []string
	payloads []interface{}
}

func (b *recordingBroadcaster) Emit(event string, payload interface{}) {
	b.events = append(b.events, event)
	b.payloads = append(b.payloads, payload)
}

type fakeRestaurantRepo struct {
	restaurant *models.Restaurant
}

func (r *fakeRestaurantRepo) Create(restaurant *models.Restaurant) error { return nil }

func (r *fakeRestaurantRepo) GetByID(id uint) (*models.Restaurant, error) {
	if r.restaurant == nil {
		return nil, assert.AnError
	}
	return r.restaurant, nil
}

func (r *fakeRestaurantRepo) GetBySlug(slug string) (*models.Restaurant, error) {
	if r.restaurant == nil || r.restaurant.Slug != slug {
		return nil, assert.AnError
	}
	return r.restaurant, nil
}

func (r *fakeRestaurantRepo) Count() (int64, error) {
	if r.restaurant == nil {
		return 0, nil
	}
	return 1, nil
}

func newTestTenant() *Tenant {
	return NewTenant(&fakeRestaurantRepo{
		restaurant: &models.Restaurant{ID: 1, Name: "Muzzajazz", Slug: "pirenopolis"},
	}, "pirenopolis")
}

func emptyTenant() *Tenant {
	return NewTenant(&fakeRestaurantRepo{}, "pirenopolis")
}

func performRequest(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func assertSuccessFalse(t *testing.T, w *httptest.ResponseRecorder, wantCode int) {
	t.Helper()
	assert.Equal(t, wantCode, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}
