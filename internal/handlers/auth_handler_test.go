package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cardapio_digital/internal/models"
	"cardapio_digital/internal/redis"
	"cardapio_digital/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeUserService struct {
	user      *models.User
	token     string
	authErr   error
	loggedOut []string
}

func (s *fakeUserService) CreateUser(user *models.User, password string) error { return nil }

func (s *fakeUserService) Authenticate(email, password string) (*models.User, string, error) {
	if s.authErr != nil {
		return nil, "", s.authErr
	}
	return s.user, s.token, nil
}

func (s *fakeUserService) GetByToken(token string) (*redis.AuthSession, error) {
	return nil, nil
}

func (s *fakeUserService) Logout(token string) error {
	s.loggedOut = append(s.loggedOut, token)
	return nil
}

func newAuthRouter(svc services.UserService) *gin.Engine {
	handler := NewAuthHandler(svc)
	router := gin.New()
	router.POST("/api/auth/login", handler.Login)
	router.POST("/api/auth/logout", handler.Logout)
	return router
}

func TestLogin(t *testing.T) {
	svc := &fakeUserService{
		user:  &models.User{ID: 1, Name: "Admin", Email: "admin@muzzajazz.com", Role: "ADMIN"},
		token: "tok-123",
	}
	router := newAuthRouter(svc)

	w := performRequest(t, router, "POST", "/api/auth/login",
		`{"email":"admin@muzzajazz.com","password":"muzzajazz"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"token":"tok-123"`)
	assert.Contains(t, w.Body.String(), "admin@muzzajazz.com")
	assert.NotContains(t, w.Body.String(), "password_hash")
}

func TestLoginInvalidCredentials(t *testing.T) {
	router := newAuthRouter(&fakeUserService{authErr: services.ErrInvalidCredentials})

	w := performRequest(t, router, "POST", "/api/auth/login",
		`{"email":"admin@muzzajazz.com","password":"wrong"}`)

	assertSuccessFalse(t, w, http.StatusUnauthorized)
}

func TestLoginMissingFields(t *testing.T) {
	router := newAuthRouter(&fakeUserService{})

	w := performRequest(t, router, "POST", "/api/auth/login", `{"email":"admin@muzzajazz.com"}`)

	assertSuccessFalse(t, w, http.StatusBadRequest)
}

func TestLogout(t *testing.T) {
	svc := &fakeUserService{}
	router := newAuthRouter(svc)

	req := httptest.NewRequest("POST", "/api/auth/logout", strings.NewReader(""))
	req.Header.Set("Authorization", "Bearer tok-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"tok-123"}, svc.loggedOut)
}

func TestLogoutMissingToken(t *testing.T) {
	router := newAuthRouter(&fakeUserService{})

	w := performRequest(t, router, "POST", "/api/auth/logout", "")

	assertSuccessFalse(t, w, http.StatusBadRequest)
}
