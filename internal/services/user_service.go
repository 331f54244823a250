package services

import (
	"errors"
	"fmt"
	"time"

	"cardapio_digital/internal/models"
	"cardapio_digital/internal/redis"
	"cardapio_digital/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthSessionStore persists opaque login tokens. *redis.Client satisfies it.
type AuthSessionStore interface {
	SetAuthSession(token string, session *redis.AuthSession, ttl time.Duration) error
	GetAuthSession(token string) (*redis.AuthSession, error)
	DeleteAuthSession(token string) error
}

type UserService interface {
	CreateUser(user *models.User, password string) error
	Authenticate(email, password string) (*models.User, string, error)
	GetByToken(token string) (*redis.AuthSession, error)
	Logout(token string) error
}

type userService struct {
	userRepo   repository.UserRepository
	sessions   AuthSessionStore
	sessionTTL time.Duration
}

func NewUserService(userRepo repository.UserRepository, sessions AuthSessionStore, sessionTTL time.Duration) UserService {
	return &userService{userRepo: userRepo, sessions: sessions, sessionTTL: sessionTTL}
}

func (s *userService) CreateUser(user *models.User, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	return s.userRepo.Create(user)
}

// Authenticate checks the password and issues an opaque token backed by a
// Redis session.
func (s *userService) Authenticate(email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token := uuid.New().String()
	session := &redis.AuthSession{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: time.Now(),
	}
	if err := s.sessions.SetAuthSession(token, session, s.sessionTTL); err != nil {
		return nil, "", fmt.Errorf("failed to store session: %w", err)
	}

	return user, token, nil
}

func (s *userService) GetByToken(token string) (*redis.AuthSession, error) {
	return s.sessions.GetAuthSession(token)
}

func (s *userService) Logout(token string) error {
	return s.sessions.DeleteAuthSession(token)
}
