package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"microdose-api/internal/domain"
	"microdose-api/internal/repository"
)

// UserService coordina reglas de negocio para usuarios. Las cuentas aquí son
// mínimas: identidad para asociar cálculos, protocolos y diario.
type UserService struct {
	logger *zap.Logger
	users  repository.UserRepository
}

func NewUserService(logger *zap.Logger, users repository.UserRepository) *UserService {
	return &UserService{logger: logger, users: users}
}

type CreateUserInput struct {
	Email       string
	DisplayName string
}

var ErrEmailTaken = errors.New("email already registered")

func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (domain.User, error) {
	email := normalizeEmail(input.Email)
	if email == "" {
		return domain.User{}, ErrInvalidEmail
	}

	if existing, err := s.users.GetByEmail(ctx, email); err == nil && existing.ID != "" {
		return domain.User{}, ErrEmailTaken
	} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, err
	}

	user := domain.User{
		ID:          uuid.NewString(),
		Email:       email,
		DisplayName: strings.TrimSpace(input.DisplayName),
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return domain.User{}, err
	}

	s.logger.Info("user created", zap.String("user_id", user.ID))
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, ErrUserNotFound
	}
	return user, err
}

// normalizeEmail baja a minúsculas y recorta espacios; devuelve "" si el
// valor no tiene pinta de email.
func normalizeEmail(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	at := strings.Index(s, "@")
	if at <= 0 || at == len(s)-1 || !strings.Contains(s[at+1:], ".") {
		return ""
	}
	return s
}
