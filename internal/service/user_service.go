package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"fast-zero/internal/domain"
	"fast-zero/internal/email"
	"fast-zero/internal/repository"
)

// UserService coordina reglas de negocio para usuarios.
type UserService struct {
	logger      *zap.Logger
	users       repository.UserRepository
	hasher      PasswordHasher
	emailSender email.Sender

	// envios de bienvenida en curso
	pending sync.WaitGroup
}

func NewUserService(logger *zap.Logger, users repository.UserRepository, hasher PasswordHasher, emailSender email.Sender) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if hasher == nil {
		hasher = NewBcryptHasher(0)
	}
	return &UserService{
		logger:      logger,
		users:       users,
		hasher:      hasher,
		emailSender: emailSender,
	}
}

type UserInput struct {
	Username string
	Email    string
	Password string
}

const (
	userDeletedMessage = "User deleted successfully"
	welcomeTimeout     = 30 * time.Second
)

func (s *UserService) CreateUser(ctx context.Context, input UserInput) (domain.User, error) {
	if s.users == nil {
		return domain.User{}, errors.New("user service not configured")
	}

	input, err := normalizeUserInput(input)
	if err != nil {
		return domain.User{}, err
	}

	_, err = s.users.FindByUsernameOrEmail(ctx, input.Username, input.Email)
	if err == nil {
		return domain.User{}, ErrConflict
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return domain.User{}, err
	}

	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		// Otra request pudo insertar el mismo username/email entre el chequeo y el insert.
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.User{}, ErrConflict
		}
		return domain.User{}, err
	}

	s.sendWelcome(ctx, user)
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, page domain.Page, requester domain.User) ([]domain.User, error) {
	if s.users == nil {
		return nil, errors.New("user service not configured")
	}
	if requester.ID == 0 {
		return nil, ErrInvalidToken
	}
	if page.Offset < 0 || page.Limit < 0 || page.Limit > domain.MaxPageLimit {
		return nil, ErrInvalidPage
	}
	if page.Limit == 0 {
		return []domain.User{}, nil
	}
	return s.users.List(ctx, page.Offset, page.Limit)
}

func (s *UserService) UpdateUser(ctx context.Context, targetID int64, input UserInput, requester domain.User) (domain.User, error) {
	if s.users == nil {
		return domain.User{}, errors.New("user service not configured")
	}
	if requester.ID != targetID {
		return domain.User{}, ErrForbidden
	}

	input, err := normalizeUserInput(input)
	if err != nil {
		return domain.User{}, err
	}

	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	requester.Username = input.Username
	requester.Email = input.Email
	requester.PasswordHash = passwordHash

	updated, err := s.users.Update(ctx, requester)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return domain.User{}, ErrConflict
		case errors.Is(err, repository.ErrUserNotFound):
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, err
	}
	return updated, nil
}

func (s *UserService) DeleteUser(ctx context.Context, targetID int64, requester domain.User) (domain.Message, error) {
	if s.users == nil {
		return domain.Message{}, errors.New("user service not configured")
	}
	if requester.ID != targetID {
		return domain.Message{}, ErrForbidden
	}

	if err := s.users.Delete(ctx, requester.ID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.Message{}, ErrNotFound
		}
		return domain.Message{}, err
	}
	return domain.Message{Message: userDeletedMessage}, nil
}

// sendWelcome envia el correo en segundo plano; el contexto sobrevive a la request pero con timeout.
func (s *UserService) sendWelcome(ctx context.Context, user domain.User) {
	if s.emailSender == nil {
		return
	}
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), welcomeTimeout)
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		defer cancel()
		if err := s.emailSender.SendWelcome(sendCtx, user.Email, user.Username); err != nil {
			s.logger.Warn("send welcome email failed", zap.Error(err), zap.Int64("user_id", user.ID))
		}
	}()
}

// Wait bloquea hasta que terminan los correos de bienvenida pendientes.
func (s *UserService) Wait() {
	s.pending.Wait()
}

func normalizeUserInput(input UserInput) (UserInput, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = normalizeEmail(input.Email)
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return UserInput{}, ErrInvalidUser
	}
	return input, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
