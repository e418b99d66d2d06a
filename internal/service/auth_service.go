package service

import (
	"context"
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"fast-zero/internal/domain"
	"fast-zero/internal/repository"
)

const bearerTokenType = "Bearer"

// AuthService valida credenciales, emite tokens y resuelve el usuario actual.
type AuthService struct {
	logger  *zap.Logger
	users   repository.UserRepository
	hasher  PasswordHasher
	tokens  TokenCodec
	limiter LoginLimiter
}

func NewAuthService(logger *zap.Logger, users repository.UserRepository, hasher PasswordHasher, tokens TokenCodec, limiter LoginLimiter) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if hasher == nil {
		hasher = NewBcryptHasher(0)
	}
	return &AuthService{
		logger:  logger,
		users:   users,
		hasher:  hasher,
		tokens:  tokens,
		limiter: limiter,
	}
}

// IssueToken autentica por email + password y devuelve un access token.
func (s *AuthService) IssueToken(ctx context.Context, login, password string) (domain.Token, error) {
	if s.users == nil || s.tokens == nil {
		return domain.Token{}, errors.New("auth service not configured")
	}

	emailAddr := normalizeEmail(login)
	if emailAddr == "" || password == "" {
		return domain.Token{}, ErrInvalidCredentials
	}
	if s.limiter != nil && !s.limiter.Allow(emailAddr) {
		return domain.Token{}, ErrTooManyAttempts
	}

	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.Token{}, ErrInvalidCredentials
		}
		return domain.Token{}, err
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return domain.Token{}, ErrInvalidCredentials
	}

	accessToken, err := s.tokens.Sign(jwt.MapClaims{"sub": user.Email})
	if err != nil {
		return domain.Token{}, err
	}
	if s.limiter != nil {
		s.limiter.Reset(emailAddr)
	}
	return domain.Token{AccessToken: accessToken, TokenType: bearerTokenType}, nil
}

// ResolveCurrentUser valida el token y carga el usuario indicado en sub.
func (s *AuthService) ResolveCurrentUser(ctx context.Context, token string) (domain.User, error) {
	if s.users == nil || s.tokens == nil {
		return domain.User{}, errors.New("auth service not configured")
	}

	claims, err := s.tokens.Verify(token)
	if err != nil {
		s.logger.Debug("token rejected", zap.Error(err))
		return domain.User{}, ErrInvalidToken
	}
	subject, err := claims.GetSubject()
	if err != nil || strings.TrimSpace(subject) == "" {
		return domain.User{}, ErrInvalidToken
	}

	user, err := s.users.GetByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrInvalidToken
		}
		return domain.User{}, err
	}
	return user, nil
}
