package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenCodec firma y verifica mapas de claims.
type TokenCodec interface {
	Sign(claims jwt.MapClaims) (string, error)
	Verify(token string) (jwt.MapClaims, error)
}

// JWTService emite y valida tokens JWT firmados con HMAC.
type JWTService struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	now    func() time.Time
}

var (
	ErrTokenInvalid = errors.New("jwt invalid")
	ErrTokenExpired = errors.New("jwt expired")
)

const defaultAccessTTL = 30 * time.Minute

func NewJWTService(secret, algorithm string, ttl time.Duration) (*JWTService, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	alg := strings.ToUpper(strings.TrimSpace(algorithm))
	if alg == "" {
		alg = jwt.SigningMethodHS256.Alg()
	}
	method, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported jwt algorithm %q", algorithm)
	}
	if ttl <= 0 {
		ttl = defaultAccessTTL
	}
	return &JWTService{
		secret: []byte(secret),
		method: method,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Sign copia claims, agrega exp = now + ttl y firma el token.
func (s *JWTService) Sign(claims jwt.MapClaims) (string, error) {
	toEncode := make(jwt.MapClaims, len(claims)+1)
	for k, v := range claims {
		toEncode[k] = v
	}
	toEncode["exp"] = jwt.NewNumericDate(s.now().UTC().Add(s.ttl))

	token := jwt.NewWithClaims(s.method, toEncode)
	return token.SignedString(s.secret)
}

func (s *JWTService) Verify(tokenString string) (jwt.MapClaims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, ErrTokenInvalid
	}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	claims := jwt.MapClaims{}
	_, err := parser.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
