package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"ugandapi-chat/config"
	"ugandapi-chat/internal/domain/user"
	"ugandapi-chat/internal/repository"
	relay_errors "ugandapi-chat/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
)

// AuthService exchanges verified credentials for signed bearer tokens
// and resolves tokens back to users on protected routes.
type AuthService struct {
	userRepo  repository.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(cfg.JWTSecret),
		tokenTTL:  time.Duration(cfg.JWTExpiryHours) * time.Hour,
	}
}

// TokenClaims is the signed claim set carried by a bearer token. The
// original wire format carried only username and password_hash; iat/exp
// were added so tokens no longer live forever.
type TokenClaims struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
	jwt.RegisteredClaims
}

// Issue verifies the credentials and returns a signed token.
func (s *AuthService) Issue(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", relay_errors.ErrUnauthorized
	}

	u, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, relay_errors.ErrNotFound) {
			return "", relay_errors.ErrUnauthorized
		}
		return "", err
	}

	if comparePassword(u.PasswordHash, password) != nil {
		return "", relay_errors.ErrUnauthorized
	}

	now := time.Now()
	claims := TokenClaims{
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", err
	}

	return signed, nil
}

// Verify checks the token signature and expiry and resolves the claimed
// username to a stored user. Any failure collapses to ErrUnauthorized.
func (s *AuthService) Verify(ctx context.Context, tokenString string) (user.User, error) {
	if tokenString == "" {
		return user.User{}, relay_errors.ErrUnauthorized
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, relay_errors.ErrUnauthorized
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return user.User{}, relay_errors.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(*TokenClaims)
	if !ok || !parsed.Valid {
		return user.User{}, relay_errors.ErrUnauthorized
	}

	u, err := s.userRepo.GetByUsername(ctx, claims.Username)
	if err != nil {
		return user.User{}, relay_errors.ErrUnauthorized
	}

	return u, nil
}

func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, relay_errors.ErrInvalidInput),
		errors.Is(err, relay_errors.ErrAlreadyExists),
		errors.Is(err, relay_errors.ErrNotVerified):
		return http.StatusBadRequest
	case errors.Is(err, relay_errors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, relay_errors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, relay_errors.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, relay_errors.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

type ctxKey string

var usernameKey ctxKey = "username"

func WithUserContext(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey, username)
}

func UsernameFromContext(ctx context.Context) (string, bool) {
	value := ctx.Value(usernameKey)
	if value == nil {
		return "", false
	}
	username, ok := value.(string)
	return username, ok
}
