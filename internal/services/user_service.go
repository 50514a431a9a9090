package services

import (
	"context"
	"errors"
	"time"

	"ugandapi-chat/config"
	"ugandapi-chat/internal/domain/user"
	"ugandapi-chat/internal/repository"
	relay_errors "ugandapi-chat/pkg/errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserService owns the credential store: registration behind the
// operator allow-list, lookups, and password verification.
type UserService struct {
	userRepo      repository.UserRepository
	verifiedUsers map[string]struct{}
}

func NewUserService(userRepo repository.UserRepository, cfg *config.Config) *UserService {
	verified := make(map[string]struct{}, len(cfg.VerifiedUsers))
	for _, username := range cfg.VerifiedUsers {
		verified[username] = struct{}{}
	}
	return &UserService{
		userRepo:      userRepo,
		verifiedUsers: verified,
	}
}

type RegisterInput struct {
	Username string
	Password string
	Email    string
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	if err := validateRegister(in); err != nil {
		return user.User{}, err
	}

	// An empty allow-list disables the gate entirely.
	if len(s.verifiedUsers) > 0 {
		if _, ok := s.verifiedUsers[in.Username]; !ok {
			return user.User{}, relay_errors.ErrNotVerified
		}
	}

	if _, err := s.userRepo.GetByUsername(ctx, in.Username); err == nil {
		return user.User{}, relay_errors.ErrAlreadyExists
	} else if !errors.Is(err, relay_errors.ErrNotFound) {
		return user.User{}, err
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return user.User{}, err
	}

	newUser := &user.User{
		ID:           uuid.New(),
		Username:     in.Username,
		PasswordHash: hash,
		Email:        in.Email,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, newUser); err != nil {
		return user.User{}, err
	}

	return *newUser, nil
}

func (s *UserService) Lookup(ctx context.Context, username string) (user.User, error) {
	return s.userRepo.GetByUsername(ctx, username)
}

// VerifyCredentials reports whether the password matches the stored
// hash. Missing users and mismatches both report false.
func (s *UserService) VerifyCredentials(ctx context.Context, username, password string) bool {
	u, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return false
	}
	return comparePassword(u.PasswordHash, password) == nil
}

func validateRegister(in RegisterInput) error {
	if in.Username == "" || in.Password == "" {
		return relay_errors.ErrInvalidInput
	}
	return nil
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
