package auth

import (
	"context"
	"errors"
)

var (
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
)

type Service struct {
	store  *Store
	secret string
}

func NewService(store *Store, secret string) *Service {
	return &Service{store: store, secret: secret}
}

// Register enforces the role enum itself; transport validation is not
// the only gate.
func (s *Service) Register(ctx context.Context, username, email, password, role string) (string, error) {
	if !ValidRole(role) {
		return "", ErrInvalidRole
	}

	taken, err := s.store.EmailTaken(ctx, email)
	if err != nil {
		return "", err
	}
	if taken {
		return "", ErrEmailTaken
	}

	hash, err := HashPassword(password)
	if err != nil {
		return "", err
	}
	return s.store.CreateUser(ctx, username, email, hash, role)
}

// Login verifies credentials and issues a 24h token binding user id and
// role. Unknown email and wrong password are indistinguishable to the
// caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.store.UserByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if err := CheckPassword(user.PasswordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}

	return GenerateToken(s.secret, Claims{UserID: user.ID, Role: user.Role}, TokenTTL)
}
