package service

import (
	"context"
	"errors"
	"strings"

	"patchwork/internal/auth"
	"patchwork/internal/crypto"
	"patchwork/internal/repository"
)

var (
	// ErrUserNotFound is returned when no user matches the login email.
	ErrUserNotFound = errors.New("User Not Found")
	// ErrInvalidPassword is returned when the password does not match.
	ErrInvalidPassword = errors.New("Invalid Password")
)

// AuthService handles credential exchange.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
	IsLogged(bearer string) (*auth.Claims, error)
}

type authService struct {
	users      repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, jwtService *auth.JWTService) AuthService {
	return &authService{users: users, jwtService: jwtService}
}

// Login checks the password against the stored hash and returns a signed
// bearer token, "Bearer " prefix included.
func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	if !crypto.ComparePassword(password, user.Password) {
		return "", ErrInvalidPassword
	}

	token, err := s.jwtService.Issue(user.Email, user.Admin)
	if err != nil {
		return "", err
	}
	return "Bearer " + token, nil
}

// IsLogged verifies a "Bearer <jwt>" string and returns its claims.
func (s *authService) IsLogged(bearer string) (*auth.Claims, error) {
	scheme, token, found := strings.Cut(bearer, " ")
	if !found || scheme != "Bearer" {
		return nil, auth.ErrBearerRequired
	}
	return s.jwtService.Verify(token)
}
