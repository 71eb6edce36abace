package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"patchwork/internal/crypto"
	"patchwork/internal/model"
	"patchwork/internal/repository"
)

// ErrUserAlreadySaved is returned when registering an existing email.
var ErrUserAlreadySaved = errors.New("User already saved")

// UserService handles user registration and the caller's embedded
// project list.
type UserService interface {
	Save(ctx context.Context, name, email, password string, admin bool) (*model.User, error)
	SaveProject(ctx context.Context, email string, project model.Project) (*model.Project, error)
}

type userService struct {
	users repository.UserRepository
}

// NewUserService creates a new user service.
func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

// Save registers a user, hashing the password before it reaches the store.
func (s *userService) Save(ctx context.Context, name, email, password string, admin bool) (*model.User, error) {
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Admin:    admin,
	}

	saved, err := s.users.Insert(ctx, user)
	if errors.Is(err, repository.ErrAlreadyExists) {
		return nil, ErrUserAlreadySaved
	}
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// SaveProject appends a project to the caller's embedded list, assigning a
// session id when the client did not send one.
func (s *userService) SaveProject(ctx context.Context, email string, project model.Project) (*model.Project, error) {
	if project.SessionID == "" {
		project.SessionID = uuid.New().String()
	}
	if err := s.users.AppendProject(ctx, email, project); err != nil {
		return nil, err
	}
	return &project, nil
}
