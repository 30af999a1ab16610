package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/happythoughts/apiserver/internal/store"
	"github.com/happythoughts/apiserver/types"
)

// maxTokenAttempts bounds the regenerate-on-collision loop at registration.
const maxTokenAttempts = 3

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (types.User, error)
	GetByUsername(ctx context.Context, username string) (types.User, error)
	GetByEmail(ctx context.Context, email string) (types.User, error)
	GetByAccessToken(ctx context.Context, token string) (types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
}

// Registration is the payload accepted by Register.
type Registration struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserService encapsulates registration, login and token lookup.
type UserService struct {
	repo     UserRepository
	validate *Validator
	events   *Events
}

func NewUserService(repo UserRepository, validate *Validator, events *Events) *UserService {
	return &UserService{repo: repo, validate: validate, events: events}
}

func (s *UserService) GetByID(ctx context.Context, id string) (types.User, error) {
	return s.repo.GetByID(ctx, id)
}

// Register creates a user with a hashed password and a fresh access token.
// A taken username or email yields store.ErrDuplicate.
func (s *UserService) Register(ctx context.Context, reg Registration) (types.User, error) {
	reg.Username = strings.TrimSpace(reg.Username)
	reg.Email = normalizeEmail(reg.Email)
	if err := s.validate.Struct(reg); err != nil {
		return types.User{}, err
	}

	if err := s.ensureAvailable(ctx, reg); err != nil {
		return types.User{}, err
	}

	hashed, err := HashPassword(reg.Password)
	if err != nil {
		return types.User{}, err
	}

	var created types.User
	for attempt := 1; ; attempt++ {
		token, err := GenerateAccessToken()
		if err != nil {
			return types.User{}, fmt.Errorf("generate access token: %w", err)
		}

		created, err = s.repo.Create(ctx, types.User{
			Username:     reg.Username,
			Email:        reg.Email,
			PasswordHash: hashed,
			AccessToken:  token,
		})
		if err == nil {
			break
		}
		if !errors.Is(err, store.ErrTokenCollision) || attempt == maxTokenAttempts {
			return types.User{}, err
		}
	}

	s.events.emit(ctx, types.EventRegistered, "user", created.ID.Hex(), created)
	return created, nil
}

// Login returns the user matching email and password.
func (s *UserService) Login(ctx context.Context, email, password string) (types.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return types.User{}, ErrInvalidCredentials
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, ErrInvalidCredentials
		}
		return types.User{}, err
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return types.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// Authenticate resolves an access token to its user.
func (s *UserService) Authenticate(ctx context.Context, token string) (types.User, error) {
	if token == "" {
		return types.User{}, ErrUnauthorized
	}
	user, err := s.repo.GetByAccessToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, ErrUnauthorized
		}
		return types.User{}, err
	}
	return user, nil
}

func (s *UserService) ensureAvailable(ctx context.Context, reg Registration) error {
	if _, err := s.repo.GetByUsername(ctx, reg.Username); err == nil {
		return fmt.Errorf("%w: username already exists", store.ErrDuplicate)
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	if _, err := s.repo.GetByEmail(ctx, reg.Email); err == nil {
		return fmt.Errorf("%w: email already exists", store.ErrDuplicate)
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
