package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Service interface {
	ListUsers(ctx context.Context, search string) ([]User, error)
	CreateUser(ctx context.Context, u *User, password string) (*User, error)
	UpdateUser(ctx context.Context, u *User, password string) error
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
	Authenticate(ctx context.Context, email, password string) (*User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListUsers(ctx context.Context, search string) ([]User, error) {
	users, err := s.repo.List(ctx, search)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list users")
		return nil, fmt.Errorf("service: failed to list users: %w", err)
	}

	return users, nil
}

func (s *service) CreateUser(ctx context.Context, u *User, password string) (*User, error) {
	if u.Name == "" || u.Email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email, and password are required", ErrValidation)
	}

	if u.Role == "" {
		u.Role = RoleEmployee
	}
	if !u.Role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, u.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to hash password")
		return nil, fmt.Errorf("service: failed to hash password: %w", err)
	}
	u.PasswordHash = string(hash)

	createdID, err := s.repo.Create(ctx, u)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			return nil, ErrEmailExists
		}

		log.Error().Err(err).Msg("service: failed to create user")
		return nil, fmt.Errorf("service: failed to create user: %w", err)
	}

	u.ID = createdID

	return u, nil
}

func (s *service) UpdateUser(ctx context.Context, u *User, password string) error {
	if u.Role != "" && !u.Role.IsValid() {
		return fmt.Errorf("%w: unknown role %q", ErrValidation, u.Role)
	}

	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Error().Err(err).Msg("service: failed to hash password")
			return fmt.Errorf("service: failed to hash password: %w", err)
		}
		u.PasswordHash = string(hash)
	}

	if u.Name == "" && u.Email == "" && u.Role == "" && u.PasswordHash == "" {
		return fmt.Errorf("%w: no fields to update", ErrValidation)
	}

	err := s.repo.Update(ctx, u)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrEmailExists) {
			return err
		}

		log.Error().Err(err).Stringer("user_id", u.ID).Msg("service: failed to update user")
		return fmt.Errorf("service: failed to update user: %w", err)
	}

	return nil
}

func (s *service) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}

		log.Error().Err(err).Stringer("user_id", id).Msg("service: failed to delete user")
		return fmt.Errorf("service: failed to delete user: %w", err)
	}

	return nil
}

// Authenticate checks the password against the stored bcrypt hash. An
// unknown email and a wrong password are indistinguishable to the
// caller.
func (s *service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}

		log.Error().Err(err).Msg("service: failed to fetch user for login")
		return nil, fmt.Errorf("service: failed to fetch user for login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}
