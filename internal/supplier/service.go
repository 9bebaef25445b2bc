package supplier

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrValidation = errors.New("validation failed")

type Service interface {
	ListSuppliers(ctx context.Context, search string) ([]Supplier, error)
	CreateSupplier(ctx context.Context, sup *Supplier) (*Supplier, error)
	UpdateSupplier(ctx context.Context, sup *Supplier) (*Supplier, error)
	DeleteSupplier(ctx context.Context, id primitive.ObjectID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListSuppliers(ctx context.Context, search string) ([]Supplier, error) {
	suppliers, err := s.repo.List(ctx, search)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list suppliers")
		return nil, fmt.Errorf("service: failed to list suppliers: %w", err)
	}

	return suppliers, nil
}

func (s *service) CreateSupplier(ctx context.Context, sup *Supplier) (*Supplier, error) {
	if sup.Name == "" {
		return nil, fmt.Errorf("%w: supplier name is required", ErrValidation)
	}

	createdID, err := s.repo.Create(ctx, sup)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to create supplier")
		return nil, fmt.Errorf("service: failed to create supplier: %w", err)
	}

	sup.ID = createdID

	return sup, nil
}

// UpdateSupplier requires every field, matching the full-replace
// semantics of the update endpoint.
func (s *service) UpdateSupplier(ctx context.Context, sup *Supplier) (*Supplier, error) {
	if sup.Name == "" || sup.Phone == "" || sup.Address == "" || sup.Email == "" {
		return nil, fmt.Errorf("%w: all supplier fields are required", ErrValidation)
	}

	updated, err := s.repo.Update(ctx, sup)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}

		log.Error().Err(err).Stringer("supplier_id", sup.ID).Msg("service: failed to update supplier")
		return nil, fmt.Errorf("service: failed to update supplier: %w", err)
	}

	return updated, nil
}

func (s *service) DeleteSupplier(ctx context.Context, id primitive.ObjectID) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}

		log.Error().Err(err).Stringer("supplier_id", id).Msg("service: failed to delete supplier")
		return fmt.Errorf("service: failed to delete supplier: %w", err)
	}

	return nil
}
