package warehouse

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrValidation = errors.New("validation failed")

type Service interface {
	ListWarehouses(ctx context.Context) ([]Warehouse, error)
	CreateWarehouse(ctx context.Context, w *Warehouse) (*Warehouse, error)
	UpdateLocation(ctx context.Context, id primitive.ObjectID, location string) (*Warehouse, error)
	DeleteWarehouse(ctx context.Context, id primitive.ObjectID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListWarehouses(ctx context.Context) ([]Warehouse, error) {
	warehouses, err := s.repo.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list warehouses")
		return nil, fmt.Errorf("service: failed to list warehouses: %w", err)
	}

	return warehouses, nil
}

func (s *service) CreateWarehouse(ctx context.Context, w *Warehouse) (*Warehouse, error) {
	if w.Name == "" || w.Location == "" || w.Contact == "" {
		return nil, fmt.Errorf("%w: warehouse name, location, and contact are required", ErrValidation)
	}

	createdID, err := s.repo.Create(ctx, w)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to create warehouse")
		return nil, fmt.Errorf("service: failed to create warehouse: %w", err)
	}

	w.ID = createdID

	return w, nil
}

func (s *service) UpdateLocation(ctx context.Context, id primitive.ObjectID, location string) (*Warehouse, error) {
	if location == "" {
		return nil, fmt.Errorf("%w: warehouse location is required", ErrValidation)
	}

	updated, err := s.repo.UpdateLocation(ctx, id, location)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}

		log.Error().Err(err).Stringer("warehouse_id", id).Msg("service: failed to update warehouse")
		return nil, fmt.Errorf("service: failed to update warehouse: %w", err)
	}

	return updated, nil
}

func (s *service) DeleteWarehouse(ctx context.Context, id primitive.ObjectID) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}

		log.Error().Err(err).Stringer("warehouse_id", id).Msg("service: failed to delete warehouse")
		return fmt.Errorf("service: failed to delete warehouse: %w", err)
	}

	return nil
}
