package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrValidation = errors.New("validation failed")

type Service interface {
	ListProducts(ctx context.Context) ([]Product, error)
	CreateProduct(ctx context.Context, p *Product) (*Product, error)
	AdjustQuantity(ctx context.Context, id primitive.ObjectID, delta int) (*Product, error)
	DeleteProduct(ctx context.Context, id primitive.ObjectID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListProducts(ctx context.Context) ([]Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list products")
		return nil, fmt.Errorf("service: failed to list products: %w", err)
	}

	return products, nil
}

func (s *service) CreateProduct(ctx context.Context, p *Product) (*Product, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("%w: product name is required", ErrValidation)
	}

	createdID, err := s.repo.Create(ctx, p)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to create product")
		return nil, fmt.Errorf("service: failed to create product: %w", err)
	}

	p.ID = createdID

	return p, nil
}

func (s *service) AdjustQuantity(ctx context.Context, id primitive.ObjectID, delta int) (*Product, error) {
	updated, err := s.repo.AdjustQuantity(ctx, id, delta)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}

		log.Error().Err(err).Stringer("product_id", id).Msg("service: failed to adjust product quantity")
		return nil, fmt.Errorf("service: failed to adjust product quantity: %w", err)
	}

	return updated, nil
}

func (s *service) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}

		log.Error().Err(err).Stringer("product_id", id).Msg("service: failed to delete product")
		return fmt.Errorf("service: failed to delete product: %w", err)
	}

	return nil
}
