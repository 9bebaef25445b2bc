package stock

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrValidation = errors.New("validation failed")

type Service interface {
	ListStock(ctx context.Context) ([]Stock, error)
	CreateStock(ctx context.Context, st *Stock) (*Stock, error)
	UpdateQuantity(ctx context.Context, id primitive.ObjectID, quantity int) (*Stock, error)
	DeleteStock(ctx context.Context, id primitive.ObjectID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListStock(ctx context.Context) ([]Stock, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list stock")
		return nil, fmt.Errorf("service: failed to list stock: %w", err)
	}

	return entries, nil
}

func (s *service) CreateStock(ctx context.Context, st *Stock) (*Stock, error) {
	// Zero quantity and zero price are rejected along with the blank
	// strings. An entry is only created once real counts are known.
	if st.ProductID == "" || st.ProductName == "" || st.Category == "" ||
		st.Warehouse == "" || st.Supplier == "" || st.Quantity == 0 || st.Price == 0 {
		return nil, fmt.Errorf("%w: all stock fields are required", ErrValidation)
	}

	createdID, err := s.repo.Create(ctx, st)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to create stock")
		return nil, fmt.Errorf("service: failed to create stock: %w", err)
	}

	st.ID = createdID

	return st, nil
}

func (s *service) UpdateQuantity(ctx context.Context, id primitive.ObjectID, quantity int) (*Stock, error) {
	updated, err := s.repo.UpdateQuantity(ctx, id, quantity)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}

		log.Error().Err(err).Stringer("stock_id", id).Msg("service: failed to update stock quantity")
		return nil, fmt.Errorf("service: failed to update stock quantity: %w", err)
	}

	return updated, nil
}

func (s *service) DeleteStock(ctx context.Context, id primitive.ObjectID) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}

		log.Error().Err(err).Stringer("stock_id", id).Msg("service: failed to delete stock")
		return fmt.Errorf("service: failed to delete stock: %w", err)
	}

	return nil
}
