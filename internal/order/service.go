package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"inventory-backend/internal/customer"
	"inventory-backend/internal/product"
)

var (
	ErrValidation    = errors.New("validation failed")
	ErrInvalidStatus = errors.New("invalid order status")
)

// CustomerInfo is the contact block supplied with every placed order.
// A fresh customer record is created from it each time.
type CustomerInfo struct {
	Name    string
	Phone   string
	Address string
}

type Service interface {
	PlaceOrder(ctx context.Context, info CustomerInfo, items []Item) (*PlacedOrder, error)
	UpdateOrderStatus(ctx context.Context, id primitive.ObjectID, newStatus Status) (*PopulatedOrder, error)
	ListOrders(ctx context.Context) ([]PopulatedOrder, error)
}

type service struct {
	orders    Repository
	customers customer.Repository
	products  product.Repository
}

func NewService(orders Repository, customers customer.Repository, products product.Repository) Service {
	return &service{
		orders:    orders,
		customers: customers,
		products:  products,
	}
}

// PlaceOrder creates a customer and an order as two sequential writes,
// then decrements each line item's product quantity. The decrements
// are best-effort: a failure is recorded in the returned adjustments
// and does not unwind the customer or order already written, nor stop
// the remaining items. The total is computed from the caller-supplied
// prices, not re-priced from the catalog.
func (s *service) PlaceOrder(ctx context.Context, info CustomerInfo, items []Item) (*PlacedOrder, error) {
	if err := validatePlaceOrder(info, items); err != nil {
		log.Warn().Err(err).Msg("service: rejected order placement")
		return nil, err
	}

	totalAmount := 0.0
	for _, item := range items {
		totalAmount += item.Price * float64(item.Quantity)
	}

	cust := &customer.Customer{
		Name:    info.Name,
		Phone:   info.Phone,
		Address: info.Address,
	}

	customerID, err := s.customers.Create(ctx, cust)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to create customer for order")
		return nil, fmt.Errorf("service: failed to create customer: %w", err)
	}
	cust.ID = customerID

	ord := &Order{
		CustomerID:  customerID,
		Items:       append([]Item(nil), items...),
		TotalAmount: totalAmount,
		Status:      StatusPending,
	}

	if _, err := s.orders.Create(ctx, ord); err != nil {
		log.Error().Err(err).Stringer("customer_id", customerID).Msg("service: failed to create order")
		return nil, fmt.Errorf("service: failed to create order: %w", err)
	}

	adjustments := make([]StockAdjustment, 0, len(items))
	for _, item := range items {
		adj := StockAdjustment{
			ProductID: item.ProductID,
			Delta:     -item.Quantity,
			Applied:   true,
		}

		if _, err := s.products.AdjustQuantity(ctx, item.ProductID, -item.Quantity); err != nil {
			log.Warn().
				Err(err).
				Stringer("order_id", ord.ID).
				Stringer("product_id", item.ProductID).
				Msg("service: stock decrement failed after order commit")
			adj.Applied = false
			adj.Error = err.Error()
		}

		adjustments = append(adjustments, adj)
	}

	log.Info().
		Stringer("order_id", ord.ID).
		Stringer("customer_id", customerID).
		Float64("total_amount", totalAmount).
		Msg("service: order placed")

	return &PlacedOrder{
		Order:       populate(ord, cust, nil),
		Adjustments: adjustments,
	}, nil
}

// UpdateOrderStatus accepts any member of the status enum regardless
// of the order's current status; only enum membership is checked.
func (s *service) UpdateOrderStatus(ctx context.Context, id primitive.ObjectID, newStatus Status) (*PopulatedOrder, error) {
	if !newStatus.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, newStatus)
	}

	if err := s.orders.UpdateStatus(ctx, id, newStatus); err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn().Stringer("order_id", id).Str("new_status", newStatus.String()).Msg("service: order not found for status update")
			return nil, ErrNotFound
		}

		log.Error().Err(err).Stringer("order_id", id).Msg("service: failed to update order status")
		return nil, fmt.Errorf("service: failed to update order status: %w", err)
	}

	ord, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("service: failed to read back order %s: %w", id.Hex(), err)
	}

	cust, err := s.customers.GetByID(ctx, ord.CustomerID)
	if err != nil && !errors.Is(err, customer.ErrNotFound) {
		return nil, fmt.Errorf("service: failed to resolve customer for order %s: %w", id.Hex(), err)
	}

	populated := populate(ord, cust, nil)
	return &populated, nil
}

// ListOrders returns every order with its customer and item products
// resolved at read time. References that no longer resolve come back
// nil; a deleted customer never fails the listing.
func (s *service) ListOrders(ctx context.Context) ([]PopulatedOrder, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list orders")
		return nil, fmt.Errorf("service: failed to list orders: %w", err)
	}

	customerIDs := make([]primitive.ObjectID, 0, len(orders))
	seenCustomers := make(map[primitive.ObjectID]bool)
	productIDs := make([]primitive.ObjectID, 0)
	seenProducts := make(map[primitive.ObjectID]bool)

	for _, ord := range orders {
		if !seenCustomers[ord.CustomerID] {
			seenCustomers[ord.CustomerID] = true
			customerIDs = append(customerIDs, ord.CustomerID)
		}
		for _, item := range ord.Items {
			if !seenProducts[item.ProductID] {
				seenProducts[item.ProductID] = true
				productIDs = append(productIDs, item.ProductID)
			}
		}
	}

	customers, err := s.customers.GetByIDs(ctx, customerIDs)
	if err != nil {
		return nil, fmt.Errorf("service: failed to resolve order customers: %w", err)
	}

	products, err := s.products.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("service: failed to resolve order products: %w", err)
	}

	customersByID := make(map[primitive.ObjectID]*customer.Customer, len(customers))
	for i := range customers {
		customersByID[customers[i].ID] = &customers[i]
	}

	productsByID := make(map[primitive.ObjectID]*product.Product, len(products))
	for i := range products {
		productsByID[products[i].ID] = &products[i]
	}

	populated := make([]PopulatedOrder, 0, len(orders))
	for i := range orders {
		populated = append(populated, populate(&orders[i], customersByID[orders[i].CustomerID], productsByID))
	}

	return populated, nil
}

func populate(ord *Order, cust *customer.Customer, productsByID map[primitive.ObjectID]*product.Product) PopulatedOrder {
	items := make([]PopulatedItem, 0, len(ord.Items))
	for _, item := range ord.Items {
		items = append(items, PopulatedItem{
			Item:    item,
			Product: productsByID[item.ProductID],
		})
	}

	return PopulatedOrder{
		Order:    *ord,
		Customer: cust,
		Items:    items,
	}
}

func validatePlaceOrder(info CustomerInfo, items []Item) error {
	if info.Name == "" {
		return fmt.Errorf("%w: customer name is required", ErrValidation)
	}
	if info.Phone == "" {
		return fmt.Errorf("%w: customer phone is required", ErrValidation)
	}
	if info.Address == "" {
		return fmt.Errorf("%w: customer address is required", ErrValidation)
	}
	if len(items) == 0 {
		return fmt.Errorf("%w: order must contain at least one item", ErrValidation)
	}

	for _, item := range items {
		if item.ProductID.IsZero() {
			return fmt.Errorf("%w: order item product id is required", ErrValidation)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: order item quantity for product %s must be greater than zero", ErrValidation, item.ProductID.Hex())
		}
		if item.Price < 0 {
			return fmt.Errorf("%w: order item price for product %s cannot be negative", ErrValidation, item.ProductID.Hex())
		}
	}

	return nil
}
