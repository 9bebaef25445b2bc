package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"inventory-backend/internal/customer"
	"inventory-backend/internal/order"
)

type mockOrderService struct {
	PlaceOrderFunc        func(ctx context.Context, info order.CustomerInfo, items []order.Item) (*order.PlacedOrder, error)
	UpdateOrderStatusFunc func(ctx context.Context, id primitive.ObjectID, newStatus order.Status) (*order.PopulatedOrder, error)
	ListOrdersFunc        func(ctx context.Context) ([]order.PopulatedOrder, error)
}

func (m *mockOrderService) PlaceOrder(ctx context.Context, info order.CustomerInfo, items []order.Item) (*order.PlacedOrder, error) {
	return m.PlaceOrderFunc(ctx, info, items)
}

func (m *mockOrderService) UpdateOrderStatus(ctx context.Context, id primitive.ObjectID, newStatus order.Status) (*order.PopulatedOrder, error) {
	return m.UpdateOrderStatusFunc(ctx, id, newStatus)
}

func (m *mockOrderService) ListOrders(ctx context.Context) ([]order.PopulatedOrder, error) {
	return m.ListOrdersFunc(ctx)
}

func newOrderRouter(svc order.Service) *chi.Mux {
	r := chi.NewRouter()
	NewOrderHandler(svc).RegisterRoutes(r)
	return r
}

func placedOrderFixture(productID primitive.ObjectID) *order.PlacedOrder {
	cust := &customer.Customer{ID: primitive.NewObjectID(), Name: "Jordan Mose"}
	ord := order.Order{
		ID:          primitive.NewObjectID(),
		CustomerID:  cust.ID,
		Items:       []order.Item{{ProductID: productID, Quantity: 2, Price: 9.99}},
		TotalAmount: 19.98,
		Status:      order.StatusPending,
	}
	return &order.PlacedOrder{
		Order: order.PopulatedOrder{
			Order:    ord,
			Customer: cust,
			Items:    []order.PopulatedItem{{Item: ord.Items[0]}},
		},
		Adjustments: []order.StockAdjustment{
			{ProductID: productID, Delta: -2, Applied: true},
		},
	}
}

func TestOrderHandler_PlaceOrder(t *testing.T) {
	productID := primitive.NewObjectID()

	validBody := fmt.Sprintf(`{
		"customer": {"name": "Jordan Mose", "phone": "0712345678", "address": "14 Riverside Dr"},
		"items": [{"productId": %q, "quantity": 2, "price": 9.99}]
	}`, productID.Hex())

	tests := []struct {
		name           string
		body           string
		placeOrder     func(ctx context.Context, info order.CustomerInfo, items []order.Item) (*order.PlacedOrder, error)
		expectedStatus int
		expectSuccess  bool
	}{
		{
			name: "success",
			body: validBody,
			placeOrder: func(ctx context.Context, info order.CustomerInfo, items []order.Item) (*order.PlacedOrder, error) {
				return placedOrderFixture(productID), nil
			},
			expectedStatus: http.StatusCreated,
			expectSuccess:  true,
		},
		{
			name:           "invalid_json",
			body:           `{invalid json}`,
			placeOrder:     nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "missing_customer_address",
			body: fmt.Sprintf(`{
				"customer": {"name": "Jordan Mose", "phone": "0712345678", "address": ""},
				"items": [{"productId": %q, "quantity": 1, "price": 1.00}]
			}`, productID.Hex()),
			placeOrder:     nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "empty_items",
			body: `{
				"customer": {"name": "Jordan Mose", "phone": "0712345678", "address": "14 Riverside Dr"},
				"items": []
			}`,
			placeOrder:     nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "malformed_product_id",
			body: `{
				"customer": {"name": "Jordan Mose", "phone": "0712345678", "address": "14 Riverside Dr"},
				"items": [{"productId": "not-an-id", "quantity": 1, "price": 1.00}]
			}`,
			placeOrder:     nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "service_validation_error",
			body: validBody,
			placeOrder: func(ctx context.Context, info order.CustomerInfo, items []order.Item) (*order.PlacedOrder, error) {
				return nil, fmt.Errorf("%w: order must contain at least one item", order.ErrValidation)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "storage_error",
			body: validBody,
			placeOrder: func(ctx context.Context, info order.CustomerInfo, items []order.Item) (*order.PlacedOrder, error) {
				return nil, fmt.Errorf("service: failed to create order: connection reset")
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &mockOrderService{PlaceOrderFunc: tt.placeOrder}
			router := newOrderRouter(mockSvc)

			req := httptest.NewRequest(http.MethodPost, "/orders/create", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var envelope map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
			assert.Equal(t, tt.expectSuccess, envelope["success"])
		})
	}
}

func TestOrderHandler_PlaceOrder_PartialFailureWarnings(t *testing.T) {
	productID := primitive.NewObjectID()

	placed := placedOrderFixture(productID)
	placed.Adjustments[0].Applied = false
	placed.Adjustments[0].Error = "product not found"

	mockSvc := &mockOrderService{
		PlaceOrderFunc: func(ctx context.Context, info order.CustomerInfo, items []order.Item) (*order.PlacedOrder, error) {
			return placed, nil
		},
	}
	router := newOrderRouter(mockSvc)

	body := fmt.Sprintf(`{
		"customer": {"name": "Jordan Mose", "phone": "0712345678", "address": "14 Riverside Dr"},
		"items": [{"productId": %q, "quantity": 2, "price": 9.99}]
	}`, productID.Hex())

	req := httptest.NewRequest(http.MethodPost, "/orders/create", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	// The order is still created; the failed decrement surfaces as a warning.
	assert.Equal(t, http.StatusCreated, w.Code)

	var envelope struct {
		Success bool `json:"success"`
		Data    struct {
			StockWarnings []order.StockAdjustment `json:"stock_warnings"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	require.Len(t, envelope.Data.StockWarnings, 1)
	assert.False(t, envelope.Data.StockWarnings[0].Applied)
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	orderID := primitive.NewObjectID()

	tests := []struct {
		name           string
		url            string
		body           string
		updateStatus   func(ctx context.Context, id primitive.ObjectID, newStatus order.Status) (*order.PopulatedOrder, error)
		expectedStatus int
	}{
		{
			name: "success",
			url:  "/orders/" + orderID.Hex() + "/status",
			body: `{"status": "delivered"}`,
			updateStatus: func(ctx context.Context, id primitive.ObjectID, newStatus order.Status) (*order.PopulatedOrder, error) {
				return &order.PopulatedOrder{Order: order.Order{ID: id, Status: newStatus}}, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "unknown_status",
			url:  "/orders/" + orderID.Hex() + "/status",
			body: `{"status": "lost"}`,
			updateStatus: func(ctx context.Context, id primitive.ObjectID, newStatus order.Status) (*order.PopulatedOrder, error) {
				return nil, fmt.Errorf("%w: %q", order.ErrInvalidStatus, newStatus)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "order_not_found",
			url:  "/orders/" + orderID.Hex() + "/status",
			body: `{"status": "confirmed"}`,
			updateStatus: func(ctx context.Context, id primitive.ObjectID, newStatus order.Status) (*order.PopulatedOrder, error) {
				return nil, order.ErrNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "malformed_order_id",
			url:            "/orders/not-an-id/status",
			body:           `{"status": "confirmed"}`,
			updateStatus:   nil,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &mockOrderService{UpdateOrderStatusFunc: tt.updateStatus}
			router := newOrderRouter(mockSvc)

			req := httptest.NewRequest(http.MethodPatch, tt.url, bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestOrderHandler_ListOrders(t *testing.T) {
	mockSvc := &mockOrderService{
		ListOrdersFunc: func(ctx context.Context) ([]order.PopulatedOrder, error) {
			return []order.PopulatedOrder{}, nil
		},
	}
	router := newOrderRouter(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":[]}`, w.Body.String())
}
