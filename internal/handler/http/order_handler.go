package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"inventory-backend/internal/order"
)

type OrderCustomerRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address" validate:"required"`
}

type OrderItemRequest struct {
	ProductID string  `json:"productId" validate:"required"`
	Quantity  int     `json:"quantity" validate:"gt=0"`
	Price     float64 `json:"price" validate:"gte=0"`
}

// CreateOrderRequest carries caller-supplied prices; the total is
// computed from them without re-pricing against the catalog.
type CreateOrderRequest struct {
	Customer OrderCustomerRequest `json:"customer" validate:"required"`
	Items    []OrderItemRequest   `json:"items" validate:"required,min=1,dive"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type OrderHandler struct {
	service  order.Service
	validate *validator.Validate
}

func NewOrderHandler(service order.Service) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *OrderHandler) RegisterRoutes(router chi.Router) {
	router.Get("/orders", h.handleListOrders)
	router.Post("/orders/create", h.handlePlaceOrder)
	router.Patch("/orders/{orderId}/status", h.handleUpdateStatus)
}

func (h *OrderHandler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list orders via service")
		respondWithError(w, mapErrorToStatusCode(err), "Error fetching orders")
		return
	}

	respondWithData(w, http.StatusOK, orders)
}

func (h *OrderHandler) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var requestPayload CreateOrderRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&requestPayload); err != nil {
		log.Warn().Err(err).Msg("Failed to decode create order request")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(requestPayload); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			respondWithError(w, http.StatusBadRequest, formatValidationErrors(validationErrors))
		} else {
			log.Error().Err(err).Msg("Unexpected error type during validation")
			respondWithError(w, http.StatusInternalServerError, "Internal validation error")
		}
		return
	}

	items := make([]order.Item, 0, len(requestPayload.Items))
	for _, item := range requestPayload.Items {
		productID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid productId in order items")
			return
		}
		items = append(items, order.Item{
			ProductID: productID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	placed, err := h.service.PlaceOrder(r.Context(), order.CustomerInfo{
		Name:    requestPayload.Customer.Name,
		Phone:   requestPayload.Customer.Phone,
		Address: requestPayload.Customer.Address,
	}, items)
	if err != nil {
		log.Error().Err(err).Msg("Failed to place order via service")

		statusCode := mapErrorToStatusCode(err)
		clientMessage := "Error creating order"
		if statusCode == http.StatusBadRequest {
			clientMessage = err.Error()
		}

		respondWithError(w, statusCode, clientMessage)
		return
	}

	payload := map[string]interface{}{"order": placed.Order}
	if placed.PartiallyAdjusted() {
		// The order is committed; failed decrements are surfaced, not
		// rolled back.
		payload["stock_warnings"] = placed.Adjustments
	}

	respondWithData(w, http.StatusCreated, payload)
}

func (h *OrderHandler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parseObjectIDParam(w, r, "orderId")
	if !ok {
		return
	}

	var requestPayload UpdateOrderStatusRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&requestPayload); err != nil {
		log.Warn().Err(err).Msg("Failed to decode update order status request")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if requestPayload.Status == "" {
		respondWithError(w, http.StatusBadRequest, "Status is required")
		return
	}

	updated, err := h.service.UpdateOrderStatus(r.Context(), orderID, order.Status(requestPayload.Status))
	if err != nil {
		log.Error().Err(err).Stringer("order_id", orderID).Msg("Failed to update order status via service")

		statusCode := mapErrorToStatusCode(err)
		clientMessage := "Error updating order status"
		switch statusCode {
		case http.StatusNotFound:
			clientMessage = "Order not found"
		case http.StatusBadRequest:
			clientMessage = err.Error()
		}

		respondWithError(w, statusCode, clientMessage)
		return
	}

	respondWithData(w, http.StatusOK, map[string]interface{}{"order": updated})
}
