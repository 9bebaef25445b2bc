package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"inventory-backend/internal/stock"
)

type CreateStockRequest struct {
	ProductID   string  `json:"productId" validate:"required"`
	ProductName string  `json:"productName" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Warehouse   string  `json:"warehouse" validate:"required"`
	Quantity    int     `json:"quantity" validate:"required"`
	Supplier    string  `json:"supplier" validate:"required"`
	Price       float64 `json:"price" validate:"required"`
}

type UpdateStockRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

type StockHandler struct {
	service  stock.Service
	validate *validator.Validate
}

func NewStockHandler(service stock.Service) *StockHandler {
	return &StockHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *StockHandler) RegisterRoutes(router chi.Router) {
	router.Get("/stock", h.handleListStock)
	router.Post("/stock/create", h.handleCreateStock)
	router.Put("/stock/{id}", h.handleUpdateStock)
	router.Delete("/stock/delete/{id}", h.handleDeleteStock)
}

func (h *StockHandler) handleListStock(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.ListStock(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list stock via service")
		respondWithError(w, mapErrorToStatusCode(err), "Error fetching stock")
		return
	}

	respondWithData(w, http.StatusOK, map[string]interface{}{"stock": entries})
}

func (h *StockHandler) handleCreateStock(w http.ResponseWriter, r *http.Request) {
	var requestPayload CreateStockRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&requestPayload); err != nil {
		log.Warn().Err(err).Msg("Failed to decode create stock request")
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

	created, err := h.service.CreateStock(r.Context(), &stock.Stock{
		ProductID:   requestPayload.ProductID,
		ProductName: requestPayload.ProductName,
		Category:    requestPayload.Category,
		Warehouse:   requestPayload.Warehouse,
		Quantity:    requestPayload.Quantity,
		Supplier:    requestPayload.Supplier,
		Price:       requestPayload.Price,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to create stock via service")

		statusCode := mapErrorToStatusCode(err)
		clientMessage := "Error adding stock"
		if statusCode == http.StatusBadRequest {
			clientMessage = err.Error()
		}

		respondWithError(w, statusCode, clientMessage)
		return
	}

	respondWithData(w, http.StatusCreated, map[string]interface{}{"stock": created})
}

func (h *StockHandler) handleUpdateStock(w http.ResponseWriter, r *http.Request) {
	stockID, ok := parseObjectIDParam(w, r, "id")
	if !ok {
		return
	}

	var requestPayload UpdateStockRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&requestPayload); err != nil {
		log.Warn().Err(err).Msg("Failed to decode update stock request")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(requestPayload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Quantity must be at least 0")
		return
	}

	updated, err := h.service.UpdateQuantity(r.Context(), stockID, requestPayload.Quantity)
	if err != nil {
		log.Error().Err(err).Stringer("stock_id", stockID).Msg("Failed to update stock via service")

		clientMessage := "Error updating stock"
		if errors.Is(err, stock.ErrNotFound) {
			clientMessage = "Stock not found"
		}

		respondWithError(w, mapErrorToStatusCode(err), clientMessage)
		return
	}

	respondWithData(w, http.StatusOK, map[string]interface{}{"stock": updated})
}

func (h *StockHandler) handleDeleteStock(w http.ResponseWriter, r *http.Request) {
	stockID, ok := parseObjectIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteStock(r.Context(), stockID); err != nil {
		log.Error().Err(err).Stringer("stock_id", stockID).Msg("Failed to delete stock via service")

		clientMessage := "Error deleting stock"
		if errors.Is(err, stock.ErrNotFound) {
			clientMessage = "Stock not found"
		}

		respondWithError(w, mapErrorToStatusCode(err), clientMessage)
		return
	}

	respondWithMessage(w, http.StatusOK, "Stock deleted successfully")
}
