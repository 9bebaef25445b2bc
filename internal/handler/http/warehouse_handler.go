package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"inventory-backend/internal/warehouse"
)

type CreateWarehouseRequest struct {
	Name     string `json:"name" validate:"required"`
	Location string `json:"location" validate:"required"`
	Capacity int    `json:"capacity" validate:"gte=0"`
	Contact  string `json:"contact" validate:"required"`
}

type UpdateWarehouseRequest struct {
	Location string `json:"location" validate:"required"`
}

type WarehouseHandler struct {
	service  warehouse.Service
	validate *validator.Validate
}

func NewWarehouseHandler(service warehouse.Service) *WarehouseHandler {
	return &WarehouseHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *WarehouseHandler) RegisterRoutes(router chi.Router) {
	router.Get("/warehouses", h.handleListWarehouses)
	router.Post("/warehouses/create", h.handleCreateWarehouse)
	router.Put("/warehouses/{id}", h.handleUpdateWarehouse)
	router.Delete("/warehouses/delete/{id}", h.handleDeleteWarehouse)
}

func (h *WarehouseHandler) handleListWarehouses(w http.ResponseWriter, r *http.Request) {
	warehouses, err := h.service.ListWarehouses(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list warehouses via service")
		respondWithError(w, mapErrorToStatusCode(err), "Error fetching warehouses")
		return
	}

	respondWithData(w, http.StatusOK, warehouses)
}

func (h *WarehouseHandler) handleCreateWarehouse(w http.ResponseWriter, r *http.Request) {
	var requestPayload CreateWarehouseRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&requestPayload); err != nil {
		log.Warn().Err(err).Msg("Failed to decode create warehouse request")
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

	created, err := h.service.CreateWarehouse(r.Context(), &warehouse.Warehouse{
		Name:     requestPayload.Name,
		Location: requestPayload.Location,
		Capacity: requestPayload.Capacity,
		Contact:  requestPayload.Contact,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to create warehouse via service")
		respondWithError(w, mapErrorToStatusCode(err), "Error adding warehouse")
		return
	}

	respondWithData(w, http.StatusCreated, created)
}

func (h *WarehouseHandler) handleUpdateWarehouse(w http.ResponseWriter, r *http.Request) {
	warehouseID, ok := parseObjectIDParam(w, r, "id")
	if !ok {
		return
	}

	var requestPayload UpdateWarehouseRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&requestPayload); err != nil {
		log.Warn().Err(err).Msg("Failed to decode update warehouse request")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	updated, err := h.service.UpdateLocation(r.Context(), warehouseID, requestPayload.Location)
	if err != nil {
		log.Error().Err(err).Stringer("warehouse_id", warehouseID).Msg("Failed to update warehouse via service")

		clientMessage := "Error updating warehouse"
		if errors.Is(err, warehouse.ErrNotFound) {
			clientMessage = "Warehouse not found"
		} else if errors.Is(err, warehouse.ErrValidation) {
			clientMessage = err.Error()
		}

		respondWithError(w, mapErrorToStatusCode(err), clientMessage)
		return
	}

	respondWithData(w, http.StatusOK, updated)
}

func (h *WarehouseHandler) handleDeleteWarehouse(w http.ResponseWriter, r *http.Request) {
	warehouseID, ok := parseObjectIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteWarehouse(r.Context(), warehouseID); err != nil {
		log.Error().Err(err).Stringer("warehouse_id", warehouseID).Msg("Failed to delete warehouse via service")

		clientMessage := "Error deleting warehouse"
		if errors.Is(err, warehouse.ErrNotFound) {
			clientMessage = "Warehouse not found"
		}

		respondWithError(w, mapErrorToStatusCode(err), clientMessage)
		return
	}

	respondWithMessage(w, http.StatusOK, "Warehouse deleted successfully")
}
