package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"inventory-backend/internal/supplier"
)

type CreateSupplierRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type UpdateSupplierRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address" validate:"required"`
}

type SupplierHandler struct {
	service  supplier.Service
	validate *validator.Validate
}

func NewSupplierHandler(service supplier.Service) *SupplierHandler {
	return &SupplierHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *SupplierHandler) RegisterRoutes(router chi.Router) {
	router.Get("/suppliers", h.handleListSuppliers)
	router.Post("/suppliers/create", h.handleCreateSupplier)
	router.Put("/suppliers/update/{id}", h.handleUpdateSupplier)
	router.Delete("/suppliers/delete/{id}", h.handleDeleteSupplier)
}

func (h *SupplierHandler) handleListSuppliers(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	suppliers, err := h.service.ListSuppliers(r.Context(), search)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list suppliers via service")
		respondWithError(w, mapErrorToStatusCode(err), "Error fetching suppliers")
		return
	}

	respondWithData(w, http.StatusOK, map[string]interface{}{"suppliers": suppliers})
}

func (h *SupplierHandler) handleCreateSupplier(w http.ResponseWriter, r *http.Request) {
	var requestPayload CreateSupplierRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&requestPayload); err != nil {
		log.Warn().Err(err).Msg("Failed to decode create supplier request")
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

	if _, err := h.service.CreateSupplier(r.Context(), &supplier.Supplier{
		Name:    requestPayload.Name,
		Email:   requestPayload.Email,
		Phone:   requestPayload.Phone,
		Address: requestPayload.Address,
	}); err != nil {
		log.Error().Err(err).Msg("Failed to create supplier via service")
		respondWithError(w, mapErrorToStatusCode(err), "Error adding supplier")
		return
	}

	respondWithMessage(w, http.StatusOK, "Supplier added successfully")
}

func (h *SupplierHandler) handleUpdateSupplier(w http.ResponseWriter, r *http.Request) {
	supplierID, ok := parseObjectIDParam(w, r, "id")
	if !ok {
		return
	}

	var requestPayload UpdateSupplierRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&requestPayload); err != nil {
		log.Warn().Err(err).Msg("Failed to decode update supplier request")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(requestPayload); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			respondWithError(w, http.StatusBadRequest, "All fields are required")
		} else {
			log.Error().Err(err).Msg("Unexpected error type during validation")
			respondWithError(w, http.StatusInternalServerError, "Internal validation error")
		}
		return
	}

	updated, err := h.service.UpdateSupplier(r.Context(), &supplier.Supplier{
		ID:      supplierID,
		Name:    requestPayload.Name,
		Email:   requestPayload.Email,
		Phone:   requestPayload.Phone,
		Address: requestPayload.Address,
	})
	if err != nil {
		log.Error().Err(err).Stringer("supplier_id", supplierID).Msg("Failed to update supplier via service")

		clientMessage := "Error updating supplier"
		if errors.Is(err, supplier.ErrNotFound) {
			clientMessage = "Supplier not found"
		}

		respondWithError(w, mapErrorToStatusCode(err), clientMessage)
		return
	}

	respondWithData(w, http.StatusOK, updated)
}

func (h *SupplierHandler) handleDeleteSupplier(w http.ResponseWriter, r *http.Request) {
	supplierID, ok := parseObjectIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteSupplier(r.Context(), supplierID); err != nil {
		log.Error().Err(err).Stringer("supplier_id", supplierID).Msg("Failed to delete supplier via service")

		clientMessage := "Error deleting supplier"
		if errors.Is(err, supplier.ErrNotFound) {
			clientMessage = "Supplier not found"
		}

		respondWithError(w, mapErrorToStatusCode(err), clientMessage)
		return
	}

	respondWithMessage(w, http.StatusOK, "Supplier deleted successfully")
}
