package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"inventory-backend/internal/product"
)

type CreateProductRequest struct {
	Name     string `json:"name" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=0"`
}

type ProductHandler struct {
	service  product.Service
	validate *validator.Validate
}

func NewProductHandler(service product.Service) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *ProductHandler) RegisterRoutes(router chi.Router) {
	router.Get("/products", h.handleListProducts)
	router.Post("/products/create", h.handleCreateProduct)
	router.Post("/products/{id}/update_quantity", h.handleUpdateQuantity)
	router.Delete("/products/{id}", h.handleDeleteProduct)
}

func (h *ProductHandler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list products via service")
		respondWithError(w, mapErrorToStatusCode(err), "Error fetching products")
		return
	}

	respondWithData(w, http.StatusOK, map[string]interface{}{"products": products})
}

func (h *ProductHandler) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var requestPayload CreateProductRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&requestPayload); err != nil {
		log.Warn().Err(err).Msg("Failed to decode create product request")
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

	created, err := h.service.CreateProduct(r.Context(), &product.Product{
		Name:     requestPayload.Name,
		Quantity: requestPayload.Quantity,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to create product via service")
		respondWithError(w, mapErrorToStatusCode(err), "Error adding product")
		return
	}

	respondWithData(w, http.StatusCreated, map[string]interface{}{"product": created})
}

// handleUpdateQuantity applies a signed delta from the `number` query
// parameter, matching the original update_quantity contract.
func (h *ProductHandler) handleUpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseObjectIDParam(w, r, "id")
	if !ok {
		return
	}

	delta, err := strconv.Atoi(r.URL.Query().Get("number"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Query parameter 'number' must be an integer")
		return
	}

	updated, err := h.service.AdjustQuantity(r.Context(), productID, delta)
	if err != nil {
		log.Error().Err(err).Stringer("product_id", productID).Msg("Failed to adjust product quantity via service")

		message := "Error updating product quantity"
		if statusCode := mapErrorToStatusCode(err); statusCode == http.StatusNotFound {
			message = "Product not found"
		}
		respondWithError(w, mapErrorToStatusCode(err), message)
		return
	}

	respondWithData(w, http.StatusOK, map[string]interface{}{"product": updated})
}

func (h *ProductHandler) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseObjectIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteProduct(r.Context(), productID); err != nil {
		log.Error().Err(err).Stringer("product_id", productID).Msg("Failed to delete product via service")

		message := "Error deleting product"
		if statusCode := mapErrorToStatusCode(err); statusCode == http.StatusNotFound {
			message = "Product not found"
		}
		respondWithError(w, mapErrorToStatusCode(err), message)
		return
	}

	respondWithMessage(w, http.StatusOK, "Product deleted successfully")
}

func parseObjectIDParam(w http.ResponseWriter, r *http.Request, name string) (primitive.ObjectID, bool) {
	raw := chi.URLParam(r, name)
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		log.Warn().Err(err).Str("param", name).Str("value", raw).Msg("Failed to parse id parameter from URL")
		respondWithError(w, http.StatusBadRequest, "Invalid id parameter")
		return primitive.NilObjectID, false
	}
	return id, true
}
