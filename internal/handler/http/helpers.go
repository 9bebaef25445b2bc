package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"inventory-backend/internal/category"
	"inventory-backend/internal/order"
	"inventory-backend/internal/product"
	"inventory-backend/internal/stock"
	"inventory-backend/internal/supplier"
	"inventory-backend/internal/user"
	"inventory-backend/internal/warehouse"
)

// Every endpoint answers with the same envelope: a top-level success
// flag plus either a data payload or a message.
type dataResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func respondWithData(w http.ResponseWriter, code int, data interface{}) {
	respondWithJSON(w, code, dataResponse{Success: true, Data: data})
}

func respondWithMessage(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, messageResponse{Success: true, Message: message})
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, messageResponse{Success: false, Message: message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"message":"Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		log.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// mapErrorToStatusCode classifies every service failure into the four
// buckets the boundary contract uses: 400 validation, 404 not found,
// 409 duplicate email, 500 everything else.
func mapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, product.ErrValidation),
		errors.Is(err, stock.ErrValidation),
		errors.Is(err, warehouse.ErrValidation),
		errors.Is(err, supplier.ErrValidation),
		errors.Is(err, category.ErrValidation),
		errors.Is(err, user.ErrValidation),
		errors.Is(err, order.ErrValidation),
		errors.Is(err, order.ErrInvalidStatus):
		return http.StatusBadRequest
	case errors.Is(err, product.ErrNotFound),
		errors.Is(err, stock.ErrNotFound),
		errors.Is(err, warehouse.ErrNotFound),
		errors.Is(err, supplier.ErrNotFound),
		errors.Is(err, category.ErrNotFound),
		errors.Is(err, user.ErrNotFound),
		errors.Is(err, order.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, user.ErrEmailExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func formatValidationErrors(errs validator.ValidationErrors) string {
	for _, fe := range errs {
		switch fe.Tag() {
		case "required":
			return fmt.Sprintf("field '%s' is required", fe.Field())
		case "min":
			return fmt.Sprintf("field '%s' must have at least %s entries", fe.Field(), fe.Param())
		case "gt":
			return fmt.Sprintf("field '%s' must be greater than %s", fe.Field(), fe.Param())
		case "gte":
			return fmt.Sprintf("field '%s' must be at least %s", fe.Field(), fe.Param())
		case "email":
			return fmt.Sprintf("field '%s' must be a valid email", fe.Field())
		default:
			return fmt.Sprintf("field '%s' failed validation (%s)", fe.Field(), fe.Tag())
		}
	}
	return "validation failed"
}
