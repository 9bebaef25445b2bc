package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"inventory-backend/internal/customer"
)

type CustomerHandler struct {
	service customer.Service
}

func NewCustomerHandler(service customer.Service) *CustomerHandler {
	return &CustomerHandler{service: service}
}

func (h *CustomerHandler) RegisterRoutes(router chi.Router) {
	router.Get("/customers", h.handleListCustomers)
}

func (h *CustomerHandler) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.service.ListCustomers(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list customers via service")
		respondWithError(w, mapErrorToStatusCode(err), "Error fetching customers")
		return
	}

	respondWithData(w, http.StatusOK, map[string]interface{}{"customers": customers})
}
