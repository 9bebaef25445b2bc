package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"inventory-backend/internal/category"
)

type CategoryRequest struct {
	Name string `json:"name"`
}

type CategoryHandler struct {
	service category.Service
}

func NewCategoryHandler(service category.Service) *CategoryHandler {
	return &CategoryHandler{service: service}
}

func (h *CategoryHandler) RegisterRoutes(router chi.Router) {
	router.Get("/categories", h.handleListCategories)
	router.Post("/categories/create", h.handleCreateCategory)
	router.Put("/categories/update/{id}", h.handleUpdateCategory)
	router.Delete("/categories/delete/{id}", h.handleDeleteCategory)
}

func (h *CategoryHandler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list categories via service")
		respondWithError(w, mapErrorToStatusCode(err), "Error fetching categories")
		return
	}

	respondWithData(w, http.StatusOK, map[string]interface{}{"categories": categories})
}

func (h *CategoryHandler) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var requestPayload CategoryRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&requestPayload); err != nil {
		log.Warn().Err(err).Msg("Failed to decode create category request")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if requestPayload.Name == "" {
		respondWithError(w, http.StatusBadRequest, "Category name is required")
		return
	}

	created, err := h.service.CreateCategory(r.Context(), requestPayload.Name)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create category via service")
		respondWithError(w, mapErrorToStatusCode(err), "Error adding category")
		return
	}

	respondWithData(w, http.StatusCreated, created)
}

func (h *CategoryHandler) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := parseObjectIDParam(w, r, "id")
	if !ok {
		return
	}

	var requestPayload CategoryRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&requestPayload); err != nil {
		log.Warn().Err(err).Msg("Failed to decode update category request")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if requestPayload.Name == "" {
		respondWithError(w, http.StatusBadRequest, "Category name is required")
		return
	}

	updated, err := h.service.UpdateCategory(r.Context(), categoryID, requestPayload.Name)
	if err != nil {
		log.Error().Err(err).Stringer("category_id", categoryID).Msg("Failed to update category via service")

		clientMessage := "Error updating category"
		if errors.Is(err, category.ErrNotFound) {
			clientMessage = "Category not found"
		}

		respondWithError(w, mapErrorToStatusCode(err), clientMessage)
		return
	}

	respondWithData(w, http.StatusOK, updated)
}

func (h *CategoryHandler) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := parseObjectIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteCategory(r.Context(), categoryID); err != nil {
		log.Error().Err(err).Stringer("category_id", categoryID).Msg("Failed to delete category via service")

		clientMessage := "Error deleting category"
		if errors.Is(err, category.ErrNotFound) {
			clientMessage = "Category not found"
		}

		respondWithError(w, mapErrorToStatusCode(err), clientMessage)
		return
	}

	respondWithMessage(w, http.StatusOK, "Category deleted successfully")
}
