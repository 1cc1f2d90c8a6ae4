package adaptor

import (
	"encoding/json"
	"net/http"

	"github.com/gras5/api-yamdb/internal/dto/request"
	"github.com/gras5/api-yamdb/internal/usecase"
	"github.com/gras5/api-yamdb/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CategoryHandler struct {
	service usecase.CategoryService
	log     *zap.Logger
}

func NewCategoryHandler(service usecase.CategoryService, log *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		log:     log.With(zap.String("handler", "category")),
	}
}

// List handles GET /api/v1/categories (public)
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	categories, err := h.service.List(r.Context(), search, parsePagination(r))
	if err != nil {
		respondError(w, h.log, err, "list categories")
		return
	}

	utils.ResponseSuccess(w, "success", categories)
}

// Create handles POST /api/v1/categories (admin)
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	category, err := h.service.Create(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err, "create category")
		return
	}

	utils.ResponseCreated(w, "success", category)
}

// Delete handles DELETE /api/v1/categories/{slug} (admin)
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	if err := h.service.DeleteBySlug(r.Context(), slug); err != nil {
		respondError(w, h.log, err, "delete category")
		return
	}

	utils.ResponseNoContent(w)
}
