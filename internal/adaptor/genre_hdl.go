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

type GenreHandler struct {
	service usecase.GenreService
	log     *zap.Logger
}

func NewGenreHandler(service usecase.GenreService, log *zap.Logger) *GenreHandler {
	return &GenreHandler{
		service: service,
		log:     log.With(zap.String("handler", "genre")),
	}
}

// List handles GET /api/v1/genres (public)
func (h *GenreHandler) List(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	genres, err := h.service.List(r.Context(), search, parsePagination(r))
	if err != nil {
		respondError(w, h.log, err, "list genres")
		return
	}

	utils.ResponseSuccess(w, "success", genres)
}

// Create handles POST /api/v1/genres (admin)
func (h *GenreHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGenreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	genre, err := h.service.Create(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err, "create genre")
		return
	}

	utils.ResponseCreated(w, "success", genre)
}

// Delete handles DELETE /api/v1/genres/{slug} (admin)
func (h *GenreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	if err := h.service.DeleteBySlug(r.Context(), slug); err != nil {
		respondError(w, h.log, err, "delete genre")
		return
	}

	utils.ResponseNoContent(w)
}
