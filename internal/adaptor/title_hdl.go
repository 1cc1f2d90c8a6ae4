package adaptor

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gras5/api-yamdb/internal/dto/request"
	"github.com/gras5/api-yamdb/internal/usecase"
	"github.com/gras5/api-yamdb/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TitleHandler struct {
	service usecase.TitleService
	log     *zap.Logger
}

func NewTitleHandler(service usecase.TitleService, log *zap.Logger) *TitleHandler {
	return &TitleHandler{
		service: service,
		log:     log.With(zap.String("handler", "title")),
	}
}

// List handles GET /api/v1/titles (public)
func (h *TitleHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := request.TitleListFilter{
		Category: query.Get("category"),
		Genre:    query.Get("genre"),
		Name:     query.Get("name"),
	}
	if raw := query.Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			utils.ResponseBadRequest(w, "Invalid year filter", nil)
			return
		}
		filter.Year = &year
	}

	titles, err := h.service.List(r.Context(), filter, parsePagination(r))
	if err != nil {
		respondError(w, h.log, err, "list titles")
		return
	}

	utils.ResponseSuccess(w, "success", titles)
}

// Create handles POST /api/v1/titles (admin)
func (h *TitleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	title, err := h.service.Create(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err, "create title")
		return
	}

	utils.ResponseCreated(w, "success", title)
}

// Get handles GET /api/v1/titles/{title_id} (public)
func (h *TitleHandler) Get(w http.ResponseWriter, r *http.Request) {
	titleID := chi.URLParam(r, "title_id")

	title, err := h.service.Get(r.Context(), titleID)
	if err != nil {
		respondError(w, h.log, err, "get title")
		return
	}

	utils.ResponseSuccess(w, "success", title)
}

// Update handles PATCH /api/v1/titles/{title_id} (admin)
func (h *TitleHandler) Update(w http.ResponseWriter, r *http.Request) {
	titleID := chi.URLParam(r, "title_id")

	var req request.UpdateTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	title, err := h.service.Update(r.Context(), titleID, &req)
	if err != nil {
		respondError(w, h.log, err, "update title")
		return
	}

	utils.ResponseSuccess(w, "success", title)
}

// Delete handles DELETE /api/v1/titles/{title_id} (admin)
func (h *TitleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	titleID := chi.URLParam(r, "title_id")

	if err := h.service.Delete(r.Context(), titleID); err != nil {
		respondError(w, h.log, err, "delete title")
		return
	}

	utils.ResponseNoContent(w)
}
