package adaptor

import (
	"encoding/json"
	"net/http"

	"github.com/gras5/api-yamdb/internal/access"
	"github.com/gras5/api-yamdb/internal/dto/request"
	"github.com/gras5/api-yamdb/internal/usecase"
	"github.com/gras5/api-yamdb/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// List handles GET /api/v1/titles/{title_id}/reviews (public)
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	titleID := chi.URLParam(r, "title_id")

	reviews, err := h.service.ListByTitle(r.Context(), titleID, parsePagination(r))
	if err != nil {
		respondError(w, h.log, err, "list reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// Create handles POST /api/v1/titles/{title_id}/reviews (authenticated)
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	titleID := chi.URLParam(r, "title_id")
	caller := access.CallerFrom(r.Context())

	var req request.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	review, err := h.service.Create(r.Context(), caller, titleID, &req)
	if err != nil {
		respondError(w, h.log, err, "create review")
		return
	}

	utils.ResponseCreated(w, "success", review)
}

// Get handles GET /api/v1/titles/{title_id}/reviews/{review_id} (public)
func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	titleID := chi.URLParam(r, "title_id")
	reviewID := chi.URLParam(r, "review_id")

	review, err := h.service.Get(r.Context(), titleID, reviewID)
	if err != nil {
		respondError(w, h.log, err, "get review")
		return
	}

	utils.ResponseSuccess(w, "success", review)
}

// Update handles PATCH /api/v1/titles/{title_id}/reviews/{review_id}
// (author, moderator or admin)
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	titleID := chi.URLParam(r, "title_id")
	reviewID := chi.URLParam(r, "review_id")
	caller := access.CallerFrom(r.Context())

	var req request.UpdateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	review, err := h.service.Update(r.Context(), caller, titleID, reviewID, &req)
	if err != nil {
		respondError(w, h.log, err, "update review")
		return
	}

	utils.ResponseSuccess(w, "success", review)
}

// Delete handles DELETE /api/v1/titles/{title_id}/reviews/{review_id}
// (author, moderator or admin)
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	titleID := chi.URLParam(r, "title_id")
	reviewID := chi.URLParam(r, "review_id")
	caller := access.CallerFrom(r.Context())

	if err := h.service.Delete(r.Context(), caller, titleID, reviewID); err != nil {
		respondError(w, h.log, err, "delete review")
		return
	}

	utils.ResponseNoContent(w)
}
