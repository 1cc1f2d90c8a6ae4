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

type AccountHandler struct {
	service usecase.AccountService
	log     *zap.Logger
}

func NewAccountHandler(service usecase.AccountService, log *zap.Logger) *AccountHandler {
	return &AccountHandler{
		service: service,
		log:     log.With(zap.String("handler", "account")),
	}
}

// List handles GET /api/v1/users (admin)
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	accounts, err := h.service.List(r.Context(), search, parsePagination(r))
	if err != nil {
		respondError(w, h.log, err, "list accounts")
		return
	}

	utils.ResponseSuccess(w, "success", accounts)
}

// Create handles POST /api/v1/users (admin)
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	account, err := h.service.Create(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err, "create account")
		return
	}

	utils.ResponseCreated(w, "success", account)
}

// Get handles GET /api/v1/users/{username} (admin)
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	account, err := h.service.GetByUsername(r.Context(), username)
	if err != nil {
		respondError(w, h.log, err, "get account")
		return
	}

	utils.ResponseSuccess(w, "success", account)
}

// Update handles PATCH /api/v1/users/{username} (admin)
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	var req request.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	account, err := h.service.UpdateByUsername(r.Context(), username, &req)
	if err != nil {
		respondError(w, h.log, err, "update account")
		return
	}

	utils.ResponseSuccess(w, "success", account)
}

// Delete handles DELETE /api/v1/users/{username} (admin)
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	if err := h.service.DeleteByUsername(r.Context(), username); err != nil {
		respondError(w, h.log, err, "delete account")
		return
	}

	utils.ResponseNoContent(w)
}

// GetSelf handles GET /api/v1/users/me (authenticated)
func (h *AccountHandler) GetSelf(w http.ResponseWriter, r *http.Request) {
	caller := access.CallerFrom(r.Context())

	account, err := h.service.GetSelf(r.Context(), caller)
	if err != nil {
		respondError(w, h.log, err, "get profile")
		return
	}

	utils.ResponseSuccess(w, "success", account)
}

// UpdateSelf handles PATCH /api/v1/users/me (authenticated)
func (h *AccountHandler) UpdateSelf(w http.ResponseWriter, r *http.Request) {
	caller := access.CallerFrom(r.Context())

	var req request.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	account, err := h.service.UpdateSelf(r.Context(), caller, &req)
	if err != nil {
		respondError(w, h.log, err, "update profile")
		return
	}

	utils.ResponseSuccess(w, "success", account)
}
