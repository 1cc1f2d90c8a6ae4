package wire

import (
	"github.com/gras5/api-yamdb/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/v1/auth/signup - Register or re-request a confirmation code
	r.Post("/api/v1/auth/signup", authHandler.Signup)

	// POST /api/v1/auth/token - Exchange a confirmation code for a bearer token
	r.Post("/api/v1/auth/token", authHandler.Token)
}
