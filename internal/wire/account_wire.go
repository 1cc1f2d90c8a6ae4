package wire

import (
	"github.com/gras5/api-yamdb/internal/access"
	"github.com/gras5/api-yamdb/internal/adaptor"
	"github.com/gras5/api-yamdb/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAccount(r chi.Router, accountHandler *adaptor.AccountHandler, log *zap.Logger) {
	// ==================== SELF-PROFILE ROUTES (any authenticated caller) ====================
	// The static /users/me segment takes priority over /users/{username}.
	r.Get("/api/v1/users/me", accountHandler.GetSelf)
	r.Patch("/api/v1/users/me", accountHandler.UpdateSelf)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequirePolicy(access.SuperuserOrAdminOnly, log))

		r.Get("/api/v1/users", accountHandler.List)
		r.Post("/api/v1/users", accountHandler.Create)
		r.Get("/api/v1/users/{username}", accountHandler.Get)
		r.Patch("/api/v1/users/{username}", accountHandler.Update)
		r.Delete("/api/v1/users/{username}", accountHandler.Delete)
	})
}
