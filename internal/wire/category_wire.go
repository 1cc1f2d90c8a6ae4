package wire

import (
	"github.com/gras5/api-yamdb/internal/access"
	"github.com/gras5/api-yamdb/internal/adaptor"
	"github.com/gras5/api-yamdb/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCategory(r chi.Router, categoryHandler *adaptor.CategoryHandler, log *zap.Logger) {
	// Reads pass the policy for any caller; writes need admin or superuser.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequirePolicy(access.SuperuserAdminOrReadOnly, log))

		r.Get("/api/v1/categories", categoryHandler.List)
		r.Post("/api/v1/categories", categoryHandler.Create)
		r.Delete("/api/v1/categories/{slug}", categoryHandler.Delete)
	})
}
