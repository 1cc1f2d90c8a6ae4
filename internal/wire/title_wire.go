package wire

import (
	"github.com/gras5/api-yamdb/internal/access"
	"github.com/gras5/api-yamdb/internal/adaptor"
	"github.com/gras5/api-yamdb/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireTitle(r chi.Router, titleHandler *adaptor.TitleHandler, log *zap.Logger) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequirePolicy(access.SuperuserAdminOrReadOnly, log))

		r.Get("/api/v1/titles", titleHandler.List)
		r.Post("/api/v1/titles", titleHandler.Create)
		r.Get("/api/v1/titles/{title_id}", titleHandler.Get)
		r.Patch("/api/v1/titles/{title_id}", titleHandler.Update)
		r.Delete("/api/v1/titles/{title_id}", titleHandler.Delete)
	})
}
