package wire

import (
	"github.com/gras5/api-yamdb/internal/access"
	"github.com/gras5/api-yamdb/internal/adaptor"
	"github.com/gras5/api-yamdb/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireGenre(r chi.Router, genreHandler *adaptor.GenreHandler, log *zap.Logger) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequirePolicy(access.SuperuserAdminOrReadOnly, log))

		r.Get("/api/v1/genres", genreHandler.List)
		r.Post("/api/v1/genres", genreHandler.Create)
		r.Delete("/api/v1/genres/{slug}", genreHandler.Delete)
	})
}
