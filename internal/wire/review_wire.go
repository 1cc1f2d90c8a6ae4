package wire

import (
	"github.com/gras5/api-yamdb/internal/access"
	"github.com/gras5/api-yamdb/internal/adaptor"
	"github.com/gras5/api-yamdb/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReview(r chi.Router, reviewHandler *adaptor.ReviewHandler, log *zap.Logger) {
	// The collection-level policy gates anonymous writes here; whether the
	// caller may touch a specific review is checked in the service, where the
	// author is known.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequirePolicy(access.AuthorModAdminOrReadOnly, log))

		r.Get("/api/v1/titles/{title_id}/reviews", reviewHandler.List)
		r.Post("/api/v1/titles/{title_id}/reviews", reviewHandler.Create)
		r.Get("/api/v1/titles/{title_id}/reviews/{review_id}", reviewHandler.Get)
		r.Patch("/api/v1/titles/{title_id}/reviews/{review_id}", reviewHandler.Update)
		r.Delete("/api/v1/titles/{title_id}/reviews/{review_id}", reviewHandler.Delete)
	})
}
