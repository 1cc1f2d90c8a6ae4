package wire

import (
	"github.com/gras5/api-yamdb/internal/access"
	"github.com/gras5/api-yamdb/internal/adaptor"
	"github.com/gras5/api-yamdb/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireComment(r chi.Router, commentHandler *adaptor.CommentHandler, log *zap.Logger) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequirePolicy(access.AuthorModAdminOrReadOnly, log))

		r.Get("/api/v1/titles/{title_id}/reviews/{review_id}/comments", commentHandler.List)
		r.Post("/api/v1/titles/{title_id}/reviews/{review_id}/comments", commentHandler.Create)
		r.Get("/api/v1/titles/{title_id}/reviews/{review_id}/comments/{comment_id}", commentHandler.Get)
		r.Patch("/api/v1/titles/{title_id}/reviews/{review_id}/comments/{comment_id}", commentHandler.Update)
		r.Delete("/api/v1/titles/{title_id}/reviews/{review_id}/comments/{comment_id}", commentHandler.Delete)
	})
}
