package adaptor

import (
	"errors"
	"net/http"

	"github.com/gras5/api-yamdb/internal/dto/request"
	"github.com/gras5/api-yamdb/internal/usecase"
	"github.com/gras5/api-yamdb/pkg/apperr"
	"github.com/gras5/api-yamdb/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	Account  *AccountHandler
	Category *CategoryHandler
	Genre    *GenreHandler
	Title    *TitleHandler
	Review   *ReviewHandler
	Comment  *CommentHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, log),
		Account:  NewAccountHandler(service.Account, log),
		Category: NewCategoryHandler(service.Category, log),
		Genre:    NewGenreHandler(service.Genre, log),
		Title:    NewTitleHandler(service.Title, log),
		Review:   NewReviewHandler(service.Review, log),
		Comment:  NewCommentHandler(service.Comment, log),
	}
}

// respondError maps a service error to an HTTP response. Application errors
// carry their kind; anything else is a 500 and the cause stays in the log.
func respondError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	switch appErr.Kind {
	case apperr.KindUnauthenticated:
		log.Warn(operation+" failed", zap.Error(err), zap.String("operation", operation))
		utils.ResponseUnauthorized(w, appErr.Message)
	case apperr.KindForbidden:
		log.Warn(operation+" failed", zap.Error(err), zap.String("operation", operation))
		utils.ResponseForbidden(w, appErr.Message)
	case apperr.KindNotFound:
		log.Warn(operation+" failed", zap.Error(err), zap.String("operation", operation))
		utils.ResponseNotFound(w, appErr.Message)
	case apperr.KindValidation:
		log.Warn(operation+" failed", zap.Error(err), zap.String("operation", operation))
		utils.ResponseBadRequest(w, appErr.Message, appErr.Fields)
	case apperr.KindConflict:
		log.Warn(operation+" failed", zap.Error(err), zap.String("operation", operation))
		utils.ResponseConflict(w, appErr.Message)
	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

func parsePagination(r *http.Request) *request.PaginatedRequest {
	query := r.URL.Query()
	return &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}
}
