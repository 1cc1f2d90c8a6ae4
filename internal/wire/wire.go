// internal/wire/wire.go
package wire

import (
	"net/http"

	"github.com/gras5/api-yamdb/internal/adaptor"
	"github.com/gras5/api-yamdb/internal/data/repository"
	"github.com/gras5/api-yamdb/internal/usecase"
	"github.com/gras5/api-yamdb/pkg/mailer"
	"github.com/gras5/api-yamdb/pkg/middleware"
	"github.com/gras5/api-yamdb/pkg/token"
	"github.com/gras5/api-yamdb/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired dependencies
type App struct {
	Router *chi.Mux
}

// Wiring initializes services, handlers and the router
func Wiring(
	repo *repository.Repository,
	config *utils.Config,
	mail mailer.Mailer,
	issuer *token.Issuer,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, config, mail, issuer, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, issuer, logger)

	return &App{
		Router: router,
	}
}

// setupRouter configures the Chi router
func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	issuer *token.Issuer,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware. Authenticate only resolves the caller; route
	// groups decide what that caller may do.
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Authenticate(issuer, repo.Account, logger))

	// Apply routes
	wireAuth(r, handler.Auth)
	wireAccount(r, handler.Account, logger)
	wireCategory(r, handler.Category, logger)
	wireGenre(r, handler.Genre, logger)
	wireTitle(r, handler.Title, logger)
	wireReview(r, handler.Review, logger)
	wireComment(r, handler.Comment, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
