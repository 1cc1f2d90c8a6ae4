// main.go
package main

import (
	"log"

	"github.com/gras5/api-yamdb/cmd"
	"github.com/gras5/api-yamdb/internal/data/repository"
	"github.com/gras5/api-yamdb/internal/migrate"
	"github.com/gras5/api-yamdb/internal/wire"
	"github.com/gras5/api-yamdb/pkg/database"
	"github.com/gras5/api-yamdb/pkg/mailer"
	"github.com/gras5/api-yamdb/pkg/token"
	"github.com/gras5/api-yamdb/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Apply schema migrations before opening the pool
	if err := migrate.Up(database.DSN(config.Database)); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	logger.Info("Migrations applied")

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	mail := mailer.New(config.Email, logger)
	issuer := token.NewIssuer(config.JWT.Secret, config.JWT.ExpiryHours)

	// Wire all dependencies
	app := wire.Wiring(repos, config, mail, issuer, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
