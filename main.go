// main.go
package main

import (
	"log"

	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/cmd"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/data/draftstore"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/data/repository"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/wire"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/pkg/database"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/pkg/geo"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/pkg/payment"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/pkg/utils"

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

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Connect to Redis (transient draft storage)
	redisClient, err := database.InitRedis(config.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	logger.Info("Redis connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// External collaborators
	drafts := draftstore.NewRedisStore(redisClient, logger)

	resolver, err := geo.NewGoogleResolver(config.Maps.APIKey, logger)
	if err != nil {
		logger.Fatal("Failed to create distance resolver", zap.Error(err))
	}

	provider := payment.NewStripeProvider(config.Stripe, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, drafts, resolver, provider, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
