// main.go
package main

import (
	"log"
	"time"

	"screenbook/cmd"
	"screenbook/internal/data/repository"
	"screenbook/internal/metadata"
	"screenbook/internal/notify"
	"screenbook/internal/wire"
	"screenbook/pkg/cache"
	"screenbook/pkg/database"
	"screenbook/pkg/utils"

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

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Optional collaborators: redis rate limiting, AMQP confirmations and
	// the movie metadata provider all degrade to no-ops when unconfigured.
	rdb := cache.NewRedisClient(config.Redis, logger)

	var publisher notify.Publisher = notify.NopPublisher{}
	if config.AMQP.Enabled {
		publisher = notify.NewAMQPPublisher(config.AMQP.URL, logger)
		go notify.StartReservationConsumer(config.AMQP.URL, config.AMQP.TicketDir, logger)
	}

	var metadataClient metadata.Client
	if config.Metadata.BaseURL != "" {
		client, err := metadata.NewHTTPClient(
			config.Metadata.BaseURL,
			config.Metadata.APIKey,
			time.Duration(config.Metadata.TimeoutSeconds)*time.Second,
			logger,
		)
		if err != nil {
			logger.Warn("Metadata client disabled", zap.Error(err))
		} else {
			metadataClient = client
		}
	}

	// Wire all dependencies
	app := wire.Wiring(repos, config, publisher, metadataClient, rdb, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
