// main.go
package main

import (
	"context"
	"log"

	"rental-booking/cmd"
	"rental-booking/internal/data/store"
	"rental-booking/internal/wire"
	"rental-booking/pkg/database"
	"rental-booking/pkg/utils"

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
		zap.String("storage", config.Storage.Driver),
	)

	// Pick the draft persistence backend
	draftStore, cleanup, err := initStore(config)
	if err != nil {
		logger.Fatal("Failed to init draft store", zap.Error(err))
	}
	defer cleanup()

	logger.Info("Draft store ready", zap.String("driver", config.Storage.Driver))

	// Wire all dependencies
	app := wire.Wiring(draftStore, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}

func initStore(config *utils.Config) (store.DraftStore, func(), error) {
	switch config.Storage.Driver {
	case "postgres":
		db, err := database.InitDB(config.Database)
		if err != nil {
			return nil, nil, err
		}
		pg := store.NewPostgresStore(db)
		if err := pg.Migrate(context.Background()); err != nil {
			db.Close()
			return nil, nil, err
		}
		return pg, db.Close, nil

	case "memory":
		return store.NewMemoryStore(), func() {}, nil

	default:
		fs, err := store.NewFileStore(config.Storage.Path)
		if err != nil {
			return nil, nil, err
		}
		return fs, func() {}, nil
	}
}
