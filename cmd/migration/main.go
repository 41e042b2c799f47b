package main

import (
	"os"

	"recommai/config"
	"recommai/internal/database"

	logger "github.com/Bparsons0904/goLogger"
)

// Migrates the two tables this service owns (users, search_histories). The
// reference tables are loaded by the external batch pipeline and are not
// touched here.
func main() {
	log := logger.New("migration")

	config, err := config.New()
	if err != nil {
		log.Er("failed to initialize config", err)
		os.Exit(1)
	}

	db, err := database.New(config)
	if err != nil {
		log.Er("failed to connect to database", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Er("failed to close database", err)
		}
	}()

	if err := db.MigrateModels(); err != nil {
		log.Er("migration failed", err)
		os.Exit(1)
	}

	if err := db.CreateIndexes(); err != nil {
		log.Er("index creation failed", err)
		os.Exit(1)
	}

	log.Info("Migration complete")
}
