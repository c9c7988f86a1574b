package main

import (
	"log"
	"strings"

	"github.com/Lanziify/seps-web-server/internal/config"
	"github.com/Lanziify/seps-web-server/internal/database"
	"github.com/Lanziify/seps-web-server/internal/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Logger)
	l := logger.Get()
	defer l.Sync()

	// golang-migrate's pgx/v5 driver registers the pgx5 scheme.
	dsn := strings.Replace(cfg.GetDSN(), "postgres://", "pgx5://", 1)

	if err := database.RunMigrations("file://database/migrations", dsn); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	l.Info("Migrations applied")
}
