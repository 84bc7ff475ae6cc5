package cmd

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/templui/scheduletable/internal/config"
	"github.com/templui/scheduletable/internal/db"
	"github.com/templui/scheduletable/internal/logger"
)

// openDB loads the app config and connects to its database.
func openDB() (*config.Config, *sqlx.DB, error) {
	cfg := config.Load()
	logger.Init(logger.Options{
		AppName:     cfg.AppName,
		Environment: cfg.AppEnv,
		Development: cfg.IsDevelopment(),
	})

	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return cfg, database, nil
}
