package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/redmonkez12/skill-assessment-api/internal/config"
	"github.com/redmonkez12/skill-assessment-api/internal/database"
)

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := newLogger(cfg)

	if cfg.Database.Driver != config.StoreDriverPostgres {
		logger.Info("nothing to migrate", "store", cfg.Database.Driver)
		return nil
	}

	sqlDB, err := database.Open(cmd.Context(), cfg.Database.ConnectionString())
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := database.Migrate(cmd.Context(), sqlDB); err != nil {
		return err
	}

	logger.Info("database migrations applied")
	return nil
}
