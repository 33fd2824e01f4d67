package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/tunetype/internal/shared"
)

// Setup writes config.toml when it is missing, then initializes the database and runs migrations.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	if _, err := os.Stat(r.configPath); err != nil {
		r.logger.Info("config file not found, creating from template", "path", r.configPath)
		if err := shared.CreateConfigFile(r.configPath); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}

		config, err := shared.LoadConfig(r.configPath)
		if err != nil {
			r.logger.Warn("failed to load created config, using defaults", "error", err)
		} else {
			config.ApplyEnv()
			r.config = config
		}
		if err := r.writePlain("Created %s\n", r.configPath); err != nil {
			return err
		}
	} else {
		r.logger.Info("using existing config", "path", r.configPath)
	}

	r.logger.Info("initializing database", "path", r.config.Database.Path)
	if _, err := r.database(); err != nil {
		return err
	}

	applied, err := shared.AppliedVersions(r.db)
	if err != nil {
		return err
	}
	r.logger.Infof("setup complete for database: %v", r.config.Database.Path)
	return r.writePlain("Database ready at %s (%d migrations applied)\n", r.config.Database.Path, len(applied))
}
