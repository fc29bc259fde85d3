package system

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/glowandgrind/site-api/config"
	"github.com/glowandgrind/site-api/internal/repo"
	"github.com/glowandgrind/site-api/pkg/database"
	"github.com/glowandgrind/site-api/pkg/logs"
)

func NewMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the database if needed and migrate the submission tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, err := cmd.Flags().GetString("config")
			if err != nil {
				return fmt.Errorf("failed to get config flag: %w", err)
			}
			cfg, err := config.ReadConfig(cfgPath)
			if err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}
			log := logs.New(cfg)

			timeout := time.Duration(cfg.Server.TimeoutSeconds) * time.Second
			if timeout <= 0 {
				timeout = time.Minute
			}
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			dbCfg := database.FromCentralConfig(cfg.Database)
			if err := database.EnsureDatabase(ctx, dbCfg, log); err != nil {
				return fmt.Errorf("failed to ensure database: %w", err)
			}

			db, err := database.New(dbCfg, log)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()

			if err := db.Migrate(ctx, repo.Models()...); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Migrations executed successfully.")
			return nil
		},
	}

	return cmd
}
