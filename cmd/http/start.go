package http

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/glowandgrind/site-api/config"
	apihttp "github.com/glowandgrind/site-api/internal/api/http"
	"github.com/glowandgrind/site-api/pkg/logs"
)

func NewStartCommand() *cobra.Command {
	var shutdownTimeout time.Duration

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Serve the inquiry, form schema and content endpoints",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.ReadConfig(cfgPath)
			if err != nil {
				return fmt.Errorf("read config: %w", err)
			}

			slog.SetDefault(logs.New(cfg))
			slog.Info("starting glowgrind", "port", cfg.Server.Port, "env", cfg.Server.Environment)

			apihttp.Start(cfg, shutdownTimeout)
			return nil
		},
	}

	cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 30*time.Second, "how long to wait for in-flight requests on shutdown")

	return cmd
}
