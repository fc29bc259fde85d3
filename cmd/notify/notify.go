package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/glowandgrind/site-api/config"
	"github.com/glowandgrind/site-api/internal/app"
	"github.com/glowandgrind/site-api/internal/service/inquiry"
	"github.com/glowandgrind/site-api/pkg/logs"
)

func NewNotifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Inspect and replay notification email deliveries",
	}

	cmd.AddCommand(NewRetryCommand())
	cmd.AddCommand(NewListCommand())

	return cmd
}

// withInquiryService builds the service graph without the HTTP server,
// runs fn and tears everything down again.
func withInquiryService(cmd *cobra.Command, fn func(ctx context.Context, svc inquiry.Service) error) error {
	cfgPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := config.ReadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	slog.SetDefault(logs.New(cfg))

	var svc inquiry.Service
	fxApp := fx.New(
		fx.Supply(cfg),
		app.InfraModule,
		app.ServiceModule,
		fx.Populate(&svc),
		fx.WithLogger(func() fxevent.Logger { return fxevent.NopLogger }),
	)

	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := fxApp.Start(startCtx); err != nil {
		return err
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_ = fxApp.Stop(stopCtx)
	}()

	return fn(cmd.Context(), svc)
}
