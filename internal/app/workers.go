package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.uber.org/fx"

	"github.com/glowandgrind/site-api/config"
	"github.com/glowandgrind/site-api/internal/service/inquiry"
	"github.com/glowandgrind/site-api/pkg/database"
	"github.com/glowandgrind/site-api/pkg/observability"
)

// WorkerModule registers the background loops of the API process.
var WorkerModule = fx.Module("workers",
	fx.Invoke(RegisterWorkers),
)

type WorkerParams struct {
	fx.In

	Lc         fx.Lifecycle
	Cfg        *config.Config
	DB         *database.DB
	InquirySvc inquiry.Service
}

func RegisterWorkers(p WorkerParams) {
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	p.Lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if r := p.Cfg.Notify.Retry; r.Enabled {
				wg.Add(1)
				go func() {
					defer wg.Done()
					runEvery(ctx, seconds(r.IntervalSeconds, 60), "delivery_retry", func(ctx context.Context) {
						retryDeliveries(ctx, p.InquirySvc)
					})
				}()
			}

			if p.Cfg.Observability.Metrics.Enabled {
				wg.Add(1)
				go func() {
					defer wg.Done()
					runEvery(ctx, 15*time.Second, "db_stats", func(context.Context) {
						observability.UpdateDBStats(p.DB.Stats())
					})
				}()
			}
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			done := make(chan struct{})
			go func() {
				wg.Wait()
				close(done)
			}()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}

// ---------------------------------------------------------------------------
// delivery_retry
// ---------------------------------------------------------------------------

func retryDeliveries(ctx context.Context, svc inquiry.Service) {
	report, err := svc.RetryFailed(ctx, 0)
	if err != nil {
		slog.WarnContext(ctx, "delivery_retry: run failed", "err", err)
		return
	}
	if report.Attempted > 0 {
		slog.InfoContext(ctx, "delivery_retry: replayed deliveries",
			"attempted", report.Attempted,
			"sent", report.Sent,
			"failed", report.Failed,
		)
	}
}

// runEvery calls fn on every tick until ctx is cancelled.
func runEvery(ctx context.Context, every time.Duration, name string, fn func(context.Context)) {
	slog.Info(name+": started", "interval", every)

	t := time.NewTicker(every)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info(name + ": stopped")
			return
		case <-t.C:
			fn(ctx)
		}
	}
}

func seconds(n, fallback int) time.Duration {
	if n <= 0 {
		n = fallback
	}
	return time.Duration(n) * time.Second
}
