package monitoring

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

const HEALTHCHECK_INTERVAL = 15 * time.Second

type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// MonitorAnalyzerHealth checks once right away and then every interval,
// storing the outcome in healthy until ctx is done.
func MonitorAnalyzerHealth(ctx context.Context, checker HealthChecker, healthy *atomic.Bool, interval time.Duration) {
	if interval <= 0 {
		interval = HEALTHCHECK_INTERVAL
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	check := func() {
		checkCtx, cancel := context.WithTimeout(ctx, interval)
		defer cancel()

		err := checker.HealthCheck(checkCtx)
		wasHealthy := healthy.Swap(err == nil)
		switch {
		case err != nil && wasHealthy:
			slog.Warn("[HealthCheck] Analyzer is unhealthy", slog.String("error", err.Error()))
		case err == nil && !wasHealthy:
			slog.Info("[HealthCheck] Analyzer is healthy")
		}
	}

	check()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			check()
		}
	}
}
