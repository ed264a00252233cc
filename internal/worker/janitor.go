package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/leafscan-service/internal/service"
)

// Janitor periodically purges expired and used one-time codes. Cleanup is
// also callable on demand through the ledger; this loop is just the
// process-level caller.
type Janitor struct {
	ledger   *service.OTPLedger
	interval time.Duration
	logger   *zap.Logger
}

// NewJanitor builds the worker. A non-positive interval disables it.
func NewJanitor(ledger *service.OTPLedger, interval time.Duration, logger *zap.Logger) *Janitor {
	return &Janitor{ledger: ledger, interval: interval, logger: logger}
}

// Run blocks until ctx is cancelled, cleaning up on each tick. Call it in
// its own goroutine.
func (j *Janitor) Run(ctx context.Context) {
	if j.interval <= 0 {
		return
	}

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := j.ledger.CleanupExpired(ctx)
			if err != nil {
				j.logger.Warn("otp cleanup failed", zap.Error(err))
				continue
			}
			if deleted > 0 {
				j.logger.Info("otp cleanup", zap.Int64("deleted", deleted))
			}
		}
	}
}
