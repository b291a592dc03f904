// Package poller runs a refresh function on a fixed interval.
package poller

import (
	"context"
	"time"

	"marketplace-admin/internal/logger"

	"go.uber.org/zap"
)

// Run calls fn once immediately and then every interval until ctx is done.
// Errors are logged and do not stop the loop. A tick that comes due while fn
// is still running is dropped.
func Run(ctx context.Context, interval time.Duration, name string, fn func(context.Context) error) {
	log := logger.FromCtx(ctx).With(zap.String("poller", name))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	tick := func() {
		if err := fn(ctx); err != nil && ctx.Err() == nil {
			log.Warn("poll failed", zap.Error(err))
		}
	}

	tick()
	for {
		select {
		case <-ctx.Done():
			log.Debug("poller stopped")
			return
		case <-ticker.C:
			tick()
		}
	}
}

// Start runs Run in its own goroutine and returns a function that stops it
// and waits for it to exit.
func Start(ctx context.Context, interval time.Duration, name string, fn func(context.Context) error) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		Run(ctx, interval, name, fn)
	}()
	return func() {
		cancel()
		<-done
	}
}
