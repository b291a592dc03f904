package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketplace-admin/internal/api"
	"marketplace-admin/internal/config"
	"marketplace-admin/internal/db"
	"marketplace-admin/internal/delivery"
	"marketplace-admin/internal/events"
	"marketplace-admin/internal/feedback"
	"marketplace-admin/internal/finance"
	"marketplace-admin/internal/handler"
	"marketplace-admin/internal/logger"
	"marketplace-admin/internal/metrics"
	mw "marketplace-admin/internal/middleware"
	"marketplace-admin/internal/notify"
	"marketplace-admin/internal/offer"
	"marketplace-admin/internal/order"
	"marketplace-admin/internal/router"
	"marketplace-admin/internal/session"
	"marketplace-admin/internal/stock"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

var (
	initDBFunc      = db.NewDatabase
	startServerFunc = func(srv *http.Server) error { return srv.ListenAndServe() }

	// startPublisherFunc starts the Kafka producer; the returned func waits
	// for its queue to drain after ctx is cancelled.
	startPublisherFunc = func(ctx context.Context, cfg *config.Config) (events.Publisher, func()) {
		prod := events.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic, 1024)
		prod.Start(ctx)
		return prod, prod.WaitClosed
	}
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	appCtx, cancel := context.WithCancel(ctx)
	h, cleanup, err := newServer(appCtx, cfg)
	if err != nil {
		cancel()
		cleanup()
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.L().Info("back office listening", zap.String("addr", srv.Addr))
		errCh <- startServerFunc(srv)
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
	case <-ctx.Done():
		logger.L().Info("shutting down")
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		err = srv.Shutdown(shutdownCtx)
		cancelShutdown()
	}

	cancel()
	cleanup()
	return err
}

// newServer builds the HTTP handler and every background worker it needs.
// The returned cleanup is never nil, also on error, and must run after ctx
// is cancelled.
func newServer(ctx context.Context, cfg *config.Config) (http.Handler, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	reg := metrics.NewRegistry()
	sessions := session.NewManager()
	client := api.NewClient(cfg.APIBaseURL, cfg.APITimeout,
		api.WithTokenProvider(sessions),
		api.WithRateLimit(cfg.APIRateLimit, cfg.APIRateBurst),
	)

	var publisher events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		var wait func()
		publisher, wait = startPublisherFunc(ctx, cfg)
		closers = append(closers, wait)
	}

	ledgers, closeLedgers, err := newLedgerFactory(cfg)
	if err != nil {
		return nil, cleanup, err
	}
	closers = append(closers, closeLedgers)

	orders := order.NewService(order.NewRepository(client))
	stocks := stock.NewService(stock.NewRepository(client))
	offers := offer.NewService(offer.NewRepository(client), publisher)

	hub := notify.NewHub()
	go hub.Run(ctx)

	workspaces := handler.NewWorkspaces(ctx, handler.WorkspaceConfig{
		Orders:       orders,
		Ledgers:      ledgers,
		Hub:          hub,
		Publisher:    publisher,
		Metrics:      reg,
		PollInterval: cfg.PollInterval,
	})
	sessions.OnEnd(workspaces.Drop)
	closers = append(closers, workspaces.Close)

	limiter := mw.NewLimiter()
	go limiter.Cleanup(ctx)

	r := router.New(router.Deps{
		Config:     cfg,
		Sessions:   sessions,
		Client:     client,
		Orders:     orders,
		Stock:      stocks,
		Offers:     offers,
		Finance:    finance.NewService(client),
		Feedback:   feedback.NewService(client),
		Workspaces: workspaces,
		Hub:        hub,
		Metrics:    reg,
		Limiter:    limiter,
	})
	return r, cleanup, nil
}

// newLedgerFactory opens the configured assignment ledger backend.
func newLedgerFactory(cfg *config.Config) (handler.LedgerFactory, func(), error) {
	switch cfg.LedgerBackend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		closeFn := func() {
			if err := rdb.Close(); err != nil {
				logger.L().Warn("redis close failed", zap.Error(err))
			}
		}
		return func(scope string) delivery.Ledger { return delivery.NewRedisLedger(rdb, scope) }, closeFn, nil

	case "postgres":
		database, err := initDBFunc(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("open ledger database: %w", err)
		}
		return postgresLedgers(database), func() { _ = database.Close() }, nil

	default:
		return func(string) delivery.Ledger { return delivery.NewMemoryLedger() }, func() {}, nil
	}
}

func postgresLedgers(database *sql.DB) handler.LedgerFactory {
	return func(scope string) delivery.Ledger { return delivery.NewPostgresLedger(database, scope) }
}
