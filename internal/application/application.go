// Package application собирает движок скупки: состояние, Telegram, уведомления,
// бот, admin API, метрики и пробы. Всё живёт в одной errgroup.
package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"tg_giftbuyer/internal/config"
	"tg_giftbuyer/internal/domain/service/allocation"
	"tg_giftbuyer/internal/domain/service/purchase"
	"tg_giftbuyer/internal/infrastructure/notifier"
	"tg_giftbuyer/internal/infrastructure/persistence"
	"tg_giftbuyer/internal/infrastructure/telegram"
	"tg_giftbuyer/internal/metrics"
	"tg_giftbuyer/internal/server"
	"tg_giftbuyer/internal/transport/bot"
	"tg_giftbuyer/internal/worker"
	"tg_giftbuyer/pkg/application/connectors"
	"tg_giftbuyer/pkg/application/modules"
	"tg_giftbuyer/pkg/contextx"
	"tg_giftbuyer/pkg/logx"
	"tg_giftbuyer/pkg/probe"
)

const (
	appName         = "giftbuyer"
	shutdownTimeout = 10 * time.Second
)

var Version = "dev" //nolint:gochecknoglobals // ldflags

var errTelegramNotReady = errors.New("telegram client is not authorized yet")

func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	log := slog.New(logx.NewHandler(logx.HandlerOptions{
		Level:   cfg.Log.Level,
		File:    cfg.Log.File,
		NoColor: cfg.Log.NoColor,
	})).With(
		slog.String(logx.FieldAppName, appName),
		slog.String(logx.FieldAppVersion, Version),
	)
	slog.SetDefault(log)
	ctx = contextx.WithLogger(ctx, log)

	pg := &connectors.Postgres{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}
	defer pg.Close(ctx)

	rds := &connectors.Redis{
		Username:           cfg.Redis.Username,
		Password:           cfg.Redis.Password,
		Address:            cfg.Redis.Address,
		DatabaseNumber:     cfg.Redis.DatabaseNumber,
		PoolSize:           cfg.Redis.PoolSize,
		MinIdleConnections: cfg.Redis.MinIdleConnections,
		MaxIdleConnections: cfg.Redis.MaxIdleConnections,
	}
	defer rds.Close(ctx)

	store, err := openStore(ctx, cfg.State, pg, rds)
	if err != nil {
		return err
	}

	queue, err := allocation.Open(ctx, store)
	if err != nil {
		return fmt.Errorf("allocation.Open: %w", err)
	}
	log.Info("state loaded",
		slog.String("backend", cfg.State.Backend),
		slog.Int("recipients", queue.Len()),
	)

	tgClient, err := telegram.NewClient(cfg.Telegram)
	if err != nil {
		return fmt.Errorf("telegram.NewClient: %w", err)
	}

	alertBot, err := notifier.NewTelegramBot(cfg.Bot.Token, cfg.Bot.ChatID)
	if err != nil {
		return fmt.Errorf("notifier.NewTelegramBot: %w", err)
	}

	tiers, err := cfg.Engine.Tiers()
	if err != nil {
		return fmt.Errorf("engine tiers: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	var notify worker.Notifier = alertBot

	if cfg.Notify.Async {
		asynqClient := asynq.NewClient(rds.AsynqOpt())
		defer asynqClient.Close()

		notify = notifier.NewOutbox(asynqClient)

		modules.AsynqServer{Redis: rds.AsynqOpt(), Concurrency: 1}.Run(ctx, g,
			modules.AsynqQueues{notifier.OutboxQueue: 1},
			notifier.OutboxHandler(alertBot),
		)
	}

	executor := purchase.NewExecutor(tgClient).WithObserver(metrics.ObserveAttempt)

	acquirer := worker.NewAcquirer(
		tgClient,
		telegram.NewResolver(tgClient),
		executor,
		queue,
		notify,
		alertBot,
		worker.Options{
			IdleBackoff:      cfg.Engine.IdleBackoff,
			ErrorBackoff:     cfg.Engine.ErrorBackoff,
			PausePoll:        cfg.Engine.PausePoll,
			HeartbeatEvery:   cfg.Engine.HeartbeatEvery,
			Tiers:            tiers,
			RequeueRemainder: cfg.Engine.RequeueRemainder,
			StartPaused:      cfg.Engine.StartPaused,
		},
	)

	controlBot, err := bot.New(cfg.Bot, acquirer)
	if err != nil {
		return fmt.Errorf("bot.New: %w", err)
	}

	var tgAuthorized atomic.Bool
	tgReady := make(chan struct{})

	g.Go(func() error {
		err := tgClient.Start(ctx, func() error {
			tgAuthorized.Store(true)
			close(tgReady)
			logger(ctx).Info("telegram client authorized")
			return nil
		})
		if err != nil && ctx.Err() == nil {
			return fmt.Errorf("telegram client: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		select {
		case <-tgReady:
		case <-ctx.Done():
			return nil
		}

		logger(ctx).Info("acquirer starting", slog.String("tiers", tiers.String()))

		if err := acquirer.Start(ctx); err != nil {
			return fmt.Errorf("acquirer.Start: %w", err)
		}

		<-ctx.Done()
		acquirer.Stop()

		return nil
	})

	g.Go(func() error {
		return controlBot.Run(ctx)
	})

	modules.HTTPServer{
		ListenAddress:   cfg.HTTP.Listen,
		ShutdownTimeout: shutdownTimeout,
	}.Run(ctx, g, server.NewServer(server.NewEngineServer(acquirer)).Handler())

	modules.MetricServer{ListenAddress: cfg.HTTP.MetricsListen}.Run(ctx, g)

	modules.ProbeServer{
		Name:          appName,
		Version:       Version,
		ListenAddress: cfg.HTTP.ProbeListen,
		Checks: map[string]probe.Check{
			"telegram": func(context.Context) error {
				if !tgAuthorized.Load() {
					return errTelegramNotReady
				}
				return nil
			},
		},
	}.Run(ctx, g)

	if err := g.Wait(); err != nil {
		return fmt.Errorf("application stopped with error: %w", err)
	}

	logger(ctx).Info("application stopped")

	return nil
}

// openStore выбирает хранилище состояния по STATE_BACKEND.
func openStore(
	ctx context.Context,
	cfg config.State,
	pg *connectors.Postgres,
	rds *connectors.Redis,
) (allocation.StateStore, error) {
	switch cfg.Backend {
	case config.StateBackendPostgres:
		db, err := pg.Connect(ctx)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}

		if err := persistence.Migrate(ctx, db); err != nil {
			return nil, fmt.Errorf("persistence.Migrate: %w", err)
		}

		return persistence.NewPostgresStore(db, cfg.Key), nil
	case config.StateBackendRedis:
		client, err := rds.Connect(ctx)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}

		return persistence.NewRedisStore(client, cfg.Key), nil
	default:
		return persistence.NewFileStore(cfg.File), nil
	}
}
