// Package worker: цикл скупки: опрос каталога, выбор подарка, выдача получателю.
package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/patrickmn/go-cache"

	"tg_giftbuyer/internal/domain/entity"
	"tg_giftbuyer/internal/domain/service/allocation"
	"tg_giftbuyer/internal/domain/service/purchase"
	"tg_giftbuyer/internal/metrics"
	"tg_giftbuyer/pkg/logx"
)

type Catalog interface {
	FetchCatalog(ctx context.Context) ([]entity.Listing, error)
	FetchBalance(ctx context.Context) (int64, error)
}

type Resolver interface {
	Resolve(ctx context.Context, recipient entity.RecipientConfig) (entity.Target, error)
}

type Notifier interface {
	Notify(ctx context.Context, text string) error
}

type Heartbeat interface {
	Beat(ctx context.Context, text string) error
	ResetHeartbeat()
}

type Options struct {
	IdleBackoff      time.Duration
	ErrorBackoff     time.Duration
	PausePoll        time.Duration
	HeartbeatEvery   int
	Tiers            purchase.Tiers
	RequeueRemainder bool
	StartPaused      bool
}

type Acquirer struct {
	catalog   Catalog
	resolver  Resolver
	executor  *purchase.Executor
	queue     *allocation.Queue
	notifier  Notifier
	heartbeat Heartbeat
	opts      Options
	validate  *validator.Validate

	// seen: уже объявленные подарки.
	seen   *cache.Cache
	primed bool

	paused      atomic.Bool
	beatPending atomic.Bool
	stats       stats

	// pending: разрешённая голова, которую не удалось снять с очереди.
	// Трогается только из цикла.
	pending *resolvedHead

	// Control fields
	mu         sync.Mutex
	cancelFunc context.CancelFunc
	isRunning  bool
	wg         sync.WaitGroup
}

func NewAcquirer(
	catalog Catalog,
	resolver Resolver,
	executor *purchase.Executor,
	queue *allocation.Queue,
	notifier Notifier,
	heartbeat Heartbeat,
	opts Options,
) *Acquirer {
	if len(opts.Tiers) == 0 {
		opts.Tiers = purchase.DefaultTiers()
	}
	if opts.HeartbeatEvery <= 0 {
		opts.HeartbeatEvery = defaultHeartbeatEvery
	}

	a := &Acquirer{
		catalog:   catalog,
		resolver:  resolver,
		executor:  executor,
		queue:     queue,
		notifier:  notifier,
		heartbeat: heartbeat,
		opts:      opts,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		seen:      cache.New(cache.NoExpiration, 0),
	}

	a.paused.Store(opts.StartPaused)
	a.beatPending.Store(true)
	metrics.Paused.Set(boolToGauge(opts.StartPaused))
	metrics.QueueLength.Set(float64(queue.Len()))

	return a
}

const defaultHeartbeatEvery = 100

func boolToGauge(v bool) float64 {
	if v {
		return 1
	}
	return 0
}

func (a *Acquirer) Start(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.isRunning {
		return errors.New("acquirer is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	a.cancelFunc = cancel
	a.isRunning = true

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer func() {
			a.mu.Lock()
			a.isRunning = false
			a.cancelFunc = nil
			a.mu.Unlock()
		}()

		if err := a.Run(runCtx); err != nil {
			logger(ctx).Error("acquirer stopped with error", logx.Error(err))
		}
	}()

	return nil
}

func (a *Acquirer) Stop() {
	a.mu.Lock()

	if !a.isRunning {
		a.mu.Unlock()
		return
	}

	if a.cancelFunc != nil {
		a.cancelFunc()
	}
	a.mu.Unlock()

	a.wg.Wait()
}

func (a *Acquirer) IsRunning() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.isRunning
}

// Run крутит циклы до отмены контекста. Ошибки цикла не останавливают работу.
func (a *Acquirer) Run(ctx context.Context) error {
	logger(ctx).Info("acquirer started")

	for {
		backoff := a.cycle(ctx)

		if err := sleep(ctx, backoff); err != nil {
			logger(ctx).Info("acquirer stopped")
			return nil
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
