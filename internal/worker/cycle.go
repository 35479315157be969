package worker

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/patrickmn/go-cache"

	"tg_giftbuyer/internal/domain/entity"
	"tg_giftbuyer/internal/domain/service/selection"
	"tg_giftbuyer/internal/metrics"
	"tg_giftbuyer/pkg/contextx"
	"tg_giftbuyer/pkg/logx"
)

// cycle выполняет один проход и возвращает паузу до следующего.
func (a *Acquirer) cycle(ctx context.Context) (backoff time.Duration) {
	if a.paused.Load() {
		metrics.CyclesTotal.WithLabelValues(metrics.ResultPaused).Inc()
		return a.opts.PausePoll
	}

	n := a.stats.cycles.Add(1)

	traceID := contextx.NewTraceID()
	ctx = contextx.WithTraceID(ctx, traceID)
	ctx = contextx.WithLogger(ctx, logger(ctx).With(
		logx.Stringer(logx.FieldTraceID, traceID),
		slog.Uint64(logx.FieldCycle, n),
	))

	start := time.Now()

	defer func() {
		if p := recover(); p != nil {
			logger(ctx).Error("cycle panic",
				slog.Any("panic", p),
				slog.String(logx.FieldStack, string(debug.Stack())),
			)
			metrics.CyclesTotal.WithLabelValues(metrics.ResultPanic).Inc()
			a.notify(ctx, msgCycleFailed(fmt.Sprint(p)))
			backoff = a.opts.ErrorBackoff
		}
		metrics.CycleDuration.Observe(time.Since(start).Seconds())
	}()

	result, backoff := a.acquire(ctx)
	metrics.CyclesTotal.WithLabelValues(result).Inc()

	// Пауза, выставленная посреди прохода, отменяет и сердцебиение.
	if !a.paused.Load() {
		a.beat(ctx, n)
	}

	return backoff
}

func (a *Acquirer) acquire(ctx context.Context) (string, time.Duration) {
	listings, balance, err := a.poll(ctx)
	if err != nil {
		logger(ctx).Error("catalog poll failed", logx.Error(err))
		return metrics.ResultFetchFailed, a.opts.IdleBackoff
	}

	a.announce(ctx, listings)

	candidate, ok := selection.Select(listings, balance, a.queue.Policy())
	if !ok {
		return metrics.ResultNoCandidate, a.opts.IdleBackoff
	}

	log := logger(ctx).With(
		slog.Int64(logx.FieldListingID, candidate.ID),
		slog.Int64(logx.FieldPrice, candidate.Price),
	)

	head, ok := a.queue.PeekHead()
	if !ok {
		log.Debug("candidate found but recipient queue is empty")
		return metrics.ResultQueueEmpty, a.opts.IdleBackoff
	}

	target, resolveErr := a.resolve(ctx, head)

	// Голова снимается при любом исходе разрешения.
	if _, err := a.queue.PopHead(ctx); err != nil {
		log.Error("failed to retire recipient, purchase skipped",
			logx.Stringer(logx.FieldRecipient, head),
			logx.Error(err),
		)
		return metrics.ResultIdle, a.opts.ErrorBackoff
	}
	a.pending = nil
	metrics.QueueLength.Set(float64(a.queue.Len()))

	if resolveErr != nil {
		log.Warn("recipient unresolvable, retired", logx.Stringer(logx.FieldRecipient, head), logx.Error(resolveErr))
		a.notify(ctx, msgUnresolvable(head, resolveErr))
		return metrics.ResultUnresolved, a.opts.IdleBackoff
	}

	units := min(head.GiftQuota, a.opts.Tiers.UnitsFor(candidate))
	if units <= 0 {
		log.Info("recipient has no quota left, retired", logx.Stringer(logx.FieldRecipient, head))
		return metrics.ResultIdle, 0
	}

	if head.Kind == entity.RecipientChannel && head.Identity == entity.NewChannelIdentity {
		a.notify(ctx, msgChannelCreated(target, candidate, units))
	}

	res := a.executor.Execute(ctx, candidate, target, units)
	a.stats.record(res, candidate.Price)

	switch {
	case res.Failed():
		a.notify(ctx, msgBatchFailed(candidate, target, res))
	case res.Bought > 0:
		a.notify(ctx, msgBatchDone(candidate, target, res))
	}

	if a.opts.RequeueRemainder && !res.Failed() {
		a.requeue(ctx, head, res.RemainingQuota(head.GiftQuota))
	}

	return metrics.ResultPurchased, 0
}

type resolvedHead struct {
	head   entity.RecipientConfig
	target entity.Target
	err    error
}

// resolve разрешает голову очереди. Если прошлый проход уже разрешил ту же
// голову, но не смог её снять, берётся прежний результат: канал "new" не
// создаётся второй раз.
func (a *Acquirer) resolve(ctx context.Context, head entity.RecipientConfig) (entity.Target, error) {
	if p := a.pending; p != nil && p.head == head {
		return p.target, p.err
	}

	target, err := a.resolver.Resolve(ctx, head)
	a.pending = &resolvedHead{head: head, target: target, err: err}

	return target, err
}

func (a *Acquirer) poll(ctx context.Context) ([]entity.Listing, int64, error) {
	raw, err := a.catalog.FetchCatalog(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("catalog.FetchCatalog: %w", err)
	}

	balance, err := a.catalog.FetchBalance(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("catalog.FetchBalance: %w", err)
	}

	a.stats.balance.Store(balance)
	metrics.Balance.Set(float64(balance))

	return selection.Normalize(raw), balance, nil
}

// announce сообщает о подарках, которых ещё не было в каталоге. Первый опрос
// только запоминает текущий каталог.
func (a *Acquirer) announce(ctx context.Context, listings []entity.Listing) {
	fresh := make([]entity.Listing, 0)

	for _, l := range listings {
		key := fmt.Sprint(l.ID)
		if _, found := a.seen.Get(key); found {
			continue
		}
		a.seen.Set(key, struct{}{}, cache.NoExpiration)

		if a.primed && !l.IsSoldOut {
			fresh = append(fresh, l)
		}
	}

	a.primed = true

	if len(fresh) > 0 {
		logger(ctx).Info("new gifts appeared", slog.Int("count", len(fresh)))
		a.notify(ctx, msgNewListings(fresh))
	}
}

func (a *Acquirer) requeue(ctx context.Context, head entity.RecipientConfig, remaining int) {
	if remaining <= 0 {
		return
	}

	head.GiftQuota = remaining

	if err := a.queue.PushTail(ctx, head); err != nil {
		logger(ctx).Error("failed to requeue recipient", logx.Stringer(logx.FieldRecipient, head), logx.Error(err))
		return
	}
	metrics.QueueLength.Set(float64(a.queue.Len()))
}

func (a *Acquirer) beat(ctx context.Context, n uint64) {
	if a.heartbeat == nil {
		return
	}

	if !a.beatPending.Swap(false) && n%uint64(a.opts.HeartbeatEvery) != 0 {
		return
	}

	if err := a.heartbeat.Beat(ctx, msgHeartbeat(time.Now())); err != nil {
		logger(ctx).Warn("heartbeat failed", logx.Error(err))
	}
}

func (a *Acquirer) notify(ctx context.Context, text string) {
	if a.notifier == nil {
		return
	}

	if err := a.notifier.Notify(ctx, text); err != nil {
		logger(ctx).Warn("notification failed", logx.Error(err))
	}
}
