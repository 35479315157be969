package worker

import (
	"context"
	"fmt"
	"sync/atomic"

	"tg_giftbuyer/internal/domain"
	"tg_giftbuyer/internal/domain/entity"
	"tg_giftbuyer/internal/domain/service/purchase"
	"tg_giftbuyer/internal/metrics"
	"tg_giftbuyer/pkg/errcodes"
)

type stats struct {
	cycles    atomic.Uint64
	bought    atomic.Int64
	skipped   atomic.Int64
	abandoned atomic.Int64
	failed    atomic.Int64
	spent     atomic.Int64
	balance   atomic.Int64
}

func (s *stats) record(res purchase.Result, price int64) {
	s.bought.Add(int64(res.Bought))
	s.skipped.Add(int64(res.Skipped))
	s.abandoned.Add(int64(res.Abandoned))
	s.spent.Add(int64(res.Bought) * price)
	if res.Failed() {
		s.failed.Add(1)
	}
}

// Stats: счётчики с момента запуска.
type Stats struct {
	Cycles        uint64 `json:"cycles"`
	Bought        int64  `json:"bought"`
	Skipped       int64  `json:"skipped"`
	Abandoned     int64  `json:"abandoned"`
	FailedBatches int64  `json:"failed_batches"`
	StarsSpent    int64  `json:"stars_spent"`
	Balance       int64  `json:"balance"`
	QueueLength   int    `json:"queue_length"`
	Paused        bool   `json:"paused"`
	Running       bool   `json:"running"`
}

func (a *Acquirer) Stats() Stats {
	return Stats{
		Cycles:        a.stats.cycles.Load(),
		Bought:        a.stats.bought.Load(),
		Skipped:       a.stats.skipped.Load(),
		Abandoned:     a.stats.abandoned.Load(),
		FailedBatches: a.stats.failed.Load(),
		StarsSpent:    a.stats.spent.Load(),
		Balance:       a.stats.balance.Load(),
		QueueLength:   a.queue.Len(),
		Paused:        a.paused.Load(),
		Running:       a.IsRunning(),
	}
}

// Pause останавливает цикл на границе следующего прохода. Текущая пачка
// покупок дорабатывает до конца.
func (a *Acquirer) Pause() {
	if a.paused.Swap(true) {
		return
	}

	if a.heartbeat != nil {
		a.heartbeat.ResetHeartbeat()
	}
	a.beatPending.Store(true)
	metrics.Paused.Set(1)
}

func (a *Acquirer) Resume() {
	if a.paused.Swap(false) {
		metrics.Paused.Set(0)
	}
}

func (a *Acquirer) IsPaused() bool {
	return a.paused.Load()
}

func (a *Acquirer) AppendRecipient(ctx context.Context, recipient entity.RecipientConfig) error {
	if err := a.validate.StructCtx(ctx, recipient); err != nil {
		return domain.WrapError(err, errcodes.InvalidRecipient, "invalid recipient")
	}

	if err := a.queue.PushTail(ctx, recipient); err != nil {
		return fmt.Errorf("queue.PushTail: %w", err)
	}
	metrics.QueueLength.Set(float64(a.queue.Len()))

	return nil
}

func (a *Acquirer) RemoveLastRecipient(ctx context.Context) (entity.RecipientConfig, error) {
	removed, err := a.queue.RemoveLast(ctx)
	if err != nil {
		return entity.RecipientConfig{}, fmt.Errorf("queue.RemoveLast: %w", err)
	}
	metrics.QueueLength.Set(float64(a.queue.Len()))

	return removed, nil
}

func (a *Acquirer) SetPolicy(ctx context.Context, policy entity.SelectionPolicy) error {
	if err := a.validate.StructCtx(ctx, policy); err != nil {
		return domain.WrapError(err, errcodes.InvalidPolicy, "invalid policy")
	}

	if policy.MaxSupply != nil && policy.MinSupply > *policy.MaxSupply {
		return domain.NewError(errcodes.InvalidPolicy,
			fmt.Sprintf("min supply %d is greater than max supply %d", policy.MinSupply, *policy.MaxSupply))
	}

	if err := a.queue.SetPolicy(ctx, policy); err != nil {
		return fmt.Errorf("queue.SetPolicy: %w", err)
	}

	return nil
}

func (a *Acquirer) PolicySnapshot() entity.SelectionPolicy {
	return a.queue.Policy()
}

func (a *Acquirer) QueueSnapshot() []entity.RecipientConfig {
	return a.queue.Snapshot()
}
