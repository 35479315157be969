// Package allocation хранит очередь получателей и политику выбора.
// Каждая мутация сразу сохраняется через StateStore.
package allocation

import (
	"context"
	"fmt"
	"sync"

	"tg_giftbuyer/internal/domain"
	"tg_giftbuyer/internal/domain/entity"
	"tg_giftbuyer/pkg/errcodes"
)

type StateStore interface {
	Load(ctx context.Context) (entity.State, error)
	Save(ctx context.Context, state entity.State) error
}

// Queue: FIFO получателей. Голова снимается один раз за цикл выдачи,
// независимо от исхода покупки.
type Queue struct {
	store StateStore

	mu    sync.Mutex
	state entity.State
}

// Open загружает состояние из хранилища. Битое состояние: фатальная ошибка запуска.
func Open(ctx context.Context, store StateStore) (*Queue, error) {
	state, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.Load: %w", err)
	}

	return &Queue{
		store: store,
		state: state.Clone(),
	}, nil
}

// PeekHead возвращает голову очереди без удаления.
func (q *Queue) PeekHead() (entity.RecipientConfig, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.state.Peers) == 0 {
		return entity.RecipientConfig{}, false
	}
	return q.state.Peers[0], true
}

// PopHead удаляет голову очереди и сохраняет состояние.
func (q *Queue) PopHead(ctx context.Context) (entity.RecipientConfig, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.state.Peers) == 0 {
		return entity.RecipientConfig{}, domain.NewError(errcodes.QueueEmpty, "recipient queue is empty")
	}

	head := q.state.Peers[0]
	next := q.state.Clone()
	next.Peers = next.Peers[1:]

	if err := q.commit(ctx, next); err != nil {
		return entity.RecipientConfig{}, err
	}
	return head, nil
}

// PushTail добавляет получателя в конец очереди.
func (q *Queue) PushTail(ctx context.Context, recipient entity.RecipientConfig) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	next := q.state.Clone()
	next.Peers = append(next.Peers, recipient)

	return q.commit(ctx, next)
}

// RemoveLast удаляет последнего добавленного получателя.
func (q *Queue) RemoveLast(ctx context.Context) (entity.RecipientConfig, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.state.Peers) == 0 {
		return entity.RecipientConfig{}, domain.NewError(errcodes.QueueEmpty, "recipient queue is empty")
	}

	next := q.state.Clone()
	last := next.Peers[len(next.Peers)-1]
	next.Peers = next.Peers[:len(next.Peers)-1]

	if err := q.commit(ctx, next); err != nil {
		return entity.RecipientConfig{}, err
	}
	return last, nil
}

// Truncate очищает очередь.
func (q *Queue) Truncate(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	next := q.state.Clone()
	next.Peers = nil

	return q.commit(ctx, next)
}

// SetPolicy заменяет политику выбора. Проверка min <= max: на вызывающем.
func (q *Queue) SetPolicy(ctx context.Context, policy entity.SelectionPolicy) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	next := q.state.Clone()
	next.Policy = policy

	return q.commit(ctx, next.Clone())
}

func (q *Queue) Policy() entity.SelectionPolicy {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.state.Clone().Policy
}

func (q *Queue) Snapshot() []entity.RecipientConfig {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.state.Clone().Peers
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.state.Peers)
}

// commit сохраняет состояние и только после успешной записи применяет его в памяти.
func (q *Queue) commit(ctx context.Context, next entity.State) error {
	if err := q.store.Save(ctx, next); err != nil {
		return domain.WrapError(err, errcodes.StatePersistFailed, "failed to persist state")
	}

	q.state = next
	return nil
}
