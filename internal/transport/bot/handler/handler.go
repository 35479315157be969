package handler

import (
	"context"

	"tg_giftbuyer/internal/domain/entity"
	"tg_giftbuyer/internal/worker"
)

// Engine: управление циклом скупки, доступное боту.
type Engine interface {
	Pause()
	Resume()
	IsPaused() bool
	AppendRecipient(ctx context.Context, recipient entity.RecipientConfig) error
	RemoveLastRecipient(ctx context.Context) (entity.RecipientConfig, error)
	SetPolicy(ctx context.Context, policy entity.SelectionPolicy) error
	PolicySnapshot() entity.SelectionPolicy
	QueueSnapshot() []entity.RecipientConfig
	Stats() worker.Stats
}

type Handler struct {
	engine Engine
}

func New(engine Engine) *Handler {
	return &Handler{
		engine: engine,
	}
}
