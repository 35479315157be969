package server

import (
	"context"
	"fmt"
	"net/http"

	"tg_giftbuyer/internal/domain/entity"
	"tg_giftbuyer/internal/worker"
	"tg_giftbuyer/pkg/httpx/reply"
	"tg_giftbuyer/pkg/httpx/req"
	"tg_giftbuyer/pkg/rest"
)

type engine interface {
	Pause()
	Resume()
	IsPaused() bool
	AppendRecipient(context.Context, entity.RecipientConfig) error
	RemoveLastRecipient(context.Context) (entity.RecipientConfig, error)
	SetPolicy(context.Context, entity.SelectionPolicy) error
	PolicySnapshot() entity.SelectionPolicy
	QueueSnapshot() []entity.RecipientConfig
	Stats() worker.Stats
}

type EngineServer struct {
	engine engine
}

func NewEngineServer(engine engine) EngineServer {
	return EngineServer{
		engine: engine,
	}
}

func (s EngineServer) getV1State(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	state := newRESTState(
		s.engine.IsPaused(),
		s.engine.QueueSnapshot(),
		s.engine.PolicySnapshot(),
		s.engine.Stats(),
	)

	reply.JSON(ctx, w, http.StatusOK, state)

	return nil
}

func (s EngineServer) postV1Pause(w http.ResponseWriter, _ *http.Request) error {
	s.engine.Pause()

	reply.OK(w)

	return nil
}

func (s EngineServer) postV1Resume(w http.ResponseWriter, _ *http.Request) error {
	s.engine.Resume()

	reply.OK(w)

	return nil
}

func (s EngineServer) postV1Peers(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.Recipient

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	if err := s.engine.AppendRecipient(ctx, newDomainRecipient(request)); err != nil {
		return fmt.Errorf("engine.AppendRecipient: %w", newRESTError(err))
	}

	reply.Created(w)

	return nil
}

func (s EngineServer) deleteV1PeersLast(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	removed, err := s.engine.RemoveLastRecipient(ctx)
	if err != nil {
		return fmt.Errorf("engine.RemoveLastRecipient: %w", newRESTError(err))
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTRecipient(removed))

	return nil
}

func (s EngineServer) putV1Policy(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.Policy

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	if err := s.engine.SetPolicy(ctx, newDomainPolicy(request)); err != nil {
		return fmt.Errorf("engine.SetPolicy: %w", newRESTError(err))
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTPolicy(s.engine.PolicySnapshot()))

	return nil
}
