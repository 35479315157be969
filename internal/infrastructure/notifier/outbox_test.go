package notifier_test

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"

	"tg_giftbuyer/internal/infrastructure/notifier"
)

type fakeEnqueuer struct {
	tasks []*asynq.Task
	opts  [][]asynq.Option
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	f.opts = append(f.opts, opts)
	return &asynq.TaskInfo{ID: "task-1", Queue: notifier.OutboxQueue}, nil
}

type recordingSender struct {
	texts []string
}

func (r *recordingSender) Notify(_ context.Context, text string) error {
	r.texts = append(r.texts, text)
	return nil
}

func TestOutboxRoundTrip(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	enq := &fakeEnqueuer{}
	outbox := notifier.NewOutbox(enq)

	rq.NoError(outbox.Notify(ctx, "gift bought"))
	rq.Len(enq.tasks, 1)
	rq.Equal(notifier.TaskNotify, enq.tasks[0].Type())

	sender := &recordingSender{}
	handler := notifier.OutboxHandler(sender)
	rq.Equal(notifier.TaskNotify, handler.Pattern)

	rq.NoError(handler.Handle(ctx, enq.tasks[0]))
	rq.Equal([]string{"gift bought"}, sender.texts)
}

func TestOutboxBrokenPayloadIsNotRetried(t *testing.T) {
	rq := require.New(t)

	handler := notifier.OutboxHandler(&recordingSender{})

	err := handler.Handle(context.Background(), asynq.NewTask(notifier.TaskNotify, []byte("{")))
	rq.ErrorIs(err, asynq.SkipRetry)
}

func TestOutboxEnqueueError(t *testing.T) {
	rq := require.New(t)

	outbox := notifier.NewOutbox(&fakeEnqueuer{err: errors.New("redis down")})

	rq.Error(outbox.Notify(context.Background(), "text"))
}
