package notifier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"

	"tg_giftbuyer/pkg/application/modules"
)

const (
	TaskNotify  = "notify:text"
	OutboxQueue = "notify"

	outboxMaxRetry = 5
)

type notifyPayload struct {
	Text string `json:"text"`
}

type sender interface {
	Notify(ctx context.Context, text string) error
}

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Outbox ставит уведомления в очередь asynq, чтобы цикл не ждал Bot API.
type Outbox struct {
	client enqueuer
}

func NewOutbox(client enqueuer) *Outbox {
	return &Outbox{client: client}
}

func (o *Outbox) Notify(ctx context.Context, text string) error {
	payload, err := jsoniter.Marshal(notifyPayload{Text: text})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	info, err := o.client.EnqueueContext(ctx,
		asynq.NewTask(TaskNotify, payload),
		asynq.Queue(OutboxQueue),
		asynq.MaxRetry(outboxMaxRetry),
	)
	if err != nil {
		return fmt.Errorf("enqueue notify: %w", err)
	}

	logger(ctx).Debug("notification enqueued", slog.String("task-id", info.ID))

	return nil
}

// OutboxHandler доставляет задачи из очереди через sender.
func OutboxHandler(s sender) modules.AsynqHandler {
	return modules.AsynqHandler{
		Pattern: TaskNotify,
		Handle: func(ctx context.Context, task *asynq.Task) error {
			var payload notifyPayload
			if err := jsoniter.Unmarshal(task.Payload(), &payload); err != nil {
				return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
			}

			return s.Notify(ctx, payload.Text)
		},
	}
}
