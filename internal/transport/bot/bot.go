package bot

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"tg_giftbuyer/internal/config"
	"tg_giftbuyer/internal/transport/bot/handler"
	"tg_giftbuyer/pkg/contextx"
	"tg_giftbuyer/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const longPollTimeout = 60

// Bot: командный фронт цикла скупки.
type Bot struct {
	bot     *telego.Bot
	adminID int64

	handler *handler.Handler
}

// New создает бота. Без BOT_ADMIN_ID командовать может только владелец чата уведомлений.
func New(cfg config.Bot, engine handler.Engine, opts ...telego.BotOption) (*Bot, error) {
	opts = append([]telego.BotOption{telego.WithDiscardLogger()}, opts...)

	bot, err := telego.NewBot(cfg.Token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	adminID := cfg.AdminID
	if adminID == 0 {
		adminID = cfg.ChatID
	}

	return &Bot{
		bot:     bot,
		adminID: adminID,
		handler: handler.New(engine),
	}, nil
}

// Run слушает обновления до отмены контекста.
func (b *Bot) Run(ctx context.Context) error {
	updates, err := b.bot.UpdatesViaLongPolling(ctx, &telego.GetUpdatesParams{
		Timeout: longPollTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to get updates: %w", err)
	}

	botHandler, err := th.NewBotHandler(b.bot, updates)
	if err != nil {
		return fmt.Errorf("failed to create bot handler: %w", err)
	}

	b.handler.RegisterRoutes(botHandler, b.adminID)

	go func() {
		if err := botHandler.Start(); err != nil {
			logger(ctx).Error("bot handler start", logx.Error(err))
		}
	}()

	logger(ctx).Info("bot started")

	<-ctx.Done()

	if err := botHandler.Stop(); err != nil {
		logger(ctx).Error("bot handler stop", logx.Error(err))
	}

	logger(ctx).Info("bot stopped")

	return nil
}
