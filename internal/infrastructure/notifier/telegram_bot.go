package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"tg_giftbuyer/pkg/httpx"
	"tg_giftbuyer/pkg/logx"
)

// TelegramBot шлёт уведомления в один чат и ведёт сообщение-пульс.
type TelegramBot struct {
	bot    *telego.Bot
	chatID int64

	mu          sync.Mutex
	heartbeatID int
}

// NewTelegramBot создаёт бота поверх net/http с логированием запросов.
// Токен в логах маскируется.
func NewTelegramBot(token string, chatID int64, opts ...telego.BotOption) (*TelegramBot, error) {
	httpClient := &http.Client{
		Transport: httpx.NewLoggingRoundTripper(
			http.DefaultTransport,
			httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
			httpx.WithLogFieldMaxLen(logFieldMaxLen),
		),
	}

	opts = append([]telego.BotOption{telego.WithHTTPClient(httpClient), telego.WithDiscardLogger()}, opts...)

	bot, err := telego.NewBot(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	return &TelegramBot{
		bot:    bot,
		chatID: chatID,
	}, nil
}

const logFieldMaxLen = 2048

// Notify отправляет HTML-сообщение.
func (b *TelegramBot) Notify(ctx context.Context, text string) error {
	msg := tu.Message(tu.ID(b.chatID), text).WithParseMode(telego.ModeHTML)

	if _, err := b.bot.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}

// Beat отправляет сообщение-пульс при первом вызове и редактирует его потом.
func (b *TelegramBot) Beat(ctx context.Context, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.heartbeatID != 0 {
		_, err := b.bot.EditMessageText(ctx, tu.EditMessageText(tu.ID(b.chatID), b.heartbeatID, text).
			WithParseMode(telego.ModeHTML))
		if err == nil {
			return nil
		}

		// Сообщение могли удалить руками: шлём новое.
		logger(ctx).Warn("heartbeat edit failed", slog.Int("message-id", b.heartbeatID), logx.Error(err))
	}

	msg, err := b.bot.SendMessage(ctx, tu.Message(tu.ID(b.chatID), text).WithParseMode(telego.ModeHTML))
	if err != nil {
		return fmt.Errorf("send heartbeat: %w", err)
	}

	b.heartbeatID = msg.MessageID

	return nil
}

// ResetHeartbeat забывает сообщение-пульс: следующий Beat пришлёт новое.
func (b *TelegramBot) ResetHeartbeat() {
	b.mu.Lock()
	b.heartbeatID = 0
	b.mu.Unlock()
}
