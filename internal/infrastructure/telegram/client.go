package telegram

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tg"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"tg_giftbuyer/internal/config"
	"tg_giftbuyer/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// ConsoleInput реализует ввод кода с клавиатуры
type ConsoleInput struct{}

func (c ConsoleInput) Code(ctx context.Context, sentCode *tg.AuthSentCode) (string, error) {
	fmt.Print("Введите код из Telegram: ")
	text, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

type Client struct {
	client   *telegram.Client
	api      *tg.Client
	limiter  *rate.Limiter
	timeout  time.Duration
	Phone    string
	Password string
}

func NewClient(cfg config.Telegram) (*Client, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.SessionPath), 0o700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}

	opts := telegram.Options{
		SessionStorage: &telegram.FileSessionStorage{Path: cfg.SessionPath},
		Logger:         zap.NewNop(),
	}

	client := telegram.NewClient(cfg.ApiID, cfg.ApiHash, opts)

	limit := rate.Inf
	if cfg.RPS > 0 {
		limit = rate.Limit(cfg.RPS)
	}

	return &Client{
		client:   client,
		api:      client.API(),
		limiter:  rate.NewLimiter(limit, 1),
		timeout:  cfg.RequestTimeout,
		Phone:    cfg.Phone,
		Password: cfg.Password,
	}, nil
}

// Start поднимает соединение и держит его открытым.
func (c *Client) Start(ctx context.Context, onReady func() error) error {
	return c.client.Run(ctx, func(ctx context.Context) error {
		status, err := c.client.Auth().Status(ctx)
		if err != nil {
			return fmt.Errorf("auth status error: %w", err)
		}

		if !status.Authorized {
			logger(ctx).Info("User not authorized, starting login flow...")
			if err := c.authenticate(ctx); err != nil {
				return fmt.Errorf("authentication failed: %w", err)
			}
			logger(ctx).Info("Authentication successful!")
		} else {
			logger(ctx).Info("User already authorized")
		}

		// Сигнализируем наверх, что соединение установлено и авторизация прошла.
		if onReady != nil {
			if err := onReady(); err != nil {
				return err
			}
		}

		<-ctx.Done()
		return ctx.Err()
	})
}

func (c *Client) authenticate(ctx context.Context) error {
	userAuth := auth.Constant(
		c.Phone,
		c.Password,
		ConsoleInput{},
	)

	flow := auth.NewFlow(
		userAuth,
		auth.SendCodeOptions{},
	)

	return c.client.Auth().IfNecessary(ctx, flow)
}

// call ждёт слот лимитера и ограничивает время одного RPC.
func (c *Client) call(ctx context.Context) (context.Context, context.CancelFunc, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return ctx, func() {}, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	return ctx, cancel, nil
}
