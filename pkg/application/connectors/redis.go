package connectors

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"tg_giftbuyer/pkg/logx"
)

// Redis: общие параметры Redis для хранилища состояния и очереди уведомлений.
type Redis struct {
	Username           string
	Password           string
	Address            string
	DatabaseNumber     int
	PoolSize           int
	MinIdleConnections int
	MaxIdleConnections int

	client *redis.Client
}

// Connect создаёт клиент и проверяет его пингом.
func (r *Redis) Connect(ctx context.Context) (*redis.Client, error) {
	if r.client != nil {
		return r.client, nil
	}

	client := redis.NewClient(&redis.Options{
		//nolint:exhaustruct
		Network:      "tcp",
		Addr:         r.Address,
		Username:     r.Username,
		Password:     r.Password,
		DB:           r.DatabaseNumber,
		PoolSize:     r.PoolSize,
		MinIdleConns: r.MinIdleConnections,
		MaxIdleConns: r.MaxIdleConnections,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis.Ping: %w", err)
	}

	r.client = client

	logger(ctx).Info(
		"redis connected",
		slog.String("address", r.Address),
		slog.Int("database", r.DatabaseNumber),
	)

	return client, nil
}

// AsynqOpt: те же параметры в виде опций asynq.
func (r *Redis) AsynqOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     r.Address,
		Username: r.Username,
		Password: r.Password,
		DB:       r.DatabaseNumber,
		PoolSize: r.PoolSize,
	}
}

func (r *Redis) Close(ctx context.Context) {
	if r.client == nil {
		return
	}

	if err := r.client.Close(); err != nil {
		logger(ctx).Error("redis.Close", logx.Error(err))
		return
	}

	logger(ctx).Info("redis disconnected", slog.String("address", r.Address))
}
