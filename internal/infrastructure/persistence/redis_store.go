package persistence

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"tg_giftbuyer/internal/domain"
	"tg_giftbuyer/internal/domain/entity"
	"tg_giftbuyer/pkg/errcodes"
)

// RedisStore хранит состояние json-строкой под ключом. SET атомарен.
type RedisStore struct {
	client redis.Cmdable
	key    string
}

func NewRedisStore(client redis.Cmdable, key string) *RedisStore {
	return &RedisStore{client: client, key: key}
}

func (s *RedisStore) Load(ctx context.Context) (entity.State, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		logger(ctx).Info("state key not found, using defaults")
		return entity.DefaultState(), nil
	}
	if err != nil {
		return entity.State{}, domain.WrapError(err, errcodes.StateFetchFailed, "failed to load state")
	}

	return decodeState(data)
}

func (s *RedisStore) Save(ctx context.Context, state entity.State) error {
	data, err := encodeState(state)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return domain.WrapError(err, errcodes.StatePersistFailed, "failed to save state")
	}
	return nil
}
