package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"tg_giftbuyer/internal/domain"
	"tg_giftbuyer/internal/domain/entity"
	"tg_giftbuyer/pkg/errcodes"
)

// stateRow: строка таблицы engine_state.
type stateRow struct {
	Key       string    `db:"key"`
	State     []byte    `db:"state"`
	Version   int64     `db:"version"`
	UpdatedAt time.Time `db:"updated_at"`
}

// PostgresStore хранит состояние одной JSONB-строкой под ключом.
type PostgresStore struct {
	db  *sqlx.DB
	key string
}

func NewPostgresStore(db *sqlx.DB, key string) *PostgresStore {
	return &PostgresStore{db: db, key: key}
}

func (s *PostgresStore) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.WrapError(err, errcodes.StatePersistFailed, "failed to begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapError(err, errcodes.StatePersistFailed, "failed to commit")
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context) (entity.State, error) {
	var row stateRow

	err := s.db.GetContext(ctx, &row, `SELECT key, state, version, updated_at FROM engine_state WHERE key = $1`, s.key)
	if errors.Is(err, sql.ErrNoRows) {
		logger(ctx).Info("state row not found, using defaults")
		return entity.DefaultState(), nil
	}
	if err != nil {
		return entity.State{}, domain.WrapError(err, errcodes.StateFetchFailed, "failed to load state")
	}

	return decodeState(row.State)
}

func (s *PostgresStore) Save(ctx context.Context, state entity.State) error {
	data, err := encodeState(state)
	if err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		row := stateRow{
			Key:       s.key,
			State:     data,
			UpdatedAt: time.Now(),
		}

		query := `
			INSERT INTO engine_state (key, state, updated_at)
			VALUES (:key, :state, :updated_at)
			ON CONFLICT (key) DO UPDATE SET
				state = EXCLUDED.state,
				version = engine_state.version + 1,
				updated_at = EXCLUDED.updated_at`

		if _, err := tx.NamedExecContext(ctx, query, row); err != nil {
			return domain.WrapError(err, errcodes.StatePersistFailed, "failed to save state")
		}
		return nil
	})
}
