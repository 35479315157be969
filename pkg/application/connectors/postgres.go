package connectors

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // golang postgres driver
	"github.com/jmoiron/sqlx"

	"tg_giftbuyer/pkg/logx"
)

// Postgres: подключение к хранилищу состояния движка.
type Postgres struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration

	db *sqlx.DB
}

// Connect открывает пул и проверяет его пингом.
func (p *Postgres) Connect(ctx context.Context) (*sqlx.DB, error) {
	if p.db != nil {
		return p.db, nil
	}

	db, err := sqlx.ConnectContext(ctx, "pgx", p.DSN)
	if err != nil {
		return nil, fmt.Errorf("sqlx.ConnectContext: %w", err)
	}

	db.SetMaxOpenConns(p.MaxOpenConns)
	db.SetMaxIdleConns(p.MaxIdleConns)
	db.SetConnMaxLifetime(p.ConnMaxLifetime)

	p.db = db

	logger(ctx).Info("postgres connected", slog.Int("max-open-conns", p.MaxOpenConns))

	return db, nil
}

func (p *Postgres) Close(ctx context.Context) {
	if p.db == nil {
		return
	}

	if err := p.db.Close(); err != nil {
		logger(ctx).Error("postgres.Close", logx.Error(err))
		return
	}

	logger(ctx).Info("postgres disconnected")
}
