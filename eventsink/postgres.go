package eventsink

import (
	"context"

	"github.com/iov-one/chainswap/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS swap_events (
    height BIGINT NOT NULL,
    idx INT NOT NULL,
    name TEXT NOT NULL,
    path TEXT NOT NULL,
    event_key BYTEA,
    payload JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL,
    PRIMARY KEY (height, idx)
);
`

const insertSQL = `
INSERT INTO swap_events (height, idx, name, path, event_key, payload, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (height, idx) DO NOTHING
`

// Postgres archives events in a PostgreSQL table.
type Postgres struct {
	pool *pgxpool.Pool
}

var _ Sink = (*Postgres)(nil)

// NewPostgres connects using the DSN and ensures the table exists.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	if dsn == "" {
		return nil, errors.Wrap(errors.ErrEmpty, "postgres dsn")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "postgres: %s", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrapf(errors.ErrDatabase, "postgres ping: %s", err)
	}
	if _, err := pool.Exec(ctx, createTableSQL); err != nil {
		pool.Close()
		return nil, errors.Wrapf(errors.ErrDatabase, "create table: %s", err)
	}
	return &Postgres{pool: pool}, nil
}

// Publish stores all events of the batch in one database transaction.
func (p *Postgres) Publish(ctx context.Context, b Batch) error {
	records, err := Records(b)
	if err != nil || len(records) == 0 {
		return err
	}
	err = pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		for _, r := range records {
			if _, err := tx.Exec(ctx, insertSQL, r.Height, r.Index, r.Name, r.Path, r.Key, []byte(r.Payload), r.Time); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errors.Wrapf(errors.ErrDatabase, "postgres: %s", err)
	}
	return nil
}

func (p *Postgres) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}
