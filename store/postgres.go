package store

import (
	"context"
	"database/sql"
	"fmt"

	// registers the "postgres" sql.DB driver.
	_ "github.com/lib/pq"

	"github.com/bankaixyz/mmr"
)

// Postgres is a Store backed by a single table in a Postgres database,
// keyed the same way mmr.StoreKey is: (mmr_id, kind, idx). SetMany commits
// through a transaction, so a batch_append's leaves, merge parents and
// updated counters either all land or none do.
type Postgres struct {
	db *sql.DB
}

// OpenPostgres opens a connection pool against dsn (a postgres:// URL or
// libpq keyword string) and returns a Postgres store over it. It does not
// create CreateSchema's table; call CreateSchema once per database before
// first use.
func OpenPostgres(dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: opening postgres: %w", err)
	}
	return &Postgres{db: db}, nil
}

// NewPostgres wraps an already-open *sql.DB, for callers that manage their
// own connection pool and lifecycle.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Close releases the underlying connection pool.
func (p *Postgres) Close() error { return p.db.Close() }

// CreateSchema creates the backing table and its primary key index if they
// do not already exist. It is idempotent and safe to call on every process
// start.
func (p *Postgres) CreateSchema(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS mmr_store (
			mmr_id  TEXT    NOT NULL,
			kind    SMALLINT NOT NULL,
			idx     BIGINT  NOT NULL,
			hash    BYTEA,
			counter BIGINT,
			is_hash BOOLEAN NOT NULL,
			PRIMARY KEY (mmr_id, kind, idx)
		)
	`)
	if err != nil {
		return fmt.Errorf("store: creating schema: %w", err)
	}
	return nil
}

func (p *Postgres) Get(ctx context.Context, key mmr.StoreKey) (mmr.StoreValue, bool, error) {
	row := p.db.QueryRowContext(ctx,
		`SELECT hash, counter, is_hash FROM mmr_store WHERE mmr_id = $1 AND kind = $2 AND idx = $3`,
		key.MmrID.String(), key.Kind, key.Index,
	)
	return scanValue(row)
}

func (p *Postgres) GetMany(ctx context.Context, keys []mmr.StoreKey) ([]mmr.StoreValue, []bool, error) {
	values := make([]mmr.StoreValue, len(keys))
	found := make([]bool, len(keys))
	for i, key := range keys {
		v, ok, err := p.Get(ctx, key)
		if err != nil {
			return nil, nil, err
		}
		values[i], found[i] = v, ok
	}
	return values, found, nil
}

func (p *Postgres) Set(ctx context.Context, key mmr.StoreKey, value mmr.StoreValue) error {
	return p.SetMany(ctx, []mmr.KeyValue{{Key: key, Value: value}})
}

func (p *Postgres) SetMany(ctx context.Context, entries []mmr.KeyValue) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO mmr_store (mmr_id, kind, idx, hash, counter, is_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (mmr_id, kind, idx) DO UPDATE
		SET hash = EXCLUDED.hash, counter = EXCLUDED.counter, is_hash = EXCLUDED.is_hash
	`)
	if err != nil {
		return fmt.Errorf("store: preparing upsert: %w", err)
	}
	defer stmt.Close()

	for _, entry := range entries {
		var hashArg interface{}
		var counterArg interface{}
		if entry.Value.IsHash {
			hashArg = entry.Value.Hash[:]
		} else {
			counterArg = entry.Value.Counter
		}
		if _, err := stmt.ExecContext(ctx,
			entry.Key.MmrID.String(), entry.Key.Kind, entry.Key.Index,
			hashArg, counterArg, entry.Value.IsHash,
		); err != nil {
			return fmt.Errorf("store: upserting %v: %w", entry.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: committing: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanValue(row rowScanner) (mmr.StoreValue, bool, error) {
	var hashBytes []byte
	var counter sql.NullInt64
	var isHash bool

	if err := row.Scan(&hashBytes, &counter, &isHash); err != nil {
		if err == sql.ErrNoRows {
			return mmr.StoreValue{}, false, nil
		}
		return mmr.StoreValue{}, false, fmt.Errorf("store: scanning row: %w", err)
	}

	value := mmr.StoreValue{IsHash: isHash}
	if isHash {
		copy(value.Hash[:], hashBytes)
	} else if counter.Valid {
		value.Counter = uint64(counter.Int64)
	}
	return value, true, nil
}
