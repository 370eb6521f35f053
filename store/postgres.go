package store

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/use-agent/prodscrape/models"
)

const createRawTable = `
CREATE TABLE IF NOT EXISTS product_raw_page (
	identifier  TEXT PRIMARY KEY,
	source_url  TEXT NOT NULL,
	raw_html    TEXT NOT NULL,
	status_code INTEGER NOT NULL,
	fetched_at  TIMESTAMPTZ NOT NULL
)`

const createRecordTable = `
CREATE TABLE IF NOT EXISTS product_record (
	identifier TEXT PRIMARY KEY,
	record     JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const upsertRaw = `
INSERT INTO product_raw_page (identifier, source_url, raw_html, status_code, fetched_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (identifier) DO UPDATE
SET source_url = EXCLUDED.source_url,
    raw_html = EXCLUDED.raw_html,
    status_code = EXCLUDED.status_code,
    fetched_at = EXCLUDED.fetched_at`

const upsertRecord = `
INSERT INTO product_record (identifier, record, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (identifier) DO UPDATE
SET record = EXCLUDED.record,
    updated_at = now()`

// Postgres keeps the latest raw page and record per identifier.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects to databaseURL and creates the tables if missing.
func NewPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodePersist, "connect to postgres", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, models.NewScrapeError(models.ErrCodePersist, "ping postgres", err)
	}
	for _, ddl := range []string{createRawTable, createRecordTable} {
		if _, err := pool.Exec(ctx, ddl); err != nil {
			pool.Close()
			return nil, models.NewScrapeError(models.ErrCodePersist, "create tables", err)
		}
	}
	return &Postgres{pool: pool}, nil
}

func (s *Postgres) Name() string { return "postgres" }

func (s *Postgres) SaveRaw(ctx context.Context, page *models.RawPage) error {
	_, err := s.pool.Exec(ctx, upsertRaw, page.Identifier, page.URL, page.HTML, page.StatusCode, page.FetchedAt)
	if err != nil {
		return models.NewScrapeError(models.ErrCodePersist, "upsert raw page", err)
	}
	return nil
}

func (s *Postgres) SaveRecord(ctx context.Context, identifier string, rec models.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return models.NewScrapeError(models.ErrCodePersist, "encode record", err)
	}
	if _, err := s.pool.Exec(ctx, upsertRecord, identifier, data); err != nil {
		return models.NewScrapeError(models.ErrCodePersist, "upsert record", err)
	}
	return nil
}

// Record loads the stored record of identifier.
func (s *Postgres) Record(ctx context.Context, identifier string) (models.Record, error) {
	var data []byte
	if err := s.pool.QueryRow(ctx, `SELECT record FROM product_record WHERE identifier = $1`, identifier).Scan(&data); err != nil {
		return nil, err
	}
	rec := models.Record{}
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Close releases the connection pool.
func (s *Postgres) Close() {
	s.pool.Close()
}
