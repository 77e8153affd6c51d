package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"foodhub/cart-svc/internal/domain"
)

// PostgresStore keeps every table in one JSONB documents table.
type PostgresStore struct {
	DB *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{DB: db}
}

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS documents (
			tbl        TEXT        NOT NULL,
			key        TEXT        NOT NULL,
			doc        JSONB       NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (tbl, key)
		);
		CREATE INDEX IF NOT EXISTS documents_user_idx ON documents (tbl, (doc->>'userId'));
		CREATE INDEX IF NOT EXISTS documents_restaurant_idx ON documents (tbl, (doc->>'restaurantId'));
		CREATE INDEX IF NOT EXISTS documents_code_idx ON documents (tbl, (doc->>'code'));
	`)
	return err
}

func (s *PostgresStore) Get(ctx context.Context, table, key string) (json.RawMessage, error) {
	var doc []byte
	err := s.DB.QueryRowContext(ctx,
		"SELECT doc FROM documents WHERE tbl = $1 AND key = $2", table, key).
		Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *PostgresStore) Put(ctx context.Context, table, key string, doc json.RawMessage) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO documents (tbl, key, doc, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (tbl, key) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()
	`, table, key, []byte(doc))
	return err
}

func (s *PostgresStore) Query(ctx context.Context, table, attribute, value string) ([]json.RawMessage, error) {
	rows, err := s.DB.QueryContext(ctx,
		"SELECT doc FROM documents WHERE tbl = $1 AND doc->>$2 = $3 ORDER BY key", table, attribute, value)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (s *PostgresStore) Scan(ctx context.Context, table string) ([]json.RawMessage, error) {
	rows, err := s.DB.QueryContext(ctx,
		"SELECT doc FROM documents WHERE tbl = $1 ORDER BY key", table)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (s *PostgresStore) Delete(ctx context.Context, table, key string) error {
	_, err := s.DB.ExecContext(ctx, "DELETE FROM documents WHERE tbl = $1 AND key = $2", table, key)
	return err
}

func (s *PostgresStore) Increment(ctx context.Context, table, key, attribute string, delta int) error {
	result, err := s.DB.ExecContext(ctx, `
		UPDATE documents
		SET doc = jsonb_set(doc, ARRAY[$3::text], to_jsonb(COALESCE((doc->>$3)::int, 0) + $4)),
		    updated_at = now()
		WHERE tbl = $1 AND key = $2
	`, table, key, attribute, delta)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFoundf("document %s/%s not found", table, key)
	}
	return nil
}

func collect(rows *sql.Rows) ([]json.RawMessage, error) {
	defer rows.Close()

	docs := make([]json.RawMessage, 0)
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}
