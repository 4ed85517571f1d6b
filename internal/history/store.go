// Package history persists a send audit trail to Postgres. The engine
// itself keeps everything in memory; this trail exists so operators can
// see what was dispatched after the session is gone. When no database is
// configured the store is disabled and every call is a no-op.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// SendRecord is one audit row: a summary of a composed send.
type SendRecord struct {
	ID              string    `json:"id"`
	Profile         string    `json:"profile"`
	Recipients      int       `json:"recipients"`
	Attachments     int       `json:"attachments"`
	Batches         int       `json:"batches"`
	SingleRecipient bool      `json:"singleRecipient"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Store writes and reads send records. A nil Store or a Store with a nil
// connection is valid and silently disabled.
type Store struct {
	db DBTX
}

// NewStore creates a store over db. Pass nil to disable persistence.
func NewStore(db DBTX) *Store {
	return &Store{db: db}
}

// Enabled reports whether the store has a live connection.
func (s *Store) Enabled() bool {
	return s != nil && s.db != nil
}

// RecordSend inserts one audit row and returns it with ID and timestamp
// filled in. No-op (with a synthesized ID) when the store is disabled.
func (s *Store) RecordSend(ctx context.Context, rec SendRecord) (SendRecord, error) {
	rec.ID = uuid.New().String()
	rec.CreatedAt = time.Now().UTC()

	if !s.Enabled() {
		return rec, nil
	}

	const q = `
		INSERT INTO send_history (id, profile, recipients, attachments, batches, single_recipient, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.db.Exec(ctx, q,
		rec.ID, rec.Profile, rec.Recipients, rec.Attachments, rec.Batches, rec.SingleRecipient, rec.CreatedAt)
	if err != nil {
		return SendRecord{}, fmt.Errorf("record send: %w", err)
	}
	return rec, nil
}

// ListRecent returns up to limit records, newest first. Returns nil when
// the store is disabled.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]SendRecord, error) {
	if !s.Enabled() {
		return nil, nil
	}
	if limit <= 0 {
		limit = 50
	}

	const q = `
		SELECT id, profile, recipients, attachments, batches, single_recipient, created_at
		FROM send_history
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := s.db.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("list send history: %w", err)
	}
	defer rows.Close()

	var out []SendRecord
	for rows.Next() {
		var rec SendRecord
		if err := rows.Scan(&rec.ID, &rec.Profile, &rec.Recipients, &rec.Attachments,
			&rec.Batches, &rec.SingleRecipient, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan send history: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// EnsureSchema creates the send_history table if it does not exist.
// Called once at startup when persistence is enabled.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if !s.Enabled() {
		return nil
	}

	const q = `
		CREATE TABLE IF NOT EXISTS send_history (
			id UUID PRIMARY KEY,
			profile TEXT NOT NULL,
			recipients INT NOT NULL,
			attachments INT NOT NULL,
			batches INT NOT NULL,
			single_recipient BOOLEAN NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`

	if _, err := s.db.Exec(ctx, q); err != nil {
		return fmt.Errorf("ensure send_history schema: %w", err)
	}
	return nil
}
