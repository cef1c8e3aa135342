package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"rental-booking/internal/data/entity"
	"rental-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PostgresStore keeps one draft row per session in a jsonb column.
type PostgresStore struct {
	db database.PgxIface
}

func NewPostgresStore(db database.PgxIface) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the draft table if missing.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS booking_drafts (
			session_id UUID PRIMARY KEY,
			data JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("migrate booking_drafts: %w", err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context, sessionID uuid.UUID) (*entity.DraftRecord, error) {
	var raw []byte
	err := s.db.QueryRow(ctx,
		`SELECT data FROM booking_drafts WHERE session_id = $1`,
		sessionID,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load draft: %w", err)
	}

	var record entity.DraftRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	return &record, nil
}

func (s *PostgresStore) Save(ctx context.Context, sessionID uuid.UUID, record *entity.DraftRecord) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO booking_drafts (session_id, data, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_id)
		DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`,
		sessionID, raw, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

func (s *PostgresStore) Clear(ctx context.Context, sessionID uuid.UUID) error {
	_, err := s.db.Exec(ctx,
		`DELETE FROM booking_drafts WHERE session_id = $1`,
		sessionID,
	)
	if err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}
