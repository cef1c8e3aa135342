package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"rental-booking/internal/data/entity"

	"github.com/google/uuid"
)

// FileStore persists each session's draft as a JSON document on disk. The
// document wraps the record under DraftKey, mirroring how the browser client
// kept it in local storage.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create draft dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(sessionID uuid.UUID) string {
	return filepath.Join(s.dir, sessionID.String()+".json")
}

func (s *FileStore) Load(_ context.Context, sessionID uuid.UUID) (*entity.DraftRecord, error) {
	raw, err := os.ReadFile(s.path(sessionID))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read draft file: %w", err)
	}

	var doc map[string]*entity.DraftRecord
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode draft file: %w", err)
	}

	record, ok := doc[DraftKey]
	if !ok || record == nil {
		return nil, nil
	}
	return record, nil
}

func (s *FileStore) Save(_ context.Context, sessionID uuid.UUID, record *entity.DraftRecord) error {
	raw, err := json.Marshal(map[string]*entity.DraftRecord{DraftKey: record})
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}

	// Write-then-rename so a crash never leaves a torn draft behind.
	tmp := s.path(sessionID) + ".tmp"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return fmt.Errorf("write draft file: %w", err)
	}
	if err := os.Rename(tmp, s.path(sessionID)); err != nil {
		return fmt.Errorf("rename draft file: %w", err)
	}
	return nil
}

func (s *FileStore) Clear(_ context.Context, sessionID uuid.UUID) error {
	if err := os.Remove(s.path(sessionID)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove draft file: %w", err)
	}
	return nil
}
