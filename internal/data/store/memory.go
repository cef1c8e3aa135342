package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"rental-booking/internal/data/entity"

	"github.com/google/uuid"
)

// MemoryStore keeps drafts in process memory. Used in tests and as a
// throwaway backend for local development.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[uuid.UUID][]byte)}
}

func (s *MemoryStore) Load(_ context.Context, sessionID uuid.UUID) (*entity.DraftRecord, error) {
	s.mu.RLock()
	raw, ok := s.records[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	var record entity.DraftRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	return &record, nil
}

func (s *MemoryStore) Save(_ context.Context, sessionID uuid.UUID, record *entity.DraftRecord) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}

	s.mu.Lock()
	s.records[sessionID] = raw
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, sessionID uuid.UUID) error {
	s.mu.Lock()
	delete(s.records, sessionID)
	s.mu.Unlock()
	return nil
}
