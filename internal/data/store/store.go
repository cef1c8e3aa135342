package store

import (
	"context"

	"rental-booking/internal/data/entity"

	"github.com/google/uuid"
)

// DraftKey is the well-known key the persisted draft lives under.
const DraftKey = "carRentalDraft"

// DraftStore persists the single in-progress draft per session. Load returns
// (nil, nil) when the session has no active draft.
type DraftStore interface {
	Load(ctx context.Context, sessionID uuid.UUID) (*entity.DraftRecord, error)
	Save(ctx context.Context, sessionID uuid.UUID, record *entity.DraftRecord) error
	Clear(ctx context.Context, sessionID uuid.UUID) error
}
