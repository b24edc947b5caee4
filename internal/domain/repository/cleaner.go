package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/bersihin/bersihin/internal/domain/model"
)

// CleanerRepository manages worker bookkeeping records.
type CleanerRepository interface {
	// EnsureBookkeeping upserts the shadow record for the worker's
	// natural key and returns its id. Safe under concurrent dispatches
	// to the same new worker.
	EnsureBookkeeping(ctx context.Context, externalID, name string) (uuid.UUID, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Cleaner, error)
}
