package model

import (
	"time"

	"github.com/google/uuid"
)

// Cleaner is the bookkeeping record for a field worker. It is created
// lazily the first time a worker is dispatched; ExternalID is the
// natural key of the worker in the identity system.
type Cleaner struct {
	ID         uuid.UUID
	ExternalID string
	Name       string
	CreatedAt  time.Time
}

// Candidate is a dispatchable worker as reported by the spatial
// provider. Not owned by this service; consumed as a read model.
type Candidate struct {
	ExternalID     string
	Name           string
	ActiveOrders   int
	Rating         float64
	DistanceMeters int64
}

// Assignment is the outcome of a successful dispatch.
type Assignment struct {
	CleanerID      uuid.UUID
	ExternalID     string
	DistanceMeters int64
}
