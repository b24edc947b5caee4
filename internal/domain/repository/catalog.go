package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/bersihin/bersihin/internal/domain/model"
)

// CatalogRepository gives the core read access to packages and extras.
// Catalog editing happens outside this service.
type CatalogRepository interface {
	PackageByID(ctx context.Context, id uuid.UUID) (*model.Package, error)
	ExtrasByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Extra, error)
}
