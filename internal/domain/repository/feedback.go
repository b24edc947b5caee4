package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/bersihin/bersihin/internal/domain/model"
)

// FeedbackRepository stores tips and ratings, one of each per order.
type FeedbackRepository interface {
	CreateTip(ctx context.Context, orderID uuid.UUID, amount int64) (*model.Tip, error)
	TipByOrder(ctx context.Context, orderID uuid.UUID) (*model.Tip, error)
	CreateRating(ctx context.Context, orderID uuid.UUID, stars int, comment string) (*model.Rating, error)
}
