package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/bersihin/bersihin/internal/domain/model"
)

// NotificationDraft is a notification pending insertion, usually as
// part of a larger transaction.
type NotificationDraft struct {
	UserID  uuid.UUID
	OrderID uuid.UUID
	Title   string
	Message string
}

// NotificationRepository persists notifications for the external
// delivery transport to pick up.
type NotificationRepository interface {
	Create(ctx context.Context, draft NotificationDraft) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Notification, error)
}
