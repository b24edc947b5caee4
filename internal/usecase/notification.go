package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/bersihin/bersihin/internal/domain/model"
	"github.com/bersihin/bersihin/internal/domain/repository"
)

// NotificationUseCase exposes the read side of persisted notifications
// for the external delivery transport and the client applications.
type NotificationUseCase struct {
	notifications repository.NotificationRepository
}

// NewNotificationUseCase constructs NotificationUseCase.
func NewNotificationUseCase(repos repository.Factory) *NotificationUseCase {
	return &NotificationUseCase{notifications: repos.Notifications()}
}

// ListByUser returns the user's notifications, newest first.
func (u *NotificationUseCase) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Notification, error) {
	return u.notifications.ListByUser(ctx, userID)
}
