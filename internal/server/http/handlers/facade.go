package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/bersihin/bersihin/internal/domain/model"
	"github.com/bersihin/bersihin/internal/usecase"
)

// OrderFacade encapsulates order lifecycle operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, input usecase.CreateOrderInput) (*model.Order, error)
	Order(ctx context.Context, orderID, actorID uuid.UUID, admin bool) (*model.Order, error)
	Orders(ctx context.Context, customerID uuid.UUID) ([]model.Order, error)
	AssignOrder(ctx context.Context, orderID, workerID uuid.UUID) (*model.Order, error)
	AdvanceStatus(ctx context.Context, orderID uuid.UUID, target model.OrderStatus, actorID uuid.UUID) (*model.Order, error)
	UploadAfterPhotos(ctx context.Context, orderID, customerID uuid.UUID, photos []string) (*model.Order, error)
	SubmitTip(ctx context.Context, orderID, customerID uuid.UUID, amount int64) (*model.Tip, error)
	SubmitRating(ctx context.Context, orderID, customerID uuid.UUID, stars int, comment string) (*model.Rating, error)
	VerifyCompletion(ctx context.Context, orderID, customerID uuid.UUID) (*model.Order, error)
	DeleteOrder(ctx context.Context, orderID uuid.UUID) error
	BulkDeleteOrders(ctx context.Context, orderIDs []uuid.UUID) error
}

// PaymentFacade provides settlement operations.
type PaymentFacade interface {
	RequestPaymentToken(ctx context.Context, orderID, customerID uuid.UUID) (string, error)
	PaymentByOrder(ctx context.Context, orderID uuid.UUID) (*model.Payment, error)
	HandlePaymentWebhook(ctx context.Context, n usecase.WebhookNotification)
}

// NotificationFacade lists persisted notifications.
type NotificationFacade interface {
	Notifications(ctx context.Context, userID uuid.UUID) ([]model.Notification, error)
}

// BookingFacade aggregates the full set of operations used across handlers.
type BookingFacade interface {
	OrderFacade
	PaymentFacade
	NotificationFacade
}
