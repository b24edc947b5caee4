package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bersihin/bersihin/internal/domain/model"
	"github.com/bersihin/bersihin/internal/usecase"
)

// BookingFacade aggregates the core operations exposed to the HTTP
// layer and the background sweeper.
type BookingFacade struct {
	orders        *usecase.OrderUseCase
	payments      *usecase.PaymentUseCase
	notifications *usecase.NotificationUseCase
	unpaidTTL     time.Duration
}

// NewBookingFacade constructs the facade.
func NewBookingFacade(
	orders *usecase.OrderUseCase,
	payments *usecase.PaymentUseCase,
	notifications *usecase.NotificationUseCase,
	unpaidTTL time.Duration,
) *BookingFacade {
	if unpaidTTL <= 0 {
		unpaidTTL = time.Hour
	}
	return &BookingFacade{
		orders:        orders,
		payments:      payments,
		notifications: notifications,
		unpaidTTL:     unpaidTTL,
	}
}

func (f *BookingFacade) CreateOrder(ctx context.Context, input usecase.CreateOrderInput) (*model.Order, error) {
	return f.orders.Create(ctx, input)
}

func (f *BookingFacade) Order(ctx context.Context, orderID, actorID uuid.UUID, admin bool) (*model.Order, error) {
	return f.orders.Get(ctx, orderID, actorID, admin)
}

func (f *BookingFacade) Orders(ctx context.Context, customerID uuid.UUID) ([]model.Order, error) {
	return f.orders.ListByCustomer(ctx, customerID)
}

func (f *BookingFacade) AssignOrder(ctx context.Context, orderID, workerID uuid.UUID) (*model.Order, error) {
	return f.orders.Assign(ctx, orderID, workerID)
}

func (f *BookingFacade) AdvanceStatus(ctx context.Context, orderID uuid.UUID, target model.OrderStatus, actorID uuid.UUID) (*model.Order, error) {
	return f.orders.Advance(ctx, orderID, target, actorID)
}

func (f *BookingFacade) UploadAfterPhotos(ctx context.Context, orderID, customerID uuid.UUID, photos []string) (*model.Order, error) {
	return f.orders.UploadAfterPhotos(ctx, orderID, customerID, photos)
}

func (f *BookingFacade) SubmitTip(ctx context.Context, orderID, customerID uuid.UUID, amount int64) (*model.Tip, error) {
	return f.orders.SubmitTip(ctx, orderID, customerID, amount)
}

func (f *BookingFacade) SubmitRating(ctx context.Context, orderID, customerID uuid.UUID, stars int, comment string) (*model.Rating, error) {
	return f.orders.SubmitRating(ctx, orderID, customerID, stars, comment)
}

func (f *BookingFacade) VerifyCompletion(ctx context.Context, orderID, customerID uuid.UUID) (*model.Order, error) {
	return f.orders.VerifyCompletion(ctx, orderID, customerID)
}

func (f *BookingFacade) DeleteOrder(ctx context.Context, orderID uuid.UUID) error {
	return f.orders.Delete(ctx, orderID)
}

func (f *BookingFacade) BulkDeleteOrders(ctx context.Context, orderIDs []uuid.UUID) error {
	return f.orders.Delete(ctx, orderIDs...)
}

func (f *BookingFacade) RequestPaymentToken(ctx context.Context, orderID, customerID uuid.UUID) (string, error) {
	return f.payments.RequestToken(ctx, orderID, customerID)
}

func (f *BookingFacade) PaymentByOrder(ctx context.Context, orderID uuid.UUID) (*model.Payment, error) {
	return f.payments.PaymentByOrder(ctx, orderID)
}

func (f *BookingFacade) HandlePaymentWebhook(ctx context.Context, n usecase.WebhookNotification) {
	f.payments.HandleWebhook(ctx, n)
}

func (f *BookingFacade) Notifications(ctx context.Context, userID uuid.UUID) ([]model.Notification, error) {
	return f.notifications.ListByUser(ctx, userID)
}

// StaleUnpaidOrders feeds the sweeper with orders past the unpaid TTL.
func (f *BookingFacade) StaleUnpaidOrders(ctx context.Context, limit int) ([]model.Order, error) {
	return f.orders.StaleUnpaid(ctx, f.unpaidTTL, limit)
}

func (f *BookingFacade) CancelUnpaid(ctx context.Context, order model.Order) (bool, error) {
	return f.orders.CancelUnpaid(ctx, order)
}
