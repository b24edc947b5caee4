package test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bersihin/bersihin/internal/domain/model"
	pkgAuth "github.com/bersihin/bersihin/internal/pkg/auth"
	"github.com/bersihin/bersihin/internal/usecase"
)

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CreateOrderFn      func(context.Context, usecase.CreateOrderInput) (*model.Order, error)
	OrderFn            func(context.Context, uuid.UUID, uuid.UUID, bool) (*model.Order, error)
	OrdersFn           func(context.Context, uuid.UUID) ([]model.Order, error)
	AssignOrderFn      func(context.Context, uuid.UUID, uuid.UUID) (*model.Order, error)
	AdvanceStatusFn    func(context.Context, uuid.UUID, model.OrderStatus, uuid.UUID) (*model.Order, error)
	UploadAfterFn      func(context.Context, uuid.UUID, uuid.UUID, []string) (*model.Order, error)
	SubmitTipFn        func(context.Context, uuid.UUID, uuid.UUID, int64) (*model.Tip, error)
	SubmitRatingFn     func(context.Context, uuid.UUID, uuid.UUID, int, string) (*model.Rating, error)
	VerifyCompletionFn func(context.Context, uuid.UUID, uuid.UUID) (*model.Order, error)
	DeleteOrderFn      func(context.Context, uuid.UUID) error
	BulkDeleteOrdersFn func(context.Context, []uuid.UUID) error
}

func (s OrderFacadeStub) CreateOrder(ctx context.Context, input usecase.CreateOrderInput) (*model.Order, error) {
	if s.CreateOrderFn != nil {
		return s.CreateOrderFn(ctx, input)
	}
	return &model.Order{ID: uuid.New(), OrderNumber: 1, CustomerID: input.CustomerID, Status: model.OrderStatusPending}, nil
}

func (s OrderFacadeStub) Order(ctx context.Context, orderID, actorID uuid.UUID, admin bool) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, orderID, actorID, admin)
	}
	return &model.Order{ID: orderID, OrderNumber: 1, CustomerID: actorID, Status: model.OrderStatusPending}, nil
}

func (s OrderFacadeStub) Orders(ctx context.Context, customerID uuid.UUID) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, customerID)
	}
	return []model.Order{{ID: uuid.New(), OrderNumber: 1, CustomerID: customerID, Status: model.OrderStatusPending, CreatedAt: time.Unix(0, 0)}}, nil
}

func (s OrderFacadeStub) AssignOrder(ctx context.Context, orderID, workerID uuid.UUID) (*model.Order, error) {
	if s.AssignOrderFn != nil {
		return s.AssignOrderFn(ctx, orderID, workerID)
	}
	return &model.Order{ID: orderID, WorkerID: &workerID, Status: model.OrderStatusInProgress}, nil
}

func (s OrderFacadeStub) AdvanceStatus(ctx context.Context, orderID uuid.UUID, target model.OrderStatus, actorID uuid.UUID) (*model.Order, error) {
	if s.AdvanceStatusFn != nil {
		return s.AdvanceStatusFn(ctx, orderID, target, actorID)
	}
	return &model.Order{ID: orderID, Status: target}, nil
}

func (s OrderFacadeStub) UploadAfterPhotos(ctx context.Context, orderID, customerID uuid.UUID, photos []string) (*model.Order, error) {
	if s.UploadAfterFn != nil {
		return s.UploadAfterFn(ctx, orderID, customerID, photos)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusInProgress, AfterPhotos: photos}, nil
}

func (s OrderFacadeStub) SubmitTip(ctx context.Context, orderID, customerID uuid.UUID, amount int64) (*model.Tip, error) {
	if s.SubmitTipFn != nil {
		return s.SubmitTipFn(ctx, orderID, customerID, amount)
	}
	return &model.Tip{ID: uuid.New(), OrderID: orderID, Amount: amount}, nil
}

func (s OrderFacadeStub) SubmitRating(ctx context.Context, orderID, customerID uuid.UUID, stars int, comment string) (*model.Rating, error) {
	if s.SubmitRatingFn != nil {
		return s.SubmitRatingFn(ctx, orderID, customerID, stars, comment)
	}
	return &model.Rating{ID: uuid.New(), OrderID: orderID, Stars: stars, Comment: comment}, nil
}

func (s OrderFacadeStub) VerifyCompletion(ctx context.Context, orderID, customerID uuid.UUID) (*model.Order, error) {
	if s.VerifyCompletionFn != nil {
		return s.VerifyCompletionFn(ctx, orderID, customerID)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusCompleted}, nil
}

func (s OrderFacadeStub) DeleteOrder(ctx context.Context, orderID uuid.UUID) error {
	if s.DeleteOrderFn != nil {
		return s.DeleteOrderFn(ctx, orderID)
	}
	return nil
}

func (s OrderFacadeStub) BulkDeleteOrders(ctx context.Context, orderIDs []uuid.UUID) error {
	if s.BulkDeleteOrdersFn != nil {
		return s.BulkDeleteOrdersFn(ctx, orderIDs)
	}
	return nil
}

// PaymentFacadeStub simulates settlement operations.
type PaymentFacadeStub struct {
	RequestTokenFn   func(context.Context, uuid.UUID, uuid.UUID) (string, error)
	PaymentByOrderFn func(context.Context, uuid.UUID) (*model.Payment, error)
	WebhookFn        func(context.Context, usecase.WebhookNotification)
}

func (s PaymentFacadeStub) RequestPaymentToken(ctx context.Context, orderID, customerID uuid.UUID) (string, error) {
	if s.RequestTokenFn != nil {
		return s.RequestTokenFn(ctx, orderID, customerID)
	}
	return "checkout-token", nil
}

func (s PaymentFacadeStub) PaymentByOrder(ctx context.Context, orderID uuid.UUID) (*model.Payment, error) {
	if s.PaymentByOrderFn != nil {
		return s.PaymentByOrderFn(ctx, orderID)
	}
	return &model.Payment{ID: uuid.New(), OrderID: orderID, Method: model.PaymentMethodEWallet, Status: model.PaymentStatusPending}, nil
}

func (s PaymentFacadeStub) HandlePaymentWebhook(ctx context.Context, n usecase.WebhookNotification) {
	if s.WebhookFn != nil {
		s.WebhookFn(ctx, n)
	}
}

// NotificationFacadeStub returns canned notification lists.
type NotificationFacadeStub struct {
	NotificationsFn func(context.Context, uuid.UUID) ([]model.Notification, error)
}

func (s NotificationFacadeStub) Notifications(ctx context.Context, userID uuid.UUID) ([]model.Notification, error) {
	if s.NotificationsFn != nil {
		return s.NotificationsFn(ctx, userID)
	}
	return nil, nil
}

// BookingFacadeStub aggregates all facade stubs for router level tests.
type BookingFacadeStub struct {
	OrderFacadeStub
	PaymentFacadeStub
	NotificationFacadeStub
}

// TokenParserStub resolves every token to a fixed actor unless ParseFn
// is set.
type TokenParserStub struct {
	Actor   pkgAuth.Actor
	ParseFn func(token string) (pkgAuth.Actor, error)
}

func (s TokenParserStub) ParseToken(token string) (pkgAuth.Actor, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return s.Actor, nil
}
