package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bersihin/bersihin/internal/domain/model"
)

// OrderDraft carries everything needed to persist a priced, dispatched
// booking together with its payment in one transaction.
type OrderDraft struct {
	CustomerID     uuid.UUID
	WorkerID       *uuid.UUID
	PackageID      uuid.UUID
	Lat            float64
	Lng            float64
	Address        string
	ScheduledAt    time.Time
	BasePrice      int64
	DistancePrice  int64
	ExtraPrice     int64
	Surge          float64
	TotalPrice     int64
	DistanceMeters int64
	ETAMinutes     int
	Extras         []model.OrderExtra
	PaymentMethod  model.PaymentMethod
}

// OrderRepository describes persistence operations with orders. Status
// updates are conditional on the expected current status so concurrent
// actors cannot race past a guard.
type OrderRepository interface {
	// CreateWithPayment allocates the next order number and inserts the
	// order, its extras and its payment atomically.
	CreateWithPayment(ctx context.Context, draft OrderDraft) (*model.Order, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Order, error)
	GetByNumber(ctx context.Context, number int64) (*model.Order, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Order, error)
	// UpdateStatus moves the order from one status to another; it fails
	// with ErrNotFound when the order is missing and reports zero
	// affected rows so the caller can surface a transition error.
	UpdateStatus(ctx context.Context, orderID uuid.UUID, from, to model.OrderStatus) (bool, error)
	// AssignWorker attaches the worker and moves a PENDING or
	// PROCESSING order to IN_PROGRESS in one conditional update.
	// Returns false when the order exists but the status guard failed.
	AssignWorker(ctx context.Context, orderID, workerID uuid.UUID) (bool, error)
	SetAfterPhotos(ctx context.Context, orderID uuid.UUID, photos []string) error
	// Complete marks the order COMPLETED and, in the same transaction,
	// settles a still-pending payment.
	Complete(ctx context.Context, orderID uuid.UUID) error
	// Cancel moves a PENDING or PROCESSING order to CANCELLED and
	// records the customer notification atomically. Returns false when
	// the order was no longer cancellable.
	Cancel(ctx context.Context, orderID uuid.UUID, notification NotificationDraft) (bool, error)
	// StaleUnpaid returns orders still PENDING whose non-cash payment
	// has been PENDING since before the cutoff.
	StaleUnpaid(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error)
	// Delete removes the orders and renumbers the survivors into a
	// contiguous 1..N sequence, all in one transaction.
	Delete(ctx context.Context, ids ...uuid.UUID) error
}
