package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/bersihin/bersihin/internal/domain/errors"
	"github.com/bersihin/bersihin/internal/domain/model"
	"github.com/bersihin/bersihin/internal/domain/repository"
	"github.com/bersihin/bersihin/internal/pricing"
)

// Dispatcher selects a worker for a booking point. A nil assignment
// means the booking proceeds unassigned.
type Dispatcher interface {
	Dispatch(ctx context.Context, lat, lng float64, limit int) (*model.Assignment, error)
}

// AreaChecker answers service-area containment for a booking point.
type AreaChecker interface {
	Contains(lat, lng float64) bool
}

// CreateOrderInput is a raw booking request.
type CreateOrderInput struct {
	CustomerID    uuid.UUID
	PackageID     uuid.UUID
	ExtraIDs      []uuid.UUID
	Lat           float64
	Lng           float64
	Address       string
	ScheduledAt   time.Time
	PaymentMethod model.PaymentMethod
}

// OrderUseCase owns the order lifecycle: creation, dispatch, status
// transitions, artifacts, tips, ratings and deletion.
type OrderUseCase struct {
	orders        repository.OrderRepository
	payments      repository.PaymentRepository
	cleaners      repository.CleanerRepository
	catalog       repository.CatalogRepository
	feedback      repository.FeedbackRepository
	dispatcher    Dispatcher
	area          AreaChecker
	dispatchLimit int
	grace         time.Duration
	surge         float64
	now           func() time.Time
	logger        *slog.Logger
}

// OrderUseCaseOptions tunes lifecycle behavior.
type OrderUseCaseOptions struct {
	DispatchLimit   int
	CompletionGrace time.Duration
	// Surge is the demand multiplier applied to new bookings. Reserved
	// for demand-based pricing; defaults to 1.0.
	Surge float64
	Now   func() time.Time
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	repos repository.Factory,
	dispatcher Dispatcher,
	area AreaChecker,
	opts OrderUseCaseOptions,
	logger *slog.Logger,
) *OrderUseCase {
	if opts.DispatchLimit <= 0 {
		opts.DispatchLimit = 10
	}
	if opts.CompletionGrace <= 0 {
		opts.CompletionGrace = 5 * time.Minute
	}
	if opts.Surge < 1 {
		opts.Surge = 1.0
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &OrderUseCase{
		orders:        repos.Orders(),
		payments:      repos.Payments(),
		cleaners:      repos.Cleaners(),
		catalog:       repos.Catalog(),
		feedback:      repos.Feedback(),
		dispatcher:    dispatcher,
		area:          area,
		dispatchLimit: opts.DispatchLimit,
		grace:         opts.CompletionGrace,
		surge:         opts.Surge,
		now:           opts.Now,
		logger:        logger,
	}
}

// Create converts a booking request into a priced, dispatched and
// numbered order with its payment, atomically. Dispatch failure never
// blocks creation; the order is persisted unassigned.
func (u *OrderUseCase) Create(ctx context.Context, input CreateOrderInput) (*model.Order, error) {
	if input.CustomerID == uuid.Nil || input.Address == "" || input.ScheduledAt.IsZero() {
		return nil, domainErrors.ErrInvalidInput
	}
	if !input.PaymentMethod.Valid() {
		return nil, domainErrors.ErrInvalidInput
	}

	if !u.area.Contains(input.Lat, input.Lng) {
		return nil, domainErrors.ErrOutOfServiceArea
	}

	pkg, err := u.catalog.PackageByID(ctx, input.PackageID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrInvalidInput
		}
		return nil, err
	}
	if !pkg.Active {
		return nil, domainErrors.ErrInvalidInput
	}

	extras, err := u.resolveExtras(ctx, input.ExtraIDs)
	if err != nil {
		return nil, err
	}

	assignment, err := u.dispatcher.Dispatch(ctx, input.Lat, input.Lng, u.dispatchLimit)
	if err != nil {
		return nil, err
	}

	var (
		workerID *uuid.UUID
		distance int64
	)
	if assignment != nil {
		workerID = &assignment.CleanerID
		distance = assignment.DistanceMeters
	}

	quote, err := pricing.Price(pkg.BasePrice, distance, extras, u.surge)
	if err != nil {
		return nil, err
	}

	order, err := u.orders.CreateWithPayment(ctx, repository.OrderDraft{
		CustomerID:     input.CustomerID,
		WorkerID:       workerID,
		PackageID:      pkg.ID,
		Lat:            input.Lat,
		Lng:            input.Lng,
		Address:        input.Address,
		ScheduledAt:    input.ScheduledAt,
		BasePrice:      pkg.BasePrice,
		DistancePrice:  quote.DistancePrice,
		ExtraPrice:     quote.ExtraPrice,
		Surge:          u.surge,
		TotalPrice:     quote.TotalPrice,
		DistanceMeters: distance,
		ETAMinutes:     quote.ETAMinutes,
		Extras:         extras,
		PaymentMethod:  input.PaymentMethod,
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("order created",
		slog.Int64("order_number", order.OrderNumber),
		slog.Bool("assigned", order.Assigned()),
		slog.Int64("total_price", order.TotalPrice),
	)
	return order, nil
}

func (u *OrderUseCase) resolveExtras(ctx context.Context, ids []uuid.UUID) ([]model.OrderExtra, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	found, err := u.catalog.ExtrasByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]model.Extra, len(found))
	for _, e := range found {
		byID[e.ID] = e
	}

	extras := make([]model.OrderExtra, 0, len(ids))
	for _, id := range ids {
		e, ok := byID[id]
		if !ok || !e.Active {
			return nil, domainErrors.ErrInvalidInput
		}
		extras = append(extras, model.OrderExtra{ID: e.ID, Name: e.Name, Price: e.Price})
	}
	return extras, nil
}

// Get returns the order, enforcing ownership for customers.
func (u *OrderUseCase) Get(ctx context.Context, orderID, actorID uuid.UUID, admin bool) (*model.Order, error) {
	order, err := u.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !admin && order.CustomerID != actorID {
		return nil, domainErrors.ErrForbidden
	}
	return order, nil
}

// ListByCustomer returns the customer's orders, newest first.
func (u *OrderUseCase) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Order, error) {
	return u.orders.ListByCustomer(ctx, customerID)
}

// Assign attaches a worker to a PENDING or PROCESSING order and moves
// it to IN_PROGRESS. Re-assigning the worker of an order already in
// progress is a no-op.
func (u *OrderUseCase) Assign(ctx context.Context, orderID, workerID uuid.UUID) (*model.Order, error) {
	order, err := u.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status == model.OrderStatusInProgress && order.WorkerID != nil && *order.WorkerID == workerID {
		return order, nil
	}

	if !canTransition(order.Status, model.OrderStatusInProgress) {
		return nil, transitionError(order.Status, model.OrderStatusInProgress)
	}

	if _, err := u.cleaners.Get(ctx, workerID); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrInvalidInput
		}
		return nil, err
	}

	assigned, err := u.orders.AssignWorker(ctx, orderID, workerID)
	if err != nil {
		return nil, err
	}
	if !assigned {
		return nil, transitionError(order.Status, model.OrderStatusInProgress)
	}
	return u.orders.Get(ctx, orderID)
}

// Advance moves the order to the requested status on behalf of an
// admin actor, enforcing the transition guards.
func (u *OrderUseCase) Advance(ctx context.Context, orderID uuid.UUID, target model.OrderStatus, actorID uuid.UUID) (*model.Order, error) {
	order, err := u.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	switch target {
	case model.OrderStatusProcessing:
		if err := u.advanceToProcessing(ctx, order); err != nil {
			return nil, err
		}
	case model.OrderStatusInProgress:
		if err := u.confirmInProgress(ctx, order, actorID); err != nil {
			return nil, err
		}
	case model.OrderStatusCancelled:
		if err := u.cancel(ctx, order); err != nil {
			return nil, err
		}
	default:
		return nil, transitionError(order.Status, target)
	}

	return u.orders.Get(ctx, orderID)
}

// advanceToProcessing handles PENDING -> PROCESSING. For cash payments
// the admin action itself settles the payment; non-cash payments must
// already be confirmed by the gateway.
func (u *OrderUseCase) advanceToProcessing(ctx context.Context, order *model.Order) error {
	if order.Status != model.OrderStatusPending {
		return transitionError(order.Status, model.OrderStatusProcessing)
	}

	payment, err := u.payments.GetByOrder(ctx, order.ID)
	if err != nil {
		return err
	}

	switch {
	case payment.Status == model.PaymentStatusPaid:
		updated, err := u.orders.UpdateStatus(ctx, order.ID, model.OrderStatusPending, model.OrderStatusProcessing)
		if err != nil {
			return err
		}
		if !updated {
			return transitionError(order.Status, model.OrderStatusProcessing)
		}
		return nil
	case payment.Method.Cash():
		_, err := u.payments.MarkPaid(ctx, payment.ID, "", repository.NotificationDraft{
			UserID:  order.CustomerID,
			OrderID: order.ID,
			Title:   "Payment received",
			Message: fmt.Sprintf("Cash payment for order #%d was confirmed.", order.OrderNumber),
		})
		return err
	default:
		// Non-cash payments are settled exclusively by the gateway.
		return transitionError(order.Status, model.OrderStatusProcessing)
	}
}

// confirmInProgress handles PROCESSING -> IN_PROGRESS. The confirming
// admin must be the assigned worker; confirming an order already in
// progress is a no-op.
func (u *OrderUseCase) confirmInProgress(ctx context.Context, order *model.Order, actorID uuid.UUID) error {
	if order.Status == model.OrderStatusInProgress {
		return nil
	}
	if order.Status != model.OrderStatusProcessing {
		return transitionError(order.Status, model.OrderStatusInProgress)
	}
	if order.WorkerID == nil {
		return transitionError(order.Status, model.OrderStatusInProgress)
	}

	cleaner, err := u.cleaners.Get(ctx, *order.WorkerID)
	if err != nil {
		return err
	}
	if cleaner.ExternalID != actorID.String() {
		return domainErrors.ErrForbidden
	}

	updated, err := u.orders.UpdateStatus(ctx, order.ID, model.OrderStatusProcessing, model.OrderStatusInProgress)
	if err != nil {
		return err
	}
	if !updated {
		return transitionError(order.Status, model.OrderStatusInProgress)
	}
	return nil
}

func (u *OrderUseCase) cancel(ctx context.Context, order *model.Order) error {
	if !canTransition(order.Status, model.OrderStatusCancelled) {
		return transitionError(order.Status, model.OrderStatusCancelled)
	}
	cancelled, err := u.orders.Cancel(ctx, order.ID, repository.NotificationDraft{
		UserID:  order.CustomerID,
		OrderID: order.ID,
		Title:   "Order cancelled",
		Message: fmt.Sprintf("Order #%d was cancelled.", order.OrderNumber),
	})
	if err != nil {
		return err
	}
	if !cancelled {
		return transitionError(order.Status, model.OrderStatusCancelled)
	}
	return nil
}

// UploadAfterPhotos stores the post-visit artifact references.
func (u *OrderUseCase) UploadAfterPhotos(ctx context.Context, orderID, customerID uuid.UUID, photos []string) (*model.Order, error) {
	if len(photos) == 0 {
		return nil, domainErrors.ErrInvalidInput
	}

	order, err := u.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, domainErrors.ErrForbidden
	}
	if order.Status != model.OrderStatusInProgress {
		return nil, transitionError(order.Status, model.OrderStatusInProgress)
	}

	if err := u.orders.SetAfterPhotos(ctx, orderID, photos); err != nil {
		return nil, err
	}
	return u.orders.Get(ctx, orderID)
}

// SubmitTip records the customer's tip; amount may be zero. A tip is
// required before completion can be verified.
func (u *OrderUseCase) SubmitTip(ctx context.Context, orderID, customerID uuid.UUID, amount int64) (*model.Tip, error) {
	if amount < 0 {
		return nil, domainErrors.ErrInvalidInput
	}

	order, err := u.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, domainErrors.ErrForbidden
	}

	return u.feedback.CreateTip(ctx, orderID, amount)
}

// SubmitRating records the single post-completion review.
func (u *OrderUseCase) SubmitRating(ctx context.Context, orderID, customerID uuid.UUID, stars int, comment string) (*model.Rating, error) {
	if stars < 1 || stars > 5 {
		return nil, domainErrors.ErrInvalidInput
	}

	order, err := u.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, domainErrors.ErrForbidden
	}
	if order.Status != model.OrderStatusCompleted {
		return nil, transitionError(order.Status, model.OrderStatusCompleted)
	}

	return u.feedback.CreateRating(ctx, orderID, stars, comment)
}

// VerifyCompletion moves an IN_PROGRESS order to COMPLETED once the
// grace period has elapsed, the payment is settled (or cash), after
// photos are uploaded and a tip exists. Cash payments are settled
// implicitly by the customer-verified completion.
func (u *OrderUseCase) VerifyCompletion(ctx context.Context, orderID, customerID uuid.UUID) (*model.Order, error) {
	order, err := u.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, domainErrors.ErrForbidden
	}
	if order.Status != model.OrderStatusInProgress {
		return nil, transitionError(order.Status, model.OrderStatusCompleted)
	}

	if u.now().Before(order.ScheduledAt.Add(u.grace)) {
		return nil, transitionError(order.Status, model.OrderStatusCompleted)
	}

	if len(order.AfterPhotos) == 0 {
		return nil, transitionError(order.Status, model.OrderStatusCompleted)
	}

	payment, err := u.payments.GetByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !payment.Method.Cash() && payment.Status != model.PaymentStatusPaid {
		return nil, transitionError(order.Status, model.OrderStatusCompleted)
	}

	if _, err := u.feedback.TipByOrder(ctx, orderID); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, transitionError(order.Status, model.OrderStatusCompleted)
		}
		return nil, err
	}

	if err := u.orders.Complete(ctx, orderID); err != nil {
		return nil, err
	}
	return u.orders.Get(ctx, orderID)
}

// Delete removes orders and renumbers survivors; the whole operation
// is atomic.
func (u *OrderUseCase) Delete(ctx context.Context, ids ...uuid.UUID) error {
	if len(ids) == 0 {
		return domainErrors.ErrInvalidInput
	}
	return u.orders.Delete(ctx, ids...)
}

// StaleUnpaid returns orders whose non-cash payment has been PENDING
// longer than ttl while the order itself is still PENDING.
func (u *OrderUseCase) StaleUnpaid(ctx context.Context, ttl time.Duration, limit int) ([]model.Order, error) {
	return u.orders.StaleUnpaid(ctx, u.now().Add(-ttl), limit)
}

// CancelUnpaid cancels one stale unpaid order and notifies the
// customer. Returns false when the order was no longer cancellable,
// which makes concurrent sweeps harmless.
func (u *OrderUseCase) CancelUnpaid(ctx context.Context, order model.Order) (bool, error) {
	return u.orders.Cancel(ctx, order.ID, repository.NotificationDraft{
		UserID:  order.CustomerID,
		OrderID: order.ID,
		Title:   "Order cancelled",
		Message: fmt.Sprintf("Order #%d was cancelled automatically because its payment was not completed in time.", order.OrderNumber),
	})
}
