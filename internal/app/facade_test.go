package app

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/bersihin/bersihin/internal/adapter/gateway"
	"github.com/bersihin/bersihin/internal/domain/model"
	testhelpers "github.com/bersihin/bersihin/internal/test"
	"github.com/bersihin/bersihin/internal/usecase"
	"github.com/bersihin/bersihin/internal/worker"
)

const facadeServerKey = "facade-key"

var _ worker.SweeperFacade = (*BookingFacade)(nil)

type noopDispatcher struct{}

func (noopDispatcher) Dispatch(context.Context, float64, float64, int) (*model.Assignment, error) {
	return nil, nil
}

type openArea struct{}

func (openArea) Contains(float64, float64) bool { return true }

func newFacade() (*BookingFacade, *testhelpers.Repositories, uuid.UUID) {
	repos := testhelpers.NewRepositories()
	packageID := uuid.New()
	repos.CatalogStub.Packages[packageID] = model.Package{ID: packageID, Name: "Regular", BasePrice: 100000, Active: true}

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	orders := usecase.NewOrderUseCase(repos, noopDispatcher{}, openArea{}, usecase.OrderUseCaseOptions{}, logger)
	payments := usecase.NewPaymentUseCase(repos, nil, facadeServerKey, logger)
	notifications := usecase.NewNotificationUseCase(repos)

	return NewBookingFacade(orders, payments, notifications, time.Hour), repos, packageID
}

func TestBookingFacadeOrderFlow(t *testing.T) {
	facade, repos, packageID := newFacade()
	customer := uuid.New()

	order, err := facade.CreateOrder(context.Background(), usecase.CreateOrderInput{
		CustomerID:    customer,
		PackageID:     packageID,
		Address:       "Jl. Gatot Subroto 12",
		ScheduledAt:   time.Now().Add(-time.Hour),
		PaymentMethod: model.PaymentMethodEWallet,
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	listed, err := facade.Orders(context.Background(), customer)
	if err != nil || len(listed) != 1 {
		t.Fatalf("expected one order, got %v err=%v", listed, err)
	}

	fetched, err := facade.Order(context.Background(), order.ID, customer, false)
	if err != nil || fetched.ID != order.ID {
		t.Fatalf("unexpected fetch result: %v err=%v", fetched, err)
	}

	// A signed settlement webhook settles the payment and notifies.
	orderRef := strconv.FormatInt(order.OrderNumber, 10)
	facade.HandlePaymentWebhook(context.Background(), usecase.WebhookNotification{
		OrderRef:          orderRef,
		TransactionID:     "trx-1",
		TransactionStatus: "settlement",
		StatusCode:        "200",
		GrossAmount:       "100000.00",
		SignatureKey:      gateway.Signature(orderRef, "200", "100000.00", facadeServerKey),
	})

	payment, err := facade.PaymentByOrder(context.Background(), order.ID)
	if err != nil || payment.Status != model.PaymentStatusPaid {
		t.Fatalf("expected settled payment, got %v err=%v", payment, err)
	}

	notifications, err := facade.Notifications(context.Background(), customer)
	if err != nil || len(notifications) != 1 {
		t.Fatalf("expected one notification, got %v err=%v", notifications, err)
	}
	if repos.NotificationsStub.Count() != 1 {
		t.Fatalf("expected one stored notification, got %d", repos.NotificationsStub.Count())
	}

	// Assignment moves the settled order to IN_PROGRESS.
	cleanerID, err := repos.CleanersStub.EnsureBookkeeping(context.Background(), "worker-1", "Sari")
	if err != nil {
		t.Fatalf("ensure cleaner: %v", err)
	}
	assigned, err := facade.AssignOrder(context.Background(), order.ID, cleanerID)
	if err != nil {
		t.Fatalf("assign order: %v", err)
	}
	if assigned.Status != model.OrderStatusInProgress {
		t.Fatalf("expected IN_PROGRESS after assignment, got %s", assigned.Status)
	}

	// After photos and a tip, the customer verifies completion.
	if _, err := facade.UploadAfterPhotos(context.Background(), order.ID, customer, []string{"after.jpg"}); err != nil {
		t.Fatalf("upload photos: %v", err)
	}
	if _, err := facade.SubmitTip(context.Background(), order.ID, customer, 0); err != nil {
		t.Fatalf("submit tip: %v", err)
	}
	completed, err := facade.VerifyCompletion(context.Background(), order.ID, customer)
	if err != nil {
		t.Fatalf("verify completion: %v", err)
	}
	if completed.Status != model.OrderStatusCompleted {
		t.Fatalf("expected COMPLETED, got %s", completed.Status)
	}
}

func TestBookingFacadeSweeperSide(t *testing.T) {
	facade, repos, packageID := newFacade()
	customer := uuid.New()

	order, err := facade.CreateOrder(context.Background(), usecase.CreateOrderInput{
		CustomerID:    customer,
		PackageID:     packageID,
		Address:       "Jl. Gatot Subroto 12",
		ScheduledAt:   time.Now().Add(24 * time.Hour),
		PaymentMethod: model.PaymentMethodBankTransfer,
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	repos.PaymentsStub.SetCreatedAt(order.ID, time.Now().Add(-2*time.Hour))

	stale, err := facade.StaleUnpaidOrders(context.Background(), 10)
	if err != nil || len(stale) != 1 {
		t.Fatalf("expected one stale order, got %v err=%v", stale, err)
	}

	cancelled, err := facade.CancelUnpaid(context.Background(), stale[0])
	if err != nil || !cancelled {
		t.Fatalf("expected cancellation, got %v err=%v", cancelled, err)
	}

	updated, err := facade.Order(context.Background(), order.ID, customer, false)
	if err != nil || updated.Status != model.OrderStatusCancelled {
		t.Fatalf("expected CANCELLED, got %v err=%v", updated, err)
	}
}

func TestBookingFacadeDefaultTTL(t *testing.T) {
	facade := NewBookingFacade(nil, nil, nil, 0)
	if facade.unpaidTTL != time.Hour {
		t.Fatalf("expected default ttl, got %s", facade.unpaidTTL)
	}
}
