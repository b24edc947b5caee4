package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/bersihin/bersihin/internal/domain/model"
)

// PaymentRepository describes persistence operations with payments.
type PaymentRepository interface {
	GetByOrder(ctx context.Context, orderID uuid.UUID) (*model.Payment, error)
	GetByTransactionID(ctx context.Context, transactionID string) (*model.Payment, error)
	// AttachToken stores the checkout token issued by the gateway for a
	// non-cash payment.
	AttachToken(ctx context.Context, orderID uuid.UUID, token string) error
	// MarkPaid settles the payment, records the gateway transaction id,
	// advances a still-PENDING order to PROCESSING and inserts the
	// notification in one transaction. Returns false when the payment
	// was already PAID. transactionID may be empty for cash payments.
	MarkPaid(ctx context.Context, paymentID uuid.UUID, transactionID string, notification NotificationDraft) (bool, error)
}
