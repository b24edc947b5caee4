package model

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMethod enumerates supported settlement methods.
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodEWallet      PaymentMethod = "EWALLET"
)

// Cash reports whether settlement happens offline.
func (m PaymentMethod) Cash() bool {
	return m == PaymentMethodCash
}

// Valid reports whether the method is one of the known values.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodEWallet:
		return true
	}
	return false
}

// PaymentStatus moves PENDING -> PAID and never regresses.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

// Payment is the 1:1 settlement child of an order.
type Payment struct {
	ID            uuid.UUID
	OrderID       uuid.UUID
	Method        PaymentMethod
	Amount        int64
	Status        PaymentStatus
	TransactionID *string
	Token         *string
	CreatedAt     time.Time
	PaidAt        *time.Time
}
