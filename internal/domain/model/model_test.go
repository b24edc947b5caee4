package model

import (
	"testing"

	"github.com/google/uuid"
)

func TestOrderStatusValues(t *testing.T) {
	cases := []struct {
		name  string
		got   OrderStatus
		value string
	}{
		{"pending", OrderStatusPending, "PENDING"},
		{"processing", OrderStatusProcessing, "PROCESSING"},
		{"in progress", OrderStatusInProgress, "IN_PROGRESS"},
		{"completed", OrderStatusCompleted, "COMPLETED"},
		{"cancelled", OrderStatusCancelled, "CANCELLED"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if string(tc.got) != tc.value {
				t.Fatalf("expected %s, got %s", tc.value, tc.got)
			}
		})
	}
}

func TestPaymentMethod(t *testing.T) {
	for _, method := range []PaymentMethod{PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodEWallet} {
		if !method.Valid() {
			t.Fatalf("expected %s to be valid", method)
		}
	}
	if PaymentMethod("CHEQUE").Valid() {
		t.Fatal("expected unknown method to be invalid")
	}

	if !PaymentMethodCash.Cash() {
		t.Fatal("expected CASH to report cash")
	}
	if PaymentMethodEWallet.Cash() {
		t.Fatal("expected EWALLET to not report cash")
	}
}

func TestOrderAssigned(t *testing.T) {
	order := &Order{}
	if order.Assigned() {
		t.Fatal("expected unassigned order")
	}
	workerID := uuid.New()
	order.WorkerID = &workerID
	if !order.Assigned() {
		t.Fatal("expected assigned order")
	}
}
