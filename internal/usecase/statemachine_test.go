package usecase

import (
	"testing"

	domainErrors "github.com/bersihin/bersihin/internal/domain/errors"
	"github.com/bersihin/bersihin/internal/domain/model"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from    model.OrderStatus
		to      model.OrderStatus
		allowed bool
	}{
		{model.OrderStatusPending, model.OrderStatusProcessing, true},
		{model.OrderStatusPending, model.OrderStatusInProgress, true},
		{model.OrderStatusPending, model.OrderStatusCancelled, true},
		{model.OrderStatusPending, model.OrderStatusCompleted, false},
		{model.OrderStatusProcessing, model.OrderStatusInProgress, true},
		{model.OrderStatusProcessing, model.OrderStatusCancelled, true},
		{model.OrderStatusProcessing, model.OrderStatusCompleted, false},
		{model.OrderStatusInProgress, model.OrderStatusCompleted, true},
		{model.OrderStatusInProgress, model.OrderStatusCancelled, false},
		{model.OrderStatusCompleted, model.OrderStatusProcessing, false},
		{model.OrderStatusCancelled, model.OrderStatusPending, false},
	}

	for _, tc := range cases {
		if got := canTransition(tc.from, tc.to); got != tc.allowed {
			t.Fatalf("transition %s -> %s: expected %v, got %v", tc.from, tc.to, tc.allowed, got)
		}
	}
}

func TestTransitionError(t *testing.T) {
	err := transitionError(model.OrderStatusPending, model.OrderStatusCompleted)
	if !domainErrors.IsInvalidTransition(err) {
		t.Fatalf("expected transition guard error, got %v", err)
	}
}
