package usecase

import (
	domainErrors "github.com/bersihin/bersihin/internal/domain/errors"
	"github.com/bersihin/bersihin/internal/domain/model"
)

// allowedTransitions is the full order state machine. CANCELLED is
// reachable from PENDING and PROCESSING only; COMPLETED and CANCELLED
// are terminal.
var allowedTransitions = map[model.OrderStatus][]model.OrderStatus{
	model.OrderStatusPending:    {model.OrderStatusProcessing, model.OrderStatusInProgress, model.OrderStatusCancelled},
	model.OrderStatusProcessing: {model.OrderStatusInProgress, model.OrderStatusCancelled},
	model.OrderStatusInProgress: {model.OrderStatusCompleted},
}

// canTransition reports whether from -> to is a legal edge.
func canTransition(from, to model.OrderStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// transitionError builds the guard failure naming both statuses.
func transitionError(from, to model.OrderStatus) error {
	return &domainErrors.InvalidTransitionError{From: string(from), To: string(to)}
}
