package errors

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidInput       = errors.New("invalid input")
	ErrOutOfServiceArea   = errors.New("location outside service area")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
)

// InvalidTransitionError reports a state-machine guard failure. Callers
// can distinguish an expected rejection from an I/O fault without
// matching message text.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %s to %s", e.From, e.To)
}

// IsInvalidTransition reports whether err is a transition guard failure.
func IsInvalidTransition(err error) bool {
	var target *InvalidTransitionError
	return errors.As(err, &target)
}
