package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"already exists", ErrAlreadyExists},
		{"not found", ErrNotFound},
		{"forbidden", ErrForbidden},
		{"invalid input", ErrInvalidInput},
		{"out of service area", ErrOutOfServiceArea},
		{"gateway unavailable", ErrGatewayUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !stdErrors.Is(tc.err, tc.err) {
				t.Fatalf("expected error to match itself: %v", tc.err)
			}
		})
	}
}

func TestInvalidTransitionError(t *testing.T) {
	err := &InvalidTransitionError{From: "PENDING", To: "COMPLETED"}
	if err.Error() != "invalid transition from PENDING to COMPLETED" {
		t.Fatalf("unexpected message %q", err.Error())
	}

	if !IsInvalidTransition(err) {
		t.Fatal("expected direct match")
	}
	if !IsInvalidTransition(fmt.Errorf("advance order: %w", err)) {
		t.Fatal("expected wrapped match")
	}
	if IsInvalidTransition(ErrNotFound) {
		t.Fatal("expected sentinel to not match")
	}
	if IsInvalidTransition(nil) {
		t.Fatal("expected nil to not match")
	}
}
