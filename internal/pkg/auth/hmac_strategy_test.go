package auth

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestHMACStrategyRoundTrip(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	actor := Actor{ID: uuid.New(), Role: RoleAdmin}

	token, err := strategy.IssueToken(actor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parsed, err := strategy.ParseToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed != actor {
		t.Fatalf("expected %+v, got %+v", actor, parsed)
	}
}

func TestHMACStrategyRejectsTampering(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	token, _ := strategy.IssueToken(Actor{ID: uuid.New(), Role: RoleCustomer})

	raw, _ := base64.StdEncoding.DecodeString(token)
	tampered := base64.StdEncoding.EncodeToString(append([]byte("x"), raw[1:]...))
	if _, err := strategy.ParseToken(tampered); err != ErrInvalidToken {
		t.Fatalf("expected invalid token, got %v", err)
	}

	other := NewHMACStrategy("other-secret", Options{})
	if _, err := other.ParseToken(token); err != ErrInvalidToken {
		t.Fatalf("expected token signed with different secret to fail, got %v", err)
	}
}

func TestHMACStrategyRejectsExpired(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{TTL: -time.Minute})
	token, _ := strategy.IssueToken(Actor{ID: uuid.New(), Role: RoleCustomer})

	if _, err := strategy.ParseToken(token); err != ErrInvalidToken {
		t.Fatalf("expected expired token to fail, got %v", err)
	}
}

func TestHMACStrategyRejectsGarbage(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	for _, token := range []string{"", "not-base64!!", base64.StdEncoding.EncodeToString([]byte("a:b"))} {
		if _, err := strategy.ParseToken(token); err != ErrInvalidToken {
			t.Fatalf("expected invalid token for %q, got %v", token, err)
		}
	}
}
