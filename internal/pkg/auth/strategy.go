package auth

import (
	"time"

	"github.com/google/uuid"
)

// Role distinguishes the actor kinds the core recognizes. Tokens are
// issued by the external identity service; this package only verifies
// them on incoming requests.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Actor is the authenticated caller of a request.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

type Strategy interface {
	IssueToken(actor Actor) (string, error)
	ParseToken(token string) (Actor, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
