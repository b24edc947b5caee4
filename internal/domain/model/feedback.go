package model

import (
	"time"

	"github.com/google/uuid"
)

// Tip is recorded by the customer before completion; amount may be zero.
type Tip struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	Amount    int64
	CreatedAt time.Time
}

// Rating is the single post-completion review for an order.
type Rating struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	Stars     int
	Comment   string
	CreatedAt time.Time
}

// Notification is produced by the core and delivered by an external
// transport that reads the notifications table.
type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	OrderID   uuid.UUID
	Title     string
	Message   string
	CreatedAt time.Time
}
