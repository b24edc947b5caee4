package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus describes the order lifecycle.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusInProgress OrderStatus = "IN_PROGRESS"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// OrderExtra is an add-on selected at booking time, price frozen on the order.
type OrderExtra struct {
	ID    uuid.UUID
	Name  string
	Price int64
}

// Order is the central booking aggregate. OrderNumber is the dense
// customer-visible sequence; ID never changes.
type Order struct {
	ID             uuid.UUID
	OrderNumber    int64
	CustomerID     uuid.UUID
	WorkerID       *uuid.UUID
	PackageID      uuid.UUID
	Status         OrderStatus
	Lat            float64
	Lng            float64
	Address        string
	ScheduledAt    time.Time
	BeforePhotos   []string
	AfterPhotos    []string
	BasePrice      int64
	DistancePrice  int64
	ExtraPrice     int64
	Surge          float64
	TotalPrice     int64
	DistanceMeters int64
	ETAMinutes     int
	Extras         []OrderExtra
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Assigned reports whether a worker is attached to the order.
func (o *Order) Assigned() bool {
	return o.WorkerID != nil
}
