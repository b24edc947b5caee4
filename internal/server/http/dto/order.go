package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateOrderRequest is the booking request body.
type CreateOrderRequest struct {
	PackageID     uuid.UUID   `json:"package_id" binding:"required"`
	ExtraIDs      []uuid.UUID `json:"extra_ids"`
	Lat           float64     `json:"lat" binding:"required"`
	Lng           float64     `json:"lng" binding:"required"`
	Address       string      `json:"address" binding:"required"`
	ScheduledAt   time.Time   `json:"scheduled_at" binding:"required"`
	PaymentMethod string      `json:"payment_method" binding:"required"`
}

// AssignRequest attaches a worker to an order.
type AssignRequest struct {
	WorkerID uuid.UUID `json:"worker_id" binding:"required"`
}

// StatusRequest asks for a lifecycle transition.
type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PhotosRequest uploads after-visit artifact references.
type PhotosRequest struct {
	Photos []string `json:"photos" binding:"required"`
}

// TipRequest records the customer's tip.
type TipRequest struct {
	Amount int64 `json:"amount"`
}

// RatingRequest records the post-completion review.
type RatingRequest struct {
	Stars   int    `json:"stars" binding:"required"`
	Comment string `json:"comment"`
}

// BulkDeleteRequest removes several orders at once.
type BulkDeleteRequest struct {
	OrderIDs []uuid.UUID `json:"order_ids" binding:"required"`
}

// OrderExtraResponse mirrors a frozen order add-on.
type OrderExtraResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Price int64     `json:"price"`
}

// OrderResponse is the order representation returned to clients.
type OrderResponse struct {
	ID             uuid.UUID            `json:"id"`
	OrderNumber    int64                `json:"order_number"`
	Status         string               `json:"status"`
	WorkerID       *uuid.UUID           `json:"worker_id,omitempty"`
	Lat            float64              `json:"lat"`
	Lng            float64              `json:"lng"`
	Address        string               `json:"address"`
	ScheduledAt    time.Time            `json:"scheduled_at"`
	BeforePhotos   []string             `json:"before_photos,omitempty"`
	AfterPhotos    []string             `json:"after_photos,omitempty"`
	BasePrice      int64                `json:"base_price"`
	DistancePrice  int64                `json:"distance_price"`
	ExtraPrice     int64                `json:"extra_price"`
	Surge          float64              `json:"surge_multiplier"`
	TotalPrice     int64                `json:"total_price"`
	DistanceMeters int64                `json:"distance_meters"`
	ETAMinutes     int                  `json:"estimated_eta_minutes"`
	Extras         []OrderExtraResponse `json:"extras,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
}

// TokenResponse carries a gateway checkout token.
type TokenResponse struct {
	Token string `json:"token"`
}

// NotificationResponse is a persisted notification.
type NotificationResponse struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"order_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
