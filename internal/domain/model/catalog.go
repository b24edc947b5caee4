package model

import "github.com/google/uuid"

// Package is a catalog entry. The catalog is edited elsewhere; the core
// only reads it to validate bookings and freeze prices.
type Package struct {
	ID        uuid.UUID
	Name      string
	BasePrice int64
	Active    bool
}

// Extra is an optional add-on from the catalog.
type Extra struct {
	ID     uuid.UUID
	Name   string
	Price  int64
	Active bool
}
