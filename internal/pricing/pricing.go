package pricing

import (
	"github.com/shopspring/decimal"

	domainErrors "github.com/bersihin/bersihin/internal/domain/errors"
	"github.com/bersihin/bersihin/internal/domain/model"
)

const (
	// RatePerKM is charged per started kilometer of dispatch travel.
	RatePerKM int64 = 5000
	// MetersPerMinute is the travel speed assumed for ETA estimates.
	MetersPerMinute int64 = 500
	// DefaultETAMinutes is used when the dispatch distance is unknown.
	DefaultETAMinutes = 30
)

// Quote is the price breakdown for a booking.
type Quote struct {
	DistancePrice int64
	ExtraPrice    int64
	TotalPrice    int64
	ETAMinutes    int
}

// Price computes the booking quote. Pure and deterministic: no I/O, no
// clock, safe to call from concurrent request handlers.
//
// Distance is rounded up to the next whole kilometer so a partial
// kilometer is never undercharged. Zero distance is a legitimate
// same-location (or unassigned) booking and prices to zero travel.
func Price(basePrice, distanceMeters int64, extras []model.OrderExtra, surge float64) (Quote, error) {
	if basePrice < 0 || distanceMeters < 0 || surge < 1 {
		return Quote{}, domainErrors.ErrInvalidInput
	}

	var q Quote
	q.DistancePrice = ceilDiv(distanceMeters, 1000) * RatePerKM

	for _, e := range extras {
		if e.Price < 0 {
			return Quote{}, domainErrors.ErrInvalidInput
		}
		q.ExtraPrice += e.Price
	}

	subtotal := decimal.NewFromInt(basePrice + q.DistancePrice + q.ExtraPrice)
	q.TotalPrice = subtotal.Mul(decimal.NewFromFloat(surge)).Ceil().IntPart()

	if distanceMeters == 0 {
		q.ETAMinutes = DefaultETAMinutes
	} else {
		q.ETAMinutes = int(ceilDiv(distanceMeters, MetersPerMinute))
	}

	return q, nil
}

func ceilDiv(n, div int64) int64 {
	return (n + div - 1) / div
}
