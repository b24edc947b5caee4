package pricing

import (
	"testing"

	domainErrors "github.com/bersihin/bersihin/internal/domain/errors"
	"github.com/bersihin/bersihin/internal/domain/model"
)

func TestPriceDistanceRounding(t *testing.T) {
	cases := []struct {
		name     string
		meters   int64
		expected int64
	}{
		{"zero distance is free", 0, 0},
		{"one meter charges a full km", 1, RatePerKM},
		{"exact km boundary", 1000, RatePerKM},
		{"one meter past boundary", 1001, 2 * RatePerKM},
		{"partial kilometer 2300m", 2300, 3 * RatePerKM},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q, err := Price(100000, tc.meters, nil, 1.0)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if q.DistancePrice != tc.expected {
				t.Fatalf("distance price for %dm: got %d, want %d", tc.meters, q.DistancePrice, tc.expected)
			}
		})
	}
}

func TestPriceDeterministic(t *testing.T) {
	extras := []model.OrderExtra{{Name: "windows", Price: 15000}, {Name: "fridge", Price: 20000}}
	first, err := Price(100000, 2300, extras, 1.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 10; i++ {
		q, err := Price(100000, 2300, extras, 1.5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q != first {
			t.Fatalf("quote changed between identical calls: %+v vs %+v", q, first)
		}
	}
	if first.TotalPrice < 0 {
		t.Fatalf("total price must be non-negative, got %d", first.TotalPrice)
	}
}

func TestPriceTotalCeilsSurge(t *testing.T) {
	// (100000 + 5000) * 1.1 = 115500 exactly; (100001 + 5000) * 1.1 is
	// fractional and must round up.
	q, err := Price(100000, 1, nil, 1.1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.TotalPrice != 115500 {
		t.Fatalf("expected 115500, got %d", q.TotalPrice)
	}

	q, err = Price(100001, 1, nil, 1.1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.TotalPrice != 115502 {
		t.Fatalf("expected ceil to 115502, got %d", q.TotalPrice)
	}
}

func TestPriceExtras(t *testing.T) {
	q, err := Price(50000, 0, []model.OrderExtra{{Price: 10000}, {Price: 2500}}, 1.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.ExtraPrice != 12500 {
		t.Fatalf("expected extra price 12500, got %d", q.ExtraPrice)
	}
	if q.TotalPrice != 62500 {
		t.Fatalf("expected total 62500, got %d", q.TotalPrice)
	}
}

func TestPriceETA(t *testing.T) {
	q, _ := Price(0, 0, nil, 1.0)
	if q.ETAMinutes != DefaultETAMinutes {
		t.Fatalf("unknown distance should use default ETA, got %d", q.ETAMinutes)
	}

	q, _ = Price(0, 2300, nil, 1.0)
	if q.ETAMinutes != 5 {
		t.Fatalf("2300m should round up to 5 minutes, got %d", q.ETAMinutes)
	}
}

func TestPriceRejectsInvalidInput(t *testing.T) {
	if _, err := Price(-1, 0, nil, 1.0); err != domainErrors.ErrInvalidInput {
		t.Fatalf("expected invalid input for negative base price, got %v", err)
	}
	if _, err := Price(0, -5, nil, 1.0); err != domainErrors.ErrInvalidInput {
		t.Fatalf("expected invalid input for negative distance, got %v", err)
	}
	if _, err := Price(0, 0, []model.OrderExtra{{Price: -100}}, 1.0); err != domainErrors.ErrInvalidInput {
		t.Fatalf("expected invalid input for negative extra, got %v", err)
	}
	if _, err := Price(0, 0, nil, 0.5); err != domainErrors.ErrInvalidInput {
		t.Fatalf("expected invalid input for surge below 1, got %v", err)
	}
}
