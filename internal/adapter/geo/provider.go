// Package geo implements the spatial candidate lookup on Redis. Worker
// positions live in a GEO set and each worker carries an annotation
// hash (activity flag, active-order count, rating) maintained by the
// worker-facing application. The caller owns the Redis client
// lifecycle.
package geo

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/bersihin/bersihin/internal/domain/model"
)

const (
	geoKey     = "cleaners:geo"
	hashPrefix = "cleaners:"
)

// Provider queries nearby active cleaners from Redis.
type Provider struct {
	client   redis.Cmdable
	radiusKM float64
	logger   *slog.Logger
}

// NewProvider constructs the provider. radiusKM bounds the search; a
// non-positive value falls back to 25km.
func NewProvider(client redis.Cmdable, radiusKM float64, logger *slog.Logger) *Provider {
	if radiusKM <= 0 {
		radiusKM = 25
	}
	return &Provider{client: client, radiusKM: radiusKM, logger: logger}
}

// FindNearest returns up to limit active candidates around the point,
// annotated with load, rating and distance.
func (p *Provider) FindNearest(ctx context.Context, lat, lng float64, limit int) ([]model.Candidate, error) {
	locations, err := p.client.GeoSearchLocation(ctx, geoKey, &redis.GeoSearchLocationQuery{
		GeoSearchQuery: redis.GeoSearchQuery{
			Longitude:  lng,
			Latitude:   lat,
			Radius:     p.radiusKM,
			RadiusUnit: "km",
			Sort:       "ASC",
			Count:      limit,
		},
		WithDist: true,
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("geo search: %w", err)
	}

	candidates := make([]model.Candidate, 0, len(locations))
	for _, loc := range locations {
		fields, err := p.client.HGetAll(ctx, hashPrefix+loc.Name).Result()
		if err != nil {
			return nil, fmt.Errorf("load cleaner %s: %w", loc.Name, err)
		}
		candidate, ok := candidateFromHash(loc.Name, loc.Dist, fields)
		if !ok {
			continue
		}
		candidates = append(candidates, candidate)
	}
	return candidates, nil
}

// candidateFromHash maps a worker annotation hash to a candidate.
// distKM is the GEO distance in kilometers. Workers without a truthy
// active flag are skipped.
func candidateFromHash(externalID string, distKM float64, fields map[string]string) (model.Candidate, bool) {
	if len(fields) == 0 {
		return model.Candidate{}, false
	}
	if active, _ := strconv.ParseBool(fields["active"]); !active {
		return model.Candidate{}, false
	}

	activeOrders, _ := strconv.Atoi(fields["active_orders"])
	rating, _ := strconv.ParseFloat(fields["rating"], 64)

	return model.Candidate{
		ExternalID:     externalID,
		Name:           fields["name"],
		ActiveOrders:   activeOrders,
		Rating:         rating,
		DistanceMeters: int64(distKM * 1000),
	}, true
}
