package dispatch

import (
	"context"
	"log/slog"
	"sort"

	"github.com/bersihin/bersihin/internal/domain/model"
	"github.com/bersihin/bersihin/internal/domain/repository"
)

// CandidateProvider is the external spatial index queried for nearby
// active workers. It may return an empty list and must not be assumed
// always available.
type CandidateProvider interface {
	FindNearest(ctx context.Context, lat, lng float64, limit int) ([]model.Candidate, error)
}

// Engine selects a worker for a booking location. A failed or empty
// lookup degrades to an unassigned booking; it never blocks creation.
type Engine struct {
	provider CandidateProvider
	cleaners repository.CleanerRepository
	logger   *slog.Logger
}

// NewEngine constructs the dispatch engine.
func NewEngine(provider CandidateProvider, cleaners repository.CleanerRepository, logger *slog.Logger) *Engine {
	return &Engine{provider: provider, cleaners: cleaners, logger: logger}
}

// Dispatch picks the best candidate near the point and resolves its
// bookkeeping identity. Returns nil when no worker can be assigned.
func (e *Engine) Dispatch(ctx context.Context, lat, lng float64, limit int) (*model.Assignment, error) {
	candidates, err := e.provider.FindNearest(ctx, lat, lng, limit)
	if err != nil {
		e.logger.Warn("candidate lookup failed, booking proceeds unassigned",
			slog.Float64("lat", lat), slog.Float64("lng", lng), slog.String("error", err.Error()))
		return nil, nil
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	best := Rank(candidates)[0]

	cleanerID, err := e.cleaners.EnsureBookkeeping(ctx, best.ExternalID, best.Name)
	if err != nil {
		return nil, err
	}

	return &model.Assignment{
		CleanerID:      cleanerID,
		ExternalID:     best.ExternalID,
		DistanceMeters: best.DistanceMeters,
	}, nil
}

// Rank orders candidates by the dispatch fairness policy: fewer active
// orders first, then higher rating, then shorter distance. Strictly
// lexicographic; each level only breaks ties of the previous one.
func Rank(candidates []model.Candidate) []model.Candidate {
	ranked := make([]model.Candidate, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.ActiveOrders != b.ActiveOrders {
			return a.ActiveOrders < b.ActiveOrders
		}
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		return a.DistanceMeters < b.DistanceMeters
	})
	return ranked
}
