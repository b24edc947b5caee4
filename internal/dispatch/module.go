package dispatch

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/bersihin/bersihin/internal/domain/repository"
)

// Module provides the dispatch engine to the fx graph.
var Module = fx.Provide(newEngine)

type engineParams struct {
	fx.In

	Provider CandidateProvider
	Cleaners repository.CleanerRepository
	Logger   *slog.Logger
}

func newEngine(p engineParams) *Engine {
	return NewEngine(p.Provider, p.Cleaners, p.Logger)
}
