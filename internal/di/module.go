package di

import (
	"go.uber.org/fx"

	"github.com/bersihin/bersihin/internal/adapter/gateway"
	"github.com/bersihin/bersihin/internal/adapter/geo"
	"github.com/bersihin/bersihin/internal/app"
	"github.com/bersihin/bersihin/internal/config"
	"github.com/bersihin/bersihin/internal/dispatch"
	"github.com/bersihin/bersihin/internal/logger"
	"github.com/bersihin/bersihin/internal/pkg/auth"
	"github.com/bersihin/bersihin/internal/server/http/handlers"
	"github.com/bersihin/bersihin/internal/server/http/middleware"
	"github.com/bersihin/bersihin/internal/server/http/router"
	"github.com/bersihin/bersihin/internal/storage/postgres"
	"github.com/bersihin/bersihin/internal/usecase"
)

// Module assembles the full application graph. Callers append options
// to replace individual pieces, typically in tests.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		geo.Module,
		gateway.Module,
		dispatch.Module,
		usecase.Module,
		fx.Provide(
			func(p *geo.Provider) dispatch.CandidateProvider { return p },
			func(e *dispatch.Engine) usecase.Dispatcher { return e },
			func(a *geo.AreaChecker) usecase.AreaChecker { return a },
			func(s auth.Strategy) middleware.TokenParser { return s },
			func(f *app.BookingFacade) handlers.BookingFacade { return f },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
