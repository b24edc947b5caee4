package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	gatewayAdapter "github.com/bersihin/bersihin/internal/adapter/gateway"
	"github.com/bersihin/bersihin/internal/config"
	"github.com/bersihin/bersihin/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newOrderUseCase,
	newPaymentUseCase,
	newNotificationUseCase,
)

type orderParams struct {
	fx.In

	Repos      repository.Factory
	Dispatcher Dispatcher
	Area       AreaChecker
	Config     *config.Config
	Logger     *slog.Logger
}

func newOrderUseCase(p orderParams) *OrderUseCase {
	return NewOrderUseCase(p.Repos, p.Dispatcher, p.Area, OrderUseCaseOptions{
		DispatchLimit:   p.Config.DispatchLimit,
		CompletionGrace: p.Config.CompletionGrace,
	}, p.Logger)
}

type paymentParams struct {
	fx.In

	Repos   repository.Factory
	Gateway gatewayAdapter.Client
	Config  *config.Config
	Logger  *slog.Logger
}

func newPaymentUseCase(p paymentParams) *PaymentUseCase {
	return NewPaymentUseCase(p.Repos, p.Gateway, p.Config.GatewayServerKey, p.Logger)
}

func newNotificationUseCase(repos repository.Factory) *NotificationUseCase {
	return NewNotificationUseCase(repos)
}
