package geo

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/bersihin/bersihin/internal/config"
)

// Module wires the Redis client and geo adapters into the fx graph.
var Module = fx.Options(
	fx.Provide(newRedisClient, newProvider, newAreaChecker),
	fx.Invoke(registerLifecycle),
)

func newRedisClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: cfg.RedisAddress})
}

type providerParams struct {
	fx.In

	Client *redis.Client
	Config *config.Config
	Logger *slog.Logger
}

func newProvider(p providerParams) *Provider {
	return NewProvider(p.Client, p.Config.DispatchRadiusKM, p.Logger)
}

func newAreaChecker(cfg *config.Config) *AreaChecker {
	return NewAreaChecker(cfg.ServiceAreaLat, cfg.ServiceAreaLng, cfg.ServiceAreaRadiusKM)
}

func registerLifecycle(lc fx.Lifecycle, client *redis.Client) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
}
