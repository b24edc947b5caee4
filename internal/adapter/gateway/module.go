package gateway

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/bersihin/bersihin/internal/config"
)

// Module exposes the gateway client implementation to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// newClient builds the HTTP gateway client. Without a configured base
// URL the client is nil and settlements are verified by the webhook
// signature alone.
func newClient(p clientParams) (Client, error) {
	if p.Config.GatewayBaseURL == "" {
		p.Logger.Warn("payment gateway base URL not configured, settlement cross-checks disabled")
		return nil, nil
	}
	return NewHTTPClient(p.Config.GatewayBaseURL, p.Config.GatewayServerKey, p.Logger)
}
