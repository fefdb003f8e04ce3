package rates

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/boostlane/panel/internal/config"
)

// Module exposes the rate source client to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.RatesAddress, p.Logger)
}
