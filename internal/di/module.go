package di

import (
	"go.uber.org/fx"

	"github.com/boostlane/panel/internal/adapter/provider"
	"github.com/boostlane/panel/internal/adapter/rates"
	"github.com/boostlane/panel/internal/app"
	"github.com/boostlane/panel/internal/config"
	"github.com/boostlane/panel/internal/logger"
	"github.com/boostlane/panel/internal/pkg/auth"
	"github.com/boostlane/panel/internal/server/http/handlers"
	"github.com/boostlane/panel/internal/server/http/router"
	"github.com/boostlane/panel/internal/storage/postgres"
	"github.com/boostlane/panel/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		rates.Module,
		provider.Module,
		usecase.Module,
		fx.Provide(func(client rates.Client) usecase.RateProvider { return client }),
		fx.Provide(func(client provider.Client) app.ProviderGateway { return client }),
		fx.Provide(func(facade *app.PanelFacade) handlers.PanelFacade { return facade }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
