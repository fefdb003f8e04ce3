package usecase

import (
	"go.uber.org/fx"

	"github.com/boostlane/panel/internal/config"
	"github.com/boostlane/panel/internal/domain/repository"
	pkgAuth "github.com/boostlane/panel/internal/pkg/auth"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newAuthUseCase,
	NewCatalogUseCase,
	NewOrderUseCase,
	NewWalletUseCase,
	NewBulkOrderUseCase,
)

type authParams struct {
	fx.In

	Users    repository.UserRepository
	Hasher   pkgAuth.PasswordHasher
	Strategy pkgAuth.Strategy
	Rates    RateProvider
	Config   *config.Config
}

func newAuthUseCase(p authParams) *AuthUseCase {
	return NewAuthUseCase(p.Users, p.Hasher, p.Strategy, p.Rates, p.Config.DefaultCurrency)
}
