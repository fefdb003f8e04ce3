package usecase

import (
	"context"

	"github.com/boostlane/panel/internal/domain/model"
	"github.com/boostlane/panel/internal/domain/repository"
)

// CatalogUseCase exposes the service catalog for browsing and resolution.
type CatalogUseCase struct {
	catalog repository.CatalogRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(catalog repository.CatalogRepository) *CatalogUseCase {
	return &CatalogUseCase{catalog: catalog}
}

// List returns all orderable services.
func (u *CatalogUseCase) List(ctx context.Context) ([]model.ServiceDescriptor, error) {
	return u.catalog.List(ctx)
}

// ResolveMany maps service ids to descriptors; unknown ids are absent.
func (u *CatalogUseCase) ResolveMany(ctx context.Context, ids []int64) (map[int64]model.ServiceDescriptor, error) {
	return u.catalog.ResolveMany(ctx, ids)
}
