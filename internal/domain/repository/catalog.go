package repository

import (
	"context"

	"github.com/boostlane/panel/internal/domain/model"
)

// CatalogRepository provides read access to the service catalog.
type CatalogRepository interface {
	List(ctx context.Context) ([]model.ServiceDescriptor, error)
	ResolveMany(ctx context.Context, ids []int64) (map[int64]model.ServiceDescriptor, error)
}
