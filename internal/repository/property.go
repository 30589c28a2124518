package repository

import (
	"context"

	"homestead/internal/domain"
)

// PropertyFilter narrows a listing query. Zero values mean "no constraint";
// an empty filter matches every listing.
type PropertyFilter struct {
	OwnerID    int64
	PropertyID int64
	Slug       string
}

// PropertyRepository defines persistence operations for Property listings.
type PropertyRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, property *domain.Property) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	GetByName(ctx context.Context, name string) (*domain.Property, error)
	List(ctx context.Context, filter PropertyFilter) ([]domain.Property, error)
	Update(ctx context.Context, property *domain.Property) error
	Delete(ctx context.Context, id int64) error
}
