package ports

import (
	"context"

	"github.com/motorshield/insurance-portal/internal/core/domain"
)

// ItemRepository defines persistence for catalog items.
type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) (*domain.Item, error)
	FindByID(ctx context.Context, id string) (*domain.Item, error)
	// List returns all items, newest first.
	List(ctx context.Context) ([]*domain.Item, error)
	Update(ctx context.Context, item *domain.Item) (*domain.Item, error)
	Delete(ctx context.Context, id string) error
}

// UpsertItemInput carries the admin-editable fields of a catalog item.
type UpsertItemInput struct {
	Name            string
	Description     string
	Price           float64
	DiscountedPrice *float64
	Type            string
	Image           string
}

// CatalogService defines catalog use cases. Reads are public; writes are
// admin-only and gated upstream by the route guard.
type CatalogService interface {
	ListItems(ctx context.Context) ([]*domain.Item, error)
	GetItem(ctx context.Context, id string) (*domain.Item, error)
	CreateItem(ctx context.Context, input UpsertItemInput) (*domain.Item, error)
	UpdateItem(ctx context.Context, id string, input UpsertItemInput) (*domain.Item, error)
	DeleteItem(ctx context.Context, id string) error
}
