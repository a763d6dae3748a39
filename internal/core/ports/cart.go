package ports

import (
	"context"

	"github.com/motorshield/insurance-portal/internal/core/domain"
)

// CartRepository defines persistence for per-user carts. Carts are created
// implicitly: reading an absent cart returns domain.ErrCartNotFound and the
// service substitutes an empty one.
type CartRepository interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	Upsert(ctx context.Context, cart *domain.Cart) error
	Delete(ctx context.Context, userID string) error
}

// CartSummary is the cart plus its derived aggregates.
type CartSummary struct {
	Cart       *domain.Cart
	TotalItems int
	TotalPrice float64
}

// CartService defines the cart use cases.
type CartService interface {
	GetCart(ctx context.Context, userID string) (*CartSummary, error)
	AddItem(ctx context.Context, userID, itemID string) (*CartSummary, error)
	UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) (*CartSummary, error)
	RemoveItem(ctx context.Context, userID, itemID string) (*CartSummary, error)
	ClearCart(ctx context.Context, userID string) error
}
