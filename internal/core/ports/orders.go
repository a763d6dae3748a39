package ports

import (
	"context"
	"time"

	"github.com/motorshield/insurance-portal/internal/core/domain"
)

// OrderRepository defines persistence for checkout orders.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error)
	// List returns orders newest first; customerID empty means all (admin).
	List(ctx context.Context, customerID string) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
}

// CheckoutInput carries everything the checkout use case needs beyond the
// cart itself.
type CheckoutInput struct {
	UserID          string
	DeliveryAddress string
	PhoneNumber     string
	ProofOfPayment  string
	IdempotencyKey  string
}

// CheckoutResult is returned after a successful (or replayed) checkout.
type CheckoutResult struct {
	OrderNumber string
	OrderID     string
	Total       float64
	Status      string
	CreatedAt   time.Time
	// AlreadyExisted is true when the Idempotency-Key matched a prior order.
	AlreadyExisted bool
}

// OrderService defines checkout and order-management use cases.
type OrderService interface {
	Checkout(ctx context.Context, input CheckoutInput) (*CheckoutResult, error)
	ListOrders(ctx context.Context, customerID string) ([]*domain.Order, error)
	GetOrder(ctx context.Context, id, customerID string) (*domain.Order, error)
	// UpdateStatus enforces the order state machine. Approval hands the
	// order to the policy-issuance dispatcher.
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
}

// IssuanceService consumes approved orders and creates pending policies.
// Issue returns the number of policies created.
type IssuanceService interface {
	Issue(ctx context.Context, orderID string) (int, error)
}
