package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/motorshield/insurance-portal/internal/core/domain"
	"github.com/motorshield/insurance-portal/internal/core/ports"
)

// IdempotencyGuard abstracts the fast-path replay check (Redis).
type IdempotencyGuard interface {
	Seen(ctx context.Context, key string) (bool, error)
	Mark(ctx context.Context, key string) error
}

// IssuanceQueue hands approved orders to the policy-issuance workers.
type IssuanceQueue interface {
	Enqueue(orderID string)
}

// OrderService implements checkout and order management. Checkout is the only
// operation that empties a cart, and only after the order is persisted.
type OrderService struct {
	orders   ports.OrderRepository
	cart     ports.CartService
	policies ports.PolicyRepository
	guard    IdempotencyGuard
	queue    IssuanceQueue
	log      zerolog.Logger
}

func NewOrderService(
	orders ports.OrderRepository,
	cart ports.CartService,
	policies ports.PolicyRepository,
	guard IdempotencyGuard,
	log zerolog.Logger,
) *OrderService {
	return &OrderService{
		orders:   orders,
		cart:     cart,
		policies: policies,
		guard:    guard,
		log:      log,
	}
}

// SetIssuanceQueue attaches the worker queue. Separate from the constructor
// because the dispatcher needs the service and the service needs the
// dispatcher.
func (s *OrderService) SetIssuanceQueue(q IssuanceQueue) {
	s.queue = q
}

// Checkout turns the user's cart into a pending order. If an idempotency key
// is provided and already seen, the previously created order is returned
// without side effects. The cart is cleared only once the order is persisted;
// any failure leaves it intact for retry.
func (s *OrderService) Checkout(ctx context.Context, input ports.CheckoutInput) (*ports.CheckoutResult, error) {
	if input.IdempotencyKey != "" {
		seen, err := s.guard.Seen(ctx, input.IdempotencyKey)
		if err != nil {
			s.log.Warn().Err(err).Msg("idempotency check failed, falling back to store lookup")
			seen = true
		}
		if seen {
			existing, err := s.orders.FindByIdempotencyKey(ctx, input.IdempotencyKey)
			if err == nil && existing != nil {
				s.log.Info().Str("idempotency_key", input.IdempotencyKey).Str("order_number", existing.OrderNumber).Msg("idempotent replay")
				return &ports.CheckoutResult{
					OrderNumber:    existing.OrderNumber,
					OrderID:        existing.ID,
					Total:          existing.Total,
					Status:         string(existing.Status),
					CreatedAt:      existing.CreatedAt,
					AlreadyExisted: true,
				}, nil
			}
		}
	}

	summary, err := s.cart.GetCart(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("checkout: load cart: %w", err)
	}
	if len(summary.Cart.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	now := time.Now().UTC()
	order := &domain.Order{
		OrderNumber:     generateNumber("ORD"),
		CustomerID:      input.UserID,
		Total:           summary.TotalPrice,
		DeliveryAddress: input.DeliveryAddress,
		PhoneNumber:     input.PhoneNumber,
		ProofOfPayment:  input.ProofOfPayment,
		Status:          domain.OrderPending,
		IdempotencyKey:  input.IdempotencyKey,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for _, entry := range summary.Cart.Items {
		order.Lines = append(order.Lines, domain.OrderLine{
			ID:          uuid.NewString(),
			ItemID:      entry.ItemID,
			ItemName:    entry.Name,
			Quantity:    entry.Quantity,
			RatePremium: entry.EffectivePrice() * float64(entry.Quantity),
		})
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.log.Error().Err(err).Str("user_id", input.UserID).Msg("failed to create order")
		return nil, err
	}

	if input.IdempotencyKey != "" {
		if err := s.guard.Mark(ctx, input.IdempotencyKey); err != nil {
			s.log.Warn().Err(err).Msg("failed to mark idempotency key")
		}
	}

	if err := s.cart.ClearCart(ctx, input.UserID); err != nil {
		// The order exists; an uncleared cart is an annoyance, not a failure.
		s.log.Warn().Err(err).Str("user_id", input.UserID).Msg("failed to clear cart after checkout")
	}

	s.log.Info().Str("order_number", order.OrderNumber).Str("user_id", input.UserID).Float64("total", order.Total).Msg("order created")

	return &ports.CheckoutResult{
		OrderNumber: order.OrderNumber,
		OrderID:     order.ID,
		Total:       order.Total,
		Status:      string(order.Status),
		CreatedAt:   order.CreatedAt,
	}, nil
}

func (s *OrderService) ListOrders(ctx context.Context, customerID string) ([]*domain.Order, error) {
	return s.orders.List(ctx, customerID)
}

// GetOrder returns one order. A non-empty customerID scopes the lookup to
// that customer's own orders.
func (s *OrderService) GetOrder(ctx context.Context, id, customerID string) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customerID != "" && order.CustomerID != customerID {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

// UpdateStatus enforces the order state machine. Approval hands the order to
// the issuance dispatcher.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, order.Status, status)
	}

	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	order.Status = status
	order.UpdatedAt = time.Now().UTC()

	if status == domain.OrderApproved && s.queue != nil {
		s.queue.Enqueue(order.ID)
	}

	s.log.Info().Str("order_number", order.OrderNumber).Str("status", string(status)).Msg("order status updated")
	return order, nil
}

// Issue creates one pending policy per order line of an approved order, then
// marks the order completed. Runs on the dispatcher workers.
func (s *OrderService) Issue(ctx context.Context, orderID string) (int, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return 0, fmt.Errorf("issue policies: %w", err)
	}
	if order.Status != domain.OrderApproved {
		return 0, fmt.Errorf("issue policies: %w (order %s is %s)", domain.ErrInvalidTransition, order.OrderNumber, order.Status)
	}

	issued := 0
	now := time.Now().UTC()
	for _, line := range order.Lines {
		policy := &domain.Policy{
			PolicyNumber: generateNumber("POL"),
			UserID:       order.CustomerID,
			OrderID:      order.ID,
			PolicyType:   line.ItemName,
			Premium:      line.RatePremium,
			StartDate:    now,
			ExpiryDate:   now.AddDate(1, 0, 0),
			Renewable:    true,
			Status:       domain.PolicyPending,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if _, err := s.policies.Create(ctx, policy); err != nil {
			return issued, fmt.Errorf("issue policies: line %s: %w", line.ItemID, err)
		}
		issued++
		s.log.Info().Str("policy_number", policy.PolicyNumber).Str("order_number", order.OrderNumber).Msg("policy issued")
	}

	if err := s.orders.UpdateStatus(ctx, orderID, domain.OrderCompleted); err != nil {
		return issued, fmt.Errorf("issue policies: complete order: %w", err)
	}
	return issued, nil
}
