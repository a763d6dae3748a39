package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/motorshield/insurance-portal/internal/core/domain"
	"github.com/motorshield/insurance-portal/internal/core/ports"
)

type stubOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*domain.Order
	nextID int
	err    error
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[string]*domain.Order)}
}

func cloneOrder(o *domain.Order) *domain.Order {
	clone := *o
	clone.Lines = append([]domain.OrderLine(nil), o.Lines...)
	return &clone
}

func (r *stubOrderRepo) Create(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.nextID++
	order.ID = "order-" + strconv.Itoa(r.nextID)
	r.orders[order.ID] = cloneOrder(order)
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o, ok := r.orders[id]; ok {
		return cloneOrder(o), nil
	}
	return nil, domain.ErrOrderNotFound
}

func (r *stubOrderRepo) FindByIdempotencyKey(_ context.Context, key string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.IdempotencyKey == key {
			return cloneOrder(o), nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

func (r *stubOrderRepo) List(_ context.Context, customerID string) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Order
	for _, o := range r.orders {
		if customerID == "" || o.CustomerID == customerID {
			out = append(out, cloneOrder(o))
		}
	}
	return out, nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.Status = status
	return nil
}

type stubPolicyRepo struct {
	mu       sync.Mutex
	policies map[string]*domain.Policy
	nextID   int
	err      error
}

func newStubPolicyRepo() *stubPolicyRepo {
	return &stubPolicyRepo{policies: make(map[string]*domain.Policy)}
}

func (r *stubPolicyRepo) Create(_ context.Context, policy *domain.Policy) (*domain.Policy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	r.nextID++
	clone := *policy
	clone.ID = "policy-" + strconv.Itoa(r.nextID)
	r.policies[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubPolicyRepo) FindByID(_ context.Context, id string) (*domain.Policy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.policies[id]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, domain.ErrPolicyNotFound
}

func (r *stubPolicyRepo) List(_ context.Context, userID string) ([]*domain.Policy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Policy
	for _, p := range r.policies {
		if userID == "" || p.UserID == userID {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubPolicyRepo) Update(_ context.Context, policy *domain.Policy) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.policies[policy.ID]; !ok {
		return domain.ErrPolicyNotFound
	}
	clone := *policy
	r.policies[policy.ID] = &clone
	return nil
}

type stubGuard struct {
	seen map[string]bool
	err  error
}

func newStubGuard() *stubGuard { return &stubGuard{seen: make(map[string]bool)} }

func (g *stubGuard) Seen(_ context.Context, key string) (bool, error) {
	if g.err != nil {
		return false, g.err
	}
	return g.seen[key], nil
}

func (g *stubGuard) Mark(_ context.Context, key string) error {
	if g.err != nil {
		return g.err
	}
	g.seen[key] = true
	return nil
}

type stubQueue struct {
	enqueued []string
}

func (q *stubQueue) Enqueue(orderID string) {
	q.enqueued = append(q.enqueued, orderID)
}

// orderTestCart wires a real CartService over in-memory stubs so checkout
// exercises the same clear-on-success path as production.
func orderTestCart(t *testing.T) (*CartService, *stubCartRepo) {
	t.Helper()
	repo := newStubCartRepo()
	return NewCartService(repo, testCatalog(), newStubCartCache(), zerolog.Nop()), repo
}

func newTestOrderService(t *testing.T) (*OrderService, *stubOrderRepo, *CartService, *stubPolicyRepo, *stubGuard) {
	t.Helper()
	orders := newStubOrderRepo()
	cart, _ := orderTestCart(t)
	policies := newStubPolicyRepo()
	guard := newStubGuard()
	svc := NewOrderService(orders, cart, policies, guard, zerolog.Nop())
	return svc, orders, cart, policies, guard
}

func TestOrderService_Checkout_EmptyCart(t *testing.T) {
	svc, _, _, _, _ := newTestOrderService(t)

	_, err := svc.Checkout(context.Background(), ports.CheckoutInput{UserID: "u1"})
	if !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestOrderService_Checkout_CreatesOrderAndClearsCart(t *testing.T) {
	svc, orders, cart, _, _ := newTestOrderService(t)

	_, _ = cart.AddItem(context.Background(), "u1", "plan-a")
	_, _ = cart.AddItem(context.Background(), "u1", "plan-a")
	_, _ = cart.AddItem(context.Background(), "u1", "plan-b")

	res, err := svc.Checkout(context.Background(), ports.CheckoutInput{UserID: "u1", DeliveryAddress: "12 Main St"})
	if err != nil {
		t.Fatalf("Checkout returned error: %v", err)
	}
	if !strings.HasPrefix(res.OrderNumber, "ORD-") {
		t.Fatalf("unexpected order number %q", res.OrderNumber)
	}
	// 80*2 + 50
	if res.Total != 210 {
		t.Fatalf("expected total 210, got %v", res.Total)
	}
	if res.Status != string(domain.OrderPending) {
		t.Fatalf("expected pending order, got %s", res.Status)
	}
	if res.AlreadyExisted {
		t.Fatalf("fresh checkout flagged as replay")
	}

	stored, err := orders.FindByID(context.Background(), res.OrderID)
	if err != nil {
		t.Fatalf("order not persisted: %v", err)
	}
	if len(stored.Lines) != 2 {
		t.Fatalf("expected 2 order lines, got %d", len(stored.Lines))
	}
	for _, line := range stored.Lines {
		if line.ItemID == "plan-a" && line.RatePremium != 160 {
			t.Fatalf("expected rate premium 160 for plan-a, got %v", line.RatePremium)
		}
	}

	summary, err := cart.GetCart(context.Background(), "u1")
	if err != nil {
		t.Fatalf("GetCart returned error: %v", err)
	}
	if len(summary.Cart.Items) != 0 {
		t.Fatalf("cart not cleared after checkout: %+v", summary.Cart.Items)
	}
}

func TestOrderService_Checkout_FailureLeavesCartIntact(t *testing.T) {
	orders := newStubOrderRepo()
	orders.err = errors.New("store down")
	cart, _ := orderTestCart(t)
	svc := NewOrderService(orders, cart, newStubPolicyRepo(), newStubGuard(), zerolog.Nop())

	_, _ = cart.AddItem(context.Background(), "u1", "plan-a")

	if _, err := svc.Checkout(context.Background(), ports.CheckoutInput{UserID: "u1"}); err == nil {
		t.Fatalf("expected checkout failure")
	}

	summary, err := cart.GetCart(context.Background(), "u1")
	if err != nil {
		t.Fatalf("GetCart returned error: %v", err)
	}
	if len(summary.Cart.Items) != 1 {
		t.Fatalf("cart should survive a failed checkout, got %+v", summary.Cart.Items)
	}
}

func TestOrderService_Checkout_IdempotentReplay(t *testing.T) {
	svc, _, cart, _, _ := newTestOrderService(t)

	_, _ = cart.AddItem(context.Background(), "u1", "plan-b")

	first, err := svc.Checkout(context.Background(), ports.CheckoutInput{UserID: "u1", IdempotencyKey: "key-1"})
	if err != nil {
		t.Fatalf("first checkout failed: %v", err)
	}

	// cart is now empty; a replay must return the same order, not ErrEmptyCart
	second, err := svc.Checkout(context.Background(), ports.CheckoutInput{UserID: "u1", IdempotencyKey: "key-1"})
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	if !second.AlreadyExisted {
		t.Fatalf("replay not flagged")
	}
	if second.OrderID != first.OrderID || second.OrderNumber != first.OrderNumber {
		t.Fatalf("replay returned a different order: %+v vs %+v", first, second)
	}
}

// When Redis is down the guard errors; the store lookup is the fallback so a
// genuine replay is still caught.
func TestOrderService_Checkout_GuardFailureFallsBackToStore(t *testing.T) {
	orders := newStubOrderRepo()
	cart, _ := orderTestCart(t)
	guard := newStubGuard()
	svc := NewOrderService(orders, cart, newStubPolicyRepo(), guard, zerolog.Nop())

	_, _ = cart.AddItem(context.Background(), "u1", "plan-b")
	first, err := svc.Checkout(context.Background(), ports.CheckoutInput{UserID: "u1", IdempotencyKey: "key-2"})
	if err != nil {
		t.Fatalf("first checkout failed: %v", err)
	}

	guard.err = errors.New("redis down")
	second, err := svc.Checkout(context.Background(), ports.CheckoutInput{UserID: "u1", IdempotencyKey: "key-2"})
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	if !second.AlreadyExisted || second.OrderID != first.OrderID {
		t.Fatalf("store fallback missed the replay: %+v", second)
	}
}

func TestOrderService_GetOrder_OwnershipEnforced(t *testing.T) {
	svc, _, cart, _, _ := newTestOrderService(t)

	_, _ = cart.AddItem(context.Background(), "u1", "plan-a")
	res, err := svc.Checkout(context.Background(), ports.CheckoutInput{UserID: "u1"})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	if _, err := svc.GetOrder(context.Background(), res.OrderID, "u1"); err != nil {
		t.Fatalf("owner should read own order: %v", err)
	}
	if _, err := svc.GetOrder(context.Background(), res.OrderID, "u2"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for other user, got %v", err)
	}
	// admin path: empty customer id skips the ownership check
	if _, err := svc.GetOrder(context.Background(), res.OrderID, ""); err != nil {
		t.Fatalf("admin read failed: %v", err)
	}
}

func TestOrderService_UpdateStatus_EnforcesMachine(t *testing.T) {
	svc, _, cart, _, _ := newTestOrderService(t)
	queue := &stubQueue{}
	svc.SetIssuanceQueue(queue)

	_, _ = cart.AddItem(context.Background(), "u1", "plan-a")
	res, _ := svc.Checkout(context.Background(), ports.CheckoutInput{UserID: "u1"})

	if _, err := svc.UpdateStatus(context.Background(), res.OrderID, domain.OrderCompleted); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("pending -> completed should be invalid, got %v", err)
	}

	order, err := svc.UpdateStatus(context.Background(), res.OrderID, domain.OrderApproved)
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if order.Status != domain.OrderApproved {
		t.Fatalf("expected approved, got %s", order.Status)
	}
	if len(queue.enqueued) != 1 || queue.enqueued[0] != res.OrderID {
		t.Fatalf("approved order not enqueued for issuance: %+v", queue.enqueued)
	}

	if _, err := svc.UpdateStatus(context.Background(), res.OrderID, domain.OrderRejected); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("approved -> rejected should be invalid, got %v", err)
	}
}

func TestOrderService_Issue_CreatesPoliciesAndCompletes(t *testing.T) {
	svc, orders, cart, policies, _ := newTestOrderService(t)

	_, _ = cart.AddItem(context.Background(), "u1", "plan-a")
	_, _ = cart.AddItem(context.Background(), "u1", "plan-b")
	res, _ := svc.Checkout(context.Background(), ports.CheckoutInput{UserID: "u1"})
	if _, err := svc.UpdateStatus(context.Background(), res.OrderID, domain.OrderApproved); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	issued, err := svc.Issue(context.Background(), res.OrderID)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if issued != 2 {
		t.Fatalf("expected 2 policies, got %d", issued)
	}

	list, _ := policies.List(context.Background(), "u1")
	if len(list) != 2 {
		t.Fatalf("expected 2 persisted policies, got %d", len(list))
	}
	for _, p := range list {
		if p.Status != domain.PolicyPending {
			t.Fatalf("issued policies start pending, got %s", p.Status)
		}
		if !strings.HasPrefix(p.PolicyNumber, "POL-") {
			t.Fatalf("unexpected policy number %q", p.PolicyNumber)
		}
		if p.OrderID != res.OrderID {
			t.Fatalf("policy not linked to order: %+v", p)
		}
	}

	order, _ := orders.FindByID(context.Background(), res.OrderID)
	if order.Status != domain.OrderCompleted {
		t.Fatalf("expected completed order, got %s", order.Status)
	}
}

func TestOrderService_Issue_RequiresApprovedOrder(t *testing.T) {
	svc, _, cart, _, _ := newTestOrderService(t)

	_, _ = cart.AddItem(context.Background(), "u1", "plan-a")
	res, _ := svc.Checkout(context.Background(), ports.CheckoutInput{UserID: "u1"})

	if _, err := svc.Issue(context.Background(), res.OrderID); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for pending order, got %v", err)
	}
}
