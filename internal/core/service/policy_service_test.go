package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/motorshield/insurance-portal/internal/core/domain"
	"github.com/motorshield/insurance-portal/internal/core/ports"
)

type stubPolicyTypeRepo struct {
	mu     sync.Mutex
	types  map[string]*domain.PolicyType
	nextID int
}

func newStubPolicyTypeRepo() *stubPolicyTypeRepo {
	return &stubPolicyTypeRepo{types: make(map[string]*domain.PolicyType)}
}

func (r *stubPolicyTypeRepo) Create(_ context.Context, pt *domain.PolicyType) (*domain.PolicyType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	clone := *pt
	clone.ID = "type-" + strconv.Itoa(r.nextID)
	r.types[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubPolicyTypeRepo) FindByID(_ context.Context, id string) (*domain.PolicyType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if pt, ok := r.types[id]; ok {
		clone := *pt
		return &clone, nil
	}
	return nil, domain.ErrPolicyTypeNotFound
}

func (r *stubPolicyTypeRepo) List(_ context.Context, activeOnly bool) ([]*domain.PolicyType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.PolicyType
	for _, pt := range r.types {
		if activeOnly && !pt.Active {
			continue
		}
		clone := *pt
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubPolicyTypeRepo) Update(_ context.Context, pt *domain.PolicyType) (*domain.PolicyType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.types[pt.ID]; !ok {
		return nil, domain.ErrPolicyTypeNotFound
	}
	clone := *pt
	r.types[pt.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubPolicyTypeRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.types[id]; !ok {
		return domain.ErrPolicyTypeNotFound
	}
	delete(r.types, id)
	return nil
}

func TestPolicyService_RequestPolicy_DefaultsFromType(t *testing.T) {
	repo := newStubPolicyRepo()
	types := newStubPolicyTypeRepo()
	svc := NewPolicyService(repo, types, zerolog.Nop())

	pt, _ := types.Create(context.Background(), &domain.PolicyType{Name: "Comprehensive", BasePremium: 450, Active: true})

	policy, err := svc.RequestPolicy(context.Background(), ports.RequestPolicyInput{
		UserID:       "u1",
		PolicyTypeID: pt.ID,
		Vehicle:      domain.Vehicle{Make: "Honda", Model: "Civic", Year: 2021, RegNumber: "KAA 123B"},
	})
	if err != nil {
		t.Fatalf("RequestPolicy returned error: %v", err)
	}
	if policy.Status != domain.PolicyPending {
		t.Fatalf("requested policies start pending, got %s", policy.Status)
	}
	if policy.PolicyType != "Comprehensive" || policy.Premium != 450 {
		t.Fatalf("type defaults not applied: %+v", policy)
	}
	if policy.StartDate.IsZero() || !policy.ExpiryDate.After(policy.StartDate) {
		t.Fatalf("expected a defaulted one-year term: start=%v expiry=%v", policy.StartDate, policy.ExpiryDate)
	}
}

func TestPolicyService_RequestPolicy_UnknownType(t *testing.T) {
	svc := NewPolicyService(newStubPolicyRepo(), newStubPolicyTypeRepo(), zerolog.Nop())

	_, err := svc.RequestPolicy(context.Background(), ports.RequestPolicyInput{UserID: "u1", PolicyTypeID: "missing"})
	if !errors.Is(err, domain.ErrPolicyTypeNotFound) {
		t.Fatalf("expected ErrPolicyTypeNotFound, got %v", err)
	}
}

func TestPolicyService_ListPolicies_FlagsRenewals(t *testing.T) {
	repo := newStubPolicyRepo()
	svc := NewPolicyService(repo, newStubPolicyTypeRepo(), zerolog.Nop())

	now := time.Now().UTC()
	_, _ = repo.Create(context.Background(), &domain.Policy{UserID: "u1", Status: domain.PolicyActive, ExpiryDate: now.Add(10 * 24 * time.Hour)})
	_, _ = repo.Create(context.Background(), &domain.Policy{UserID: "u1", Status: domain.PolicyActive, ExpiryDate: now.Add(200 * 24 * time.Hour)})

	views, err := svc.ListPolicies(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListPolicies returned error: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 policies, got %d", len(views))
	}

	due := 0
	for _, v := range views {
		if v.RenewalDue {
			due++
		}
	}
	if due != 1 {
		t.Fatalf("expected exactly one renewal-due policy, got %d", due)
	}
}

func TestPolicyService_GetPolicy_OwnershipEnforced(t *testing.T) {
	repo := newStubPolicyRepo()
	svc := NewPolicyService(repo, newStubPolicyTypeRepo(), zerolog.Nop())

	policy, _ := repo.Create(context.Background(), &domain.Policy{UserID: "u1", Status: domain.PolicyActive})

	if _, err := svc.GetPolicy(context.Background(), policy.ID, "u1"); err != nil {
		t.Fatalf("owner read failed: %v", err)
	}
	if _, err := svc.GetPolicy(context.Background(), policy.ID, "u2"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.GetPolicy(context.Background(), policy.ID, ""); err != nil {
		t.Fatalf("admin read failed: %v", err)
	}
}

func TestPolicyService_UpdateStatus_EnforcesMachine(t *testing.T) {
	repo := newStubPolicyRepo()
	svc := NewPolicyService(repo, newStubPolicyTypeRepo(), zerolog.Nop())

	policy, _ := repo.Create(context.Background(), &domain.Policy{UserID: "u1", Status: domain.PolicyPending})

	if _, err := svc.UpdateStatus(context.Background(), policy.ID, domain.PolicyExpired); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("pending -> expired should be invalid, got %v", err)
	}

	updated, err := svc.UpdateStatus(context.Background(), policy.ID, domain.PolicyActive)
	if err != nil {
		t.Fatalf("activate failed: %v", err)
	}
	if updated.Status != domain.PolicyActive {
		t.Fatalf("expected active, got %s", updated.Status)
	}

	if _, err := svc.UpdateStatus(context.Background(), policy.ID, domain.PolicyExpired); err != nil {
		t.Fatalf("active -> expired failed: %v", err)
	}
}

func TestPolicyService_AssignPolicy_StartsActive(t *testing.T) {
	repo := newStubPolicyRepo()
	svc := NewPolicyService(repo, newStubPolicyTypeRepo(), zerolog.Nop())

	policy, err := svc.AssignPolicy(context.Background(), ports.AssignPolicyInput{
		UserID:  "u1",
		Vehicle: domain.Vehicle{Make: "Nissan", Model: "Note", Year: 2019},
		Premium: 300,
	})
	if err != nil {
		t.Fatalf("AssignPolicy returned error: %v", err)
	}
	if policy.Status != domain.PolicyActive {
		t.Fatalf("assigned policies start active, got %s", policy.Status)
	}
}

func TestPolicyTypeService_CRUD(t *testing.T) {
	types := newStubPolicyTypeRepo()
	svc := NewPolicyTypeService(types, zerolog.Nop())

	created, err := svc.CreatePolicyType(context.Background(), domain.PolicyType{Name: "Third Party", BasePremium: 120, Active: true})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	created.BasePremium = 150
	created.Active = false
	updated, err := svc.UpdatePolicyType(context.Background(), *created)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.BasePremium != 150 || updated.Active {
		t.Fatalf("update not applied: %+v", updated)
	}

	active, _ := svc.ListPolicyTypes(context.Background(), true)
	if len(active) != 0 {
		t.Fatalf("inactive type leaked into active listing")
	}

	if err := svc.DeletePolicyType(context.Background(), created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.DeletePolicyType(context.Background(), created.ID); !errors.Is(err, domain.ErrPolicyTypeNotFound) {
		t.Fatalf("expected ErrPolicyTypeNotFound, got %v", err)
	}
}
