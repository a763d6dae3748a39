package ports

import (
	"context"
	"time"

	"github.com/motorshield/insurance-portal/internal/core/domain"
)

// PolicyRepository defines persistence for policies.
type PolicyRepository interface {
	Create(ctx context.Context, policy *domain.Policy) (*domain.Policy, error)
	FindByID(ctx context.Context, id string) (*domain.Policy, error)
	// List returns policies newest first; userID empty means all (admin).
	List(ctx context.Context, userID string) ([]*domain.Policy, error)
	Update(ctx context.Context, policy *domain.Policy) error
}

// PolicyTypeRepository defines persistence for policy type definitions.
type PolicyTypeRepository interface {
	Create(ctx context.Context, pt *domain.PolicyType) (*domain.PolicyType, error)
	FindByID(ctx context.Context, id string) (*domain.PolicyType, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.PolicyType, error)
	Update(ctx context.Context, pt *domain.PolicyType) (*domain.PolicyType, error)
	Delete(ctx context.Context, id string) error
}

// RequestPolicyInput carries a customer's policy request.
type RequestPolicyInput struct {
	UserID       string
	PolicyTypeID string
	Vehicle      domain.Vehicle
	Owner        domain.Owner
	Premium      float64
	StartDate    time.Time
	ExpiryDate   time.Time
}

// PolicyView is a policy decorated with derived flags for listings.
type PolicyView struct {
	*domain.Policy
	RenewalDue bool `json:"renewal_due"`
}

// AssignPolicyInput carries an admin-side policy assignment.
type AssignPolicyInput struct {
	UserID       string
	PolicyTypeID string
	Vehicle      domain.Vehicle
	Owner        domain.Owner
	Premium      float64
	StartDate    time.Time
	ExpiryDate   time.Time
}

// PolicyService defines policy use cases for both customers and admins.
type PolicyService interface {
	RequestPolicy(ctx context.Context, input RequestPolicyInput) (*domain.Policy, error)
	ListPolicies(ctx context.Context, userID string) ([]PolicyView, error)
	GetPolicy(ctx context.Context, id, userID string) (*domain.Policy, error)
	// UpdateStatus enforces the policy state machine (admin only).
	UpdateStatus(ctx context.Context, id string, status domain.PolicyStatus) (*domain.Policy, error)
	// AssignPolicy creates an active policy directly for a user (admin only).
	AssignPolicy(ctx context.Context, input AssignPolicyInput) (*domain.Policy, error)
}

// PolicyTypeService defines admin management of policy types.
type PolicyTypeService interface {
	ListPolicyTypes(ctx context.Context, activeOnly bool) ([]*domain.PolicyType, error)
	CreatePolicyType(ctx context.Context, pt domain.PolicyType) (*domain.PolicyType, error)
	UpdatePolicyType(ctx context.Context, pt domain.PolicyType) (*domain.PolicyType, error)
	DeletePolicyType(ctx context.Context, id string) error
}
