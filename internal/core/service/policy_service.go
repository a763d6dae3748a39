package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/motorshield/insurance-portal/internal/core/domain"
	"github.com/motorshield/insurance-portal/internal/core/ports"
)

// PolicyService implements policy use cases for customers and admins.
type PolicyService struct {
	repo  ports.PolicyRepository
	types ports.PolicyTypeRepository
	log   zerolog.Logger
}

func NewPolicyService(repo ports.PolicyRepository, types ports.PolicyTypeRepository, log zerolog.Logger) *PolicyService {
	return &PolicyService{repo: repo, types: types, log: log}
}

// RequestPolicy files a customer policy request. The policy number is
// generated server-side and the policy starts in pending until an admin
// activates it.
func (s *PolicyService) RequestPolicy(ctx context.Context, input ports.RequestPolicyInput) (*domain.Policy, error) {
	policy, err := s.buildPolicy(ctx, input.UserID, input.PolicyTypeID, input.Vehicle, input.Owner, input.Premium, input.StartDate, input.ExpiryDate)
	if err != nil {
		return nil, err
	}
	policy.Status = domain.PolicyPending

	created, err := s.repo.Create(ctx, policy)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", input.UserID).Msg("failed to create policy request")
		return nil, err
	}

	s.log.Info().Str("policy_number", created.PolicyNumber).Str("user_id", input.UserID).Msg("policy requested")
	return created, nil
}

// ListPolicies returns policies newest first with the renewal-due flag
// derived at read time. An empty userID lists all policies (admin).
func (s *PolicyService) ListPolicies(ctx context.Context, userID string) ([]ports.PolicyView, error) {
	policies, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	views := make([]ports.PolicyView, 0, len(policies))
	for _, p := range policies {
		views = append(views, ports.PolicyView{Policy: p, RenewalDue: p.RenewalDue(now)})
	}
	return views, nil
}

// GetPolicy returns one policy. A non-empty userID scopes the lookup to that
// user's own policies.
func (s *PolicyService) GetPolicy(ctx context.Context, id, userID string) (*domain.Policy, error) {
	policy, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if userID != "" && policy.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return policy, nil
}

// UpdateStatus enforces the policy state machine.
func (s *PolicyService) UpdateStatus(ctx context.Context, id string, status domain.PolicyStatus) (*domain.Policy, error) {
	policy, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !policy.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, policy.Status, status)
	}

	policy.Status = status
	policy.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, policy); err != nil {
		return nil, err
	}

	s.log.Info().Str("policy_number", policy.PolicyNumber).Str("status", string(status)).Msg("policy status updated")
	return policy, nil
}

// AssignPolicy creates an active policy directly for a user, bypassing the
// request flow. Admin only.
func (s *PolicyService) AssignPolicy(ctx context.Context, input ports.AssignPolicyInput) (*domain.Policy, error) {
	policy, err := s.buildPolicy(ctx, input.UserID, input.PolicyTypeID, input.Vehicle, input.Owner, input.Premium, input.StartDate, input.ExpiryDate)
	if err != nil {
		return nil, err
	}
	policy.Status = domain.PolicyActive

	created, err := s.repo.Create(ctx, policy)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("policy_number", created.PolicyNumber).Str("user_id", input.UserID).Msg("policy assigned")
	return created, nil
}

func (s *PolicyService) buildPolicy(ctx context.Context, userID, policyTypeID string, vehicle domain.Vehicle, owner domain.Owner, premium float64, start, expiry time.Time) (*domain.Policy, error) {
	now := time.Now().UTC()
	policy := &domain.Policy{
		PolicyNumber: generateNumber("POL"),
		UserID:       userID,
		Vehicle:      vehicle,
		Owner:        owner,
		Premium:      premium,
		StartDate:    start,
		ExpiryDate:   expiry,
		Renewable:    true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if policy.StartDate.IsZero() {
		policy.StartDate = now
	}
	if policy.ExpiryDate.IsZero() {
		policy.ExpiryDate = policy.StartDate.AddDate(1, 0, 0)
	}

	if policyTypeID != "" {
		pt, err := s.types.FindByID(ctx, policyTypeID)
		if err != nil {
			return nil, err
		}
		policy.PolicyTypeID = pt.ID
		policy.PolicyType = pt.Name
		if policy.Premium == 0 {
			policy.Premium = pt.BasePremium
		}
	}
	return policy, nil
}

// PolicyTypeService implements admin management of policy types.
type PolicyTypeService struct {
	repo ports.PolicyTypeRepository
	log  zerolog.Logger
}

func NewPolicyTypeService(repo ports.PolicyTypeRepository, log zerolog.Logger) *PolicyTypeService {
	return &PolicyTypeService{repo: repo, log: log}
}

func (s *PolicyTypeService) ListPolicyTypes(ctx context.Context, activeOnly bool) ([]*domain.PolicyType, error) {
	return s.repo.List(ctx, activeOnly)
}

func (s *PolicyTypeService) CreatePolicyType(ctx context.Context, pt domain.PolicyType) (*domain.PolicyType, error) {
	now := time.Now().UTC()
	pt.CreatedAt = now
	pt.UpdatedAt = now
	created, err := s.repo.Create(ctx, &pt)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("policy_type_id", created.ID).Str("name", created.Name).Msg("policy type created")
	return created, nil
}

func (s *PolicyTypeService) UpdatePolicyType(ctx context.Context, pt domain.PolicyType) (*domain.PolicyType, error) {
	existing, err := s.repo.FindByID(ctx, pt.ID)
	if err != nil {
		return nil, err
	}

	existing.Name = pt.Name
	existing.Description = pt.Description
	existing.BasePremium = pt.BasePremium
	existing.Active = pt.Active
	existing.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, existing)
}

func (s *PolicyTypeService) DeletePolicyType(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("policy_type_id", id).Msg("policy type deleted")
	return nil
}
