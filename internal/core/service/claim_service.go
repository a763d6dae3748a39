package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/motorshield/insurance-portal/internal/core/domain"
	"github.com/motorshield/insurance-portal/internal/core/ports"
)

// ClaimService implements claim filing and admin review.
type ClaimService struct {
	claims   ports.ClaimRepository
	policies ports.PolicyRepository
	log      zerolog.Logger
}

func NewClaimService(claims ports.ClaimRepository, policies ports.PolicyRepository, log zerolog.Logger) *ClaimService {
	return &ClaimService{claims: claims, policies: policies, log: log}
}

// FileClaim persists a claim against one of the user's own active policies.
func (s *ClaimService) FileClaim(ctx context.Context, input ports.FileClaimInput) (*domain.Claim, error) {
	policy, err := s.policies.FindByID(ctx, input.PolicyID)
	if err != nil {
		return nil, fmt.Errorf("file claim: %w", err)
	}
	if policy.UserID != input.UserID {
		return nil, domain.ErrForbidden
	}
	if policy.Status != domain.PolicyActive {
		return nil, fmt.Errorf("file claim: %w (policy is %s)", domain.ErrInvalidTransition, policy.Status)
	}

	now := time.Now().UTC()
	claim := &domain.Claim{
		ClaimNumber:     generateNumber("CLM"),
		PolicyID:        input.PolicyID,
		UserID:          input.UserID,
		AccidentDate:    input.AccidentDate,
		Description:     input.Description,
		EstimatedAmount: input.EstimatedAmount,
		Uploads:         input.Uploads,
		Status:          domain.ClaimSubmitted,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := s.claims.Create(ctx, claim)
	if err != nil {
		s.log.Error().Err(err).Str("policy_id", input.PolicyID).Msg("failed to create claim")
		return nil, err
	}

	s.log.Info().Str("claim_number", created.ClaimNumber).Str("policy_number", policy.PolicyNumber).Msg("claim filed")
	return created, nil
}

// ListClaims returns claims newest first, each joined with a summary of its
// policy. An empty userID lists all claims (admin).
func (s *ClaimService) ListClaims(ctx context.Context, userID string) ([]domain.ClaimWithPolicy, error) {
	claims, err := s.claims.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.ClaimWithPolicy, 0, len(claims))
	for _, c := range claims {
		entry := domain.ClaimWithPolicy{Claim: *c}
		if policy, err := s.policies.FindByID(ctx, c.PolicyID); err == nil {
			entry.Policy = domain.PolicySummary{
				PolicyNumber: policy.PolicyNumber,
				VehicleMake:  policy.Vehicle.Make,
				VehicleModel: policy.Vehicle.Model,
				VehicleYear:  policy.Vehicle.Year,
			}
		} else {
			s.log.Warn().Err(err).Str("claim_number", c.ClaimNumber).Msg("claim references missing policy")
		}
		out = append(out, entry)
	}
	return out, nil
}

// ReviewClaim applies an admin decision, enforcing the claim state machine.
func (s *ClaimService) ReviewClaim(ctx context.Context, input ports.ReviewClaimInput) (*domain.Claim, error) {
	claim, err := s.claims.FindByID(ctx, input.ClaimID)
	if err != nil {
		return nil, err
	}

	if !claim.Status.CanTransitionTo(input.Status) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, claim.Status, input.Status)
	}

	claim.Status = input.Status
	claim.ApprovedAmount = input.ApprovedAmount
	claim.AdminNotes = input.AdminNotes
	claim.UpdatedAt = time.Now().UTC()

	if err := s.claims.Update(ctx, claim); err != nil {
		return nil, err
	}

	s.log.Info().Str("claim_number", claim.ClaimNumber).Str("status", string(input.Status)).Msg("claim reviewed")
	return claim, nil
}
