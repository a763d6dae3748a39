package ports

import (
	"context"
	"time"

	"github.com/motorshield/insurance-portal/internal/core/domain"
)

// ClaimRepository defines persistence for claims.
type ClaimRepository interface {
	Create(ctx context.Context, claim *domain.Claim) (*domain.Claim, error)
	FindByID(ctx context.Context, id string) (*domain.Claim, error)
	// List returns claims newest first; userID empty means all (admin).
	List(ctx context.Context, userID string) ([]*domain.Claim, error)
	Update(ctx context.Context, claim *domain.Claim) error
}

// FileClaimInput carries a customer's claim submission.
type FileClaimInput struct {
	UserID          string
	PolicyID        string
	AccidentDate    time.Time
	Description     string
	EstimatedAmount float64
	Uploads         []string
}

// ReviewClaimInput carries an admin's claim decision.
type ReviewClaimInput struct {
	ClaimID        string
	Status         domain.ClaimStatus
	ApprovedAmount *float64
	AdminNotes     string
}

// ClaimService defines claim use cases.
type ClaimService interface {
	// FileClaim validates that the policy belongs to the user and is active,
	// then persists the claim with a generated claim number.
	FileClaim(ctx context.Context, input FileClaimInput) (*domain.Claim, error)
	ListClaims(ctx context.Context, userID string) ([]domain.ClaimWithPolicy, error)
	// ReviewClaim enforces the claim state machine (admin only).
	ReviewClaim(ctx context.Context, input ReviewClaimInput) (*domain.Claim, error)
}
