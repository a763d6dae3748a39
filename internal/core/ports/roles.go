package ports

import (
	"context"

	"github.com/motorshield/insurance-portal/internal/core/domain"
)

// RoleRepository defines persistence for the user_roles collection.
type RoleRepository interface {
	// FindByUserID returns the role record for a user, or
	// domain.ErrUserNotFound when no record exists. Absence is expected for
	// most users and is not treated as a failure by callers.
	FindByUserID(ctx context.Context, userID string) (*domain.RoleRecord, error)
	Upsert(ctx context.Context, userID, role string) error
	Delete(ctx context.Context, userID string) error
}

// RoleResolver is the single source of truth for "what can this user do".
// Implementations cache per user id and must discard lookups that complete
// after the user's cache entry was invalidated.
type RoleResolver interface {
	// Resolve returns the tagged resolution for a user id. A missing role
	// record yields {Role: user, Found: false}, never an error.
	Resolve(ctx context.Context, userID string) (domain.RoleResolution, error)
	// Invalidate drops any cached role for the user and supersedes lookups
	// still in flight. Called on sign-out and on admin role writes.
	Invalidate(userID string)
}
