package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/motorshield/insurance-portal/internal/core/domain"
	"github.com/motorshield/insurance-portal/internal/core/ports"
)

// roleLookupTimeout caps a single roles-collection query so a hung store
// degrades to fail-closed authorization instead of a hung request.
const roleLookupTimeout = 5 * time.Second

// CachedRoleResolver resolves a user's role from the user_roles collection,
// caching per user id. Each user id carries a generation counter: Invalidate
// bumps it, and a lookup that completes under a superseded generation is
// discarded instead of cached, so a late result can never reinstate a role
// after sign-out or a role revocation.
type CachedRoleResolver struct {
	repo ports.RoleRepository
	log  zerolog.Logger
	sfg  singleflight.Group

	mu    sync.Mutex
	cache map[string]domain.RoleResolution
	gens  map[string]uint64
}

func NewCachedRoleResolver(repo ports.RoleRepository, log zerolog.Logger) *CachedRoleResolver {
	return &CachedRoleResolver{
		repo:  repo,
		log:   log,
		cache: make(map[string]domain.RoleResolution),
		gens:  make(map[string]uint64),
	}
}

// Resolve returns the tagged role resolution for userID. A missing role
// record is not an error: it resolves to the default role with Found=false.
// Concurrent lookups for the same user collapse into one query.
func (r *CachedRoleResolver) Resolve(ctx context.Context, userID string) (domain.RoleResolution, error) {
	if userID == "" {
		return domain.RoleResolution{}, domain.ErrUserNotFound
	}

	for {
		r.mu.Lock()
		if res, ok := r.cache[userID]; ok {
			r.mu.Unlock()
			return res, nil
		}
		gen := r.gens[userID]
		r.mu.Unlock()

		res, err := r.lookup(ctx, userID, gen)
		if err != nil {
			return domain.RoleResolution{}, err
		}

		r.mu.Lock()
		if r.gens[userID] != gen {
			// Superseded while in flight: drop the result and retry under
			// the new generation.
			r.mu.Unlock()
			r.log.Debug().Str("user_id", userID).Msg("stale role resolution discarded")
			continue
		}
		r.cache[userID] = res
		r.mu.Unlock()
		return res, nil
	}
}

// lookup performs the actual store query. The generation is part of the
// singleflight key so an invalidation mid-flight starts a fresh query rather
// than piggybacking on the superseded one.
func (r *CachedRoleResolver) lookup(ctx context.Context, userID string, gen uint64) (domain.RoleResolution, error) {
	key := fmt.Sprintf("%s#%d", userID, gen)
	v, err, _ := r.sfg.Do(key, func() (interface{}, error) {
		lookupCtx, cancel := context.WithTimeout(ctx, roleLookupTimeout)
		defer cancel()

		rec, err := r.repo.FindByUserID(lookupCtx, userID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				r.log.Debug().Str("user_id", userID).Msg("no role record, defaulting")
				return domain.RoleResolution{Role: domain.RoleUser, Found: false}, nil
			}
			return nil, fmt.Errorf("resolve role: %w", err)
		}
		return domain.RoleResolution{Role: rec.Role, Found: true}, nil
	})
	if err != nil {
		return domain.RoleResolution{}, err
	}
	return v.(domain.RoleResolution), nil
}

// Invalidate drops the cached role for userID and supersedes any lookup still
// in flight.
func (r *CachedRoleResolver) Invalidate(userID string) {
	r.mu.Lock()
	delete(r.cache, userID)
	r.gens[userID]++
	r.mu.Unlock()
}
