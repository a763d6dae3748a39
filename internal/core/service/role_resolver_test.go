package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/motorshield/insurance-portal/internal/core/domain"
)

type stubRoleRepo struct {
	mu      sync.Mutex
	records map[string]string
	err     error
	calls   int

	// entered is signalled when a lookup begins; release blocks it until
	// closed. Both apply to the first call only.
	entered chan struct{}
	release chan struct{}
}

func (r *stubRoleRepo) FindByUserID(_ context.Context, userID string) (*domain.RoleRecord, error) {
	r.mu.Lock()
	r.calls++
	first := r.calls == 1
	entered, release := r.entered, r.release
	err := r.err
	role, ok := r.records[userID]
	r.mu.Unlock()

	if first && entered != nil {
		close(entered)
		<-release
		// re-read state: the test may have mutated it while we were blocked
		r.mu.Lock()
		err = r.err
		role, ok = r.records[userID]
		r.mu.Unlock()
	}

	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &domain.RoleRecord{UserID: userID, Role: role}, nil
}

func (r *stubRoleRepo) Upsert(_ context.Context, userID, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.records == nil {
		r.records = make(map[string]string)
	}
	r.records[userID] = role
	return nil
}

func (r *stubRoleRepo) Delete(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, userID)
	return nil
}

func TestCachedRoleResolver_DefaultsWhenNoRecord(t *testing.T) {
	repo := &stubRoleRepo{}
	r := NewCachedRoleResolver(repo, zerolog.Nop())

	res, err := r.Resolve(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if res.Found {
		t.Fatalf("expected Found=false for missing record")
	}
	if res.Effective() != domain.RoleUser {
		t.Fatalf("expected default role user, got %q", res.Effective())
	}
}

func TestCachedRoleResolver_FindsRecord(t *testing.T) {
	repo := &stubRoleRepo{records: map[string]string{"u1": domain.RoleAdmin}}
	r := NewCachedRoleResolver(repo, zerolog.Nop())

	res, err := r.Resolve(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if !res.Found || res.Effective() != domain.RoleAdmin {
		t.Fatalf("expected admin resolution, got %+v", res)
	}
}

func TestCachedRoleResolver_CachesPerUser(t *testing.T) {
	repo := &stubRoleRepo{records: map[string]string{"u1": domain.RoleAdmin}}
	r := NewCachedRoleResolver(repo, zerolog.Nop())

	for i := 0; i < 3; i++ {
		if _, err := r.Resolve(context.Background(), "u1"); err != nil {
			t.Fatalf("Resolve returned error: %v", err)
		}
	}
	if repo.calls != 1 {
		t.Fatalf("expected a single store query, got %d", repo.calls)
	}
}

func TestCachedRoleResolver_PropagatesStoreError(t *testing.T) {
	repo := &stubRoleRepo{err: errors.New("store down")}
	r := NewCachedRoleResolver(repo, zerolog.Nop())

	if _, err := r.Resolve(context.Background(), "u1"); err == nil {
		t.Fatalf("expected error from failing store")
	}
}

func TestCachedRoleResolver_EmptyUserID(t *testing.T) {
	r := NewCachedRoleResolver(&stubRoleRepo{}, zerolog.Nop())
	if _, err := r.Resolve(context.Background(), ""); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

// A lookup that completes after Invalidate must not land in the cache: the
// resolver retries and returns the state as of the new generation.
func TestCachedRoleResolver_StaleLookupDiscarded(t *testing.T) {
	repo := &stubRoleRepo{
		records: map[string]string{"u1": domain.RoleAdmin},
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	r := NewCachedRoleResolver(repo, zerolog.Nop())

	type outcome struct {
		res domain.RoleResolution
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := r.Resolve(context.Background(), "u1")
		done <- outcome{res, err}
	}()

	<-repo.entered

	// Revoke the role while the first lookup is still in flight.
	r.Invalidate("u1")
	repo.mu.Lock()
	delete(repo.records, "u1")
	repo.mu.Unlock()

	close(repo.release)

	select {
	case out := <-done:
		if out.err != nil {
			t.Fatalf("Resolve returned error: %v", out.err)
		}
		if out.res.Found || out.res.Effective() != domain.RoleUser {
			t.Fatalf("stale admin resolution leaked through: %+v", out.res)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Resolve did not finish")
	}

	if repo.calls < 2 {
		t.Fatalf("expected a retry under the new generation, got %d calls", repo.calls)
	}
}

func TestCachedRoleResolver_InvalidateDropsCache(t *testing.T) {
	repo := &stubRoleRepo{records: map[string]string{"u1": domain.RoleAdmin}}
	r := NewCachedRoleResolver(repo, zerolog.Nop())

	if _, err := r.Resolve(context.Background(), "u1"); err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	r.Invalidate("u1")
	repo.mu.Lock()
	repo.records["u1"] = domain.RoleUser
	repo.mu.Unlock()

	res, err := r.Resolve(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if res.Effective() != domain.RoleUser {
		t.Fatalf("expected refreshed role user, got %q", res.Effective())
	}
	if repo.calls != 2 {
		t.Fatalf("expected 2 store queries, got %d", repo.calls)
	}
}
