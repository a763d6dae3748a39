package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/motorshield/insurance-portal/internal/core/domain"
	"github.com/motorshield/insurance-portal/internal/core/ports"
)

// CartCache abstracts the read-through cache in front of the cart store.
type CartCache interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	Set(ctx context.Context, userID string, cart *domain.Cart) error
	Delete(ctx context.Context, userID string) error
}

// ErrCacheMiss is returned by CartCache implementations when no entry exists.
var ErrCacheMiss = errors.New("cache miss")

// CartService maintains per-user carts: at most one entry per item id,
// quantities always >= 1, totals derived from the effective price.
type CartService struct {
	repo  ports.CartRepository
	items ports.ItemRepository
	cache CartCache
	log   zerolog.Logger
	sfg   singleflight.Group // collapses concurrent cache misses per user
}

func NewCartService(repo ports.CartRepository, items ports.ItemRepository, cache CartCache, log zerolog.Logger) *CartService {
	return &CartService{repo: repo, items: items, cache: cache, log: log}
}

// GetCart returns the user's cart, creating an empty one in memory when none
// is persisted yet.
func (s *CartService) GetCart(ctx context.Context, userID string) (*ports.CartSummary, error) {
	v, err, _ := s.sfg.Do(userID, func() (interface{}, error) {
		cart, err := s.cache.Get(ctx, userID)
		if err == nil {
			return cart, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("cart cache get failed")
		}

		cart, err = s.repo.Get(ctx, userID)
		if errors.Is(err, domain.ErrCartNotFound) {
			now := time.Now().UTC()
			return &domain.Cart{UserID: userID, CreatedAt: now, UpdatedAt: now}, nil
		}
		if err != nil {
			return nil, err
		}

		go func() {
			if err := s.cache.Set(context.Background(), userID, cart); err != nil {
				s.log.Warn().Err(err).Str("user_id", userID).Msg("cart cache set failed")
			}
		}()

		return cart, nil
	})
	if err != nil {
		return nil, err
	}

	return summarize(v.(*domain.Cart)), nil
}

// AddItem puts one unit of the catalog item into the cart, incrementing the
// quantity when the item is already present.
func (s *CartService) AddItem(ctx context.Context, userID, itemID string) (*ports.CartSummary, error) {
	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, userID, func(cart *domain.Cart) {
		cart.AddItem(domain.CartItem{
			ItemID:          item.ID,
			Name:            item.Name,
			Price:           item.Price,
			DiscountedPrice: item.DiscountedPrice,
			Type:            item.Type,
			Image:           item.Image,
		})
	})
}

// UpdateQuantity sets the quantity for an entry; zero or negative removes it.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) (*ports.CartSummary, error) {
	return s.mutate(ctx, userID, func(cart *domain.Cart) {
		cart.UpdateQuantity(itemID, quantity)
	})
}

// RemoveItem deletes an entry; removing an absent item id is a no-op.
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID string) (*ports.CartSummary, error) {
	return s.mutate(ctx, userID, func(cart *domain.Cart) {
		cart.RemoveItem(itemID)
	})
}

// ClearCart empties the cart unconditionally.
func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	if err := s.repo.Delete(ctx, userID); err != nil && !errors.Is(err, domain.ErrCartNotFound) {
		return err
	}
	s.invalidate(userID)
	return nil
}

// mutate loads the persisted cart, applies fn, upserts, and invalidates the
// cache. The persisted copy is authoritative: the cache is never written here,
// only dropped, so a failed write cannot leave a stale cart visible.
func (s *CartService) mutate(ctx context.Context, userID string, fn func(*domain.Cart)) (*ports.CartSummary, error) {
	cart, err := s.repo.Get(ctx, userID)
	if errors.Is(err, domain.ErrCartNotFound) {
		now := time.Now().UTC()
		cart = &domain.Cart{UserID: userID, CreatedAt: now, UpdatedAt: now}
	} else if err != nil {
		return nil, err
	}

	fn(cart)
	cart.UpdatedAt = time.Now().UTC()

	if err := s.repo.Upsert(ctx, cart); err != nil {
		return nil, err
	}
	s.invalidate(userID)

	return summarize(cart), nil
}

func (s *CartService) invalidate(userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, userID); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("cart cache invalidate failed")
	}
}

func summarize(cart *domain.Cart) *ports.CartSummary {
	return &ports.CartSummary{
		Cart:       cart,
		TotalItems: cart.TotalItems(),
		TotalPrice: cart.TotalPrice(),
	}
}
