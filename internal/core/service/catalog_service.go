package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/motorshield/insurance-portal/internal/core/domain"
	"github.com/motorshield/insurance-portal/internal/core/ports"
)

// CatalogService implements catalog item use cases. Reads serve the public
// storefront; writes are admin-only and gated by the route guard upstream.
type CatalogService struct {
	repo ports.ItemRepository
	log  zerolog.Logger
}

func NewCatalogService(repo ports.ItemRepository, log zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, log: log}
}

func (s *CatalogService) ListItems(ctx context.Context) ([]*domain.Item, error) {
	return s.repo.List(ctx)
}

func (s *CatalogService) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CatalogService) CreateItem(ctx context.Context, input ports.UpsertItemInput) (*domain.Item, error) {
	if err := validateItemInput(input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	item := &domain.Item{
		Name:            input.Name,
		Description:     input.Description,
		Price:           input.Price,
		DiscountedPrice: input.DiscountedPrice,
		Type:            input.Type,
		Image:           input.Image,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := s.repo.Create(ctx, item)
	if err != nil {
		s.log.Error().Err(err).Str("name", input.Name).Msg("failed to create catalog item")
		return nil, err
	}

	s.log.Info().Str("item_id", created.ID).Str("name", created.Name).Msg("catalog item created")
	return created, nil
}

func (s *CatalogService) UpdateItem(ctx context.Context, id string, input ports.UpsertItemInput) (*domain.Item, error) {
	if err := validateItemInput(input); err != nil {
		return nil, err
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	item.Name = input.Name
	item.Description = input.Description
	item.Price = input.Price
	item.DiscountedPrice = input.DiscountedPrice
	item.Type = input.Type
	item.Image = input.Image
	item.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, item)
}

func (s *CatalogService) DeleteItem(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("item_id", id).Msg("catalog item deleted")
	return nil
}

func validateItemInput(input ports.UpsertItemInput) error {
	if input.Name == "" || input.Price < 0 {
		return domain.ErrInvalidItem
	}
	if input.DiscountedPrice != nil && (*input.DiscountedPrice < 0 || *input.DiscountedPrice > input.Price) {
		return domain.ErrInvalidItem
	}
	return nil
}
