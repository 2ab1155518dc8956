package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/kmutua/dukabook-api/internal/domain/entity"
	"github.com/kmutua/dukabook-api/internal/domain/repository"
	"github.com/kmutua/dukabook-api/pkg/apperror"
	"github.com/kmutua/dukabook-api/pkg/utils"
)

// ShopService handles shop operations
type ShopService struct {
	shopRepo repository.ShopRepository
}

// NewShopService creates a new shop service
func NewShopService(shopRepo repository.ShopRepository) *ShopService {
	return &ShopService{shopRepo: shopRepo}
}

// CreateShop creates a new shop
func (s *ShopService) CreateShop(ctx context.Context, name string) (*entity.Shop, error) {
	slug := utils.Slugify(name)
	if slug == "" {
		return nil, apperror.NewBadRequestError("Shop name is required")
	}

	existing, err := s.shopRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Shop already exists")
	}

	shop := &entity.Shop{
		Name: name,
		Slug: slug,
	}
	if err := s.shopRepo.Create(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

// GetShop retrieves a shop by ID
func (s *ShopService) GetShop(ctx context.Context, id uuid.UUID) (*entity.Shop, error) {
	shop, err := s.shopRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, apperror.NewNotFoundError("Shop")
	}
	return shop, nil
}

// ListShops lists all shops. Used by privileged users choosing a scope.
func (s *ShopService) ListShops(ctx context.Context) ([]*entity.Shop, error) {
	return s.shopRepo.List(ctx)
}
