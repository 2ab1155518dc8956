package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/kmutua/dukabook-api/internal/domain/entity"
	"github.com/kmutua/dukabook-api/internal/domain/enum"
	"github.com/kmutua/dukabook-api/internal/domain/repository"
	infraRepo "github.com/kmutua/dukabook-api/internal/infrastructure/repository"
	"github.com/kmutua/dukabook-api/pkg/apperror"
	"github.com/kmutua/dukabook-api/pkg/pagination"
)

// ItemService handles inventory item operations
type ItemService struct {
	itemRepo    repository.ItemRepository
	productRepo repository.ProductRepository
}

// NewItemService creates a new item service
func NewItemService(itemRepo repository.ItemRepository, productRepo repository.ProductRepository) *ItemService {
	return &ItemService{itemRepo: itemRepo, productRepo: productRepo}
}

// CreateItemInput represents the create item input
type CreateItemInput struct {
	ProductID          uuid.UUID
	Quantity           int
	QuantityAlert      int
	ColorCode          *string
	Category           string
	DiscountPercentage float64
}

// CreateItem creates a new inventory item in the current shop scope
func (s *ItemService) CreateItem(ctx context.Context, input *CreateItemInput) (*entity.Item, error) {
	shopID, ok := infraRepo.GetShopID(ctx)
	if !ok {
		return nil, apperror.ErrScopeRequired
	}

	if input.Quantity < 0 {
		return nil, apperror.NewBadRequestError("Quantity cannot be negative")
	}
	if input.DiscountPercentage < 0 || input.DiscountPercentage > 100 {
		return nil, apperror.NewBadRequestError("Discount percentage must be between 0 and 100")
	}

	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	item := &entity.Item{
		ShopID:             shopID,
		ProductID:          input.ProductID,
		Quantity:           input.Quantity,
		QuantityAlert:      input.QuantityAlert,
		ColorCode:          input.ColorCode,
		Category:           input.Category,
		DiscountPercentage: input.DiscountPercentage,
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// GetItem retrieves an item by ID
func (s *ItemService) GetItem(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}
	return item, nil
}

// ListItems lists items in the current shop scope
func (s *ItemService) ListItems(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[*entity.Item], error) {
	items, total, err := s.itemRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(items, pag), nil
}

// ListLowStockItems lists items at or below their alert threshold
func (s *ItemService) ListLowStockItems(ctx context.Context) ([]*entity.Item, error) {
	return s.itemRepo.ListLowStock(ctx)
}

// AdjustQuantityInput represents a stock adjustment request
type AdjustQuantityInput struct {
	ItemID    uuid.UUID
	Operation enum.StockOperation
	Amount    int
}

// AdjustQuantity applies a bounded add or remove to an item's stock level.
// The amount must be positive; removals that would take the quantity below
// zero are rejected with a conflict, leaving the stored value untouched.
func (s *ItemService) AdjustQuantity(ctx context.Context, input *AdjustQuantityInput) (*entity.Item, error) {
	if !input.Operation.Valid() {
		return nil, apperror.NewBadRequestError("Operation must be add or remove")
	}
	if input.Amount <= 0 {
		return nil, apperror.NewBadRequestError("Amount must be greater than zero")
	}

	var err error
	switch input.Operation {
	case enum.StockOperationAdd:
		err = s.itemRepo.AddQuantity(ctx, input.ItemID, input.Amount)
	case enum.StockOperationRemove:
		err = s.itemRepo.RemoveQuantity(ctx, input.ItemID, input.Amount)
	}
	if err != nil {
		return nil, err
	}

	return s.GetItem(ctx, input.ItemID)
}

// UpdateItemInput represents the update item input
type UpdateItemInput struct {
	ID                 uuid.UUID
	QuantityAlert      *int
	ColorCode          *string
	Category           *string
	DiscountPercentage *float64
}

// UpdateItem updates an item's attributes. Quantity is deliberately absent;
// stock levels only move through AdjustQuantity.
func (s *ItemService) UpdateItem(ctx context.Context, input *UpdateItemInput) (*entity.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}

	if input.QuantityAlert != nil {
		item.QuantityAlert = *input.QuantityAlert
	}
	if input.ColorCode != nil {
		item.ColorCode = input.ColorCode
	}
	if input.Category != nil {
		item.Category = *input.Category
	}
	if input.DiscountPercentage != nil {
		if *input.DiscountPercentage < 0 || *input.DiscountPercentage > 100 {
			return nil, apperror.NewBadRequestError("Discount percentage must be between 0 and 100")
		}
		item.DiscountPercentage = *input.DiscountPercentage
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// DeleteItem deletes an item
func (s *ItemService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return apperror.NewNotFoundError("Item")
	}

	return s.itemRepo.Delete(ctx, id)
}
