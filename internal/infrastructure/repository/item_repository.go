package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kmutua/dukabook-api/internal/domain/entity"
	domainRepo "github.com/kmutua/dukabook-api/internal/domain/repository"
	"github.com/kmutua/dukabook-api/pkg/apperror"
	"github.com/kmutua/dukabook-api/pkg/pagination"
	"gorm.io/gorm"
)

type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *gorm.DB) domainRepo.ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *entity.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *itemRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	var item entity.Item
	err := r.db.WithContext(ctx).Scopes(ShopScope(ctx)).
		Preload("Product").
		First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]*entity.Item, int64, error) {
	var items []*entity.Item
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Item{}).Scopes(ShopScope(ctx))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Preload("Product").
		Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&items).Error

	return items, total, err
}

func (r *itemRepository) ListLowStock(ctx context.Context) ([]*entity.Item, error) {
	var items []*entity.Item
	err := r.db.WithContext(ctx).Scopes(ShopScope(ctx)).
		Where("quantity <= quantity_alert").
		Preload("Product").
		Order("quantity ASC").
		Find(&items).Error
	return items, err
}

func (r *itemRepository) Update(ctx context.Context, item *entity.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *itemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Scopes(ShopScope(ctx)).Delete(&entity.Item{}, "id = ?", id).Error
}

func (r *itemRepository) AddQuantity(ctx context.Context, id uuid.UUID, amount int) error {
	result := r.db.WithContext(ctx).Model(&entity.Item{}).Scopes(ShopScope(ctx)).
		Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NewNotFoundError("Item")
	}
	return nil
}

// RemoveQuantity guards the decrement in the UPDATE itself so two concurrent
// removals can never drive quantity below zero.
func (r *itemRepository) RemoveQuantity(ctx context.Context, id uuid.UUID, amount int) error {
	result := r.db.WithContext(ctx).Model(&entity.Item{}).Scopes(ShopScope(ctx)).
		Where("id = ? AND quantity >= ?", id, amount).
		Update("quantity", gorm.Expr("quantity - ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Distinguish missing item from insufficient stock
		item, err := r.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return apperror.NewNotFoundError("Item")
		}
		return apperror.ErrInsufficientStock
	}
	return nil
}
