package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kmutua/dukabook-api/internal/domain/entity"
	domainRepo "github.com/kmutua/dukabook-api/internal/domain/repository"
	"github.com/kmutua/dukabook-api/pkg/pagination"
	"gorm.io/gorm"
)

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).Scopes(ShopScope(ctx)).First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) GetByNameKey(ctx context.Context, nameKey string) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).Scopes(ShopScope(ctx)).First(&customer, "name_key = ?", nameKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// FindOrCreate looks up by normalized name first, creates on miss, and on a
// create conflict re-reads the winner. Two concurrent calls with the same
// name both return the same row; the unique index on (shop_id, name_key)
// guarantees it.
func (r *customerRepository) FindOrCreate(ctx context.Context, customer *entity.Customer) (*entity.Customer, bool, error) {
	existing, err := r.GetByNameKey(ctx, customer.NameKey)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	if err := r.Create(ctx, customer); err != nil {
		// Lost a race to a concurrent create; the winner's row is the result.
		winner, readErr := r.GetByNameKey(ctx, customer.NameKey)
		if readErr == nil && winner != nil {
			return winner, false, nil
		}
		return nil, false, err
	}
	return customer, true, nil
}

func (r *customerRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]*entity.Customer, int64, error) {
	var customers []*entity.Customer
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Customer{}).Scopes(ShopScope(ctx))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&customers).Error

	return customers, total, err
}

func (r *customerRepository) Search(ctx context.Context, query string, limit int) ([]*entity.Customer, error) {
	var customers []*entity.Customer

	if limit <= 0 {
		limit = 20
	}

	err := r.db.WithContext(ctx).Scopes(ShopScope(ctx)).
		Where("name ILIKE ?", "%"+query+"%").
		Order("name ASC").
		Limit(limit).
		Find(&customers).Error

	return customers, err
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Scopes(ShopScope(ctx)).Delete(&entity.Customer{}, "id = ?", id).Error
}
