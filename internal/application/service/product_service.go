package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/kmutua/dukabook-api/internal/domain/entity"
	"github.com/kmutua/dukabook-api/internal/domain/repository"
	infraRepo "github.com/kmutua/dukabook-api/internal/infrastructure/repository"
	"github.com/kmutua/dukabook-api/pkg/apperror"
	"github.com/kmutua/dukabook-api/pkg/pagination"
)

// ProductService handles product master operations
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name        string
	Category    string
	CostPrice   float64
	RetailPrice float64
}

// CreateProduct creates a new product in the current shop scope
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	shopID, ok := infraRepo.GetShopID(ctx)
	if !ok {
		return nil, apperror.ErrScopeRequired
	}

	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Product name is required")
	}
	if input.CostPrice < 0 || input.RetailPrice < 0 {
		return nil, apperror.NewBadRequestError("Prices cannot be negative")
	}

	product := &entity.Product{
		ShopID:      shopID,
		Name:        input.Name,
		Category:    input.Category,
		CostPrice:   input.CostPrice,
		RetailPrice: input.RetailPrice,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products in the current shop scope
func (s *ProductService) ListProducts(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[*entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// SearchProducts returns products whose name contains the query
func (s *ProductService) SearchProducts(ctx context.Context, query string, limit int) ([]*entity.Product, error) {
	if query == "" {
		return []*entity.Product{}, nil
	}
	return s.productRepo.Search(ctx, query, limit)
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	ID          uuid.UUID
	Name        *string
	Category    *string
	CostPrice   *float64
	RetailPrice *float64
}

// UpdateProduct updates a product
func (s *ProductService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperror.NewBadRequestError("Product name is required")
		}
		product.Name = *input.Name
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.CostPrice != nil {
		if *input.CostPrice < 0 {
			return nil, apperror.NewBadRequestError("Prices cannot be negative")
		}
		product.CostPrice = *input.CostPrice
	}
	if input.RetailPrice != nil {
		if *input.RetailPrice < 0 {
			return nil, apperror.NewBadRequestError("Prices cannot be negative")
		}
		product.RetailPrice = *input.RetailPrice
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// DeleteProduct deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}

	return s.productRepo.Delete(ctx, id)
}
