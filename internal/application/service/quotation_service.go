package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/kmutua/dukabook-api/internal/domain/entity"
	"github.com/kmutua/dukabook-api/internal/domain/repository"
	infraRepo "github.com/kmutua/dukabook-api/internal/infrastructure/repository"
	"github.com/kmutua/dukabook-api/pkg/apperror"
	"github.com/kmutua/dukabook-api/pkg/pagination"
	"github.com/kmutua/dukabook-api/pkg/pricing"
	"github.com/kmutua/dukabook-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// QuotationService handles quotation generation and reads
type QuotationService struct {
	quotationRepo repository.QuotationRepository
	customerRepo  repository.CustomerRepository
	productRepo   repository.ProductRepository
	documentBase  string
}

// NewQuotationService creates a new quotation service. documentBase is the
// URL prefix under which generated documents are served.
func NewQuotationService(
	quotationRepo repository.QuotationRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	documentBase string,
) *QuotationService {
	return &QuotationService{
		quotationRepo: quotationRepo,
		customerRepo:  customerRepo,
		productRepo:   productRepo,
		documentBase:  documentBase,
	}
}

// QuotationLineInput is one requested line of a quotation. Cost and retail
// carry the line's values as entered (pre-filled from the product, editable).
// SalePrice, when set, is a manual override; when nil the sale price is
// derived from retail and discount.
type QuotationLineInput struct {
	ProductID          uuid.UUID
	Quantity           int
	CostPrice          float64
	RetailPrice        float64
	DiscountPercentage float64
	SalePrice          *float64
}

// GenerateQuotationInput represents the generate quotation input
type GenerateQuotationInput struct {
	CustomerID uuid.UUID
	Lines      []QuotationLineInput
}

// GenerateQuotationResult is returned to the caller after a successful
// generation: the document URL and the customer it was issued to.
type GenerateQuotationResult struct {
	URL      string           `json:"url"`
	Customer *entity.Customer `json:"customer"`
}

// GenerateQuotation validates every line, prices it from the submitted
// figures (honoring a manual sale-price override, deriving otherwise), and
// persists the quotation with its lines atomically. A single bad line fails
// the whole document.
func (s *QuotationService) GenerateQuotation(ctx context.Context, input *GenerateQuotationInput) (*GenerateQuotationResult, error) {
	shopID, ok := infraRepo.GetShopID(ctx)
	if !ok {
		return nil, apperror.ErrScopeRequired
	}

	if len(input.Lines) == 0 {
		return nil, apperror.NewBadRequestError("Quotation requires at least one line")
	}

	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	productIDs := make([]uuid.UUID, 0, len(input.Lines))
	for _, line := range input.Lines {
		productIDs = append(productIDs, line.ProductID)
	}
	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	productsByID := make(map[uuid.UUID]*entity.Product, len(products))
	for _, p := range products {
		productsByID[p.ID] = p
	}

	lines := make([]entity.QuotationLine, 0, len(input.Lines))
	pricingLines := make([]pricing.Line, 0, len(input.Lines))
	for _, line := range input.Lines {
		product, found := productsByID[line.ProductID]
		if !found {
			return nil, apperror.NewNotFoundError("Product")
		}
		if line.Quantity < 1 {
			return nil, apperror.NewBadRequestError("Line quantity must be at least 1")
		}
		if line.CostPrice < 0 {
			return nil, apperror.NewBadRequestError("Line cost price cannot be negative")
		}

		retail := decimal.NewFromFloat(line.RetailPrice)
		discount := decimal.NewFromFloat(line.DiscountPercentage)
		salePrice, err := pricing.SalePrice(retail, discount)
		if err != nil {
			return nil, apperror.NewBadRequestError(err.Error())
		}
		if line.SalePrice != nil {
			// Manual override: the caller's figure replaces the derivation.
			override := decimal.NewFromFloat(*line.SalePrice)
			if override.IsNegative() {
				return nil, apperror.NewBadRequestError("Line sale price cannot be negative")
			}
			salePrice = override
		}
		lineTotal, err := pricing.LineTotal(salePrice, line.Quantity)
		if err != nil {
			return nil, apperror.NewBadRequestError(err.Error())
		}

		lines = append(lines, entity.QuotationLine{
			ProductID:          product.ID,
			ProductName:        product.Name,
			Quantity:           line.Quantity,
			CostPrice:          line.CostPrice,
			RetailPrice:        line.RetailPrice,
			DiscountPercentage: line.DiscountPercentage,
			SalePrice:          salePrice.InexactFloat64(),
			LineTotal:          lineTotal.InexactFloat64(),
		})
		pricingLines = append(pricingLines, pricing.Line{SalePrice: salePrice, Quantity: line.Quantity})
	}

	reference := utils.GenerateReference("QT-")
	quotation := &entity.Quotation{
		ShopID:      shopID,
		CustomerID:  input.CustomerID,
		Reference:   reference,
		TotalAmount: pricing.DocumentTotal(pricingLines).InexactFloat64(),
		DocumentURL: s.documentBase + "/" + reference,
		Lines:       lines,
	}

	if err := s.quotationRepo.Create(ctx, quotation); err != nil {
		return nil, err
	}

	return &GenerateQuotationResult{
		URL:      quotation.DocumentURL,
		Customer: customer,
	}, nil
}

// GetQuotation retrieves a quotation with its lines
func (s *QuotationService) GetQuotation(ctx context.Context, id uuid.UUID) (*entity.Quotation, error) {
	quotation, err := s.quotationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quotation == nil {
		return nil, apperror.NewNotFoundError("Quotation")
	}
	return quotation, nil
}

// ListQuotations lists quotations in the current shop scope
func (s *QuotationService) ListQuotations(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[*entity.Quotation], error) {
	quotations, total, err := s.quotationRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(quotations, pag), nil
}
