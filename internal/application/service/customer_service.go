package service

import (
	"context"
	"sort"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"
	"github.com/kmutua/dukabook-api/internal/cache"
	"github.com/kmutua/dukabook-api/internal/domain/entity"
	"github.com/kmutua/dukabook-api/internal/domain/repository"
	infraRepo "github.com/kmutua/dukabook-api/internal/infrastructure/repository"
	"github.com/kmutua/dukabook-api/pkg/apperror"
	"github.com/kmutua/dukabook-api/pkg/pagination"
	"github.com/kmutua/dukabook-api/pkg/utils"
)

const searchCacheTTL = 30 * time.Second

// CustomerService handles customer-related operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
	searchCache  cache.SearchCache
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository, searchCache cache.SearchCache) *CustomerService {
	if searchCache == nil {
		searchCache = cache.NoopSearchCache{}
	}
	return &CustomerService{customerRepo: customerRepo, searchCache: searchCache}
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	Name  string
	Phone *string
}

// CreateCustomer creates a new customer in the current shop scope
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	shopID, ok := infraRepo.GetShopID(ctx)
	if !ok {
		return nil, apperror.ErrScopeRequired
	}

	nameKey := utils.NormalizeName(input.Name)
	if nameKey == "" {
		return nil, apperror.NewBadRequestError("Customer name is required")
	}

	customer := &entity.Customer{
		ShopID:  shopID,
		Name:    input.Name,
		NameKey: nameKey,
		Phone:   input.Phone,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	s.invalidateSearch(ctx, shopID)
	return customer, nil
}

// FindOrCreateCustomer returns the customer with the given name in the current
// shop, creating one if it does not exist. Matching is by normalized name, so
// "Ali", "ali" and " ali " all resolve to the same customer. Calling it twice
// with the same name never produces a second row.
func (s *CustomerService) FindOrCreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, bool, error) {
	shopID, ok := infraRepo.GetShopID(ctx)
	if !ok {
		return nil, false, apperror.ErrScopeRequired
	}

	nameKey := utils.NormalizeName(input.Name)
	if nameKey == "" {
		return nil, false, apperror.NewBadRequestError("Customer name is required")
	}

	customer := &entity.Customer{
		ShopID:  shopID,
		Name:    input.Name,
		NameKey: nameKey,
		Phone:   input.Phone,
	}

	result, created, err := s.customerRepo.FindOrCreate(ctx, customer)
	if err != nil {
		return nil, false, err
	}
	if created {
		s.invalidateSearch(ctx, shopID)
	}
	return result, created, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists customers in the current shop scope
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[*entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// CustomerMatch is one search result with its edit distance from the query
type CustomerMatch struct {
	Customer *entity.Customer `json:"customer"`
	Distance int              `json:"distance"`
	Exact    bool             `json:"exact"`
}

// SearchCustomers returns candidates for the query ranked by edit distance,
// nearest first. Exact matches (after normalization) rank ahead of fuzzy
// ones. Candidates beyond the tolerance for the query length are dropped.
func (s *CustomerService) SearchCustomers(ctx context.Context, query string, limit int) ([]CustomerMatch, error) {
	queryKey := utils.NormalizeName(query)
	if queryKey == "" {
		return []CustomerMatch{}, nil
	}

	candidates, err := s.searchCandidates(ctx, queryKey, limit)
	if err != nil {
		return nil, err
	}

	tolerance := utils.MatchTolerance(queryKey)
	matches := make([]CustomerMatch, 0, len(candidates))
	for _, c := range candidates {
		dist := levenshtein.ComputeDistance(queryKey, c.NameKey)
		if dist > tolerance {
			continue
		}
		matches = append(matches, CustomerMatch{
			Customer: c,
			Distance: dist,
			Exact:    dist == 0,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// searchCandidates pulls prefix candidates from the cache or database. The
// ILIKE search only finds substring hits, so candidates for fuzzy ranking are
// widened with a listing of the first page of shop customers.
func (s *CustomerService) searchCandidates(ctx context.Context, queryKey string, limit int) ([]*entity.Customer, error) {
	shopID, hasShop := infraRepo.GetShopID(ctx)

	var cacheKey string
	if hasShop {
		cacheKey = "search:" + shopID.String() + ":" + queryKey
		if cached, ok, err := s.searchCache.Get(ctx, cacheKey); err == nil && ok {
			return cached, nil
		}
	}

	candidates, err := s.customerRepo.Search(ctx, queryKey, limit*5)
	if err != nil {
		return nil, err
	}

	if len(candidates) == 0 {
		// Fall back to a broad listing so near-miss spellings still match
		params := pagination.DefaultPagination()
		params.PerPage = 100
		candidates, _, err = s.customerRepo.List(ctx, params)
		if err != nil {
			return nil, err
		}
	}

	if hasShop {
		_ = s.searchCache.Set(ctx, cacheKey, candidates, searchCacheTTL)
	}
	return candidates, nil
}

func (s *CustomerService) invalidateSearch(ctx context.Context, shopID uuid.UUID) {
	_ = s.searchCache.Invalidate(ctx, "search:"+shopID.String()+":")
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	ID    uuid.UUID
	Name  *string
	Phone *string
}

// UpdateCustomer updates a customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if input.Name != nil {
		nameKey := utils.NormalizeName(*input.Name)
		if nameKey == "" {
			return nil, apperror.NewBadRequestError("Customer name is required")
		}
		customer.Name = *input.Name
		customer.NameKey = nameKey
	}
	if input.Phone != nil {
		customer.Phone = input.Phone
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}

	s.invalidateSearch(ctx, customer.ShopID)
	return customer, nil
}

// DeleteCustomer deletes a customer
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}

	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateSearch(ctx, customer.ShopID)
	return nil
}
