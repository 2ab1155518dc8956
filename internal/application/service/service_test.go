package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kmutua/dukabook-api/internal/domain/entity"
	"github.com/kmutua/dukabook-api/internal/domain/enum"
	"github.com/kmutua/dukabook-api/internal/domain/repository"
	infraRepo "github.com/kmutua/dukabook-api/internal/infrastructure/repository"
	"github.com/kmutua/dukabook-api/pkg/apperror"
	"github.com/kmutua/dukabook-api/pkg/pagination"
)

// In-memory repositories for service tests. They honor the shop scope carried
// in the context the same way the GORM ones do: no scope, no rows.

func scopedCtx(shopID uuid.UUID) context.Context {
	return infraRepo.WithShop(context.Background(), shopID)
}

type fakeCustomerRepo struct {
	customers   map[uuid.UUID]*entity.Customer
	createCalls int
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[uuid.UUID]*entity.Customer)}
}

func (r *fakeCustomerRepo) inScope(ctx context.Context, c *entity.Customer) bool {
	shopID, ok := infraRepo.GetShopID(ctx)
	if !ok {
		if skip, ok := ctx.Value(infraRepo.SkipShopScopeKey).(bool); ok && skip {
			return true
		}
		return false
	}
	return c.ShopID == shopID
}

func (r *fakeCustomerRepo) Create(_ context.Context, customer *entity.Customer) error {
	for _, c := range r.customers {
		if c.ShopID == customer.ShopID && c.NameKey == customer.NameKey {
			return apperror.NewConflictError("Customer already exists")
		}
	}
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	r.createCalls++
	r.customers[customer.ID] = customer
	return nil
}

func (r *fakeCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	c, ok := r.customers[id]
	if !ok || !r.inScope(ctx, c) {
		return nil, nil
	}
	return c, nil
}

func (r *fakeCustomerRepo) GetByNameKey(ctx context.Context, nameKey string) (*entity.Customer, error) {
	for _, c := range r.customers {
		if c.NameKey == nameKey && r.inScope(ctx, c) {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) FindOrCreate(ctx context.Context, customer *entity.Customer) (*entity.Customer, bool, error) {
	if existing, _ := r.GetByNameKey(ctx, customer.NameKey); existing != nil {
		return existing, false, nil
	}
	if err := r.Create(ctx, customer); err != nil {
		return nil, false, err
	}
	return customer, true, nil
}

func (r *fakeCustomerRepo) List(ctx context.Context, _ *pagination.PaginationParams) ([]*entity.Customer, int64, error) {
	var out []*entity.Customer
	for _, c := range r.customers {
		if r.inScope(ctx, c) {
			out = append(out, c)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeCustomerRepo) Search(ctx context.Context, query string, _ int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.customers {
		if r.inScope(ctx, c) && strings.Contains(c.NameKey, strings.ToLower(query)) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, customer *entity.Customer) error {
	r.customers[customer.ID] = customer
	return nil
}

func (r *fakeCustomerRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.customers, id)
	return nil
}

type fakeTransactionRepo struct {
	transactions map[uuid.UUID]*entity.Transaction
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{transactions: make(map[uuid.UUID]*entity.Transaction)}
}

func (r *fakeTransactionRepo) Create(_ context.Context, tx *entity.Transaction) error {
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	r.transactions[tx.ID] = tx
	return nil
}

func (r *fakeTransactionRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	tx, ok := r.transactions[id]
	if !ok {
		return nil, nil
	}
	return tx, nil
}

func (r *fakeTransactionRepo) List(_ context.Context, _ *pagination.PaginationParams, _ repository.TransactionFilter) ([]*entity.Transaction, int64, error) {
	var out []*entity.Transaction
	for _, tx := range r.transactions {
		out = append(out, tx)
	}
	return out, int64(len(out)), nil
}

func (r *fakeTransactionRepo) ListDue(_ context.Context, asOf time.Time, _ *pagination.PaginationParams) ([]*entity.Transaction, int64, error) {
	var out []*entity.Transaction
	for _, tx := range r.transactions {
		if tx.PaymentMethod == enum.PaymentMethodCredit && tx.DueDate != nil && !tx.DueDate.After(asOf) {
			out = append(out, tx)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeTransactionRepo) Update(_ context.Context, tx *entity.Transaction) error {
	r.transactions[tx.ID] = tx
	return nil
}

func (r *fakeTransactionRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.transactions, id)
	return nil
}

type fakeProductRepo struct {
	products map[uuid.UUID]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[uuid.UUID]*entity.Product)}
	for _, p := range products {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(_ context.Context, product *entity.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (r *fakeProductRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) List(_ context.Context, _ *pagination.PaginationParams) ([]*entity.Product, int64, error) {
	var out []*entity.Product
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) Search(_ context.Context, query string, _ int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(query)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Update(_ context.Context, product *entity.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

type fakeQuotationRepo struct {
	quotations map[uuid.UUID]*entity.Quotation
}

func newFakeQuotationRepo() *fakeQuotationRepo {
	return &fakeQuotationRepo{quotations: make(map[uuid.UUID]*entity.Quotation)}
}

func (r *fakeQuotationRepo) Create(_ context.Context, quotation *entity.Quotation) error {
	if quotation.ID == uuid.Nil {
		quotation.ID = uuid.New()
	}
	r.quotations[quotation.ID] = quotation
	return nil
}

func (r *fakeQuotationRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Quotation, error) {
	q, ok := r.quotations[id]
	if !ok {
		return nil, nil
	}
	return q, nil
}

func (r *fakeQuotationRepo) GetByReference(_ context.Context, reference string) (*entity.Quotation, error) {
	for _, q := range r.quotations {
		if q.Reference == reference {
			return q, nil
		}
	}
	return nil, nil
}

func (r *fakeQuotationRepo) List(_ context.Context, _ *pagination.PaginationParams) ([]*entity.Quotation, int64, error) {
	var out []*entity.Quotation
	for _, q := range r.quotations {
		out = append(out, q)
	}
	return out, int64(len(out)), nil
}

func (r *fakeQuotationRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.quotations, id)
	return nil
}

type fakeItemRepo struct {
	items map[uuid.UUID]*entity.Item
}

func newFakeItemRepo(items ...*entity.Item) *fakeItemRepo {
	r := &fakeItemRepo{items: make(map[uuid.UUID]*entity.Item)}
	for _, i := range items {
		if i.ID == uuid.Nil {
			i.ID = uuid.New()
		}
		r.items[i.ID] = i
	}
	return r
}

func (r *fakeItemRepo) Create(_ context.Context, item *entity.Item) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.items[item.ID] = item
	return nil
}

func (r *fakeItemRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Item, error) {
	i, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return i, nil
}

func (r *fakeItemRepo) List(_ context.Context, _ *pagination.PaginationParams) ([]*entity.Item, int64, error) {
	var out []*entity.Item
	for _, i := range r.items {
		out = append(out, i)
	}
	return out, int64(len(out)), nil
}

func (r *fakeItemRepo) ListLowStock(_ context.Context) ([]*entity.Item, error) {
	var out []*entity.Item
	for _, i := range r.items {
		if i.Quantity <= i.QuantityAlert {
			out = append(out, i)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) Update(_ context.Context, item *entity.Item) error {
	r.items[item.ID] = item
	return nil
}

func (r *fakeItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

func (r *fakeItemRepo) AddQuantity(_ context.Context, id uuid.UUID, amount int) error {
	i, ok := r.items[id]
	if !ok {
		return apperror.NewNotFoundError("Item")
	}
	i.Quantity += amount
	return nil
}

func (r *fakeItemRepo) RemoveQuantity(_ context.Context, id uuid.UUID, amount int) error {
	i, ok := r.items[id]
	if !ok {
		return apperror.NewNotFoundError("Item")
	}
	if i.Quantity < amount {
		return apperror.ErrInsufficientStock
	}
	i.Quantity -= amount
	return nil
}
