package entry

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// fakeAPI is a programmable stand-in for the HTTP client. Call counts let
// tests assert that local rejections never reach the network.
type fakeAPI struct {
	mu sync.Mutex

	searchFn       func(query string, limit int) ([]Customer, error)
	findOrCreateFn func(name string, phone *string) (*Customer, error)
	createTxFn     func(req TransactionRequest) error
	quotationFn    func(req QuotationRequest) (*QuotationResult, error)
	adjustFn       func(itemID uuid.UUID, operation string, amount int) (*Item, error)

	searchCalls       int
	findOrCreateCalls int
	createTxCalls     int
	quotationCalls    int
	adjustCalls       int
}

func (f *fakeAPI) SearchCustomers(_ context.Context, _ Session, query string, limit int) ([]Customer, error) {
	f.mu.Lock()
	f.searchCalls++
	fn := f.searchFn
	f.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(query, limit)
}

func (f *fakeAPI) FindOrCreateCustomer(_ context.Context, _ Session, name string, phone *string) (*Customer, error) {
	f.mu.Lock()
	f.findOrCreateCalls++
	fn := f.findOrCreateFn
	f.mu.Unlock()
	if fn == nil {
		return &Customer{ID: uuid.New(), Name: name, Phone: phone}, nil
	}
	return fn(name, phone)
}

func (f *fakeAPI) CreateTransaction(_ context.Context, _ Session, req TransactionRequest) error {
	f.mu.Lock()
	f.createTxCalls++
	fn := f.createTxFn
	f.mu.Unlock()
	if fn == nil {
		return nil
	}
	return fn(req)
}

func (f *fakeAPI) GenerateQuotation(_ context.Context, _ Session, req QuotationRequest) (*QuotationResult, error) {
	f.mu.Lock()
	f.quotationCalls++
	fn := f.quotationFn
	f.mu.Unlock()
	if fn == nil {
		return &QuotationResult{URL: "/documents/quotations/QT-TEST"}, nil
	}
	return fn(req)
}

func (f *fakeAPI) AdjustItemQuantity(_ context.Context, _ Session, itemID uuid.UUID, operation string, amount int) (*Item, error) {
	f.mu.Lock()
	f.adjustCalls++
	fn := f.adjustFn
	f.mu.Unlock()
	if fn == nil {
		return &Item{ID: itemID, Quantity: amount}, nil
	}
	return fn(itemID, operation, amount)
}

func (f *fakeAPI) calls() (search, findOrCreate, createTx, quotation, adjust int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.searchCalls, f.findOrCreateCalls, f.createTxCalls, f.quotationCalls, f.adjustCalls
}

func scopedSession() Session {
	return Session{UserID: uuid.New(), Role: ScopedRole{ShopID: uuid.New()}}
}

func unresolvedPrivilegedSession() Session {
	return Session{UserID: uuid.New(), Role: PrivilegedRole{}}
}
