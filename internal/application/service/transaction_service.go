package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kmutua/dukabook-api/internal/domain/entity"
	"github.com/kmutua/dukabook-api/internal/domain/enum"
	"github.com/kmutua/dukabook-api/internal/domain/repository"
	infraRepo "github.com/kmutua/dukabook-api/internal/infrastructure/repository"
	"github.com/kmutua/dukabook-api/pkg/apperror"
	"github.com/kmutua/dukabook-api/pkg/pagination"
)

// TransactionService handles ledger transaction operations
type TransactionService struct {
	transactionRepo repository.TransactionRepository
	customerRepo    repository.CustomerRepository
}

// NewTransactionService creates a new transaction service
func NewTransactionService(transactionRepo repository.TransactionRepository, customerRepo repository.CustomerRepository) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		customerRepo:    customerRepo,
	}
}

// CreateTransactionInput represents the create transaction input
type CreateTransactionInput struct {
	CustomerID    uuid.UUID
	Type          enum.TransactionType
	TotalAmount   float64
	Payable       float64
	Receivable    float64
	Category      *string
	PaymentMethod enum.PaymentMethod
	Description   *string
	Date          time.Time
	DueDate       *time.Time
}

// validateTransactionInput rejects any transaction that would break the
// ledger shape before a write is attempted. Exactly one of payable or
// receivable must be set, it must equal the total, and it must agree with the
// declared type.
func validateTransactionInput(input *CreateTransactionInput) error {
	var fieldErrors []apperror.FieldError

	if !input.Type.Valid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "type", Message: "must be payable or receivable"})
	}
	if !input.PaymentMethod.Valid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "payment_method", Message: "invalid payment method"})
	}
	if input.TotalAmount <= 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "total_amount", Message: "must be greater than zero"})
	}

	switch input.Type {
	case enum.TransactionTypePayable:
		if input.Payable != input.TotalAmount {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "payable", Message: "must equal total_amount for payable transactions"})
		}
		if input.Receivable != 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "receivable", Message: "must be zero for payable transactions"})
		}
	case enum.TransactionTypeReceivable:
		if input.Receivable != input.TotalAmount {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "receivable", Message: "must equal total_amount for receivable transactions"})
		}
		if input.Payable != 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "payable", Message: "must be zero for receivable transactions"})
		}
	}

	if input.Date.IsZero() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "date", Message: "is required"})
	} else {
		today := time.Now().Truncate(24 * time.Hour).Add(24*time.Hour - time.Nanosecond)
		if input.Date.After(today) {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "date", Message: "cannot be in the future"})
		}
	}

	if input.PaymentMethod == enum.PaymentMethodCredit && input.DueDate == nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "due_date", Message: "is required for credit transactions"})
	}

	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// CreateTransaction validates and records a new transaction in the current
// shop scope. Nothing is written when validation fails.
func (s *TransactionService) CreateTransaction(ctx context.Context, input *CreateTransactionInput) (*entity.Transaction, error) {
	shopID, ok := infraRepo.GetShopID(ctx)
	if !ok {
		return nil, apperror.ErrScopeRequired
	}

	if err := validateTransactionInput(input); err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	transaction := &entity.Transaction{
		ShopID:        shopID,
		CustomerID:    input.CustomerID,
		Type:          input.Type,
		TotalAmount:   input.TotalAmount,
		Payable:       input.Payable,
		Receivable:    input.Receivable,
		Category:      input.Category,
		PaymentMethod: input.PaymentMethod,
		Description:   input.Description,
		Date:          input.Date,
		DueDate:       input.DueDate,
	}

	if err := s.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, err
	}

	return transaction, nil
}

// GetTransaction retrieves a transaction by ID
func (s *TransactionService) GetTransaction(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	transaction, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	return transaction, nil
}

// ListTransactions lists transactions in the current shop scope
func (s *TransactionService) ListTransactions(ctx context.Context, params *pagination.PaginationParams, filter repository.TransactionFilter) (*pagination.PaginatedResult[*entity.Transaction], error) {
	transactions, total, err := s.transactionRepo.List(ctx, params, filter)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(transactions, pag), nil
}

// ListDueTransactions lists credit transactions due on or before today
func (s *TransactionService) ListDueTransactions(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[*entity.Transaction], error) {
	transactions, total, err := s.transactionRepo.ListDue(ctx, time.Now(), params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(transactions, pag), nil
}

// UpdateTransaction replaces a transaction's recorded values, re-validating
// the full input as if it were new.
func (s *TransactionService) UpdateTransaction(ctx context.Context, id uuid.UUID, input *CreateTransactionInput) (*entity.Transaction, error) {
	transaction, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}

	if err := validateTransactionInput(input); err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	transaction.CustomerID = input.CustomerID
	transaction.Type = input.Type
	transaction.TotalAmount = input.TotalAmount
	transaction.Payable = input.Payable
	transaction.Receivable = input.Receivable
	transaction.Category = input.Category
	transaction.PaymentMethod = input.PaymentMethod
	transaction.Description = input.Description
	transaction.Date = input.Date
	transaction.DueDate = input.DueDate

	if err := s.transactionRepo.Update(ctx, transaction); err != nil {
		return nil, err
	}

	return transaction, nil
}

// DeleteTransaction deletes a transaction
func (s *TransactionService) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	transaction, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if transaction == nil {
		return apperror.NewNotFoundError("Transaction")
	}

	return s.transactionRepo.Delete(ctx, id)
}
