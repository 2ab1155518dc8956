package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kmutua/dukabook-api/internal/application/service"
	"github.com/kmutua/dukabook-api/internal/domain/enum"
	"github.com/kmutua/dukabook-api/internal/domain/repository"
	"github.com/kmutua/dukabook-api/internal/presentation/http/dto/request"
	"github.com/kmutua/dukabook-api/internal/presentation/http/dto/response"
)

const dateLayout = "2006-01-02"

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

func parseTransactionRequest(req *request.TransactionRequest) (*service.CreateTransactionInput, error) {
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, err
	}

	var dueDate *time.Time
	if req.DueDate != nil {
		d, err := time.Parse(dateLayout, *req.DueDate)
		if err != nil {
			return nil, err
		}
		dueDate = &d
	}

	return &service.CreateTransactionInput{
		CustomerID:    customerID,
		Type:          enum.TransactionType(req.Type),
		TotalAmount:   req.TotalAmount,
		Payable:       req.Payable,
		Receivable:    req.Receivable,
		Category:      req.Category,
		PaymentMethod: enum.PaymentMethod(req.PaymentMethod),
		Description:   req.Description,
		Date:          date,
		DueDate:       dueDate,
	}, nil
}

// Create handles recording a transaction
func (h *TransactionHandler) Create(c *gin.Context) {
	var req request.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	input, err := parseTransactionRequest(&req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	transaction, err := h.transactionService.CreateTransaction(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Transaction recorded successfully", transaction)
}

// Update handles updating a transaction
func (h *TransactionHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	var req request.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	input, err := parseTransactionRequest(&req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction updated successfully", transaction)
}

// List handles listing transactions with optional filters
func (h *TransactionHandler) List(c *gin.Context) {
	params := GetPaginationParams(c)

	var filter repository.TransactionFilter
	if customerIDStr := c.Query("customer_id"); customerIDStr != "" {
		customerID, err := uuid.Parse(customerIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid customer ID")
			return
		}
		filter.CustomerID = &customerID
	}
	if txType := c.Query("type"); txType != "" {
		filter.Type = &txType
	}
	if from := c.Query("date_from"); from != "" {
		t, err := time.Parse(dateLayout, from)
		if err != nil {
			response.BadRequest(c, "Invalid date_from")
			return
		}
		filter.DateFrom = &t
	}
	if to := c.Query("date_to"); to != "" {
		t, err := time.Parse(dateLayout, to)
		if err != nil {
			response.BadRequest(c, "Invalid date_to")
			return
		}
		filter.DateTo = &t
	}

	result, err := h.transactionService.ListTransactions(c.Request.Context(), params, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Transactions retrieved successfully", result)
}

// ListDue handles listing overdue credit transactions
func (h *TransactionHandler) ListDue(c *gin.Context) {
	params := GetPaginationParams(c)

	result, err := h.transactionService.ListDueTransactions(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Due transactions retrieved successfully", result)
}

// Get handles retrieving a single transaction
func (h *TransactionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	transaction, err := h.transactionService.GetTransaction(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction retrieved successfully", transaction)
}

// Delete handles deleting a transaction
func (h *TransactionHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
