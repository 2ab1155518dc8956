package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kmutua/dukabook-api/internal/application/service"
	"github.com/kmutua/dukabook-api/internal/presentation/http/dto/request"
	"github.com/kmutua/dukabook-api/internal/presentation/http/dto/response"
)

// QuotationHandler handles quotation HTTP requests
type QuotationHandler struct {
	quotationService *service.QuotationService
}

// NewQuotationHandler creates a new quotation handler
func NewQuotationHandler(quotationService *service.QuotationService) *QuotationHandler {
	return &QuotationHandler{quotationService: quotationService}
}

// Generate handles quotation generation
func (h *QuotationHandler) Generate(c *gin.Context) {
	var req request.GenerateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	lines := make([]service.QuotationLineInput, 0, len(req.Lines))
	for _, line := range req.Lines {
		productID, err := uuid.Parse(line.ProductID)
		if err != nil {
			response.BadRequest(c, "Invalid product ID")
			return
		}
		lines = append(lines, service.QuotationLineInput{
			ProductID:          productID,
			Quantity:           line.Quantity,
			CostPrice:          line.CostPrice,
			RetailPrice:        line.RetailPrice,
			DiscountPercentage: line.DiscountPercentage,
			SalePrice:          line.SalePrice,
		})
	}

	result, err := h.quotationService.GenerateQuotation(c.Request.Context(), &service.GenerateQuotationInput{
		CustomerID: customerID,
		Lines:      lines,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Quotation generated successfully", result)
}

// List handles listing quotations
func (h *QuotationHandler) List(c *gin.Context) {
	params := GetPaginationParams(c)

	result, err := h.quotationService.ListQuotations(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Quotations retrieved successfully", result)
}

// Get handles retrieving a single quotation with its lines
func (h *QuotationHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quotation ID")
		return
	}

	quotation, err := h.quotationService.GetQuotation(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quotation retrieved successfully", quotation)
}
