package request

// QuotationLineRequest is one requested quotation line. Cost and retail carry
// the values as entered on the line; SalePrice, when present, is a manual
// override. Omitted, the server derives the sale price from retail and
// discount.
type QuotationLineRequest struct {
	ProductID          string   `json:"product_id" binding:"required,uuid"`
	Quantity           int      `json:"quantity" binding:"required,gte=1"`
	CostPrice          float64  `json:"cost_price" binding:"gte=0"`
	RetailPrice        float64  `json:"retail_price" binding:"gte=0"`
	DiscountPercentage float64  `json:"discount_percentage" binding:"gte=0,lte=100"`
	SalePrice          *float64 `json:"sale_price,omitempty" binding:"omitempty,gte=0"`
}

// GenerateQuotationRequest represents a quotation generation request
type GenerateQuotationRequest struct {
	CustomerID string                 `json:"customer_id" binding:"required,uuid"`
	Lines      []QuotationLineRequest `json:"lines" binding:"required,min=1,dive"`
}
