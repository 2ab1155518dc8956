package request

// CreateProductRequest represents a create product request
type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=255"`
	Category    string  `json:"category" binding:"max=100"`
	CostPrice   float64 `json:"cost_price" binding:"gte=0"`
	RetailPrice float64 `json:"retail_price" binding:"gte=0"`
}

// UpdateProductRequest represents an update product request
type UpdateProductRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=1,max=255"`
	Category    *string  `json:"category" binding:"omitempty,max=100"`
	CostPrice   *float64 `json:"cost_price" binding:"omitempty,gte=0"`
	RetailPrice *float64 `json:"retail_price" binding:"omitempty,gte=0"`
}

// CreateItemRequest represents a create inventory item request
type CreateItemRequest struct {
	ProductID          string  `json:"product_id" binding:"required,uuid"`
	Quantity           int     `json:"quantity" binding:"gte=0"`
	QuantityAlert      int     `json:"quantity_alert" binding:"gte=0"`
	ColorCode          *string `json:"color_code" binding:"omitempty,max=50"`
	Category           string  `json:"category" binding:"max=100"`
	DiscountPercentage float64 `json:"discount_percentage" binding:"gte=0,lte=100"`
}

// UpdateItemRequest represents an update item request. Quantity is not here;
// stock levels only move through the quantity adjustment endpoint.
type UpdateItemRequest struct {
	QuantityAlert      *int     `json:"quantity_alert" binding:"omitempty,gte=0"`
	ColorCode          *string  `json:"color_code" binding:"omitempty,max=50"`
	Category           *string  `json:"category" binding:"omitempty,max=100"`
	DiscountPercentage *float64 `json:"discount_percentage" binding:"omitempty,gte=0,lte=100"`
}

// AdjustQuantityRequest represents a stock adjustment request
type AdjustQuantityRequest struct {
	Operation string `json:"operation" binding:"required,oneof=add remove"`
	Amount    int    `json:"amount" binding:"required,gt=0"`
}
