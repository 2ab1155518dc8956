package request

// TransactionRequest represents a create or update transaction request. The
// same shape is used for both; updates are re-validated in full.
type TransactionRequest struct {
	CustomerID    string  `json:"customer_id" binding:"required,uuid"`
	Type          string  `json:"type" binding:"required,oneof=payable receivable"`
	TotalAmount   float64 `json:"total_amount" binding:"required,gt=0"`
	Payable       float64 `json:"payable"`
	Receivable    float64 `json:"receivable"`
	Category      *string `json:"category" binding:"omitempty,max=100"`
	PaymentMethod string  `json:"payment_method" binding:"required"`
	Description   *string `json:"description"`
	Date          string  `json:"date" binding:"required"`
	DueDate       *string `json:"due_date"`
}
