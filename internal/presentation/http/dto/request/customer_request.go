package request

// CreateCustomerRequest represents a create customer request. It doubles as
// the find-or-create payload.
type CreateCustomerRequest struct {
	Name  string  `json:"name" binding:"required,min=1,max=255"`
	Phone *string `json:"phone" binding:"omitempty,max=50"`
}

// UpdateCustomerRequest represents an update customer request
type UpdateCustomerRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=255"`
	Phone *string `json:"phone" binding:"omitempty,max=50"`
}
