package request

// CreateShopRequest represents a create shop request
type CreateShopRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}
