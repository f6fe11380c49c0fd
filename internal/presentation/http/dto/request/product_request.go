package request

// ProductFilterRequest represents catalog filter parameters
type ProductFilterRequest struct {
	Search   string `form:"search" binding:"omitempty,max=100"`
	Category string `form:"category" binding:"omitempty,max=100"`
}
