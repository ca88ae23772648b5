package dto

// SuccessResponse acknowledges a mutation.
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}

// Success is the shared acknowledgement body.
var Success = SuccessResponse{Success: true}

// PaginationInfo describes a page of a listing.
type PaginationInfo struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	PageSize    int   `json:"page_size"`
	TotalItems  int64 `json:"total_items"`
}

// HealthResponse reports liveness and dependency readiness.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
