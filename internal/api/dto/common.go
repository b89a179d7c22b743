package dto

// PaginationResponse carries the total row count alongside the applied
// limit and offset
type PaginationResponse struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

func NewPaginationResponse(total, limit, offset int) PaginationResponse {
	return PaginationResponse{Total: total, Limit: limit, Offset: offset}
}
