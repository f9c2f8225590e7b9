package model

// PagedEmployees is the envelope for the employee list endpoint. TotalCount
// is the number of matching records before pagination.
type PagedEmployees struct {
	Items      []Employee `json:"items"`
	TotalCount int64      `json:"total_count"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
}

// ErrorResponse is the standard envelope for error responses.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains the structured error information returned by the API.
type ErrorDetail struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
