package errors

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Display       string         `json:"message"`
	Code          string         `json:"code,omitempty"`
	InternalError string         `json:"internal_error,omitempty"`
	Details       map[string]any `json:"details,omitempty"`
}

// CodeFromErr extracts the machine readable code from a marked error
func CodeFromErr(err error) string {
	var ie *InternalError
	if As(err, &ie) {
		return ie.Code
	}
	return ErrCodeSystemError
}
