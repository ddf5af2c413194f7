package entity

// APIResponse is the envelope every gateway endpoint answers with.
type APIResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

// APIError carries a stable machine-readable code next to the message.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewSuccessResponse(data any, message string) *APIResponse {
	return &APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func NewErrorResponse(code, message string) *APIResponse {
	return &APIResponse{
		Message: message,
		Error:   &APIError{Code: code, Message: message},
	}
}

// WithData attaches a payload to a failure, such as the per-dependency
// report of a degraded health check.
func (r *APIResponse) WithData(data any) *APIResponse {
	r.Data = data
	return r
}
