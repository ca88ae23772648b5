package dto

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Error  string            `json:"error" example:"Forbidden"`
	Fields map[string]string `json:"fields,omitempty"`
}

// NewErrorResponse creates an error body with a message.
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}

// WithFields attaches per-field validation messages.
func (e ErrorResponse) WithFields(fields map[string]string) ErrorResponse {
	e.Fields = fields
	return e
}
