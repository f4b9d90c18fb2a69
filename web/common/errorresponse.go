package common

// ErrorResponse carries a user-facing message plus the machine code of
// the failure taxonomy (empty for plain validation errors).
type ErrorResponse struct {
	Code      string `json:"code,omitempty"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable,omitempty"`
}

func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{
		Message: message,
	}
}

func NewCodedErrorResponse(code, message string, retryable bool) *ErrorResponse {
	return &ErrorResponse{
		Code:      code,
		Message:   message,
		Retryable: retryable,
	}
}
