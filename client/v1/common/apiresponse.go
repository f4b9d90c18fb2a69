package common

// APIResponse is the success envelope every ponto endpoint returns.
type APIResponse[T any] struct {
	Data T `json:"data"`
}

// APIError mirrors the coded error envelope. Code is one of the
// registration failure codes, empty for plain validation errors.
type APIError struct {
	Code      string `json:"code,omitempty"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable,omitempty"`
}
