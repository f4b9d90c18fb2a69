package core

import (
	"errors"
	"fmt"
)

// Registration failure codes. Every failed register attempt maps to
// exactly one of these; none are silently swallowed.
const (
	CodeOutOfPerimeter        = "OUT_OF_PERIMETER"
	CodeNoReferencePhoto      = "NO_REFERENCE_PHOTO"
	CodeBiometricMismatch     = "BIOMETRIC_MISMATCH"
	CodeBiometricServiceError = "BIOMETRIC_SERVICE_ERROR"
	CodeCameraUnavailable     = "CAMERA_UNAVAILABLE"
	CodeStoreWriteFailure     = "STORE_WRITE_FAILURE"
	CodePermissionDenied      = "PERMISSION_DENIED"
)

var (
	ErrOutOfPerimeter   = &RegistrationError{Code: CodeOutOfPerimeter, Message: "fora do perímetro de registro"}
	ErrNoReferencePhoto = &RegistrationError{Code: CodeNoReferencePhoto, Message: "nenhuma foto de referência cadastrada"}
	ErrPermissionDenied = &RegistrationError{Code: CodePermissionDenied, Message: "sem permissão para registrar ponto"}
)

// RegistrationError carries the taxonomy code to the edge, where it is
// mapped to an HTTP status and a user-facing message. Mismatches embed
// the observed confidence so the message can show a percentage.
type RegistrationError struct {
	Code       string
	Message    string
	Confidence float64
	Err        error
}

func (e *RegistrationError) Error() string {
	if e.Code == CodeBiometricMismatch {
		return fmt.Sprintf("%s: %s (%.0f%%)", e.Code, e.Message, e.Confidence*100)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *RegistrationError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure is transient from the user's
// point of view: try again vs contact support / move location.
func (e *RegistrationError) Retryable() bool {
	switch e.Code {
	case CodeBiometricMismatch, CodeBiometricServiceError, CodeCameraUnavailable, CodeStoreWriteFailure:
		return true
	}
	return false
}

func NewBiometricMismatch(confidence float64) *RegistrationError {
	return &RegistrationError{
		Code:       CodeBiometricMismatch,
		Message:    "o rosto capturado não confere com a foto de referência",
		Confidence: confidence,
	}
}

func NewBiometricServiceError(err error) *RegistrationError {
	return &RegistrationError{
		Code:    CodeBiometricServiceError,
		Message: "falha no serviço de verificação facial",
		Err:     err,
	}
}

func NewStoreWriteFailure(err error) *RegistrationError {
	return &RegistrationError{
		Code:    CodeStoreWriteFailure,
		Message: "falha ao gravar o registro de ponto",
		Err:     err,
	}
}

// AsRegistrationError unwraps err to a *RegistrationError if there is
// one in the chain.
func AsRegistrationError(err error) (*RegistrationError, bool) {
	var re *RegistrationError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
