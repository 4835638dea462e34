package transform

import "errors"

// Error codes
const (
	ErrCodeShape  = "SHAPE_MISMATCH"
	ErrCodeConfig = "INVALID_CONFIG"
)

// TransformError represents transform-related errors
type TransformError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *TransformError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *TransformError) Unwrap() error {
	return e.Cause
}

// NewShapeError creates an error for input arrays that violate the shape contract
func NewShapeError(message string) *TransformError {
	return &TransformError{
		Code:    ErrCodeShape,
		Message: message,
	}
}

// NewConfigError creates an error for invalid construction-time configuration
func NewConfigError(message string) *TransformError {
	return &TransformError{
		Code:    ErrCodeConfig,
		Message: message,
	}
}

// IsShapeError reports whether err is a shape contract violation
func IsShapeError(err error) bool {
	var te *TransformError
	return errors.As(err, &te) && te.Code == ErrCodeShape
}

// IsConfigError reports whether err is a configuration error
func IsConfigError(err error) bool {
	var te *TransformError
	return errors.As(err, &te) && te.Code == ErrCodeConfig
}
