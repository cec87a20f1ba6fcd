package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("shortcode not found")
	ErrDuplicateCode    = errors.New("shortcode already exists")
	ErrExpired          = errors.New("link expired")
	ErrInvalidURL       = errors.New("invalid URL")
	ErrInvalidShortCode = errors.New("invalid shortcode")
)

type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the sentinel kind so callers can use errors.Is.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidationError(field, message string, kind error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     kind,
	}
}

// BusinessError is an internal failure. Its details are logged, never sent to clients.
type BusinessError struct {
	Code    string
	Message string
	Cause   error
}

func (e *BusinessError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Cause
}

// Is matches on Code so wrapped copies of the package-level errors compare equal.
func (e *BusinessError) Is(target error) bool {
	t, ok := target.(*BusinessError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

func NewBusinessError(code, message string, cause error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

var ErrShortCodeGeneration = NewBusinessError("SHORT_CODE_GENERATION", "failed to generate unique short code", nil)

// IsValidationError проверяет является ли ошибка ошибкой валидации
func IsValidationError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsBusinessError проверяет является ли ошибка бизнес-ошибкой
func IsBusinessError(err error) bool {
	var businessErr *BusinessError
	return errors.As(err, &businessErr)
}

func GetValidationError(err error) *ValidationError {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr
	}
	return nil
}

// GetBusinessError извлекает BusinessError из ошибки
func GetBusinessError(err error) *BusinessError {
	var businessErr *BusinessError
	if errors.As(err, &businessErr) {
		return businessErr
	}
	return nil
}
