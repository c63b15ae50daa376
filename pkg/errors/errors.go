package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes
const (
	CodeAppError    = "APP_ERROR"
	CodeAPIError    = "API_ERROR"
	CodeValidation  = "VALIDATION_ERROR"
	CodeCache       = "CACHE_ERROR"
	CodeService     = "SERVICE_ERROR"
	CodeCircuitOpen = "CIRCUIT_OPEN"
)

var (
	// ErrUnauthorized is matched by APIError values carrying a 401 status.
	ErrUnauthorized = stderrors.New("unauthorized")
	// ErrCircuitOpen is matched when the backend circuit breaker rejects a call.
	ErrCircuitOpen = stderrors.New("circuit breaker open")
)

type AppError struct {
	Message    string
	Code       string
	StatusCode int
	Context    map[string]any
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func NewAppError(message, code string, statusCode int, context map[string]any) *AppError {
	return &AppError{
		Message:    message,
		Code:       code,
		StatusCode: statusCode,
		Context:    context,
	}
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

type APIError struct {
	*AppError
}

func NewAPIError(message string, statusCode int, context map[string]any) *APIError {
	return &APIError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeAPIError,
			StatusCode: statusCode,
			Context:    context,
		},
	}
}

// WithCause keeps the *APIError type when attaching a cause.
func (e *APIError) WithCause(cause error) *APIError {
	e.Cause = cause
	return e
}

// Is lets errors.Is(err, ErrUnauthorized) and errors.Is(err, ErrCircuitOpen)
// match on status and code.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == 401
	case ErrCircuitOpen:
		return e.Code == CodeCircuitOpen
	}
	return false
}

// Retryable reports whether the request that produced e may succeed on retry.
func (e *APIError) Retryable() bool {
	if e.Code == CodeCircuitOpen {
		return false
	}
	return e.StatusCode == 429 || e.StatusCode >= 500
}

func NewCircuitOpenError(context map[string]any) *APIError {
	return &APIError{
		AppError: &AppError{
			Message:    "Circuit breaker open",
			Code:       CodeCircuitOpen,
			StatusCode: 503,
			Context:    context,
		},
	}
}

type ValidationError struct {
	*AppError
	Field string
	Value any
}

func NewValidationError(message, field string, value any) *ValidationError {
	return &ValidationError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeValidation,
			StatusCode: 400,
			Context: map[string]any{
				"field": field,
				"value": value,
			},
		},
		Field: field,
		Value: value,
	}
}

type CacheError struct {
	*AppError
	Operation string
	Key       string
}

func NewCacheError(message, operation, key string, cause error) *CacheError {
	return &CacheError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeCache,
			StatusCode: 500,
			Context: map[string]any{
				"operation": operation,
				"key":       key,
			},
			Cause: cause,
		},
		Operation: operation,
		Key:       key,
	}
}

type ServiceError struct {
	*AppError
	Service   string
	Operation string
}

func NewServiceError(message, service, operation string, cause error) *ServiceError {
	return &ServiceError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeService,
			StatusCode: 500,
			Context: map[string]any{
				"service":   service,
				"operation": operation,
			},
			Cause: cause,
		},
		Service:   service,
		Operation: operation,
	}
}
