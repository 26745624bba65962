package platformerrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	ErrorTypeNotFound   ErrorType = "NOT_FOUND"
	ErrorTypeValidation ErrorType = "VALIDATION"
	// ErrorTypeAttachment marks malformed or unreadable uploads. Never fatal:
	// the orchestrator degrades these into transcript notices.
	ErrorTypeAttachment ErrorType = "ATTACHMENT"
	// ErrorTypeProvider marks failures of the generative-language collaborator
	// (network, auth, quota, timeout).
	ErrorTypeProvider ErrorType = "PROVIDER"
	ErrorTypeStorage  ErrorType = "STORAGE"
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// Layer represents the application layer where the error occurred
type Layer string

const (
	LayerStore          Layer = "store"
	LayerDomain         Layer = "domain"
	LayerHandler        Layer = "handler"
	LayerRoute          Layer = "route"
	LayerInfrastructure Layer = "infrastructure"
)

// PlatformError carries the error category, the layer it surfaced in, and the
// request id of the request that triggered it.
type PlatformError struct {
	Type      ErrorType
	Layer     Layer
	Message   string
	Err       error
	RequestID string
	Timestamp time.Time
}

// Error implements the error interface
func (e *PlatformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s][%s] %s: %v", e.Layer, e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s][%s] %s", e.Layer, e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *PlatformError) Unwrap() error {
	return e.Err
}

// GetErrorType returns the error type
func (e *PlatformError) GetErrorType() ErrorType {
	return e.Type
}

type requestIDKey struct{}

// WithRequestID stores a request id in the context for error attribution.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func requestIDFromContext(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDKey{}).(string); ok {
		return requestID
	}
	return ""
}

// NewError creates a new PlatformError with the specified parameters
func NewError(ctx context.Context, layer Layer, errorType ErrorType, message string, err error) *PlatformError {
	return &PlatformError{
		Type:      errorType,
		Layer:     layer,
		Message:   message,
		Err:       err,
		RequestID: requestIDFromContext(ctx),
		Timestamp: time.Now().UTC(),
	}
}

// AsError wraps an error with layer context, preserving the type of an
// existing PlatformError in the chain.
func AsError(ctx context.Context, layer Layer, err error, message string) *PlatformError {
	if err == nil {
		return nil
	}

	var platformErr *PlatformError
	if errors.As(err, &platformErr) {
		return NewError(ctx, layer, platformErr.Type, fmt.Sprintf("%s: %s", message, platformErr.Message), platformErr)
	}

	return NewError(ctx, layer, ErrorTypeInternal, message, err)
}

// IsType reports whether err carries the given error type anywhere in its chain.
func IsType(err error, errorType ErrorType) bool {
	var platformErr *PlatformError
	if errors.As(err, &platformErr) {
		return platformErr.Type == errorType
	}
	return false
}

// ErrorTypeToHTTPStatus maps error types to HTTP status codes
func ErrorTypeToHTTPStatus(errorType ErrorType) int {
	switch errorType {
	case ErrorTypeNotFound:
		return http.StatusNotFound
	case ErrorTypeValidation, ErrorTypeAttachment:
		return http.StatusBadRequest
	case ErrorTypeProvider:
		return http.StatusBadGateway
	case ErrorTypeStorage, ErrorTypeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
