package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for catalog operations
var (
	// ErrServerOffline indicates the catalog API is unreachable
	ErrServerOffline = errors.New("catalog server is unreachable")

	// ErrMalformedPayload indicates a response that does not match its schema
	ErrMalformedPayload = errors.New("malformed payload")

	// ErrInvalidConfig indicates a configuration value that cannot be used
	ErrInvalidConfig = errors.New("invalid configuration")
)

// HTTPStatusError reports a non-200 response from the catalog API.
type HTTPStatusError struct {
	URL        string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	if e == nil {
		return "HTTP status error"
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}
