package sharepoint

import (
	"errors"
	"fmt"
	"net/http"
)

// SharePoint-specific errors.
var (
	// ErrConfigMissing indicates the client was built without a base URL,
	// site or library.
	ErrConfigMissing = errors.New("sharepoint: incomplete configuration")

	// ErrEmptyResponse indicates the server returned a response without
	// the expected OData payload.
	ErrEmptyResponse = errors.New("sharepoint: empty response payload")
)

// APIError represents a SharePoint REST error response.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("sharepoint: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// IsNotFound checks if the error indicates a resource was not found.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// IsUnauthorized checks if the error indicates an authentication failure.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized
	}
	return false
}

// IsForbidden checks if the error indicates a forbidden resource.
func IsForbidden(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusForbidden
	}
	return false
}
