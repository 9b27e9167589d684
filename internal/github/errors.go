package github

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

// APIError represents an unexpected status from the GitHub REST API.
type APIError struct {
	StatusCode int

	// Message is GitHub's "message" field, or the raw body when the body
	// is not a GitHub error document.
	Message string

	DocumentationURL string

	// Body is the raw response body.
	Body string
}

func (err *APIError) Error() string {
	if err.Message == "" {
		return fmt.Sprintf("github: HTTP %d", err.StatusCode)
	}
	return fmt.Sprintf("github: HTTP %d: %s", err.StatusCode, err.Message)
}

// IsUnauthorized reports whether err is a 401 or 403 response, which for
// these endpoints means the token is invalid or lacks the repo scope.
func IsUnauthorized(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) &&
		(apiError.StatusCode == http.StatusUnauthorized || apiError.StatusCode == http.StatusForbidden)
}

// IsNotFound reports whether err is a 404 response. GitHub also answers 404
// when the token cannot see a private repository.
func IsNotFound(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && apiError.StatusCode == http.StatusNotFound
}

func newAPIError(statusCode int, body []byte) *APIError {
	apiError := &APIError{StatusCode: statusCode, Body: string(body)}

	var wireError struct {
		Message          string `json:"message"`
		DocumentationURL string `json:"documentation_url"`
	}
	if json.Unmarshal(body, &wireError) == nil && wireError.Message != "" {
		apiError.Message = wireError.Message
		apiError.DocumentationURL = wireError.DocumentationURL
	} else {
		apiError.Message = string(body)
	}

	return apiError
}
