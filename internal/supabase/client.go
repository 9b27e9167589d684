package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	logger "github.com/goonidz/ghsecret/internal/logging"

	"github.com/cockroachdb/errors"
)

// DefaultBaseURL is the public Management API.
const DefaultBaseURL = "https://api.supabase.com"

// ServiceRoleKeyName is the name the API gives the secret server-side key.
const ServiceRoleKeyName = "service_role"

const maxResponseBytes = 1 << 20

// ErrServiceRoleKeyNotFound is returned when the key list has no usable
// service_role entry.
var ErrServiceRoleKeyNotFound = errors.New("supabase: no service_role key in response")

// Config holds configuration for creating a Client.
type Config struct {
	// BaseURL defaults to DefaultBaseURL. Must use HTTPS.
	BaseURL string

	// Token is a Supabase personal access token.
	Token string

	HTTPClient *http.Client
	Logger     logger.Logger
}

// Client talks to the Supabase Management API.
type Client struct {
	baseURL    string
	authHeader string
	httpClient *http.Client
	log        logger.Logger
}

// NewClient validates config and returns a ready Client.
func NewClient(config Config) (*Client, error) {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	if !strings.HasPrefix(baseURL, "https://") {
		return nil, errors.Newf("supabase: API client requires HTTPS (got %q)", baseURL)
	}
	if config.Token == "" {
		return nil, errors.New("supabase: no token configured")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		baseURL:    baseURL,
		authHeader: "Bearer " + config.Token,
		httpClient: httpClient,
		log:        config.Logger,
	}, nil
}

// APIKey is one entry of a project's API key list.
type APIKey struct {
	Name   string `json:"name"`
	APIKey string `json:"api_key"`
}

// APIError represents a non-200 answer from the Management API.
type APIError struct {
	StatusCode int

	// Message is the "message" field of the error document, or the raw body.
	Message string

	// Body is the raw response body.
	Body string
}

func (err *APIError) Error() string {
	if err.Message == "" {
		return fmt.Sprintf("supabase: HTTP %d", err.StatusCode)
	}
	return fmt.Sprintf("supabase: HTTP %d: %s", err.StatusCode, err.Message)
}

// IsUnauthorized reports whether err is a 401 or 403 response.
func IsUnauthorized(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) &&
		(apiError.StatusCode == http.StatusUnauthorized || apiError.StatusCode == http.StatusForbidden)
}

func newAPIError(statusCode int, body []byte) *APIError {
	apiError := &APIError{StatusCode: statusCode, Body: string(body), Message: string(body)}

	var wireError struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &wireError) == nil && wireError.Message != "" {
		apiError.Message = wireError.Message
	}
	return apiError
}

// ListAPIKeys returns the API keys of the project. Only a 200 response is
// accepted.
func (client *Client) ListAPIKeys(ctx context.Context, projectRef string) ([]APIKey, error) {
	if projectRef == "" {
		return nil, errors.New("supabase: project ref is empty")
	}
	requestURL := client.baseURL + "/v1/projects/" + url.PathEscape(projectRef) + "/api-keys"

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "supabase: creating request")
	}
	request.Header.Set("Authorization", client.authHeader)
	request.Header.Set("Accept", "application/json")
	request.Header.Set("User-Agent", "ghsecret")

	client.log.Debugf("GET %s", requestURL)
	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, errors.Wrapf(err, "supabase: GET %s", requestURL)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return nil, errors.Wrap(err, "supabase: reading response body")
	}
	client.log.Debugf("GET %s -> %d (%d bytes)", requestURL, response.StatusCode, len(body))

	if response.StatusCode != http.StatusOK {
		return nil, newAPIError(response.StatusCode, body)
	}

	var keys []APIKey
	if err := json.Unmarshal(body, &keys); err != nil {
		return nil, errors.Wrapf(err, "supabase: decoding api keys for %s", projectRef)
	}
	return keys, nil
}

// ServiceRoleKey returns the service_role key of the project.
func (client *Client) ServiceRoleKey(ctx context.Context, projectRef string) (string, error) {
	keys, err := client.ListAPIKeys(ctx, projectRef)
	if err != nil {
		return "", err
	}
	for _, key := range keys {
		if key.Name == ServiceRoleKeyName && key.APIKey != "" {
			return key.APIKey, nil
		}
	}
	return "", ErrServiceRoleKeyNotFound
}
