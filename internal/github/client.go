package github

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	logger "github.com/goonidz/ghsecret/internal/logging"

	"github.com/cockroachdb/errors"
)

// APIVersion is sent as X-GitHub-Api-Version on every request.
const APIVersion = "2022-11-28"

// DefaultBaseURL is the public GitHub API.
const DefaultBaseURL = "https://api.github.com"

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 1 << 20

// Config holds configuration for creating a Client.
type Config struct {
	// BaseURL is the root URL for API requests. Defaults to DefaultBaseURL.
	// Must use HTTPS.
	BaseURL string

	// Token is a personal access token or fine-grained token.
	Token string

	// HTTPClient defaults to a client with a 30 second timeout.
	HTTPClient *http.Client

	Logger logger.Logger
}

// Client talks to the GitHub REST API with a static Bearer token.
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
		return nil, errors.Newf("github: API client requires HTTPS (got %q)", baseURL)
	}
	if config.Token == "" {
		return nil, errors.New("github: no token configured")
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

// BaseURL returns the normalized API root.
func (client *Client) BaseURL() string {
	return client.baseURL
}

// do executes an authenticated request and returns the status code and the
// response body. A non-nil error means no usable response was received;
// status handling is left to the caller.
func (client *Client) do(ctx context.Context, method, path string, requestBody any) (int, []byte, error) {
	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return 0, nil, errors.Wrap(err, "github: encoding request body")
		}
		bodyReader = bytes.NewReader(encoded)
	}

	url := client.baseURL + path
	request, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return 0, nil, errors.Wrap(err, "github: creating request")
	}

	request.Header.Set("Authorization", client.authHeader)
	request.Header.Set("Accept", "application/vnd.github+json")
	request.Header.Set("X-GitHub-Api-Version", APIVersion)
	request.Header.Set("User-Agent", "ghsecret")
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	client.log.Debugf("%s %s", method, url)
	response, err := client.httpClient.Do(request)
	if err != nil {
		return 0, nil, errors.Wrapf(err, "github: %s %s", method, url)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return response.StatusCode, nil, errors.Wrap(err, "github: reading response body")
	}
	client.log.Debugf("%s %s -> %d (%d bytes)", method, url, response.StatusCode, len(body))

	return response.StatusCode, body, nil
}
