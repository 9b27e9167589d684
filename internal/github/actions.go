package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
)

// PublicKey is a repository's Actions secrets public key.
type PublicKey struct {
	KeyID string `json:"key_id"`

	// Key is the base64-encoded X25519 public key.
	Key string `json:"key"`
}

// EncryptedSecret is the request body for creating or updating a secret.
type EncryptedSecret struct {
	EncryptedValue string `json:"encrypted_value"`
	KeyID          string `json:"key_id"`
}

var secretNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateSecretName checks GitHub's naming rules for Actions secrets:
// alphanumerics and underscores, no leading digit, no GITHUB_ prefix.
func ValidateSecretName(name string) error {
	if name == "" {
		return errors.New("secret name is empty")
	}
	if !secretNamePattern.MatchString(name) {
		return errors.Newf("secret name %q may only contain letters, digits and underscores and must not start with a digit", name)
	}
	if strings.HasPrefix(strings.ToUpper(name), "GITHUB_") {
		return errors.Newf("secret name %q must not start with GITHUB_", name)
	}
	return nil
}

func repoPath(owner, repo string) string {
	return "/repos/" + url.PathEscape(owner) + "/" + url.PathEscape(repo)
}

// GetRepoPublicKey fetches the key used to seal secrets for owner/repo.
// Only a 200 response is accepted.
func (client *Client) GetRepoPublicKey(ctx context.Context, owner, repo string) (*PublicKey, error) {
	path := repoPath(owner, repo) + "/actions/secrets/public-key"

	status, body, err := client.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, newAPIError(status, body)
	}

	var key PublicKey
	if err := json.Unmarshal(body, &key); err != nil {
		return nil, errors.Wrapf(err, "github: decoding public key for %s/%s", owner, repo)
	}
	if key.Key == "" || key.KeyID == "" {
		return nil, errors.Newf("github: public key response for %s/%s is missing key or key_id", owner, repo)
	}

	return &key, nil
}

// PutRepoSecret creates or updates the named secret. It reports created=true
// for 201 and created=false for 204; any other status is an *APIError.
func (client *Client) PutRepoSecret(ctx context.Context, owner, repo, name string, secret EncryptedSecret) (created bool, err error) {
	if err := ValidateSecretName(name); err != nil {
		return false, err
	}
	path := fmt.Sprintf("%s/actions/secrets/%s", repoPath(owner, repo), url.PathEscape(name))

	status, body, err := client.do(ctx, http.MethodPut, path, secret)
	if err != nil {
		return false, err
	}

	switch status {
	case http.StatusCreated:
		return true, nil
	case http.StatusNoContent:
		return false, nil
	default:
		return false, newAPIError(status, body)
	}
}
