package workflows

import (
	"context"
	"net/http"

	"github.com/goonidz/ghsecret/internal/configs"
	kerrors "github.com/goonidz/ghsecret/internal/errors"
	"github.com/goonidz/ghsecret/internal/github"
	logger "github.com/goonidz/ghsecret/internal/logging"
	"github.com/goonidz/ghsecret/internal/secrets"

	"github.com/cockroachdb/errors"
)

// FetchKeyOptions configures the key workflow.
type FetchKeyOptions struct {
	Target configs.Target
	Token  string

	// HTTPClient overrides the default client. Tests inject the
	// httptest server's client here.
	HTTPClient *http.Client

	Logger logger.Logger
}

// FetchKeyResult contains the repository public key.
type FetchKeyResult struct {
	Target configs.Target
	Key    github.PublicKey
}

// FetchKey retrieves the repository's Actions public key and checks that it
// is a usable X25519 key.
//
// Returns ErrMissingToken if no token is given.
// Returns ErrKeyFetchFailed if GitHub does not answer 200.
// Returns ErrInvalidPublicKey if the key is not 32 bytes of base64.
func FetchKey(ctx context.Context, opts FetchKeyOptions) (*FetchKeyResult, error) {
	if err := opts.Target.Validate(); err != nil {
		return nil, err
	}

	client, err := newClient(opts.Target, opts.Token, opts.HTTPClient, opts.Logger)
	if err != nil {
		return nil, err
	}

	key, err := client.GetRepoPublicKey(ctx, opts.Target.Owner, opts.Target.Repo)
	if err != nil {
		return nil, transportError(err, kerrors.ErrKeyFetchFailed, opts.Target, "fetching public key for %s")
	}

	if _, err := secrets.ParsePublicKey(key.Key); err != nil {
		return nil, errors.WithHint(err, "GitHub returned an unexpected key format; try again or add the secret by hand")
	}

	return &FetchKeyResult{Target: opts.Target, Key: *key}, nil
}
