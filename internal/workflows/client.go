package workflows

import (
	"net/http"

	"github.com/goonidz/ghsecret/internal/configs"
	kerrors "github.com/goonidz/ghsecret/internal/errors"
	"github.com/goonidz/ghsecret/internal/github"
	logger "github.com/goonidz/ghsecret/internal/logging"

	"github.com/cockroachdb/errors"
)

// Step identifies a stage of the publish pipeline for progress reporting.
type Step int

const (
	StepFetchValue Step = iota
	StepFetchKey
	StepSeal
	StepPublish
)

func (s Step) String() string {
	switch s {
	case StepFetchValue:
		return "Fetching secret value from Supabase"
	case StepFetchKey:
		return "Fetching repository public key"
	case StepSeal:
		return "Encrypting secret"
	case StepPublish:
		return "Publishing secret"
	default:
		return "unknown step"
	}
}

func newClient(target configs.Target, token string, httpClient *http.Client, log logger.Logger) (*github.Client, error) {
	if token == "" {
		return nil, errors.WithHint(kerrors.ErrMissingToken, "set the access token before running this command")
	}

	client, err := github.NewClient(github.Config{
		BaseURL:    target.APIURL,
		Token:      token,
		HTTPClient: httpClient,
		Logger:     log,
	})
	if err != nil {
		return nil, errors.WithHint(
			errors.Mark(err, kerrors.ErrInvalidTarget),
			"api_url must be an https:// URL such as "+configs.DefaultAPIURL)
	}
	return client, nil
}

// transportError marks err with sentinel and attaches hints that depend on
// the response GitHub gave.
func transportError(err error, sentinel error, target configs.Target, format string) error {
	wrapped := errors.Mark(errors.Wrapf(err, format, target), sentinel)

	switch {
	case github.IsUnauthorized(err):
		wrapped = errors.WithHint(wrapped,
			"the token needs the repo and workflow scopes (fine-grained tokens: Secrets read and write)")
	case github.IsNotFound(err):
		wrapped = errors.WithHintf(wrapped,
			"check that %s exists and that the token can access it", target)
	}

	return errors.WithHintf(wrapped,
		"alternatively add the secret %s by hand at %s", target.SecretName, target.SettingsURL())
}
