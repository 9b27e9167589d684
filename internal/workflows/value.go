package workflows

import (
	"context"
	"net/http"

	"github.com/goonidz/ghsecret/internal/configs"
	kerrors "github.com/goonidz/ghsecret/internal/errors"
	logger "github.com/goonidz/ghsecret/internal/logging"
	"github.com/goonidz/ghsecret/internal/supabase"

	"github.com/cockroachdb/errors"
)

// FetchValueOptions configures reading the secret value from Supabase.
type FetchValueOptions struct {
	Supabase configs.SupabaseSettings

	// Token is the Supabase personal access token.
	Token string

	HTTPClient *http.Client
	Logger     logger.Logger
}

// FetchSupabaseValue reads the project's service_role key from the Supabase
// Management API. The returned value is never logged.
//
// Returns ErrMissingSupabaseToken if no token is given.
// Returns ErrInvalidConfig if the API URL is unusable.
// Returns ErrValueFetchFailed if the key list cannot be read or has no
// service_role entry.
// Returns ErrSecretValueTooLarge if the key exceeds GitHub's limit.
func FetchSupabaseValue(ctx context.Context, opts FetchValueOptions) (string, error) {
	if opts.Token == "" {
		return "", errors.WithHintf(kerrors.ErrMissingSupabaseToken,
			"set %s before running this command", opts.Supabase.TokenEnv)
	}

	client, err := supabase.NewClient(supabase.Config{
		BaseURL:    opts.Supabase.APIURL,
		Token:      opts.Token,
		HTTPClient: opts.HTTPClient,
		Logger:     opts.Logger,
	})
	if err != nil {
		return "", errors.WithHint(
			errors.Mark(err, kerrors.ErrInvalidConfig),
			"supabase_api_url must be an https:// URL such as "+configs.DefaultSupabaseAPIURL)
	}

	opts.Logger.Infof("Fetching service_role key for Supabase project %s", opts.Supabase.ProjectRef)
	value, err := client.ServiceRoleKey(ctx, opts.Supabase.ProjectRef)
	if err != nil {
		wrapped := errors.Mark(
			errors.Wrapf(err, "fetching service_role key for project %s", opts.Supabase.ProjectRef),
			kerrors.ErrValueFetchFailed)
		if supabase.IsUnauthorized(err) {
			wrapped = errors.WithHintf(wrapped,
				"%s must be a personal access token from https://supabase.com/dashboard/account/tokens with access to the project",
				opts.Supabase.TokenEnv)
		}
		return "", errors.WithHintf(wrapped,
			"the service_role key is listed at %s", opts.Supabase.DashboardURL())
	}

	if err := configs.CheckSecretValue(value, "Supabase"); err != nil {
		return "", err
	}
	opts.Logger.Debugf("Fetched %d bytes from Supabase", len(value))
	return value, nil
}
