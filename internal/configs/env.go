package configs

import (
	"context"
	"fmt"
	"os"
	"strings"

	kerrors "github.com/goonidz/ghsecret/internal/errors"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
)

// Credentials holds the two values a run needs. Neither is ever logged.
type Credentials struct {
	Token       string
	SecretValue string
}

// LoadDotEnv loads path into the process environment without overriding
// variables that are already set. A missing file is skipped unless required.
func LoadDotEnv(path string, required bool) (loaded bool, err error) {
	if _, statErr := os.Stat(path); statErr != nil {
		if os.IsNotExist(statErr) && !required {
			return false, nil
		}
		return false, errors.WithHint(
			errors.Wrapf(kerrors.ErrInvalidConfig, "reading %s: %v", path, statErr),
			"check the --env-file path")
	}

	if err := godotenv.Load(path); err != nil {
		return false, errors.Wrapf(kerrors.ErrInvalidConfig, "parsing %s: %v", path, err)
	}
	return true, nil
}

// MaxSecretValueBytes is GitHub's limit on the size of a secret value.
const MaxSecretValueBytes = 48 * 1024

// ResolveCredentials reads the token and secret value from the variables
// named in s. A non-empty secretValue (from stdin) takes precedence over
// the environment. Surrounding whitespace is ignored when checking for
// emptiness but the secret value is otherwise kept verbatim.
func ResolveCredentials(s Settings, secretValue string) (Credentials, error) {
	token, err := ResolveToken(s)
	if err != nil {
		return Credentials{}, err
	}

	source := "stdin"
	if secretValue == "" {
		secretValue = os.Getenv(s.ValueEnv)
		source = s.ValueEnv
	}
	if strings.TrimSpace(secretValue) == "" {
		err := errors.WithHintf(
			errors.Wrapf(kerrors.ErrMissingSecretValue, "%s is not set", s.ValueEnv),
			"export %s, add it to %s, or pipe it with --value-stdin", s.ValueEnv, DefaultEnvFile)
		if s.ValueEnv == DefaultValueEnv {
			err = errors.WithHintf(err,
				"the service_role key is listed at %s, or use --value-from-supabase to fetch it",
				s.Supabase.DashboardURL())
		}
		return Credentials{}, err
	}

	if err := CheckSecretValue(secretValue, source); err != nil {
		return Credentials{}, err
	}

	return Credentials{Token: token, SecretValue: secretValue}, nil
}

// CheckSecretValue rejects values GitHub would refuse for their size.
// source names where the value came from.
func CheckSecretValue(value, source string) error {
	if len(value) > MaxSecretValueBytes {
		return errors.WithHint(
			errors.Wrapf(kerrors.ErrSecretValueTooLarge, "value from %s is %d bytes, the limit is %d",
				source, len(value), MaxSecretValueBytes),
			"GitHub secrets are limited to 48 KB; store larger values encrypted in the repository and keep only the passphrase as a secret")
	}
	return nil
}

// ResolveToken reads only the access token. When s.GitCredential is set and
// the variable is empty, the git credential helper is asked instead.
func ResolveToken(s Settings) (string, error) {
	token := strings.TrimSpace(os.Getenv(s.TokenEnv))
	if token != "" {
		return token, nil
	}

	hint := fmt.Sprintf(
		"create a token at https://github.com/settings/tokens with the repo and workflow scopes, then export %s or add it to %s",
		s.TokenEnv, DefaultEnvFile)

	if !s.GitCredential {
		return "", errors.WithHint(
			errors.WithHint(
				errors.Wrapf(kerrors.ErrMissingToken, "%s is not set", s.TokenEnv),
				hint),
			"or pass --git-credential to use the token git pushes with")
	}

	ctx, cancel := context.WithTimeout(context.Background(), gitCredentialTimeout)
	defer cancel()

	token, err := GitCredentialToken(ctx, s.APIURL)
	if err != nil {
		return "", errors.WithHint(
			errors.Wrapf(kerrors.ErrMissingToken, "%s is not set and the git credential helper gave no token: %v", s.TokenEnv, err),
			hint)
	}
	return token, nil
}

// ResolveSupabaseToken reads the Supabase personal access token used to
// fetch the secret value from the Management API.
func ResolveSupabaseToken(s Settings) (string, error) {
	token := strings.TrimSpace(os.Getenv(s.Supabase.TokenEnv))
	if token == "" {
		return "", errors.WithHintf(
			errors.Wrapf(kerrors.ErrMissingSupabaseToken, "%s is not set", s.Supabase.TokenEnv),
			"create a token at https://supabase.com/dashboard/account/tokens, then export %s or add it to %s",
			s.Supabase.TokenEnv, DefaultEnvFile)
	}
	return token, nil
}
