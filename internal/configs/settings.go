package configs

import (
	"fmt"
	"strings"

	kerrors "github.com/goonidz/ghsecret/internal/errors"

	"github.com/cockroachdb/errors"
)

const (
	DefaultOwner      = "goonidz"
	DefaultRepo       = "purple"
	DefaultSecretName = "SUPABASE_SERVICE_ROLE_KEY"
	DefaultAPIURL     = "https://api.github.com"

	DefaultTokenEnv = "GITHUB_TOKEN"
	DefaultValueEnv = "SUPABASE_SERVICE_ROLE_KEY"

	DefaultSupabaseProjectRef = "laqgmqyjstisipsbljha"
	DefaultSupabaseTokenEnv   = "SUPABASE_ACCESS_TOKEN"
	DefaultSupabaseAPIURL     = "https://api.supabase.com"

	DefaultConfigFile = ".ghsecret.toml"
	DefaultEnvFile    = ".env"
)

// Target names the repository secret to write.
type Target struct {
	Owner      string
	Repo       string
	SecretName string
	APIURL     string
}

// String returns owner/repo.
func (t Target) String() string {
	return t.Owner + "/" + t.Repo
}

// SettingsURL returns the web page where the secret can be managed by hand.
func (t Target) SettingsURL() string {
	return fmt.Sprintf("https://github.com/%s/%s/settings/secrets/actions", t.Owner, t.Repo)
}

// Validate checks that owner, repo and secret name are present, contain no
// path separators and are not dot segments.
func (t Target) Validate() error {
	fields := []struct{ name, value string }{
		{"owner", t.Owner},
		{"repo", t.Repo},
		{"secret name", t.SecretName},
	}
	for _, f := range fields {
		field, value := f.name, f.value
		if strings.TrimSpace(value) == "" {
			return errors.WithHint(
				errors.Wrapf(kerrors.ErrInvalidTarget, "%s is empty", field),
				"set it with a flag or in "+DefaultConfigFile)
		}
		if strings.ContainsAny(value, "/\\ ") {
			return errors.Wrapf(kerrors.ErrInvalidTarget, "%s %q contains a slash or space", field, value)
		}
		if value == "." || value == ".." {
			return errors.Wrapf(kerrors.ErrInvalidTarget, "%s %q is not a valid name", field, value)
		}
	}
	return nil
}

// Settings is the fully resolved configuration for one run.
type Settings struct {
	Target

	// TokenEnv and ValueEnv name the environment variables holding the
	// access token and the secret value.
	TokenEnv string
	ValueEnv string

	// GitCredential allows the access token to be read from the git
	// credential helper when TokenEnv is unset.
	GitCredential bool

	Supabase SupabaseSettings
}

// SupabaseSettings locates the service_role key when the secret value is
// read from the Supabase Management API.
type SupabaseSettings struct {
	ProjectRef string
	TokenEnv   string
	APIURL     string
}

// DashboardURL returns the page listing the project's API keys.
func (s SupabaseSettings) DashboardURL() string {
	return fmt.Sprintf("https://supabase.com/dashboard/project/%s/settings/api", s.ProjectRef)
}

// DefaultSettings returns the built-in target and variable names.
func DefaultSettings() Settings {
	return Settings{
		Target: Target{
			Owner:      DefaultOwner,
			Repo:       DefaultRepo,
			SecretName: DefaultSecretName,
			APIURL:     DefaultAPIURL,
		},
		TokenEnv: DefaultTokenEnv,
		ValueEnv: DefaultValueEnv,
		Supabase: SupabaseSettings{
			ProjectRef: DefaultSupabaseProjectRef,
			TokenEnv:   DefaultSupabaseTokenEnv,
			APIURL:     DefaultSupabaseAPIURL,
		},
	}
}

// Apply overrides every setting for which fc holds a non-empty value.
// GitCredential can only be switched on.
func (s *Settings) Apply(fc FileConfig) {
	override := func(dst *string, value string) {
		if value != "" {
			*dst = value
		}
	}
	override(&s.Owner, fc.Owner)
	override(&s.Repo, fc.Repo)
	override(&s.SecretName, fc.SecretName)
	override(&s.APIURL, fc.APIURL)
	override(&s.TokenEnv, fc.TokenEnv)
	override(&s.ValueEnv, fc.ValueEnv)
	override(&s.Supabase.ProjectRef, fc.SupabaseProjectRef)
	override(&s.Supabase.TokenEnv, fc.SupabaseTokenEnv)
	override(&s.Supabase.APIURL, fc.SupabaseAPIURL)
	if fc.GitCredential {
		s.GitCredential = true
	}
}
