package configs

import (
	"os"

	kerrors "github.com/goonidz/ghsecret/internal/errors"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
)

// FileConfig mirrors the optional target file. Empty fields keep the
// current value when applied.
type FileConfig struct {
	Owner      string `toml:"owner"`
	Repo       string `toml:"repo"`
	SecretName string `toml:"secret_name"`
	APIURL     string `toml:"api_url"`
	TokenEnv   string `toml:"token_env"`
	ValueEnv   string `toml:"value_env"`

	GitCredential bool `toml:"git_credential"`

	SupabaseProjectRef string `toml:"supabase_project_ref"`
	SupabaseTokenEnv   string `toml:"supabase_token_env"`
	SupabaseAPIURL     string `toml:"supabase_api_url"`
}

// LoadFileConfig reads a target file. A missing file is not an error unless
// required is set; it yields an empty FileConfig and found=false.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func LoadFileConfig(path string, required bool) (fc FileConfig, found bool, err error) {
	if _, statErr := os.Stat(path); statErr != nil {
		if os.IsNotExist(statErr) && !required {
			return FileConfig{}, false, nil
		}
		return FileConfig{}, false, errors.WithHint(
			errors.Wrapf(kerrors.ErrInvalidConfig, "reading %s: %v", path, statErr),
			"check the --config path")
	}

	meta, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return FileConfig{}, true, errors.Wrapf(kerrors.ErrInvalidConfig, "parsing %s: %v", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, true, errors.WithHint(
			errors.Wrapf(kerrors.ErrInvalidConfig, "%s: unknown key %q", path, undecoded[0].String()),
			"valid keys are owner, repo, secret_name, api_url, token_env, value_env, git_credential, supabase_project_ref, supabase_token_env, supabase_api_url")
	}

	return fc, true, nil
}
