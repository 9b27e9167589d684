package cmd

import (
	"github.com/goonidz/ghsecret/internal/configs"

	"github.com/spf13/pflag"
)

// targetFlags are shared by every command that talks to a repository.
type targetFlags struct {
	owner      string
	repo       string
	secretName string
	apiURL     string
	configPath string
	envFile    string
	tokenEnv   string
	valueEnv   string

	gitCredential bool

	supabaseProject  string
	supabaseAPIURL   string
	supabaseTokenEnv string
}

func (f *targetFlags) register(flags *pflag.FlagSet) {
	flags.StringVar(&f.owner, "owner", "", "repository owner (default "+configs.DefaultOwner+")")
	flags.StringVar(&f.repo, "repo", "", "repository name (default "+configs.DefaultRepo+")")
	flags.StringVar(&f.secretName, "name", "", "secret name (default "+configs.DefaultSecretName+")")
	flags.StringVar(&f.apiURL, "api-url", "", "GitHub API base URL (default "+configs.DefaultAPIURL+")")
	flags.StringVar(&f.configPath, "config", "", "target file (default "+configs.DefaultConfigFile+" if present)")
	flags.StringVar(&f.envFile, "env-file", "", "dotenv file to load (default "+configs.DefaultEnvFile+" if present)")
	flags.StringVar(&f.tokenEnv, "token-env", "", "variable holding the access token (default "+configs.DefaultTokenEnv+")")
	flags.StringVar(&f.valueEnv, "value-env", "", "variable holding the secret value (default "+configs.DefaultValueEnv+")")
	flags.BoolVar(&f.gitCredential, "git-credential", false, "ask the git credential helper for the token when the token variable is unset")
}

// registerSupabase adds the flags locating the service_role key.
func (f *targetFlags) registerSupabase(flags *pflag.FlagSet) {
	flags.StringVar(&f.supabaseProject, "supabase-project", "", "Supabase project ref (default "+configs.DefaultSupabaseProjectRef+")")
	flags.StringVar(&f.supabaseAPIURL, "supabase-api-url", "", "Supabase Management API URL (default "+configs.DefaultSupabaseAPIURL+")")
	flags.StringVar(&f.supabaseTokenEnv, "supabase-token-env", "", "variable holding the Supabase access token (default "+configs.DefaultSupabaseTokenEnv+")")
}

// resolve layers built-in defaults, the target file and the flags, then
// loads the dotenv file. Explicitly named files must exist.
func (f *targetFlags) resolve() (configs.Settings, error) {
	settings := configs.DefaultSettings()

	configPath := f.configPath
	if configPath == "" {
		configPath = configs.DefaultConfigFile
	}
	fileConfig, found, err := configs.LoadFileConfig(configPath, f.configPath != "")
	if err != nil {
		return settings, err
	}
	if found {
		Logger.Infof("Loaded target file %s", configPath)
	}
	settings.Apply(fileConfig)

	settings.Apply(configs.FileConfig{
		Owner:      f.owner,
		Repo:       f.repo,
		SecretName: f.secretName,
		APIURL:     f.apiURL,
		TokenEnv:   f.tokenEnv,
		ValueEnv:   f.valueEnv,

		GitCredential: f.gitCredential,

		SupabaseProjectRef: f.supabaseProject,
		SupabaseAPIURL:     f.supabaseAPIURL,
		SupabaseTokenEnv:   f.supabaseTokenEnv,
	})

	envFile := f.envFile
	if envFile == "" {
		envFile = configs.DefaultEnvFile
	}
	loaded, err := configs.LoadDotEnv(envFile, f.envFile != "")
	if err != nil {
		return settings, err
	}
	if loaded {
		Logger.Infof("Loaded environment from %s", envFile)
	}

	Logger.Debugf("Target %s, secret %s, api %s", settings.Target, settings.SecretName, settings.APIURL)
	return settings, nil
}
