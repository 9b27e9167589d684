package cmd

import (
	"context"

	"github.com/goonidz/ghsecret/internal/configs"
	kerrors "github.com/goonidz/ghsecret/internal/errors"
	"github.com/goonidz/ghsecret/internal/ui"
	"github.com/goonidz/ghsecret/internal/utils"
	"github.com/goonidz/ghsecret/internal/workflows"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

var (
	publishTarget targetFlags
	valueStdin    bool
	valueSupabase bool
	dryRun        bool
)

func init() {
	publishTarget.register(publishCmd.Flags())
	publishTarget.registerSupabase(publishCmd.Flags())
	publishCmd.Flags().BoolVar(&valueStdin, "value-stdin", false, "read the secret value from stdin instead of the environment")
	publishCmd.Flags().BoolVar(&valueSupabase, "value-from-supabase", false, "read the service_role key from the Supabase Management API")
	publishCmd.MarkFlagsMutuallyExclusive("value-stdin", "value-from-supabase")
	publishCmd.Flags().BoolVar(&dryRun, "dry-run", false, "fetch the key and encrypt, but do not write the secret")
}

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Encrypt a secret value and store it as a GitHub Actions secret",
	Long: `Encrypt a secret value with the repository's public key and store it
as a GitHub Actions repository secret.

The access token is read from GITHUB_TOKEN and the value from
SUPABASE_SERVICE_ROLE_KEY. Both may come from a .env file in the current
directory. The token needs the repo and workflow scopes.

With --git-credential the token git pushes with is used when GITHUB_TOKEN
is unset. With --value-from-supabase the service_role key is read from the
Supabase Management API using SUPABASE_ACCESS_TOKEN.

The command:
1. Fetches the repository's Actions public key
2. Seals the value with it (libsodium sealed box)
3. Creates or replaces the secret

Examples:
  GITHUB_TOKEN=... SUPABASE_SERVICE_ROLE_KEY=... ghsecret publish
  printf %s "$VALUE" | ghsecret publish --name DEPLOY_KEY --value-stdin
  ghsecret publish --owner acme --repo widgets --dry-run
  ghsecret publish --git-credential --value-from-supabase`,
	Args: cobra.NoArgs,
	RunE: runPublish,
}

func runPublish(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting publish command")

	settings, err := publishTarget.resolve()
	if err != nil {
		return reportError(err, settings.Target)
	}

	var stdinValue string
	if valueStdin {
		stdinValue, err = utils.ReadStdin()
		if err != nil {
			return reportError(errors.WithHint(
				errors.Mark(err, kerrors.ErrMissingSecretValue),
				"pipe the value, for example: printf %s \"$VALUE\" | ghsecret publish --value-stdin"),
				settings.Target)
		}
	}

	var creds configs.Credentials
	var supabaseToken string
	if valueSupabase {
		creds.Token, err = configs.ResolveToken(settings)
		if err != nil {
			return reportError(err, settings.Target)
		}
		supabaseToken, err = configs.ResolveSupabaseToken(settings)
		if err != nil {
			return reportError(err, settings.Target)
		}
	} else {
		creds, err = configs.ResolveCredentials(settings, stdinValue)
		if err != nil {
			return reportError(err, settings.Target)
		}
	}
	Logger.Debugf("Using token %s", ui.Mask(creds.Token))

	firstStep := workflows.StepFetchKey
	if valueSupabase {
		firstStep = workflows.StepFetchValue
	}
	spinner, cleanup := startSpinner(firstStep.String() + "...")
	defer cleanup()

	if valueSupabase {
		creds.SecretValue, err = workflows.FetchSupabaseValue(context.Background(), workflows.FetchValueOptions{
			Supabase:   settings.Supabase,
			Token:      supabaseToken,
			HTTPClient: httpClient,
			Logger:     Logger,
		})
		if err != nil {
			spinner.FinalMSG = formatError(err, settings.Target)
			return ErrReported
		}
	}

	result, err := workflows.Publish(context.Background(), workflows.PublishOptions{
		Target:      settings.Target,
		Credentials: creds,
		DryRun:      dryRun,
		HTTPClient:  httpClient,
		Logger:      Logger,
		Progress: func(step workflows.Step) {
			setSpinnerMessage(spinner, step.String()+"...")
		},
	})
	if err != nil {
		Logger.Debugf("Publish failed: %+v", err)
		spinner.FinalMSG = formatError(err, settings.Target)
		return ErrReported
	}

	Logger.Infof("Publish command completed (key_id %s, created=%t)", result.KeyID, result.Created)
	spinner.FinalMSG = formatPublishSuccess(result)
	return nil
}
