package cmd

import (
	"context"

	"github.com/goonidz/ghsecret/internal/configs"
	"github.com/goonidz/ghsecret/internal/ui"
	"github.com/goonidz/ghsecret/internal/workflows"

	"github.com/spf13/cobra"
)

var keyTarget targetFlags

func init() {
	keyTarget.register(keyCmd.Flags())
}

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Show the repository's Actions public key",
	Long: `Fetch and show the public key GitHub uses to encrypt Actions secrets
for the target repository. Useful to check that the token can reach the
repository before publishing.

Only the access token is required.`,
	Args: cobra.NoArgs,
	RunE: runKey,
}

func runKey(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting key command")

	settings, err := keyTarget.resolve()
	if err != nil {
		return reportError(err, settings.Target)
	}

	token, err := configs.ResolveToken(settings)
	if err != nil {
		return reportError(err, settings.Target)
	}
	Logger.Debugf("Using token %s from %s", ui.Mask(token), settings.TokenEnv)

	spinner, cleanup := startSpinner(workflows.StepFetchKey.String() + "...")
	defer cleanup()

	result, err := workflows.FetchKey(context.Background(), workflows.FetchKeyOptions{
		Target:     settings.Target,
		Token:      token,
		HTTPClient: httpClient,
		Logger:     Logger,
	})
	if err != nil {
		spinner.FinalMSG = formatError(err, settings.Target)
		return ErrReported
	}

	spinner.FinalMSG = ui.SuccessLine("Public key for "+ui.Highlight.Sprint(result.Target)) + "\n" +
		"key_id: " + result.Key.KeyID + "\n" +
		"key:    " + result.Key.Key
	return nil
}
