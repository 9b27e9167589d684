package cmd

import (
	"fmt"
	"strings"

	"github.com/goonidz/ghsecret/internal/configs"
	kerrors "github.com/goonidz/ghsecret/internal/errors"
	"github.com/goonidz/ghsecret/internal/github"
	"github.com/goonidz/ghsecret/internal/supabase"
	"github.com/goonidz/ghsecret/internal/ui"
	"github.com/goonidz/ghsecret/internal/workflows"

	"github.com/cockroachdb/errors"
)

// formatError renders a failure with its category headline, the error
// chain, the HTTP status and body when an API answered, and every hint.
func formatError(err error, target configs.Target) string {
	var b strings.Builder

	switch {
	case errors.Is(err, kerrors.ErrMissingToken):
		b.WriteString(ui.ErrorLine("Access token is required"))
	case errors.Is(err, kerrors.ErrMissingSecretValue):
		b.WriteString(ui.ErrorLine("Secret value is required"))
	case errors.Is(err, kerrors.ErrSecretValueTooLarge):
		b.WriteString(ui.ErrorLine("Secret value is too large"))
	case errors.Is(err, kerrors.ErrMissingSupabaseToken):
		b.WriteString(ui.ErrorLine("Supabase access token is required"))
	case kerrors.IsConfigError(err):
		b.WriteString(ui.ErrorLine("Invalid configuration"))
	case errors.Is(err, kerrors.ErrValueFetchFailed):
		b.WriteString(ui.ErrorLine("Failed to fetch the secret value from Supabase"))
	case errors.Is(err, kerrors.ErrKeyFetchFailed):
		b.WriteString(ui.ErrorLine("Failed to fetch the public key for " + ui.Highlight.Sprint(target)))
	case errors.Is(err, kerrors.ErrPublishFailed):
		b.WriteString(ui.ErrorLine("Failed to add secret " + ui.Highlight.Sprint(target.SecretName) + " to " + ui.Highlight.Sprint(target)))
	case kerrors.IsCryptoError(err):
		b.WriteString(ui.ErrorLine("Failed to encrypt the secret"))
	default:
		b.WriteString(ui.ErrorLine("Unexpected failure"))
	}
	b.WriteString("\n")
	b.WriteString(ui.Error.Sprint("Error: ") + err.Error() + "\n")

	var apiErr *github.APIError
	if errors.As(err, &apiErr) {
		fmt.Fprintf(&b, "Status: %d\n", apiErr.StatusCode)
		if body := strings.TrimSpace(apiErr.Body); body != "" {
			b.WriteString("Response: " + ui.Muted.Sprint(body) + "\n")
		}
		if apiErr.DocumentationURL != "" {
			b.WriteString("Docs: " + apiErr.DocumentationURL + "\n")
		}
	}

	var supabaseErr *supabase.APIError
	if errors.As(err, &supabaseErr) {
		fmt.Fprintf(&b, "Status: %d\n", supabaseErr.StatusCode)
		if body := strings.TrimSpace(supabaseErr.Body); body != "" {
			b.WriteString("Response: " + ui.Muted.Sprint(body) + "\n")
		}
	}

	for _, hint := range errors.GetAllHints(err) {
		b.WriteString(ui.HintLine(hint) + "\n")
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func formatPublishSuccess(result *workflows.PublishResult) string {
	name := ui.Highlight.Sprint(result.Target.SecretName)
	repo := ui.Highlight.Sprint(result.Target)

	if result.DryRun {
		return ui.SuccessLine("Dry run: secret "+name+" encrypted with key "+ui.Highlight.Sprint(result.KeyID)) + "\n" +
			ui.WarningLine("Nothing was written to "+repo) + "\n" +
			ui.HintLine("Run again without "+ui.Code.Sprint("--dry-run")+" to publish")
	}

	verb := "updated"
	if result.Created {
		verb = "added"
	}
	return ui.SuccessLine("Successfully "+verb+" secret "+name+" in "+repo+"!") + "\n" +
		ui.HintLine("GitHub Actions workflows can now use this secret")
}

// reportError prints a failure that happened outside a spinner.
func reportError(err error, target configs.Target) error {
	fmt.Print(ui.EnsureNewline(formatError(err, target)))
	return ErrReported
}
