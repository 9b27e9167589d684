// Package workflows provides the high-level operations behind ghsecret's
// commands, independent of CLI concerns like flag parsing, spinners and
// output formatting.
//
// # Available Workflows
//
//   - Publish: fetches the repository public key, seals the secret value
//     and writes it to the repository's Actions secrets
//   - FetchKey: fetches the repository public key only
//
// Publish is a strictly ordered pipeline. The key fetch completes before
// sealing starts and sealing completes before the write. The first failure
// ends the run; nothing is retried and there is no partial success.
//
// # Error Handling
//
// Errors are marked with the sentinels in internal/errors and carry
// remediation hints (errors.GetAllHints). Transport errors also wrap the
// *github.APIError so callers can print the status code and body:
//
//	result, err := workflows.Publish(ctx, opts)
//	var apiErr *github.APIError
//	if errors.As(err, &apiErr) {
//	    fmt.Println(apiErr.StatusCode, apiErr.Body)
//	}
package workflows
