// Package errors provides typed error values for ghsecret.
//
// Sentinel errors let the CLI layer pick the right message with errors.Is()
// instead of string matching. They are built on github.com/cockroachdb/errors
// so workflows can attach remediation hints that survive wrapping.
//
// # Error Categories
//
//   - Configuration errors: a credential or target setting is missing or
//     malformed (ErrMissingToken, ErrMissingSecretValue, ErrInvalidTarget)
//   - Transport errors: GitHub answered with an unexpected status
//     (ErrKeyFetchFailed, ErrPublishFailed)
//   - Crypto errors: the public key is unusable or sealing failed
//     (ErrInvalidPublicKey, ErrSealFailed)
//
// # Usage
//
// Return errors from internal packages with a hint attached:
//
//	return errors.WithHint(kerrors.ErrMissingToken, "export GITHUB_TOKEN=...")
//
// Handle errors in the CLI layer:
//
//	result, err := workflows.Publish(ctx, opts)
//	if errors.Is(err, kerrors.ErrMissingToken) {
//	    // Show user-friendly message
//	}
//
// None of these errors is retryable. Every one of them ends the run.
package errors
