package errors

import "github.com/cockroachdb/errors"

// Configuration errors indicate a missing or malformed local setting.
// They are always raised before any network call is made.
var (
	// ErrMissingToken indicates the access token variable is unset or empty.
	ErrMissingToken = errors.New("access token is not set")

	// ErrMissingSecretValue indicates the secret value variable is unset or empty.
	ErrMissingSecretValue = errors.New("secret value is not set")

	// ErrSecretValueTooLarge indicates the secret value exceeds GitHub's 48 KB limit.
	ErrSecretValueTooLarge = errors.New("secret value is too large")

	// ErrMissingSupabaseToken indicates the Supabase access token variable is
	// unset while the value is to be read from Supabase.
	ErrMissingSupabaseToken = errors.New("supabase access token is not set")

	// ErrInvalidTarget indicates the owner, repository or secret name is unusable.
	ErrInvalidTarget = errors.New("invalid target repository or secret name")

	// ErrInvalidConfig indicates the target file or .env file could not be parsed.
	ErrInvalidConfig = errors.New("configuration file is invalid")
)

// Transport errors indicate a remote API answered with an unexpected status.
var (
	// ErrValueFetchFailed indicates the secret value could not be read from Supabase.
	ErrValueFetchFailed = errors.New("failed to fetch secret value")

	// ErrKeyFetchFailed indicates the repository public key could not be retrieved.
	ErrKeyFetchFailed = errors.New("failed to fetch repository public key")

	// ErrPublishFailed indicates the sealed secret was not accepted.
	ErrPublishFailed = errors.New("failed to publish secret")
)

// Cryptographic errors indicate failures while sealing the secret.
var (
	// ErrInvalidPublicKey indicates the repository public key is malformed.
	ErrInvalidPublicKey = errors.New("invalid repository public key")

	// ErrSealFailed indicates sealed-box encryption failed.
	ErrSealFailed = errors.New("failed to encrypt secret")
)

// IsConfigError reports whether err belongs to the configuration category.
func IsConfigError(err error) bool {
	return errors.IsAny(err, ErrMissingToken, ErrMissingSecretValue, ErrSecretValueTooLarge,
		ErrMissingSupabaseToken, ErrInvalidTarget, ErrInvalidConfig)
}

// IsTransportError reports whether err belongs to the transport category.
func IsTransportError(err error) bool {
	return errors.IsAny(err, ErrValueFetchFailed, ErrKeyFetchFailed, ErrPublishFailed)
}

// IsCryptoError reports whether err belongs to the cryptographic category.
func IsCryptoError(err error) bool {
	return errors.IsAny(err, ErrInvalidPublicKey, ErrSealFailed)
}
