package workflows

import (
	"context"
	"net/http"

	"github.com/goonidz/ghsecret/internal/configs"
	kerrors "github.com/goonidz/ghsecret/internal/errors"
	"github.com/goonidz/ghsecret/internal/github"
	logger "github.com/goonidz/ghsecret/internal/logging"
	"github.com/goonidz/ghsecret/internal/secrets"

	"github.com/cockroachdb/errors"
)

// PublishOptions configures the publish workflow.
type PublishOptions struct {
	Target      configs.Target
	Credentials configs.Credentials

	// DryRun fetches the key and seals the value but skips the write.
	DryRun bool

	HTTPClient *http.Client
	Logger     logger.Logger

	// Progress, if set, is called as each step starts.
	Progress func(Step)
}

// PublishResult contains the outcome of a publish operation.
type PublishResult struct {
	Target configs.Target

	// KeyID identifies the public key the value was sealed with.
	KeyID string

	// Created is true when GitHub created the secret (201) and false when
	// it replaced an existing one (204).
	Created bool

	DryRun bool
}

// Publish seals the secret value under the repository's public key and
// stores it as an Actions secret.
//
// Preconditions are checked before any request is made.
// Returns ErrMissingToken or ErrMissingSecretValue if a credential is empty.
// Returns ErrInvalidTarget if the repository or secret name is unusable.
// Returns ErrKeyFetchFailed if the key request does not answer 200.
// Returns ErrInvalidPublicKey or ErrSealFailed if sealing fails.
// Returns ErrPublishFailed if the write does not answer 201 or 204.
func Publish(ctx context.Context, opts PublishOptions) (*PublishResult, error) {
	log := opts.Logger
	progress := opts.Progress
	if progress == nil {
		progress = func(Step) {}
	}

	if opts.Credentials.Token == "" {
		return nil, errors.WithHint(kerrors.ErrMissingToken, "set the access token before running this command")
	}
	if opts.Credentials.SecretValue == "" {
		return nil, errors.WithHint(kerrors.ErrMissingSecretValue, "set the secret value before running this command")
	}
	if err := opts.Target.Validate(); err != nil {
		return nil, err
	}
	if err := github.ValidateSecretName(opts.Target.SecretName); err != nil {
		return nil, errors.Mark(err, kerrors.ErrInvalidTarget)
	}

	client, err := newClient(opts.Target, opts.Credentials.Token, opts.HTTPClient, log)
	if err != nil {
		return nil, err
	}

	progress(StepFetchKey)
	log.Infof("Fetching public key for %s", opts.Target)
	key, err := client.GetRepoPublicKey(ctx, opts.Target.Owner, opts.Target.Repo)
	if err != nil {
		return nil, transportError(err, kerrors.ErrKeyFetchFailed, opts.Target, "fetching public key for %s")
	}
	log.Infof("Public key retrieved (key_id %s)", key.KeyID)

	progress(StepSeal)
	log.Debugf("Sealing %d bytes", len(opts.Credentials.SecretValue))
	sealed, err := secrets.SealString(key.Key, opts.Credentials.SecretValue)
	if err != nil {
		return nil, errors.WithHint(err, "the repository key could not be used; retry, and if it persists add the secret by hand at "+opts.Target.SettingsURL())
	}
	log.Infof("Secret encrypted")

	result := &PublishResult{
		Target: opts.Target,
		KeyID:  key.KeyID,
		DryRun: opts.DryRun,
	}
	if opts.DryRun {
		log.Infof("Dry run: not writing %s", opts.Target.SecretName)
		return result, nil
	}

	progress(StepPublish)
	log.Infof("Writing secret %s to %s", opts.Target.SecretName, opts.Target)
	created, err := client.PutRepoSecret(ctx, opts.Target.Owner, opts.Target.Repo, opts.Target.SecretName, github.EncryptedSecret{
		EncryptedValue: sealed,
		KeyID:          key.KeyID,
	})
	if err != nil {
		return nil, transportError(err, kerrors.ErrPublishFailed, opts.Target, "writing secret to %s")
	}

	result.Created = created
	return result, nil
}
