package workflows

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/goonidz/ghsecret/internal/configs"
	kerrors "github.com/goonidz/ghsecret/internal/errors"
	"github.com/goonidz/ghsecret/internal/github"
	"github.com/goonidz/ghsecret/internal/secrets"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGitHub serves the two secrets endpoints and records what it saw.
type fakeGitHub struct {
	keyStatus int
	keyBody   string
	putStatus int

	keyCalls atomic.Int32
	putCalls atomic.Int32
	lastPut  github.EncryptedSecret
	lastPath string
	lastAuth string

	publicKey  *[secrets.KeySize]byte
	privateKey *[secrets.KeySize]byte
}

func newFakeGitHub(t *testing.T) *fakeGitHub {
	t.Helper()
	publicKey, privateKey, err := secrets.GenerateKeyPair()
	require.NoError(t, err)

	return &fakeGitHub{
		keyStatus:  http.StatusOK,
		keyBody:    `{"key_id":"abc","key":"` + base64.StdEncoding.EncodeToString(publicKey[:]) + `"}`,
		putStatus:  http.StatusCreated,
		publicKey:  publicKey,
		privateKey: privateKey,
	}
}

func (f *fakeGitHub) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	f.lastAuth = request.Header.Get("Authorization")
	switch {
	case request.Method == http.MethodGet && strings.HasSuffix(request.URL.Path, "/actions/secrets/public-key"):
		f.keyCalls.Add(1)
		writer.WriteHeader(f.keyStatus)
		writer.Write([]byte(f.keyBody))
	case request.Method == http.MethodPut:
		f.putCalls.Add(1)
		f.lastPath = request.URL.Path
		json.NewDecoder(request.Body).Decode(&f.lastPut)
		writer.WriteHeader(f.putStatus)
		if f.putStatus >= 300 {
			writer.Write([]byte(`{"message":"Not Found"}`))
		}
	default:
		writer.WriteHeader(http.StatusTeapot)
	}
}

func (f *fakeGitHub) start(t *testing.T) (*httptest.Server, configs.Target) {
	t.Helper()
	server := httptest.NewTLSServer(f)
	t.Cleanup(server.Close)

	target := configs.DefaultSettings().Target
	target.APIURL = server.URL
	return server, target
}

func publishOpts(server *httptest.Server, target configs.Target) PublishOptions {
	return PublishOptions{
		Target:      target,
		Credentials: configs.Credentials{Token: "tok123", SecretValue: "s3cr3t"},
		HTTPClient:  server.Client(),
	}
}

func TestPublishEndToEnd(t *testing.T) {
	fake := newFakeGitHub(t)
	server, target := fake.start(t)

	var steps []Step
	opts := publishOpts(server, target)
	opts.Progress = func(s Step) { steps = append(steps, s) }

	result, err := Publish(context.Background(), opts)
	require.NoError(t, err)

	assert.True(t, result.Created)
	assert.Equal(t, "abc", result.KeyID)
	assert.False(t, result.DryRun)
	assert.Equal(t, []Step{StepFetchKey, StepSeal, StepPublish}, steps)

	assert.Equal(t, "Bearer tok123", fake.lastAuth)
	assert.Equal(t, "/repos/goonidz/purple/actions/secrets/SUPABASE_SERVICE_ROLE_KEY", fake.lastPath)
	assert.Equal(t, "abc", fake.lastPut.KeyID)

	sealed, err := base64.StdEncoding.DecodeString(fake.lastPut.EncryptedValue)
	require.NoError(t, err)
	assert.Greater(t, len(sealed), 32)
	assert.NotContains(t, fake.lastPut.EncryptedValue, "s3cr3t")

	plaintext, err := secrets.Open(sealed, fake.publicKey, fake.privateKey)
	require.NoError(t, err)
	assert.Equal(t, "s3cr3t", string(plaintext))
}

func TestPublishStatusMapping(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		wantErr     bool
		wantCreated bool
	}{
		{"created", http.StatusCreated, false, true},
		{"updated", http.StatusNoContent, false, false},
		{"not found", http.StatusNotFound, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFakeGitHub(t)
			fake.putStatus = tt.status
			server, target := fake.start(t)

			result, err := Publish(context.Background(), publishOpts(server, target))
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, tt.wantCreated, result.Created)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, kerrors.ErrPublishFailed))
			var apiErr *github.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Contains(t, strings.Join(errors.GetAllHints(err), "\n"), target.SettingsURL())
		})
	}
}

func TestPublishKeyFetchFailureSkipsPut(t *testing.T) {
	fake := newFakeGitHub(t)
	fake.keyStatus = http.StatusUnauthorized
	fake.keyBody = `{"message":"Bad credentials"}`
	server, target := fake.start(t)

	_, err := Publish(context.Background(), publishOpts(server, target))
	require.Error(t, err)

	assert.True(t, errors.Is(err, kerrors.ErrKeyFetchFailed))
	assert.True(t, kerrors.IsTransportError(err))
	var apiErr *github.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, `{"message":"Bad credentials"}`, apiErr.Body)
	assert.Contains(t, strings.Join(errors.GetAllHints(err), "\n"), "repo and workflow scopes")

	assert.EqualValues(t, 1, fake.keyCalls.Load())
	assert.EqualValues(t, 0, fake.putCalls.Load())
}

func TestPublishMissingCredentialsMakesNoRequest(t *testing.T) {
	tests := []struct {
		name    string
		creds   configs.Credentials
		wantErr error
	}{
		{"both missing", configs.Credentials{}, kerrors.ErrMissingToken},
		{"token missing", configs.Credentials{SecretValue: "s3cr3t"}, kerrors.ErrMissingToken},
		{"value missing", configs.Credentials{Token: "tok123"}, kerrors.ErrMissingSecretValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFakeGitHub(t)
			server, target := fake.start(t)

			opts := publishOpts(server, target)
			opts.Credentials = tt.creds
			_, err := Publish(context.Background(), opts)

			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.EqualValues(t, 0, fake.keyCalls.Load())
			assert.EqualValues(t, 0, fake.putCalls.Load())
		})
	}
}

func TestPublishInvalidKeySkipsPut(t *testing.T) {
	fake := newFakeGitHub(t)
	fake.keyBody = `{"key_id":"abc","key":"` + base64.StdEncoding.EncodeToString([]byte("short")) + `"}`
	server, target := fake.start(t)

	_, err := Publish(context.Background(), publishOpts(server, target))
	require.Error(t, err)

	assert.True(t, kerrors.IsCryptoError(err))
	assert.NotEmpty(t, errors.GetAllHints(err))
	assert.EqualValues(t, 0, fake.putCalls.Load())
}

func TestPublishDryRun(t *testing.T) {
	fake := newFakeGitHub(t)
	server, target := fake.start(t)

	opts := publishOpts(server, target)
	opts.DryRun = true
	result, err := Publish(context.Background(), opts)
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	assert.Equal(t, "abc", result.KeyID)
	assert.EqualValues(t, 1, fake.keyCalls.Load())
	assert.EqualValues(t, 0, fake.putCalls.Load())
}

func TestPublishRejectsBadTarget(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*configs.Target)
	}{
		{"reserved secret name", func(tg *configs.Target) { tg.SecretName = "GITHUB_TOKEN" }},
		{"empty repo", func(tg *configs.Target) { tg.Repo = "" }},
		{"plain http api", func(tg *configs.Target) { tg.APIURL = "http://example.com" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFakeGitHub(t)
			server, target := fake.start(t)
			tt.mutate(&target)

			_, err := Publish(context.Background(), publishOpts(server, target))
			assert.True(t, errors.Is(err, kerrors.ErrInvalidTarget), "got %v", err)
			assert.EqualValues(t, 0, fake.keyCalls.Load())
		})
	}
}

func TestFetchKey(t *testing.T) {
	fake := newFakeGitHub(t)
	server, target := fake.start(t)

	result, err := FetchKey(context.Background(), FetchKeyOptions{
		Target:     target,
		Token:      "tok123",
		HTTPClient: server.Client(),
	})
	require.NoError(t, err)

	assert.Equal(t, "abc", result.Key.KeyID)
	assert.Equal(t, base64.StdEncoding.EncodeToString(fake.publicKey[:]), result.Key.Key)
	assert.EqualValues(t, 0, fake.putCalls.Load())
}

func TestFetchKeyNotFound(t *testing.T) {
	fake := newFakeGitHub(t)
	fake.keyStatus = http.StatusNotFound
	fake.keyBody = `{"message":"Not Found"}`
	server, target := fake.start(t)

	_, err := FetchKey(context.Background(), FetchKeyOptions{
		Target:     target,
		Token:      "tok123",
		HTTPClient: server.Client(),
	})
	assert.True(t, errors.Is(err, kerrors.ErrKeyFetchFailed))
	assert.Contains(t, strings.Join(errors.GetAllHints(err), "\n"), "goonidz/purple exists")
}

func TestStepString(t *testing.T) {
	assert.Equal(t, "Fetching secret value from Supabase", StepFetchValue.String())
	assert.Equal(t, "Fetching repository public key", StepFetchKey.String())
	assert.Equal(t, "Encrypting secret", StepSeal.String())
	assert.Equal(t, "Publishing secret", StepPublish.String())
}
