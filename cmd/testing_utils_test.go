package cmd

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/goonidz/ghsecret/internal/github"
	"github.com/goonidz/ghsecret/internal/secrets"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// fakeGitHub serves the public key and secret endpoints, and the Supabase
// api-keys endpoint on the same server.
type fakeGitHub struct {
	keyStatus int
	keyBody   string
	putStatus int
	putBody   string

	supabaseStatus int
	supabaseBody   string

	keyCalls      atomic.Int32
	putCalls      atomic.Int32
	supabaseCalls atomic.Int32
	lastPut       github.EncryptedSecret
	lastPath      string
	lastAuth      string

	publicKey  *[secrets.KeySize]byte
	privateKey *[secrets.KeySize]byte
}

func newFakeGitHub(t *testing.T) *fakeGitHub {
	t.Helper()
	publicKey, privateKey, err := secrets.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	return &fakeGitHub{
		keyStatus:  http.StatusOK,
		keyBody:    `{"key":"` + base64.StdEncoding.EncodeToString(publicKey[:]) + `","key_id":"abc"}`,
		putStatus:  http.StatusCreated,
		publicKey:  publicKey,
		privateKey: privateKey,

		supabaseStatus: http.StatusOK,
		supabaseBody:   `[{"name":"anon","api_key":"anon-key"},{"name":"service_role","api_key":"service-role-from-supabase"}]`,
	}
}

func (f *fakeGitHub) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	if strings.HasPrefix(request.URL.Path, "/v1/projects/") && strings.HasSuffix(request.URL.Path, "/api-keys") {
		f.supabaseCalls.Add(1)
		writer.WriteHeader(f.supabaseStatus)
		writer.Write([]byte(f.supabaseBody))
		return
	}
	if request.Method == http.MethodGet && strings.HasSuffix(request.URL.Path, "/actions/secrets/public-key") {
		f.keyCalls.Add(1)
		f.lastAuth = request.Header.Get("Authorization")
		writer.WriteHeader(f.keyStatus)
		writer.Write([]byte(f.keyBody))
		return
	}
	if request.Method == http.MethodPut {
		f.putCalls.Add(1)
		f.lastPath = request.URL.Path
		json.NewDecoder(request.Body).Decode(&f.lastPut)
		writer.WriteHeader(f.putStatus)
		writer.Write([]byte(f.putBody))
		return
	}
	writer.WriteHeader(http.StatusTeapot)
}

func (f *fakeGitHub) start(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewTLSServer(f)
	t.Cleanup(server.Close)
	return server
}

// setupTestEnvironment moves into a fresh directory so no .env or target
// file from the repository is picked up, and disables color.
func setupTestEnvironment(t *testing.T) string {
	t.Helper()
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	tempDir := t.TempDir()
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}

	originalNoColor := color.NoColor
	color.NoColor = true

	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change to original directory: %v", err)
		}
		color.NoColor = originalNoColor
		ResetGlobalState()
	})
	return tempDir
}

// installFakeGit puts a shell script named git first on PATH.
func installFakeGit(t *testing.T, body string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake git is a shell script")
	}

	dir := t.TempDir()
	script := "#!/bin/sh\ncat > /dev/null\n" + body + "\n"
	if err := os.WriteFile(filepath.Join(dir, "git"), []byte(script), 0755); err != nil {
		t.Fatalf("writing fake git: %v", err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

// unsetEnv removes name for the duration of the test.
func unsetEnv(t *testing.T, name string) {
	t.Helper()
	t.Setenv(name, "")
	os.Unsetenv(name)
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()
	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	outputChan := make(chan string, 2)
	for _, reader := range []*os.File{stdoutReader, stderrReader} {
		go func(r *os.File) {
			var buf bytes.Buffer
			_, _ = io.Copy(&buf, r)
			outputChan <- buf.String()
		}(reader)
	}

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()
	os.Stdout = originalStdout
	os.Stderr = originalStderr

	return <-outputChan + <-outputChan, err
}

// createTestCLI builds a fresh root command wired to server.
func createTestCLI(server *httptest.Server, args ...string) *cobra.Command {
	ResetGlobalState()
	if server != nil {
		httpClient = server.Client()
	}

	rootCmd := &cobra.Command{
		Use:           "ghsecret",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	AddCommands(rootCmd)
	rootCmd.SetArgs(args)
	return rootCmd
}

// runCLI executes args and returns the combined output.
func runCLI(server *httptest.Server, args ...string) (string, error) {
	return captureOutput(func() error {
		return createTestCLI(server, args...).Execute()
	})
}
