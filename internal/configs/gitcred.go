package configs

import (
	"bufio"
	"bytes"
	"context"
	"net/url"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

const gitCredentialTimeout = 10 * time.Second

// GitCredentialToken asks `git credential fill` for the password stored for
// the GitHub host behind apiURL. Terminal prompts are disabled so the call
// never blocks on input.
func GitCredentialToken(ctx context.Context, apiURL string) (string, error) {
	credentialURL, err := gitCredentialURL(apiURL)
	if err != nil {
		return "", err
	}

	cmd := exec.CommandContext(ctx, "git", "credential", "fill")
	cmd.Stdin = strings.NewReader("url=" + credentialURL + "\n\n")
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0", "GCM_INTERACTIVE=never")

	output, err := cmd.Output()
	if err != nil {
		return "", errors.Wrap(err, "git credential fill")
	}

	password := parseGitCredential(output)["password"]
	if password == "" {
		return "", errors.New("git credential fill returned no password")
	}
	return password, nil
}

// gitCredentialURL maps the API base URL to the web host git stores
// credentials for: api.github.com becomes github.com, an Enterprise
// server keeps its own host.
func gitCredentialURL(apiURL string) (string, error) {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	parsed, err := url.Parse(apiURL)
	if err != nil || parsed.Host == "" {
		return "", errors.Newf("cannot derive a git host from %q", apiURL)
	}

	host := parsed.Host
	if host == "api.github.com" {
		host = "github.com"
	}
	return "https://" + host, nil
}

// parseGitCredential reads the key=value lines of the credential protocol.
func parseGitCredential(output []byte) map[string]string {
	values := make(map[string]string)
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), "=")
		if ok {
			values[key] = strings.TrimSpace(value)
		}
	}
	return values
}
