package utils

import (
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
)

// maxReadBytes bounds how much of stdin is read. It is one byte past
// GitHub's 48 KB limit so oversized values are still detected when the
// credentials are resolved.
const maxReadBytes = 48*1024 + 1

// ReadStdin reads a secret value piped on stdin. It refuses to block on an
// interactive terminal.
func ReadStdin() (string, error) {
	if IsTerminal() {
		return "", errors.New("no data provided on stdin (hint: pipe the secret value to this command)")
	}
	return ReadSecret(os.Stdin)
}

// ReadSecret reads a secret value from r, dropping one trailing newline so
// `echo value | ghsecret publish --value-stdin` stores "value".
func ReadSecret(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxReadBytes))
	if err != nil {
		return "", errors.Wrap(err, "failed to read from stdin")
	}

	value := strings.TrimSuffix(string(data), "\n")
	value = strings.TrimSuffix(value, "\r")
	if value == "" {
		return "", errors.New("stdin is empty")
	}
	return value, nil
}
