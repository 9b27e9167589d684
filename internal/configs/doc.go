// Package configs resolves everything ghsecret needs before it talks to
// GitHub: which repository and secret to target, and the two credentials.
//
// # Target
//
// The built-in target is the goonidz/purple repository and its
// SUPABASE_SERVICE_ROLE_KEY secret. It can be changed, in increasing order
// of precedence, by:
//
//   - a TOML file (.ghsecret.toml in the working directory, or --config)
//   - command-line flags
//
// # Credentials
//
// The access token and the secret value are read from environment
// variables (GITHUB_TOKEN and SUPABASE_SERVICE_ROLE_KEY by default). A .env
// file is loaded first when present; variables already set in the process
// environment are never overwritten by it.
//
// Credentials are checked before any network I/O. A missing value is a
// configuration error, never a retryable one.
package configs
