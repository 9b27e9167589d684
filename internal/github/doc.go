// Package github is a small typed client for the two GitHub REST endpoints
// ghsecret needs: reading a repository's Actions public key and writing an
// encrypted repository secret.
//
// Requests carry a Bearer token, the application/vnd.github+json media type
// and a pinned X-GitHub-Api-Version. Status codes are checked exactly as
// documented for each endpoint instead of accepting any 2xx, and the raw
// response body of a failed request is kept on the returned *APIError.
//
// The client never retries. All requests are made over HTTPS; non-HTTPS
// base URLs are refused at construction.
package github
