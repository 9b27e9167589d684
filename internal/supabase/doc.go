// Package supabase reads a project's service_role key from the Supabase
// Management API, so the value published to GitHub can come straight from
// its source instead of a local variable.
//
// Only GET /v1/projects/{ref}/api-keys is used. Requests carry a Bearer
// personal access token and are made over HTTPS only.
package supabase
