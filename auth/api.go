package auth

import "onuze-cli/types"

var apiClient types.ApiClient

// SetApiClient resolves the auth -> api circular dependency. Called from
// main before anything else runs.
func SetApiClient(client types.ApiClient) {
	apiClient = client
}
