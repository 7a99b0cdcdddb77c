package auth

import (
	"fmt"
	"net/http"

	"onuze-cli/shared"
	"onuze-cli/term"
)

// SetAuthHeader attaches the stored token using the deployment's JWT
// scheme. Anonymous requests go out without the header.
func SetAuthHeader(req *http.Request) {
	if Current == nil || Current.Token == "" {
		return
	}
	req.Header.Set("Authorization", "JWT "+Current.Token)
}

// Bootstrap loads the persisted token, then re-verifies it with a who-am-i
// probe. Transitions unknown -> loading -> authenticated|anonymous. Views
// must not act on identity until the state has settled.
func Bootstrap() error {
	if apiClient == nil {
		return fmt.Errorf("error resolving auth: api client not set")
	}

	setState(AuthStateLoading)

	loaded, err := loadAuth()
	if err != nil {
		setState(AuthStateAnonymous)
		return err
	}

	if loaded == nil {
		setState(AuthStateAnonymous)
		return nil
	}

	Current = loaded

	user, apiErr := apiClient.WhoAmI()
	if apiErr != nil {
		if apiErr.Type == shared.ApiErrorTypeUnauthorized || apiErr.Type == shared.ApiErrorTypeInvalidToken {
			if err := clearAuth(); err != nil {
				return err
			}
			setState(AuthStateAnonymous)
			return nil
		}
		// network or server trouble: keep the stored identity, stay usable
		setState(AuthStateAuthenticated)
		return nil
	}

	Current.User = *user
	if err := writeCurrentAuth(); err != nil {
		return err
	}

	setState(AuthStateAuthenticated)
	return nil
}

// MustResolveAuth is called at the top of identity-gated commands.
func MustResolveAuth() {
	if err := Bootstrap(); err != nil {
		term.OutputErrorAndExit("Error resolving auth: %v", err)
	}

	if State() != AuthStateAuthenticated {
		term.OutputErrorAndExit("Not signed in. Run 'onuze sign-in' first.")
	}
}

func SignIn(username, password string) error {
	if apiClient == nil {
		return fmt.Errorf("error signing in: api client not set")
	}

	setState(AuthStateLoading)

	res, apiErr := apiClient.CreateToken(shared.SignInRequest{Username: username, Password: password})
	if apiErr != nil {
		setState(AuthStateAnonymous)
		return fmt.Errorf("error creating token: %v", apiErr.Msg)
	}

	Current = &shared.ClientAuth{Token: res.Access}

	user, apiErr := apiClient.WhoAmI()
	if apiErr != nil {
		Current = nil
		setState(AuthStateAnonymous)
		return fmt.Errorf("error verifying identity: %v", apiErr.Msg)
	}

	Current.User = *user

	if err := writeCurrentAuth(); err != nil {
		return err
	}

	setState(AuthStateAuthenticated)
	return nil
}

func SignOut() error {
	if err := clearAuth(); err != nil {
		return err
	}
	setState(AuthStateAnonymous)
	return nil
}

// RefreshInvalidToken re-prompts for credentials when the server rejects
// the stored token mid-session, so the failed call can be retried.
func RefreshInvalidToken() error {
	if Current == nil {
		return fmt.Errorf("error refreshing token: auth not loaded")
	}

	username := Current.User.Username
	if username == "" {
		return fmt.Errorf("error refreshing token: no stored identity")
	}

	term.StopSpinner()
	term.OutputSimpleError("Your session expired. Sign in again to continue.")

	password, err := term.GetUserPasswordInput(fmt.Sprintf("Password for %s:", username))
	if err != nil {
		return fmt.Errorf("error reading password: %v", err)
	}

	return SignIn(username, password)
}
