package auth

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onuze-cli/fs"
	"onuze-cli/shared"
	"onuze-cli/types"
)

type fakeAuthClient struct {
	types.ApiClient

	createToken func(req shared.SignInRequest) (*shared.SignInResponse, *shared.ApiError)
	whoAmI      func() (*shared.User, *shared.ApiError)
}

func (f *fakeAuthClient) CreateToken(req shared.SignInRequest) (*shared.SignInResponse, *shared.ApiError) {
	return f.createToken(req)
}

func (f *fakeAuthClient) WhoAmI() (*shared.User, *shared.ApiError) {
	return f.whoAmI()
}

func setup(t *testing.T, client types.ApiClient) {
	t.Helper()

	prevPath := fs.HomeAuthPath
	fs.HomeAuthPath = filepath.Join(t.TempDir(), "auth.json")

	prevCurrent := Current
	prevClient := apiClient

	Current = nil
	SetApiClient(client)

	t.Cleanup(func() {
		fs.HomeAuthPath = prevPath
		Current = prevCurrent
		SetApiClient(prevClient)
	})
}

func TestSetAuthHeader(t *testing.T) {
	setup(t, nil)

	req, err := http.NewRequest(http.MethodGet, "http://example.com", nil)
	require.NoError(t, err)

	SetAuthHeader(req)
	assert.Empty(t, req.Header.Get("Authorization"), "anonymous requests carry no header")

	Current = &shared.ClientAuth{Token: "some-jwt"}
	SetAuthHeader(req)
	assert.Equal(t, "JWT some-jwt", req.Header.Get("Authorization"))
}

func TestSignIn(t *testing.T) {
	setup(t, &fakeAuthClient{
		createToken: func(req shared.SignInRequest) (*shared.SignInResponse, *shared.ApiError) {
			assert.Equal(t, "tester", req.Username)
			assert.Equal(t, "hunter2", req.Password)
			return &shared.SignInResponse{Access: "fresh-jwt"}, nil
		},
		whoAmI: func() (*shared.User, *shared.ApiError) {
			return &shared.User{Id: "u1", Username: "tester"}, nil
		},
	})

	var states []AuthState
	defer Subscribe(func(s AuthState) {
		states = append(states, s)
	})()

	require.NoError(t, SignIn("tester", "hunter2"))

	require.NotNil(t, Current)
	assert.Equal(t, "fresh-jwt", Current.Token)
	assert.Equal(t, "tester", Current.User.Username)
	assert.Equal(t, AuthStateAuthenticated, State())
	assert.Equal(t, []AuthState{AuthStateLoading, AuthStateAuthenticated}, states)

	_, err := os.Stat(fs.HomeAuthPath)
	assert.NoError(t, err, "identity persisted to auth.json")
}

func TestSignInBadCredentials(t *testing.T) {
	setup(t, &fakeAuthClient{
		createToken: func(shared.SignInRequest) (*shared.SignInResponse, *shared.ApiError) {
			return nil, &shared.ApiError{Type: shared.ApiErrorTypeUnauthorized, Status: 401, Msg: "bad credentials"}
		},
	})

	require.Error(t, SignIn("tester", "wrong"))
	assert.Equal(t, AuthStateAnonymous, State())
}

func TestBootstrapWithoutStoredAuth(t *testing.T) {
	setup(t, &fakeAuthClient{})

	require.NoError(t, Bootstrap())
	assert.Nil(t, Current)
	assert.Equal(t, AuthStateAnonymous, State())
}

// A rejected token is cleared so the next run starts anonymous instead of
// looping on a dead identity.
func TestBootstrapClearsRejectedToken(t *testing.T) {
	setup(t, &fakeAuthClient{
		whoAmI: func() (*shared.User, *shared.ApiError) {
			return nil, &shared.ApiError{Type: shared.ApiErrorTypeInvalidToken, Status: 401, Msg: "token_not_valid"}
		},
	})

	Current = &shared.ClientAuth{Token: "stale-jwt", User: shared.User{Username: "tester"}}
	require.NoError(t, writeCurrentAuth())
	Current = nil

	require.NoError(t, Bootstrap())
	assert.Nil(t, Current)
	assert.Equal(t, AuthStateAnonymous, State())

	_, err := os.Stat(fs.HomeAuthPath)
	assert.True(t, os.IsNotExist(err), "auth.json removed")
}

// Network trouble keeps the stored identity so the client stays usable
// offline-ish rather than logging the user out.
func TestBootstrapKeepsIdentityOnNetworkError(t *testing.T) {
	setup(t, &fakeAuthClient{
		whoAmI: func() (*shared.User, *shared.ApiError) {
			return nil, &shared.ApiError{Type: shared.ApiErrorTypeNetwork, Msg: "offline"}
		},
	})

	Current = &shared.ClientAuth{Token: "stored-jwt", User: shared.User{Username: "tester"}}
	require.NoError(t, writeCurrentAuth())
	Current = nil

	require.NoError(t, Bootstrap())
	require.NotNil(t, Current)
	assert.Equal(t, "stored-jwt", Current.Token)
	assert.Equal(t, AuthStateAuthenticated, State())
}

func TestSignOut(t *testing.T) {
	setup(t, &fakeAuthClient{})

	Current = &shared.ClientAuth{Token: "some-jwt"}
	require.NoError(t, writeCurrentAuth())

	require.NoError(t, SignOut())
	assert.Nil(t, Current)
	assert.Equal(t, AuthStateAnonymous, State())

	_, err := os.Stat(fs.HomeAuthPath)
	assert.True(t, os.IsNotExist(err))
}
