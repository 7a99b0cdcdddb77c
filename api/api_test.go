package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onuze-cli/auth"
	"onuze-cli/shared"
)

func withServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	prev := GetApiHost()
	SetApiHost(server.URL)
	t.Cleanup(func() {
		SetApiHost(prev)
		server.Close()
	})
	return server
}

func withToken(t *testing.T, token string) {
	t.Helper()
	prev := auth.Current
	auth.Current = &shared.ClientAuth{
		Token: token,
		User:  shared.User{Id: "u1", Username: "tester"},
	}
	t.Cleanup(func() { auth.Current = prev })
}

func TestGetPost(t *testing.T) {
	withServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/posts/my-post", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(shared.Post{
			Id:    "p1",
			Path:  "my-post",
			Title: "hello",
			Score: 3,
		})
	})

	post, apiErr := Client.GetPost("my-post")
	require.Nil(t, apiErr)
	assert.Equal(t, "my-post", post.Path)
	assert.Equal(t, 3, post.Score)
}

func TestAuthHeaderInjection(t *testing.T) {
	withToken(t, "some-jwt")

	var gotAuth string
	withServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, "{}")
	})

	_, apiErr := Client.GetPost("my-post")
	require.Nil(t, apiErr)
	assert.Equal(t, "JWT some-jwt", gotAuth)
}

func TestAnonymousRequestHasNoAuthHeader(t *testing.T) {
	prev := auth.Current
	auth.Current = nil
	t.Cleanup(func() { auth.Current = prev })

	var gotAuth string
	withServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, "{}")
	})

	_, apiErr := Client.GetPost("my-post")
	require.Nil(t, apiErr)
	assert.Empty(t, gotAuth)
}

func TestErrorTyping(t *testing.T) {
	tests := []struct {
		status   int
		wantType shared.ApiErrorType
	}{
		{http.StatusForbidden, shared.ApiErrorTypeUnauthorized},
		{http.StatusNotFound, shared.ApiErrorTypeNotFound},
		{http.StatusConflict, shared.ApiErrorTypeConflict},
		{http.StatusInternalServerError, shared.ApiErrorTypeServer},
	}

	for _, test := range tests {
		t.Run(fmt.Sprint(test.status), func(t *testing.T) {
			withServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(test.status)
				fmt.Fprint(w, `{"detail": "nope"}`)
			})

			_, apiErr := Client.GetPost("my-post")
			require.NotNil(t, apiErr)
			assert.Equal(t, test.wantType, apiErr.Type)
			assert.Equal(t, test.status, apiErr.Status)
			assert.Equal(t, "nope", apiErr.Msg)
		})
	}
}

func TestValidationFieldMap(t *testing.T) {
	withServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"title": ["This field is required."], "content": ["Too long."]}`)
	})

	_, apiErr := Client.CreatePost("gophers", shared.CreatePostRequest{})
	require.NotNil(t, apiErr)
	assert.Equal(t, shared.ApiErrorTypeValidation, apiErr.Type)
	assert.Equal(t, []string{"This field is required."}, apiErr.Fields["title"])
	assert.Equal(t, []string{"Too long."}, apiErr.Fields["content"])
	assert.Contains(t, apiErr.Msg, "title")
}

func TestNonJsonErrorPassedThrough(t *testing.T) {
	withServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "<html>bad gateway</html>")
	})

	_, apiErr := Client.GetPost("my-post")
	require.NotNil(t, apiErr)
	assert.Equal(t, shared.ApiErrorTypeServer, apiErr.Type)
	assert.Contains(t, apiErr.Msg, "bad gateway")
}

func TestNetworkError(t *testing.T) {
	prev := GetApiHost()
	SetApiHost("http://127.0.0.1:1")
	t.Cleanup(func() { SetApiHost(prev) })

	_, apiErr := Client.GetPost("my-post")
	require.NotNil(t, apiErr)
	assert.Equal(t, shared.ApiErrorTypeNetwork, apiErr.Type)
}

func TestVoteEndpoints(t *testing.T) {
	var paths []string
	withServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		paths = append(paths, r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.Nil(t, Client.UpvotePost("my-post"))
	require.Nil(t, Client.DownvotePost("my-post"))
	require.Nil(t, Client.UpvoteComment("c1"))
	require.Nil(t, Client.DownvoteComment("c1"))

	assert.Equal(t, []string{
		"/api/v1/posts/my-post/upvote",
		"/api/v1/posts/my-post/downvote",
		"/api/v1/comments/c1/upvote",
		"/api/v1/comments/c1/downvote",
	}, paths)
}

// A server-produced cursor is a fully-qualified URL and is re-issued
// verbatim, not re-rooted on the configured base.
func TestGetPageFollowsCursor(t *testing.T) {
	var server *httptest.Server
	server = withServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.URL.Path == "/api/v1/posts/" && r.URL.Query().Get("cursor") == "":
			json.NewEncoder(w).Encode(shared.Page[shared.Post]{
				Results: []shared.Post{{Id: "p1", Path: "one"}},
				Next:    server.URL + "/api/v1/posts/?cursor=abc",
				Count:   2,
			})
		case r.URL.Query().Get("cursor") == "abc":
			json.NewEncoder(w).Encode(shared.Page[shared.Post]{
				Results: []shared.Post{{Id: "p2", Path: "two"}},
				Count:   2,
			})
		default:
			t.Errorf("unexpected request: %s", r.URL)
		}
	})

	page1, apiErr := GetPage[shared.Post]("/posts/")
	require.Nil(t, apiErr)
	require.Len(t, page1.Results, 1)
	require.True(t, strings.HasPrefix(page1.Next, "http"))

	page2, apiErr := GetPage[shared.Post](page1.Next)
	require.Nil(t, apiErr)
	require.Len(t, page2.Results, 1)
	assert.Equal(t, "two", page2.Results[0].Path)
	assert.Empty(t, page2.Next)
}

func TestUploadImage(t *testing.T) {
	withServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/upload/", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "post", r.FormValue("kind"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "cat.png", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(shared.UploadResponse{Url: "https://cdn.example.com/cat.png"})
	})

	res, apiErr := Client.UploadImage(strings.NewReader("fake image bytes"), "cat.png", "post")
	require.Nil(t, apiErr)
	assert.Equal(t, "https://cdn.example.com/cat.png", res.Url)
}

func TestGetUnreadCount(t *testing.T) {
	withServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/notifications/unread-count", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"count": 4}`)
	})

	count, apiErr := Client.GetUnreadCount()
	require.Nil(t, apiErr)
	assert.Equal(t, 4, count)
}
