package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"onuze-cli/shared"
)

// ONUZE_DEBUG dumps every decoded response to the log file.
var debugResponses = os.Getenv("ONUZE_DEBUG") != ""

type reqOptions struct {
	method        string
	body          interface{}
	unauthed      bool
	slow          bool
	retriedReauth bool
}

// apiRequest is the single entry point for REST calls: URL assembly, JSON
// serialization, auth via the client transports, and error typing. path is
// either relative to the configured base or a fully-qualified URL (the
// server's opaque `next` cursors are re-issued verbatim through here).
func apiRequest(path string, opts reqOptions) ([]byte, *shared.ApiError) {
	serverUrl := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		serverUrl = GetApiBase() + path
	}

	method := opts.method
	if method == "" {
		method = http.MethodGet
	}

	var reqBody io.Reader
	if opts.body != nil {
		reqBytes, err := json.Marshal(opts.body)
		if err != nil {
			return nil, &shared.ApiError{Type: shared.ApiErrorTypeOther, Msg: fmt.Sprintf("error marshalling request: %v", err)}
		}
		reqBody = bytes.NewBuffer(reqBytes)
	}

	request, err := http.NewRequest(method, serverUrl, reqBody)
	if err != nil {
		return nil, &shared.ApiError{Type: shared.ApiErrorTypeOther, Msg: fmt.Sprintf("error creating request: %v", err)}
	}
	if opts.body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	client := authenticatedFastClient
	if opts.unauthed {
		client = unauthenticatedClient
	} else if opts.slow {
		client = authenticatedSlowClient
	}

	resp, err := client.Do(request)
	if err != nil {
		return nil, networkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		errorBody, _ := io.ReadAll(resp.Body)
		apiErr := HandleApiError(resp, errorBody)

		if !opts.unauthed && !opts.retriedReauth {
			didRefresh, apiErr := refreshAuthIfNeeded(apiErr)
			if didRefresh {
				opts.retriedReauth = true
				return apiRequest(path, opts)
			}
			return nil, apiErr
		}

		return nil, apiErr
	}

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &shared.ApiError{Type: shared.ApiErrorTypeOther, Msg: fmt.Sprintf("error reading response: %v", err)}
	}

	return respBytes, nil
}

func getJson[T any](path string, opts reqOptions) (*T, *shared.ApiError) {
	respBytes, apiErr := apiRequest(path, opts)
	if apiErr != nil {
		return nil, apiErr
	}

	var respBody T
	if len(respBytes) > 0 {
		if err := json.Unmarshal(respBytes, &respBody); err != nil {
			return nil, &shared.ApiError{Type: shared.ApiErrorTypeOther, Msg: fmt.Sprintf("error decoding response: %v", err)}
		}
	}

	if debugResponses {
		log.Printf("api: %s response\n%s", path, spew.Sdump(respBody))
	}

	return &respBody, nil
}

// GetPage fetches one page of a paginated listing. url may be a relative
// first-page path with query params or a server-produced cursor.
func GetPage[T shared.Item](url string) (*shared.Page[T], *shared.ApiError) {
	return getJson[shared.Page[T]](url, reqOptions{})
}
