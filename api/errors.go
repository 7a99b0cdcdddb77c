package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"onuze-cli/auth"
	"onuze-cli/shared"
)

// HandleApiError turns a non-2xx response into a typed ApiError. Validation
// responses carry per-field messages; everything else is sniffed from the
// body when it's JSON and passed through verbatim otherwise.
func HandleApiError(r *http.Response, errBody []byte) *shared.ApiError {
	apiErr := &shared.ApiError{
		Type:   shared.ApiErrorTypeForStatus(r.StatusCode),
		Status: r.StatusCode,
		Msg:    strings.TrimSpace(string(errBody)),
	}

	if !strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return apiErr
	}

	if r.StatusCode == 400 {
		// django-style validation body: {"field": ["msg", ...], ...}
		var fields map[string][]string
		if err := json.Unmarshal(errBody, &fields); err == nil && len(fields) > 0 {
			apiErr.Fields = fields
			apiErr.Msg = apiErr.Error()
			return apiErr
		}
	}

	var body struct {
		Detail string `json:"detail"`
		Code   string `json:"code"`
	}
	if err := json.Unmarshal(errBody, &body); err != nil {
		log.Printf("Error unmarshalling error body: %v\n", err)
		return apiErr
	}

	if body.Detail != "" {
		apiErr.Msg = body.Detail
	}
	if body.Code == "token_not_valid" {
		apiErr.Type = shared.ApiErrorTypeInvalidToken
	}

	return apiErr
}

func networkError(err error) *shared.ApiError {
	return &shared.ApiError{
		Type:   shared.ApiErrorTypeNetwork,
		Status: 0,
		Msg:    err.Error(),
	}
}

// refreshAuthIfNeeded re-verifies a stale token once so the caller can
// retry the original request.
func refreshAuthIfNeeded(apiErr *shared.ApiError) (bool, *shared.ApiError) {
	if apiErr.Type == shared.ApiErrorTypeInvalidToken {
		err := auth.RefreshInvalidToken()
		if err != nil {
			return false, &shared.ApiError{Type: shared.ApiErrorTypeOther, Msg: "error refreshing invalid token"}
		}
		return true, nil
	}
	return false, apiErr
}
