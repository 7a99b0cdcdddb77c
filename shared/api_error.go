package shared

import (
	"fmt"
	"sort"
	"strings"
)

type ApiErrorType string

const (
	ApiErrorTypeNetwork      ApiErrorType = "network"
	ApiErrorTypeInvalidToken ApiErrorType = "invalid_token"
	ApiErrorTypeUnauthorized ApiErrorType = "unauthorized"
	ApiErrorTypeNotFound     ApiErrorType = "not_found"
	ApiErrorTypeValidation   ApiErrorType = "validation"
	ApiErrorTypeConflict     ApiErrorType = "conflict"
	ApiErrorTypeServer       ApiErrorType = "server"

	ApiErrorTypeOther ApiErrorType = "other"
)

type ApiError struct {
	Type   ApiErrorType `json:"type"`
	Status int          `json:"status"`
	Msg    string       `json:"msg"`

	// field errors from a 400 validation response, keyed by field name
	Fields map[string][]string `json:"fields,omitempty"`
}

func (e *ApiError) Error() string {
	if e == nil {
		return ""
	}

	if len(e.Fields) > 0 {
		var parts []string
		for field, msgs := range e.Fields {
			parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(msgs, "; ")))
		}
		sort.Strings(parts)
		return strings.Join(parts, " | ")
	}

	return e.Msg
}

// ApiErrorTypeForStatus maps a response status code to the error taxonomy.
// A zero status means the request never produced a response.
func ApiErrorTypeForStatus(status int) ApiErrorType {
	switch {
	case status == 0:
		return ApiErrorTypeNetwork
	case status == 401 || status == 403:
		return ApiErrorTypeUnauthorized
	case status == 404:
		return ApiErrorTypeNotFound
	case status == 400:
		return ApiErrorTypeValidation
	case status == 409 || status == 422:
		return ApiErrorTypeConflict
	case status >= 500:
		return ApiErrorTypeServer
	default:
		return ApiErrorTypeOther
	}
}
