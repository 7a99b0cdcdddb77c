package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"onuze-cli/shared"
	"onuze-cli/types"
)

// UploadImage issues a multipart request to the media endpoint and returns
// the hosted URL. The slow client is used since uploads can exceed the fast
// request timeout.
func (a *Api) UploadImage(file io.Reader, filename string, kind types.UploadKind) (*shared.UploadResponse, *shared.ApiError) {
	serverUrl := GetApiBase() + "/upload/"

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return nil, &shared.ApiError{Type: shared.ApiErrorTypeOther, Msg: fmt.Sprintf("error creating form file: %v", err)}
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, &shared.ApiError{Type: shared.ApiErrorTypeOther, Msg: fmt.Sprintf("error reading file: %v", err)}
	}
	if err := writer.WriteField("kind", string(kind)); err != nil {
		return nil, &shared.ApiError{Type: shared.ApiErrorTypeOther, Msg: fmt.Sprintf("error writing field: %v", err)}
	}
	if err := writer.Close(); err != nil {
		return nil, &shared.ApiError{Type: shared.ApiErrorTypeOther, Msg: fmt.Sprintf("error closing multipart writer: %v", err)}
	}

	request, err := http.NewRequest(http.MethodPost, serverUrl, &buf)
	if err != nil {
		return nil, &shared.ApiError{Type: shared.ApiErrorTypeOther, Msg: fmt.Sprintf("error creating request: %v", err)}
	}
	request.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := authenticatedSlowClient.Do(request)
	if err != nil {
		return nil, networkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		errorBody, _ := io.ReadAll(resp.Body)
		return nil, HandleApiError(resp, errorBody)
	}

	var respBody shared.UploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&respBody); err != nil {
		return nil, &shared.ApiError{Type: shared.ApiErrorTypeOther, Msg: fmt.Sprintf("error decoding response: %v", err)}
	}

	return &respBody, nil
}
