package fxaclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
)

// APIError is a non-2xx reply from the auth or OAuth server.
type APIError struct {
	Method         string
	Path           string
	Status         int
	Errno          int
	Message        string
	ValidationKeys []string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
	if e.Errno != 0 {
		msg = fmt.Sprintf("%s errno %d", msg, e.Errno)
	}
	if e.Message != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Message)
	}
	return msg
}

// RejectsParam reports whether the server refused the request because of
// the named parameter.
func (e *APIError) RejectsParam(param string) bool {
	return e.Status == http.StatusBadRequest && slices.Contains(e.ValidationKeys, param)
}

// AsAPIError unwraps err to an *APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}

func decodeAPIError(resp *http.Response, method, path string) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	apiErr := &APIError{Method: method, Path: path, Status: resp.StatusCode}
	if len(data) == 0 {
		apiErr.Message = resp.Status
		return apiErr
	}
	var payload struct {
		Errno      int    `json:"errno"`
		Message    string `json:"message"`
		Error      string `json:"error"`
		Validation struct {
			Keys []string `json:"keys"`
		} `json:"validation"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		apiErr.Message = string(data)
		return apiErr
	}
	apiErr.Errno = payload.Errno
	apiErr.Message = payload.Message
	if apiErr.Message == "" {
		apiErr.Message = payload.Error
	}
	if apiErr.Message == "" {
		apiErr.Message = resp.Status
	}
	apiErr.ValidationKeys = payload.Validation.Keys
	return apiErr
}
