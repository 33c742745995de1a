package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gophercloud/gophercloud/v2"
)

// APIError is a non-2xx response from the Neutron API.
type APIError struct {
	StatusCode int
	Type       string
	Message    string
	Detail     string
	Method     string
	URL        string
}

// neutronErrorBody is the error envelope returned by neutron-server.
type neutronErrorBody struct {
	NeutronError *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
		Detail  string `json:"detail"`
	} `json:"NeutronError"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s (HTTP %d)", msg, e.StatusCode)
}

func (e *APIError) IsNotFound() bool { return e.StatusCode == http.StatusNotFound }

func (e *APIError) IsConflict() bool { return e.StatusCode == http.StatusConflict }

func (e *APIError) IsAuthError() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

func (e *APIError) IsBadRequest() bool { return e.StatusCode == http.StatusBadRequest }

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.IsNotFound()
}

// IsAuthError reports whether err is a 401 or 403 from the API.
func IsAuthError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.IsAuthError()
}

// wrapError converts gophercloud response errors into *APIError and
// annotates transport failures with the request.
func wrapError(method, url string, err error) error {
	var unexpected gophercloud.ErrUnexpectedResponseCode
	if !errors.As(err, &unexpected) {
		return fmt.Errorf("%s %s failed: %w", method, url, err)
	}

	apiErr := &APIError{
		StatusCode: unexpected.Actual,
		Method:     method,
		URL:        url,
	}

	var body neutronErrorBody
	if json.Unmarshal(unexpected.Body, &body) == nil {
		switch {
		case body.NeutronError != nil:
			apiErr.Type = body.NeutronError.Type
			apiErr.Message = body.NeutronError.Message
			apiErr.Detail = body.NeutronError.Detail
		case body.Message != "":
			apiErr.Message = body.Message
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(unexpected.Body))
	}
	return apiErr
}
