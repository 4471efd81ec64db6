package ssoapi

import (
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/jrsteele09/go-sso-client/internal/errors"
)

// HTTPError is a non-2xx response of the gateway
type HTTPError struct {
	StatusCode int
	Method     string
	URL        string
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d (%s %s)", e.StatusCode, e.Method, e.URL)
}

// Unwrap lets errors.Is(err, errors.ErrUnauthorized) match 401 responses
func (e *HTTPError) Unwrap() error {
	if e.StatusCode == 401 {
		return errors.ErrUnauthorized
	}
	return nil
}

func newHTTPError(res *resty.Response) *HTTPError {
	return &HTTPError{
		StatusCode: res.StatusCode(),
		Method:     res.Request.Method,
		URL:        res.Request.URL,
		Body:       string(res.Body()),
	}
}
