package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient wraps a resty client configured for one upstream service.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a client bound to baseURL with the given per-request
// timeout. A zero timeout leaves resty's default (none) in place.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return &HTTPClient{Client: c}
}
