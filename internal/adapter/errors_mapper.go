package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// mapHTTPError sorts a non-2xx reply into one of the upstream failure kinds.
// The status and the trimmed body are kept in the message.
func mapHTTPError(resp *resty.Response) error {
	status := resp.StatusCode()
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(status)
	}

	var kind error
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		kind = ErrUnauthorized
	case status == http.StatusRequestTimeout, status == http.StatusTooManyRequests, status >= http.StatusInternalServerError:
		kind = ErrUnavailable
	default:
		kind = ErrRejected
	}
	return fmt.Errorf("%w: http %d: %s", kind, status, body)
}

// mapTransportError wraps a failed round trip. A cancelled caller is not an
// upstream failure and is returned without a kind.
func mapTransportError(op string, err error) error {
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrUnavailable, op, err)
}
