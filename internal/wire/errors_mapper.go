package wire

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// mapHTTPError classifies a response by HTTP status. Pure function of the
// status code per the protocol contract: 401/403 are auth errors, 400/422
// validation errors, 429 and all 5xx retryable network errors. Anything else
// propagates the server-supplied message unclassified.
func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}

	switch code := resp.StatusCode(); {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return fmt.Errorf("%w: http %d: %s", ErrAuth, code, body)
	case code == http.StatusBadRequest || code == http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: http %d: %s", ErrValidation, code, body)
	case code == http.StatusTooManyRequests || code >= http.StatusInternalServerError:
		return fmt.Errorf("%w: http %d: %s", ErrNetwork, code, body)
	default:
		return fmt.Errorf("http %d: %s", code, body)
	}
}
