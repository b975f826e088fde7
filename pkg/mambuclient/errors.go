/**
 * @description
 * Error types for the Mambu client. The proxy relays upstream failures
 * verbatim, so the client preserves the status code and raw body of any
 * non-success response, and separates "Mambu answered with an error" from
 * "Mambu never answered".
 */
package mambuclient

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNoResponse marks transport failures where no HTTP response arrived
// from Mambu. Callers map it to 503.
var ErrNoResponse = errors.New("no response from mambu API")

// APIError is a non-2xx response from Mambu. Status and Body are kept
// untouched so handlers can relay them to the caller as-is.
type APIError struct {
	Status int
	Body   json.RawMessage
}

func (e *APIError) Error() string {
	return fmt.Sprintf("mambu API error: status %d, body: %s", e.Status, string(e.Body))
}

// AsAPIError unwraps err into an *APIError if one is present.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
