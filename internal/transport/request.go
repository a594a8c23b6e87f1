package transport

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/umd-lib/staffdir/pkg/errors"
)

// maxErrorBody bounds how much of an error response is kept in APIError.
const maxErrorBody = 4096

// DecodeResponse decodes a JSON response into target and closes the body.
// A non-200 status is returned as an *errors.APIError for service.
func DecodeResponse(resp *http.Response, service string, target any) error {
	defer resp.Body.Close() //nolint:errcheck // read-only body

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapIO("read", "response body", err)
	}

	if resp.StatusCode != http.StatusOK {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		endpoint := ""
		if resp.Request != nil && resp.Request.URL != nil {
			endpoint = resp.Request.URL.Path
		}
		return &errors.APIError{
			Service:    service,
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   endpoint,
		}
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", "response", err)
	}

	return nil
}
