package transport

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/agentstation/boorusync/pkg/errors"
	"github.com/agentstation/boorusync/pkg/logging"
)

// DecodeResponse checks the status of resp and decodes its JSON body into
// target. Any non-2xx status becomes an APIError.
func DecodeResponse(resp *http.Response, service, operation string, target any) error {
	body, err := ReadResponse(resp, service, operation)
	if err != nil {
		return err
	}
	if target == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", service+" "+operation, err)
	}
	return nil
}

// ReadResponse reads and closes the body of resp, returning an APIError for
// any non-2xx status.
func ReadResponse(resp *http.Response, service, operation string) ([]byte, error) {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn().Err(err).Str("service", service).Msg("Failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WrapIO("read", service+" response body", err)
	}

	if !IsSuccess(resp.StatusCode) {
		return nil, errors.NewAPIError(service, operation, resp.StatusCode, ErrorDetail(body))
	}
	return body, nil
}

// IsSuccess reports whether status is 2xx.
func IsSuccess(status int) bool {
	return status >= 200 && status < 300
}

// ErrorDetail extracts a human readable message from an error payload: the
// "description" or "title" of a JSON object, else the payload text.
func ErrorDetail(body []byte) string {
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err == nil && obj != nil {
		for _, key := range []string{"description", "title"} {
			if s, ok := obj[key].(string); ok && s != "" {
				return s
			}
		}
		if compact, err := json.Marshal(obj); err == nil {
			return string(compact)
		}
	}
	return strings.TrimSpace(string(body))
}
