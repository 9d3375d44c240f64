package github

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// StatusError reports a non-success response from the API. The message is
// taken from the API's error payload when present, so it is suitable for
// showing to the user directly.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("github: %s (HTTP %d)", e.Message, e.StatusCode)
}

func newStatusError(code int, body []byte) *StatusError {
	var payload struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &payload)

	msg := payload.Message
	if msg == "" {
		msg = http.StatusText(code)
	}
	// Anonymous access to the public API is rate limited; point at the fix.
	if code == http.StatusForbidden || code == http.StatusTooManyRequests {
		msg += " (if this is a rate limit, set GITHUB_TOKEN)"
	}
	return &StatusError{StatusCode: code, Message: msg}
}
