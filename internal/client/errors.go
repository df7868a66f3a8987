package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/SscSPs/tx_classify_app/internal/apperrors"
)

// ErrNotLoggedIn is returned before any request is made when the session has no token.
var ErrNotLoggedIn = fmt.Errorf("%w: not logged in", apperrors.ErrUnauthorized)

const fallbackMessage = "Request failed."

// APIError is a request the server answered with a non-2xx status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Unwrap maps the status code to the matching apperrors sentinel.
func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusNotFound:
		return apperrors.ErrNotFound
	case e.StatusCode == http.StatusUnauthorized, e.StatusCode == http.StatusForbidden:
		return apperrors.ErrUnauthorized
	case e.StatusCode >= 400 && e.StatusCode < 500:
		return apperrors.ErrValidation
	}
	return apperrors.ErrInternal
}

func newAPIError(status int, body []byte) *APIError {
	return &APIError{StatusCode: status, Message: errorMessage(body)}
}

// errorMessage picks the most useful text out of an error body: a bare string, then
// "detail", then the first "non_field_errors" entry, then the first field error in document
// order as "field: message".
func errorMessage(body []byte) string {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return fallbackMessage
	}

	var plain string
	if err := json.Unmarshal(body, &plain); err == nil {
		return orFallback(plain)
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		if json.Valid(body) {
			return fallbackMessage
		}
		return string(body)
	}

	if msg := firstMessage(obj["detail"]); msg != "" {
		return msg
	}
	if msg := firstMessage(obj["non_field_errors"]); msg != "" {
		return msg
	}

	field, msg := firstFieldError(body)
	if msg == "" {
		return fallbackMessage
	}
	return field + ": " + msg
}

// firstFieldError walks the object keys in the order they appear in body.
func firstFieldError(body []byte) (string, string) {
	dec := json.NewDecoder(bytes.NewReader(body))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return "", ""
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return "", ""
		}
		key, _ := tok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return "", ""
		}
		if msg := firstMessage(raw); msg != "" {
			return key, msg
		}
	}
	return "", ""
}

// firstMessage reads a string, or the first message found in an array or nested object.
func firstMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		for _, item := range list {
			if msg := firstMessage(item); msg != "" {
				return msg
			}
		}
		return ""
	}
	if _, msg := firstFieldError(raw); msg != "" {
		return msg
	}
	return ""
}

func orFallback(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return fallbackMessage
	}
	return s
}

// IsAPIError reports whether err carries a server rejection and returns it.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}
