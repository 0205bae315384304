// Package errors provides error helpers shared by the upstream clients.
package errors

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	// MinErrorStatusCode is the minimum HTTP status code considered an error
	MinErrorStatusCode = 400

	maxErrorBody = 4096
)

// HTTPError represents an upstream error response.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("HTTP error (%d %s): %s", e.StatusCode, e.Status, e.Message)
	}
	return fmt.Sprintf("HTTP error: %d %s", e.StatusCode, e.Status)
}

// Retryable reports whether the status is worth another attempt (429 or 5xx).
func (e *HTTPError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// ParseHTTPError returns nil for non-error responses. Otherwise it reads at
// most 4 KiB of the body and extracts a message from the common JSON shapes
// ({"error": "..."}, {"message": "..."}, {"error": {"message": "..."}}).
func ParseHTTPError(resp *http.Response) error {
	if resp.StatusCode < MinErrorStatusCode {
		return nil
	}

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Message:    fmt.Sprintf("failed to read error response body: %v", err),
		}
	}

	bodyStr := strings.TrimSpace(string(bodyBytes))
	msg := bodyStr
	if extracted := extractMessage(bodyBytes); extracted != "" {
		msg = extracted
	}

	return &HTTPError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       bodyStr,
		Message:    msg,
	}
}

func extractMessage(body []byte) string {
	var payload struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
		Errors  []struct {
			Title  string `json:"title"`
			Detail string `json:"detail"`
		} `json:"errors"`
	}
	if json.Unmarshal(body, &payload) != nil {
		return ""
	}

	if len(payload.Error) > 0 {
		var s string
		if json.Unmarshal(payload.Error, &s) == nil && s != "" {
			return s
		}
		var nested struct {
			Message string `json:"message"`
			Detail  string `json:"detail"`
		}
		if json.Unmarshal(payload.Error, &nested) == nil {
			if nested.Message != "" {
				return nested.Message
			}
			if nested.Detail != "" {
				return nested.Detail
			}
		}
	}
	if payload.Message != "" {
		return payload.Message
	}

	if len(payload.Errors) > 0 {
		details := make([]string, 0, len(payload.Errors))
		for _, e := range payload.Errors {
			if e.Detail != "" {
				details = append(details, e.Title+": "+e.Detail)
			} else {
				details = append(details, e.Title)
			}
		}
		return strings.Join(details, "; ")
	}
	return ""
}

// WrapWithContext prefixes err with context. Nil stays nil.
func WrapWithContext(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

func WrapWithContextf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
