package httpsource

import (
	"errors"
	"fmt"
)

// StatusError reports a page request answered with a non-2xx status.
type StatusError struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Body is the response body, if any.
	Body []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("httpsource: unexpected status HTTP %d", e.StatusCode)
}

// Retryable reports whether the same page request may succeed later.
func (e *StatusError) Retryable() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}

// classifyStatus returns nil for 2xx statuses.
func classifyStatus(statusCode int, body []byte) error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}
	return &StatusError{StatusCode: statusCode, Body: body}
}

// IsRetryable reports whether err is a StatusError worth retrying.
func IsRetryable(err error) bool {
	var e *StatusError
	return errors.As(err, &e) && e.Retryable()
}
