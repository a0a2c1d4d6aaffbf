package kitsu

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUpstream matches every non-success response.
	ErrUpstream = errors.New("upstream request failed")

	// ErrInvalidKey is returned for keys that cannot be requested or written.
	ErrInvalidKey = errors.New("invalid lookup key")
)

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	reason := http.StatusText(e.StatusCode)
	if e.Status != "" {
		reason = e.Status
	}

	kind := "Server Error"
	if e.StatusCode < 500 {
		kind = "Client Error"
	}
	return fmt.Sprintf("%d %s: %s for url: %s", e.StatusCode, kind, stripCode(reason, e.StatusCode), e.URL)
}

// Is makes errors.Is(err, ErrUpstream) hold.
func (e *StatusError) Is(target error) bool {
	return target == ErrUpstream
}

// stripCode turns "404 Not Found" into "Not Found".
func stripCode(status string, code int) string {
	prefix := fmt.Sprintf("%d ", code)
	if len(status) > len(prefix) && status[:len(prefix)] == prefix {
		return status[len(prefix):]
	}
	return status
}
