package llm

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnavailable indicates the provider endpoint is unreachable.
	ErrUnavailable = errors.New("llm provider unavailable")

	// ErrTimeout indicates the LLM request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrInvalidOutput indicates the LLM response could not be parsed
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid llm output format")

	// ErrRetryExhausted indicates all transport retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")

	// ErrUnsupported indicates the provider does not implement the requested call.
	ErrUnsupported = errors.New("operation not supported by provider")
)

// FilteredMarker is returned as completion text in place of an error when the
// provider rejects a prompt on content-policy grounds.
const FilteredMarker = "400 ERROR - FILTERED"

// StatusError is a non-2xx response from a provider HTTP API.
type StatusError struct {
	Provider string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	return fmt.Sprintf("%s: Error code: %d - %s", e.Provider, e.Code, body)
}

// Fatal reports whether retrying the same request cannot succeed.
func (e *StatusError) Fatal() bool {
	return e.Code >= 400 && e.Code < 500 && e.Code != 429
}

var filterSignatures = []string{
	"Error code: 400",
	"status code: 400",
	"The response was filtered",
	"content_filter",
}

// IsContentFiltered reports whether err carries a known content-policy
// rejection signature.
func IsContentFiltered(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, sig := range filterSignatures {
		if strings.Contains(msg, sig) {
			return true
		}
	}
	return false
}

func isFatal(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Fatal()
	}
	return errors.Is(err, ErrUnsupported) || IsContentFiltered(err)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case IsContentFiltered(err):
		return "FILTERED"
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	case errors.Is(err, ErrUnsupported):
		return "UNSUPPORTED"
	default:
		return "UNKNOWN"
	}
}
