package advising

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest indicates a call was rejected locally because a
	// required input was empty. No request was sent.
	ErrInvalidRequest = errors.New("school and interests are required")

	// ErrRequestFailed matches every *RequestFailedError.
	ErrRequestFailed = errors.New("advising request failed")

	// ErrEmptyResult indicates the service answered but recommended nothing.
	ErrEmptyResult = errors.New("no matching majors found")

	// ErrMalformedResponse indicates a response body did not have the
	// expected shape.
	ErrMalformedResponse = errors.New("malformed advising response")

	// ErrTimeout indicates the call exceeded the configured deadline.
	ErrTimeout = errors.New("advising request timed out")
)

const (
	fallbackMajorsMessage    = "Failed to fetch majors"
	fallbackResourcesMessage = "Failed to fetch learning resources"
	timeoutMessage           = "The advising service did not respond in time"
)

// RequestFailedError is a transport failure or a non-success status.
// Message is what the student sees.
type RequestFailedError struct {
	Endpoint string
	Status   int // 0 for transport failures
	Message  string
	Err      error
}

func (e *RequestFailedError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s: %v", e.Endpoint, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Endpoint, e.Status, e.Message)
}

func (e *RequestFailedError) Unwrap() error { return e.Err }

func (e *RequestFailedError) Is(target error) bool { return target == ErrRequestFailed }

// UserMessage turns a client error into the text shown on the results step.
func UserMessage(err error) string {
	var rf *RequestFailedError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &rf):
		return rf.Message
	case errors.Is(err, ErrInvalidRequest):
		return "School and interests are required"
	case errors.Is(err, ErrEmptyResult):
		return "No matching majors found"
	default:
		return err.Error()
	}
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrMalformedResponse):
		return "MALFORMED"
	case errors.Is(err, ErrEmptyResult):
		return "EMPTY"
	case errors.Is(err, ErrRequestFailed):
		return "REQUEST_FAILED"
	default:
		return "UNKNOWN"
	}
}
