package api

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned when the reports backend rejects the stored
// token. The client has already purged the token by the time callers see
// this error; their only recovery is re-authentication.
var ErrUnauthorized = errors.New("authentication required")

// StatusError is a non-2xx response from either backend.
type StatusError struct {
	Endpoint string
	Status   int
	Message  string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: status %d: %s", e.Endpoint, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: status %d", e.Endpoint, e.Status)
}

// MalformedResponseError is a response whose body failed schema
// validation or decoding at the boundary. The raw content is kept for
// diagnostics.
type MalformedResponseError struct {
	Endpoint string
	Content  []byte
	Err      error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s: malformed response: %v", e.Endpoint, e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
