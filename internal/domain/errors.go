package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork wraps transport failures (unreachable host, reset, bad body).
	ErrNetwork = errors.New("hbnb: network error")
	// ErrAuthenticationRequired is returned before any request is sent
	// when the caller has no token.
	ErrAuthenticationRequired = errors.New("hbnb: authentication required")
	// ErrMissingPlaceID is returned before any request is sent when the
	// place identifier is empty.
	ErrMissingPlaceID = errors.New("hbnb: missing place id")
)

type ErrorKind string

const (
	AuthenticationFailed ErrorKind = "authentication_failed"
	FetchFailed          ErrorKind = "fetch_failed"
	SubmissionFailed     ErrorKind = "submission_failed"
)

// HTTPError is a non-2xx answer from the API.
type HTTPError struct {
	Op         string
	Kind       ErrorKind
	Status     int
	StatusText string
	Message    string // server provided, may be empty
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s: %s (%d): %s", e.Op, e.Kind, e.Status, e.Detail())
}

// Detail is the server message when present, else the status text.
func (e *HTTPError) Detail() string {
	if e.Message != "" {
		return e.Message
	}
	return e.StatusText
}

// Kind reports the error kind label used in logs and the failure log.
func Kind(err error) string {
	var he *HTTPError
	switch {
	case err == nil:
		return "none"
	case errors.As(err, &he):
		return string(he.Kind)
	case errors.Is(err, ErrNetwork):
		return "network_error"
	case errors.Is(err, ErrAuthenticationRequired):
		return "authentication_required"
	case errors.Is(err, ErrMissingPlaceID):
		return "missing_place_id"
	default:
		return "unknown"
	}
}

// Status returns the HTTP status carried by err, or 0.
func Status(err error) int {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.Status
	}
	return 0
}

// UserMessage is the human readable detail surfaced on a page.
func UserMessage(err error) string {
	var he *HTTPError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &he):
		return he.Detail()
	case errors.Is(err, ErrNetwork):
		return "the listings service could not be reached"
	case errors.Is(err, ErrAuthenticationRequired):
		return "you need to be logged in"
	case errors.Is(err, ErrMissingPlaceID):
		return "no place was selected"
	default:
		return "unexpected error"
	}
}
