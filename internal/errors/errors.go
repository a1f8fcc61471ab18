// Package errors provides the error types surfaced by the backend client.
package errors

import (
	"errors"
	"fmt"

	"github.com/diogo/readingchat/internal/models"
)

// Sentinel errors for common cases
var (
	ErrRequestFailed   = errors.New("request failed")
	ErrInvalidResponse = errors.New("invalid response format")
	ErrEmptyMessage    = errors.New("message cannot be empty")
)

// FailureKind records where a request failed. It is kept for logging;
// every kind is shown to the user the same way.
type FailureKind int

const (
	KindTransport FailureKind = iota
	KindStatus
	KindParse
)

// String returns a short name for the kind
func (k FailureKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// RequestFailure covers network failure, non-OK HTTP status and response
// parse failure. It is the only error kind the dispatcher surfaces.
type RequestFailure struct {
	Kind       FailureKind
	Endpoint   string
	StatusCode int
	Message    string
	Err        error
}

func (e *RequestFailure) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return ErrRequestFailed.Error()
	}
}

// Unwrap returns the underlying error
func (e *RequestFailure) Unwrap() error {
	return e.Err
}

// Is allows comparison with sentinel errors
func (e *RequestFailure) Is(target error) bool {
	if target == ErrRequestFailed {
		return true
	}
	if target == ErrInvalidResponse {
		return e.Kind == KindParse
	}
	_, ok := target.(*RequestFailure)
	return ok
}

// NewTransportFailure wraps an error raised while sending the request or
// reading the response body
func NewTransportFailure(endpoint string, err error) *RequestFailure {
	return &RequestFailure{Kind: KindTransport, Endpoint: endpoint, Err: err}
}

// NewStatusFailure reports a non-2xx HTTP status
func NewStatusFailure(endpoint string, statusCode int, detail string) *RequestFailure {
	msg := fmt.Sprintf("backend returned HTTP %d", statusCode)
	if detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, detail)
	}
	return &RequestFailure{Kind: KindStatus, Endpoint: endpoint, StatusCode: statusCode, Message: msg}
}

// NewParseFailure reports a response body that could not be read as JSON
func NewParseFailure(endpoint, message string) *RequestFailure {
	return &RequestFailure{Kind: KindParse, Endpoint: endpoint, Message: message}
}

// IsRequestFailure reports whether err is or wraps a RequestFailure
func IsRequestFailure(err error) bool {
	return errors.Is(err, ErrRequestFailed)
}

// GetHTTPStatus returns the HTTP status carried by err, or 0
func GetHTTPStatus(err error) int {
	var rf *RequestFailure
	if errors.As(err, &rf) {
		return rf.StatusCode
	}
	return 0
}

// GetEndpoint returns the endpoint carried by err, or ""
func GetEndpoint(err error) string {
	var rf *RequestFailure
	if errors.As(err, &rf) {
		return rf.Endpoint
	}
	return ""
}

// GetKind returns the failure kind carried by err. Errors that are not
// request failures report KindTransport.
func GetKind(err error) FailureKind {
	var rf *RequestFailure
	if errors.As(err, &rf) {
		return rf.Kind
	}
	return KindTransport
}

// TranscriptLine formats err the way it is shown in the transcript
func TranscriptLine(err error) string {
	if err == nil {
		return models.ErrorPrefix
	}
	return models.ErrorPrefix + err.Error()
}
