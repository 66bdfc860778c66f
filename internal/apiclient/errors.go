package apiclient

import (
	"context"
	"errors"
	"fmt"

	"github.com/justsurfingit/job-board/internal/dtos"
)

// DefaultFailureMessage is used when a failed reply carries no message of its own.
const DefaultFailureMessage = "API request failed"

// TransportFailureMessage is what users see when the server could not be reached.
const TransportFailureMessage = "Unable to reach the server. Please check your connection and try again."

// ErrDecode marks a reply body that could not be decoded.
var ErrDecode = errors.New("malformed response body")

// APIError is a reply the server answered but did not accept: a non-2xx status,
// or a 2xx whose envelope reports success=false.
type APIError struct {
	StatusCode int
	Message    string
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" && e.Detail != e.Message {
		return fmt.Sprintf("api error (status %d): %s: %s", e.StatusCode, e.Message, e.Detail)
	}
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// TransportError is a request that never produced a response.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsTransport reports whether err is a no-response failure.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.StatusCode
	}
	return 0
}

// UserMessage converts any client error into the text shown to a user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var (
		ae *APIError
		ve *dtos.ValidationError
	)
	switch {
	case errors.As(err, &ae):
		return ae.Message
	case errors.As(err, &ve):
		return ve.Error()
	case errors.Is(err, context.Canceled):
		return "Request cancelled"
	case errors.Is(err, context.DeadlineExceeded):
		return "The server took too long to respond. Please try again."
	case IsTransport(err):
		return TransportFailureMessage
	case errors.Is(err, ErrDecode):
		return "The server sent an unexpected response."
	default:
		return err.Error()
	}
}

// Result unwraps a successful envelope's data. An envelope with success=false becomes an
// *APIError carrying its message, or fallback when it has none.
func Result[T any](env *dtos.Envelope[T], err error, fallback string) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if env == nil || !env.Success {
		msg := fallback
		detail := ""
		if env != nil {
			detail = env.Error
			if env.Message != "" {
				msg = env.Message
			}
		}
		return zero, &APIError{StatusCode: 200, Message: msg, Detail: detail}
	}
	return env.Data, nil
}
