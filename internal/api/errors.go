package api

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"syscall"
)

// Kind is the category of a request failure.
type Kind int

const (
	// KindNetwork indicates a transport-level failure before any HTTP
	// response was received (DNS, connection refused, timeout).
	KindNetwork Kind = iota
	// KindAPI indicates the backend responded but rejected the request
	// (non-2xx status).
	KindAPI
)

// NetworkSubtype narrows a network failure for diagnostics.
type NetworkSubtype int

const (
	NetworkGeneral NetworkSubtype = iota
	NetworkTimeout
	NetworkConnectionRefused
	NetworkDNS
	NetworkHostUnreachable
)

// String returns a human-readable name for the error kind.
func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "Network Error"
	case KindAPI:
		return "API Error"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Error is a classified failure from the request engine. Callers route on
// Kind and, for KindAPI, on Status; Body carries the decoded response for
// message extraction.
type Error struct {
	Kind    Kind
	Message string
	Status  int // HTTP status code, KindAPI only
	Body    any // decoded JSON body, or raw text when not JSON
	Err     error
	Subtype NetworkSubtype
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Kind == KindAPI {
		return fmt.Sprintf("%s (status %d): %s", e.Kind, e.Status, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error for error chain inspection.
func (e *Error) Unwrap() error {
	return e.Err
}

// classifyNetworkError wraps a transport failure as a KindNetwork Error with
// a subtype derived from the underlying cause.
func classifyNetworkError(err error) *Error {
	if err == nil {
		return nil
	}

	// fetch-style wrappers: unwrap url.Error and classify the cause
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		classified := classifyNetworkError(urlErr.Err)
		classified.Err = err
		return classified
	}

	if os.IsTimeout(err) {
		return &Error{
			Kind:    KindNetwork,
			Message: "request timed out",
			Err:     err,
			Subtype: NetworkTimeout,
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &Error{
			Kind:    KindNetwork,
			Message: fmt.Sprintf("DNS resolution failed for %s", dnsErr.Name),
			Err:     err,
			Subtype: NetworkDNS,
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if errors.Is(opErr.Err, syscall.ECONNREFUSED) {
			return &Error{
				Kind:    KindNetwork,
				Message: "server refused connection",
				Err:     err,
				Subtype: NetworkConnectionRefused,
			}
		}
		if errors.Is(opErr.Err, syscall.EHOSTUNREACH) {
			return &Error{
				Kind:    KindNetwork,
				Message: "host unreachable",
				Err:     err,
				Subtype: NetworkHostUnreachable,
			}
		}
	}

	return &Error{
		Kind:    KindNetwork,
		Message: "network failure while reaching the API",
		Err:     err,
		Subtype: NetworkGeneral,
	}
}

// newAPIError builds a KindAPI error with the message extracted from the
// decoded body: body.message, then body.error, then a generic fallback.
func newAPIError(status int, body any) *Error {
	return &Error{
		Kind:    KindAPI,
		Message: messageFromBody(body),
		Status:  status,
		Body:    body,
	}
}

// FallbackMessage is used when an API error body carries no extractable
// message. Callers that substitute their own localized generic text detect
// it with HasExtractedMessage rather than comparing strings.
const FallbackMessage = "the server rejected the request"

func messageFromBody(body any) string {
	if m, ok := body.(map[string]any); ok {
		if msg, ok := m["message"].(string); ok && msg != "" {
			return msg
		}
		if msg, ok := m["error"].(string); ok && msg != "" {
			return msg
		}
	}
	return FallbackMessage
}

// HasExtractedMessage reports whether an API error carries a message that
// actually came from the response body, as opposed to FallbackMessage.
func HasExtractedMessage(err error) bool {
	apiErr, ok := err.(*Error)
	if !ok || apiErr.Kind != KindAPI {
		return false
	}
	return apiErr.Message != "" && apiErr.Message != FallbackMessage
}

// ValidationMessages extracts the per-field messages of a validation-style
// 4xx response body (an "errors" array of objects carrying defaultMessage).
// Returns nil when the body has no such array.
func ValidationMessages(err error) []string {
	apiErr, ok := err.(*Error)
	if !ok || apiErr.Kind != KindAPI {
		return nil
	}
	m, ok := apiErr.Body.(map[string]any)
	if !ok {
		return nil
	}
	raw, ok := m["errors"].([]any)
	if !ok {
		return nil
	}

	var messages []string
	for _, entry := range raw {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if msg, ok := obj["defaultMessage"].(string); ok && msg != "" {
			messages = append(messages, msg)
		} else if msg, ok := obj["message"].(string); ok && msg != "" {
			messages = append(messages, msg)
		}
	}
	return messages
}

// DisplayMessage renders an API error for the user: joined validation
// messages when present, the extracted message otherwise.
func DisplayMessage(err error) string {
	if msgs := ValidationMessages(err); len(msgs) > 0 {
		return strings.Join(msgs, "\n")
	}
	if apiErr, ok := err.(*Error); ok {
		return apiErr.Message
	}
	return err.Error()
}

// IsNetworkError reports whether err is a transport-level failure.
func IsNetworkError(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindNetwork
}

// IsAPIError reports whether the backend rejected the request, optionally
// returning the classified error.
func IsAPIError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Kind == KindAPI {
		return apiErr, true
	}
	return nil, false
}

// IsAuthRejected reports whether err is an HTTP 401/403 rejection.
func IsAuthRejected(err error) bool {
	apiErr, ok := IsAPIError(err)
	return ok && (apiErr.Status == 401 || apiErr.Status == 403)
}
