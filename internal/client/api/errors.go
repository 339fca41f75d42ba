package api

import "fmt"

// NetworkError wraps a transport failure: the request never produced an
// HTTP response. Never raised for non-2xx statuses.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("network error: %v", e.Err) }
func (e *NetworkError) Unwrap() error { return e.Err }

// AuthenticationError is a 401: bad credentials on login, or a dead token
// on any authenticated request. Reason carries the server-provided message
// when one was available.
type AuthenticationError struct {
	Reason string
}

func (e *AuthenticationError) Error() string {
	if e.Reason == "" {
		return "authentication failed"
	}
	return "authentication failed: " + e.Reason
}

// ConflictError is a 409, e.g. registering an email that already exists.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	if e.Reason == "" {
		return "conflict"
	}
	return "conflict: " + e.Reason
}

// ValidationError reports client-side field constraint failures. It is
// raised before any request is sent and never reaches the network.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	for field, msg := range e.Fields {
		return fmt.Sprintf("validation failed: %s: %s (%d field(s))", field, msg, len(e.Fields))
	}
	return "validation failed"
}

// ServerError covers 5xx responses, unexpected statuses, and 2xx responses
// whose payload could not be decoded.
type ServerError struct {
	Status int
	Reason string
}

func (e *ServerError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("server error (status %d)", e.Status)
	}
	return fmt.Sprintf("server error (status %d): %s", e.Status, e.Reason)
}
