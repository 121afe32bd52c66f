package gscf

import (
	"errors"
	"fmt"
)

var (
	// ErrConfigNil indicates that a nil client configuration was provided.
	ErrConfigNil = errors.New("client config is nil")

	// ErrNotAuthenticated indicates that a call was dispatched on a session
	// that has no server-issued token, such as a zero-value Session.
	ErrNotAuthenticated = errors.New("session is not authenticated")

	// ErrDataFrameDisabled indicates that tabular output was requested on a
	// session constructed with dataframe support disabled. It is returned
	// before any network I/O happens, so the session sequence is unchanged.
	ErrDataFrameDisabled = errors.New("dataframe support is disabled for this session")
)

// AuthenticationError reports a failed authentication handshake: a transport
// failure, a non-2xx status or an unparsable response body. It aborts session
// construction; no retry is attempted.
type AuthenticationError struct {
	// StatusCode is the HTTP status of the authenticate response, or 0 when
	// no response was received.
	StatusCode int
	// Body is the raw response body when a response was received.
	Body string
	// Err is the underlying transport or decode error, if any.
	Err error
}

func (e *AuthenticationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("gscf: authentication failed with status %d: %s", e.StatusCode, e.Body)
	}

	return fmt.Sprintf("gscf: authentication failed: %v", e.Err)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// TransportError reports a failed action call: a request that could not be
// sent, or a non-2xx response. The session sequence has already advanced by
// the time a TransportError surfaces, so the local and server counters may
// disagree if the request never reached the server.
type TransportError struct {
	// Action is the name of the API action that failed.
	Action string
	// StatusCode is the HTTP status of the response, or 0 when no response
	// was received.
	StatusCode int
	// Body is the raw response body when a response was received.
	Body string
	// Err is the underlying transport error, if any.
	Err error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("gscf: action %q failed: %v", e.Action, e.Err)
	}

	return fmt.Sprintf("gscf: action %q returned status %d: %s", e.Action, e.StatusCode, e.Body)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProtocolError reports a 2xx response whose body could not be decoded as
// JSON, or whose payload misses the shape the action contract promises.
type ProtocolError struct {
	// Action is the name of the API action whose response was malformed.
	Action string
	// Err is the underlying decode error.
	Err error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("gscf: action %q returned a malformed payload: %v", e.Action, e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }
