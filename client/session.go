package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/arloliu/go-gscf/gscf"
	"github.com/arloliu/go-gscf/logger"
)

// Session is an authenticated connection to a GSCF service.
//
// The mutex guards the rolling session state (sequence, token) and is held
// across the full dispatch round trip, so concurrent callers cannot
// desynchronize the local sequence counter from the server's.
type Session struct {
	mu sync.Mutex

	cfg        *ClientConfig
	httpClient *http.Client
	logger     logger.Logger

	// deviceID is derived once at construction and never recomputed.
	deviceID string

	// sequence is the server-synchronized call counter. It advances by
	// exactly one before each dispatched call and is never rolled back.
	sequence int64

	// token is the server-issued session credential.
	token string

	metrics SessionMetrics
}

// authResponse is the payload of a successful authenticate handshake.
type authResponse struct {
	Sequence int64  `json:"sequence"`
	Token    string `json:"token"`
}

// Connect derives the device identity from cfg, performs the authentication
// handshake against the configured service and returns a ready-to-use
// Session. Any handshake failure returns a *gscf.AuthenticationError and no
// Session; no retry is attempted.
func Connect(ctx context.Context, cfg *ClientConfig) (*Session, error) {
	if cfg == nil {
		return nil, gscf.ErrConfigNil
	}

	username, _, _ := cfg.credentials()

	s := &Session{
		cfg:        cfg,
		httpClient: cfg.newHTTPClient(),
		logger:     cfg.Logger(),
		deviceID:   gscf.DeviceID(cfg.identityProvider()(), username),
	}
	s.metrics.init()

	s.mu.Lock()
	err := s.authenticate(ctx)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	return s, nil
}

// Reauthenticate repeats the authentication handshake on the existing
// session, replacing the sequence counter and session token with freshly
// issued values. It is the only way to reset a desynchronized session short
// of building a new one.
func (s *Session) Reauthenticate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.authenticate(ctx)
}

// authenticate performs the handshake and stores the issued session state.
// The caller must hold s.mu.
func (s *Session) authenticate(ctx context.Context) error {
	body := url.Values{"deviceID": {s.deviceID}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL()+"authenticate", strings.NewReader(body))
	if err != nil {
		return &gscf.AuthenticationError{Err: err}
	}
	req.Header.Set("Content-Type", formContentType)
	req.Header.Set("User-Agent", s.cfg.UserAgent())

	username, password, _ := s.cfg.credentials()
	req.SetBasicAuth(username, password)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.metrics.incAuthErrCount()
		return &gscf.AuthenticationError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		s.metrics.incAuthErrCount()
		return &gscf.AuthenticationError{StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		s.metrics.incAuthErrCount()
		return &gscf.AuthenticationError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	var auth authResponse
	if err := json.Unmarshal(data, &auth); err != nil {
		s.metrics.incAuthErrCount()
		return &gscf.AuthenticationError{StatusCode: resp.StatusCode, Body: string(data), Err: err}
	}

	// A payload that decodes but carries no session token is a malformed
	// handshake; accepting it would only defer the failure to the first
	// dispatched call.
	if auth.Token == "" {
		s.metrics.incAuthErrCount()
		return &gscf.AuthenticationError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	s.sequence = auth.Sequence
	s.token = auth.Token

	s.metrics.incAuthCount()
	s.logger.Debug("session authenticated", "sequence", auth.Sequence)

	return nil
}

// DeviceID returns the device identifier sent on every request.
func (s *Session) DeviceID() string {
	return s.deviceID
}

// Sequence returns the current value of the session's call counter.
func (s *Session) Sequence() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sequence
}

// Metrics returns the session's call counters.
func (s *Session) Metrics() *SessionMetrics {
	return &s.metrics
}
