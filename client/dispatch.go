package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/arloliu/go-gscf/gscf"
)

const formContentType = "application/x-www-form-urlencoded"

// invoke executes one named API action with the current session state and
// returns the raw JSON payload. It is the sole request path of the session.
//
// The session lock is held for the full round trip. The sequence counter
// advances by exactly one before the request goes out and is never rolled
// back; a failed call still consumes one sequence slot, so after a transport
// or protocol error the local and server counters may disagree unless the
// request reached the server.
//
// The reserved form fields deviceID and validation are set after the caller
// options, so they always win over a same-named option.
func (s *Session) invoke(ctx context.Context, action string, options map[string]string) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == "" {
		return nil, gscf.ErrNotAuthenticated
	}

	s.sequence++

	form := url.Values{}
	for key, value := range options {
		form.Set(key, value)
	}
	_, _, apiKey := s.cfg.credentials()
	form.Set("deviceID", s.deviceID)
	form.Set("validation", gscf.ValidationKey(s.token, s.sequence, apiKey))

	s.metrics.incRequestCount(action)
	s.logger.Debug("dispatch action", "action", action, "sequence", s.sequence)

	payload, err := s.post(ctx, action, form)
	if err != nil {
		s.metrics.incRequestErrCount()
		return nil, err
	}

	return payload, nil
}

// post sends one form-encoded request to <baseURL><action> and returns the
// validated JSON body. The response body is closed on every path.
func (s *Session) post(ctx context.Context, action string, form url.Values) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL()+action, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build request for action %q: %w", action, err)
	}
	req.Header.Set("Content-Type", formContentType)
	req.Header.Set("User-Agent", s.cfg.UserAgent())

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &gscf.TransportError{Action: action, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &gscf.TransportError{Action: action, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &gscf.TransportError{Action: action, StatusCode: resp.StatusCode, Body: string(data)}
	}

	if !json.Valid(data) {
		return nil, &gscf.ProtocolError{Action: action, Err: errors.New("body is not valid JSON")}
	}

	return json.RawMessage(data), nil
}
