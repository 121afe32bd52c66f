package client

import (
	"net/http"
	"testing"
	"time"

	"github.com/arloliu/go-gscf/gscf"
	"github.com/arloliu/go-gscf/logger"
	"github.com/stretchr/testify/require"
)

func TestNewClientConfig(t *testing.T) {
	require := require.New(t)

	t.Run("Valid Configuration", func(t *testing.T) {
		httpClient := &http.Client{}
		cfg, err := NewClientConfig("alice", "secret", "api-key",
			WithBaseURL("https://example.org/api/"),
			WithHTTPClient(httpClient),
			WithTimeout(10*time.Second),
			WithDataFrame(false),
			WithIdentity(func() string { return "42" }),
			WithUserAgent("study-tool"),
			WithLogger(logger.GetLogger()),
		)
		require.NoError(err)
		require.Equal("alice", cfg.username)
		require.Equal("secret", cfg.password)
		require.Equal("api-key", cfg.apiKey)
		require.Equal("https://example.org/api/", cfg.BaseURL())
		require.Equal(10*time.Second, cfg.Timeout())
		require.False(cfg.DataFrameEnabled())
		require.Equal("42", cfg.identity())
		require.Equal("study-tool", cfg.UserAgent())
		require.Same(httpClient, cfg.newHTTPClient())

		username, password, apiKey := cfg.credentials()
		require.Equal("alice", username)
		require.Equal("secret", password)
		require.Equal("api-key", apiKey)
		require.Equal("42", cfg.identityProvider()())
	})

	t.Run("Defaults", func(t *testing.T) {
		cfg, err := NewClientConfig("alice", "secret", "api-key")
		require.NoError(err)
		require.Equal(DefaultBaseURL, cfg.BaseURL())
		require.Equal(defaultTimeout, cfg.Timeout())
		require.True(cfg.DataFrameEnabled())
		require.Equal(defaultUserAgent, cfg.UserAgent())
		require.NotNil(cfg.Logger())
		require.Equal(defaultTimeout, cfg.newHTTPClient().Timeout)
	})

	t.Run("Empty Credentials", func(t *testing.T) {
		_, err := NewClientConfig("", "secret", "api-key")
		require.EqualError(err, "username is empty")

		_, err = NewClientConfig("alice", "", "api-key")
		require.EqualError(err, "password is empty")

		_, err = NewClientConfig("alice", "secret", "")
		require.EqualError(err, "api key is empty")
	})

	t.Run("Base URL Trailing Slash Appended", func(t *testing.T) {
		cfg, err := NewClientConfig("alice", "secret", "api-key",
			WithBaseURL("https://example.org/api"),
		)
		require.NoError(err)
		require.Equal("https://example.org/api/", cfg.BaseURL())
	})

	t.Run("Invalid Base URL", func(t *testing.T) {
		_, err := NewClientConfig("alice", "secret", "api-key", WithBaseURL("example.org/api"))
		require.EqualError(err, "base url must be an absolute http or https url")

		_, err = NewClientConfig("alice", "secret", "api-key", WithBaseURL("ftp://example.org/"))
		require.EqualError(err, "base url must be an absolute http or https url")
	})

	t.Run("Nil HTTP Client", func(t *testing.T) {
		_, err := NewClientConfig("alice", "secret", "api-key", WithHTTPClient(nil))
		require.EqualError(err, "http client is nil")
	})

	t.Run("Negative Timeout", func(t *testing.T) {
		_, err := NewClientConfig("alice", "secret", "api-key", WithTimeout(-time.Second))
		require.EqualError(err, "timeout must not be negative")
	})

	t.Run("Zero Timeout Disables Bound", func(t *testing.T) {
		cfg, err := NewClientConfig("alice", "secret", "api-key", WithTimeout(0))
		require.NoError(err)
		require.Zero(cfg.newHTTPClient().Timeout)
	})

	t.Run("Nil Identity Provider", func(t *testing.T) {
		_, err := NewClientConfig("alice", "secret", "api-key", WithIdentity(nil))
		require.EqualError(err, "identity provider is nil")
	})

	t.Run("Empty User Agent", func(t *testing.T) {
		_, err := NewClientConfig("alice", "secret", "api-key", WithUserAgent(""))
		require.EqualError(err, "user agent is empty")
	})

	t.Run("Nil Logger", func(t *testing.T) {
		_, err := NewClientConfig("alice", "secret", "api-key", WithLogger(nil))
		require.EqualError(err, "logger is nil")
	})

	t.Run("Nil Config", func(t *testing.T) {
		err := WithDataFrame(false).apply(nil)
		require.ErrorIs(err, gscf.ErrConfigNil)

		err = WithBaseURL("https://example.org/").apply(nil)
		require.ErrorIs(err, gscf.ErrConfigNil)
	})
}
