package client

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/arloliu/go-gscf/gscf"
	"github.com/arloliu/go-gscf/logger"
)

// DefaultBaseURL is the origin of the public GSCF study-data service.
const DefaultBaseURL = "http://studies.dbnp.org/api/"

// defaultTimeout bounds each request round trip unless the caller injects
// an http.Client of their own or overrides it with WithTimeout.
const defaultTimeout = 30 * time.Second

const defaultUserAgent = "go-gscf"

// ClientConfig represents the configuration parameters for a GSCF session.
type ClientConfig struct {
	mu sync.RWMutex

	// username, password and apiKey are the caller-supplied credentials.
	// They are immutable for the life of a session and are never logged.
	username string
	password string
	apiKey   string

	// baseURL is the service origin all endpoint paths are appended to.
	// It always ends with a slash. Defaults to DefaultBaseURL.
	baseURL string

	// httpClient, when set, is used as-is for all requests; timeout is then
	// ignored. Defaults to nil, meaning a client with timeout is built.
	httpClient *http.Client

	// timeout bounds each request round trip. Zero disables the bound.
	// Defaults to 30 seconds.
	timeout time.Duration

	// dataFrame indicates whether the session hands out tabular results.
	// When false, the Table read operations fail with
	// gscf.ErrDataFrameDisabled without any network I/O.
	// Defaults to true.
	dataFrame bool

	// identity provides the stable host identity the device ID is derived
	// from. Defaults to gscf.NodeID.
	identity gscf.IdentityProvider

	// userAgent is sent on every request.
	userAgent string

	// logger provides a logger instance for session events and errors.
	logger logger.Logger
}

// NewClientConfig creates a new session configuration with the given
// credentials and optional functional options.
//
// It initializes a ClientConfig with default values and then applies the
// provided options. The username and password authenticate the user to the
// service; the apiKey feeds the per-call validation credential. All three
// are required and validated non-empty.
//
// Returns a pointer to the initialized ClientConfig and an error if any
// occurred during the configuration process.
func NewClientConfig(username, password, apiKey string, opts ...ClientOption) (*ClientConfig, error) {
	cfg := &ClientConfig{
		baseURL:   DefaultBaseURL,
		timeout:   defaultTimeout,
		dataFrame: true,
		identity:  gscf.NodeID,
		userAgent: defaultUserAgent,
		logger:    logger.GetLogger(),
	}

	if err := withUsername(username).apply(cfg); err != nil {
		return cfg, err
	}

	if err := withPassword(password).apply(cfg); err != nil {
		return cfg, err
	}

	if err := withAPIKey(apiKey).apply(cfg); err != nil {
		return cfg, err
	}

	for _, opt := range opts {
		if err := opt.apply(cfg); err != nil {
			return cfg, err
		}
	}

	return cfg, nil
}

// BaseURL returns the service origin, always ending with a slash.
func (cfg *ClientConfig) BaseURL() string {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()

	return cfg.baseURL
}

// Timeout returns the per-request timeout. Zero means no bound.
func (cfg *ClientConfig) Timeout() time.Duration {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()

	return cfg.timeout
}

// DataFrameEnabled reports whether tabular read operations are available on
// sessions built from this configuration.
func (cfg *ClientConfig) DataFrameEnabled() bool {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()

	return cfg.dataFrame
}

// UserAgent returns the User-Agent header value sent on every request.
func (cfg *ClientConfig) UserAgent() string {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()

	return cfg.userAgent
}

// Logger returns the logger sessions built from this configuration use.
func (cfg *ClientConfig) Logger() logger.Logger {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()

	return cfg.logger
}

// credentials returns the caller-supplied username, password and API key.
// They are immutable after construction; the lock keeps the read consistent
// with the accessor discipline used for every other field.
func (cfg *ClientConfig) credentials() (username, password, apiKey string) {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()

	return cfg.username, cfg.password, cfg.apiKey
}

// identityProvider returns the host identity provider the device ID is
// derived from.
func (cfg *ClientConfig) identityProvider() gscf.IdentityProvider {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()

	return cfg.identity
}

// newHTTPClient returns the injected http.Client, or builds one bounded by
// the configured timeout.
func (cfg *ClientConfig) newHTTPClient() *http.Client {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()

	if cfg.httpClient != nil {
		return cfg.httpClient
	}

	return &http.Client{Timeout: cfg.timeout}
}

// ClientOption configures a ClientConfig.
type ClientOption interface {
	apply(*ClientConfig) error
}

type clientOptFunc struct {
	name      string
	applyFunc func(*ClientConfig) error
}

func (c *clientOptFunc) apply(cfg *ClientConfig) error { return c.applyFunc(cfg) }

func newClientOptFunc(name string, f func(*ClientConfig) error) *clientOptFunc {
	return &clientOptFunc{
		name:      name,
		applyFunc: f,
	}
}

// withUsername sets the username the session authenticates as.
// An error is returned if the username is empty or the configuration is nil.
func withUsername(username string) ClientOption {
	return newClientOptFunc("withUsername", func(cfg *ClientConfig) error {
		if cfg == nil {
			return gscf.ErrConfigNil
		}

		if username == "" {
			return errors.New("username is empty")
		}
		cfg.username = username

		return nil
	})
}

// withPassword sets the password the session authenticates with.
// An error is returned if the password is empty or the configuration is nil.
func withPassword(password string) ClientOption {
	return newClientOptFunc("withPassword", func(cfg *ClientConfig) error {
		if cfg == nil {
			return gscf.ErrConfigNil
		}

		if password == "" {
			return errors.New("password is empty")
		}
		cfg.password = password

		return nil
	})
}

// withAPIKey sets the API key the validation credential is derived from.
// An error is returned if the key is empty or the configuration is nil.
func withAPIKey(apiKey string) ClientOption {
	return newClientOptFunc("withAPIKey", func(cfg *ClientConfig) error {
		if cfg == nil {
			return gscf.ErrConfigNil
		}

		if apiKey == "" {
			return errors.New("api key is empty")
		}
		cfg.apiKey = apiKey

		return nil
	})
}

// WithBaseURL sets the service origin the session talks to.
// It returns a ClientOption that validates the URL and updates the
// configuration; a missing trailing slash is appended so endpoint paths can
// be concatenated directly.
//
// An error is returned if the URL is not an absolute http or https URL or
// the configuration is nil.
//
// The default is DefaultBaseURL.
func WithBaseURL(baseURL string) ClientOption {
	return newClientOptFunc("WithBaseURL", func(cfg *ClientConfig) error {
		if cfg == nil {
			return gscf.ErrConfigNil
		}

		u, err := url.Parse(baseURL)
		if err != nil {
			return errors.New("invalid base url")
		}

		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return errors.New("base url must be an absolute http or https url")
		}

		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		cfg.baseURL = baseURL

		return nil
	})
}

// WithHTTPClient injects the http.Client used for all requests, replacing
// the built-in one. Any timeout configured with WithTimeout is then ignored;
// the injected client's own settings apply.
//
// An error is returned if the client is nil or the configuration is nil.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return newClientOptFunc("WithHTTPClient", func(cfg *ClientConfig) error {
		if cfg == nil {
			return gscf.ErrConfigNil
		}

		if httpClient == nil {
			return errors.New("http client is nil")
		}
		cfg.httpClient = httpClient

		return nil
	})
}

// WithTimeout sets the per-request timeout for the built-in http.Client.
// A zero value disables the bound. An error is returned if the timeout is
// negative or the configuration is nil.
//
// The default is 30 seconds.
func WithTimeout(timeout time.Duration) ClientOption {
	return newClientOptFunc("WithTimeout", func(cfg *ClientConfig) error {
		if cfg == nil {
			return gscf.ErrConfigNil
		}

		if timeout < 0 {
			return errors.New("timeout must not be negative")
		}
		cfg.timeout = timeout

		return nil
	})
}

// WithDataFrame enables or disables the tabular read operations on sessions
// built from this configuration. When disabled, the Table variants fail with
// gscf.ErrDataFrameDisabled before any network I/O.
//
// The default is enabled.
func WithDataFrame(enabled bool) ClientOption {
	return newClientOptFunc("WithDataFrame", func(cfg *ClientConfig) error {
		if cfg == nil {
			return gscf.ErrConfigNil
		}
		cfg.dataFrame = enabled

		return nil
	})
}

// WithIdentity sets the host identity provider the device ID is derived
// from. Substituting a deterministic provider makes device identities
// reproducible, which tests rely on.
//
// An error is returned if the provider is nil or the configuration is nil.
//
// The default is gscf.NodeID.
func WithIdentity(provider gscf.IdentityProvider) ClientOption {
	return newClientOptFunc("WithIdentity", func(cfg *ClientConfig) error {
		if cfg == nil {
			return gscf.ErrConfigNil
		}

		if provider == nil {
			return errors.New("identity provider is nil")
		}
		cfg.identity = provider

		return nil
	})
}

// WithUserAgent sets the User-Agent header sent on every request.
// An error is returned if the value is empty or the configuration is nil.
func WithUserAgent(userAgent string) ClientOption {
	return newClientOptFunc("WithUserAgent", func(cfg *ClientConfig) error {
		if cfg == nil {
			return gscf.ErrConfigNil
		}

		if userAgent == "" {
			return errors.New("user agent is empty")
		}
		cfg.userAgent = userAgent

		return nil
	})
}

// WithLogger sets the logger instance for session events and errors.
// An error is returned if the logger is nil or the configuration is nil.
func WithLogger(l logger.Logger) ClientOption {
	return newClientOptFunc("WithLogger", func(cfg *ClientConfig) error {
		if cfg == nil {
			return gscf.ErrConfigNil
		}

		if l == nil {
			return errors.New("logger is nil")
		}
		cfg.logger = l

		return nil
	})
}
