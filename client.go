package transmission

import (
	"encoding/base64"
	"fmt"
	"math"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/jfxdev/go-transmission/request"
)

// Client talks to one Transmission daemon. It is safe for concurrent use;
// all calls share the session id the daemon last issued to this client.
type Client struct {
	config        Config
	endpoint      string
	authorization string
	httpClient    request.Doer
	logger        zerolog.Logger
	limiter       *rate.Limiter
	metrics       *metrics

	mu        sync.RWMutex
	sessionID string
}

// Option customizes a Client.
type Option func(*clientOptions)

type clientOptions struct {
	httpClient request.Doer
	logger     *zerolog.Logger
	registerer prometheus.Registerer
}

// WithHTTPClient overrides the HTTP client (default: *http.Client with Config.RequestTimeout).
func WithHTTPClient(client request.Doer) Option {
	return func(o *clientOptions) {
		if client != nil {
			o.httpClient = client
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *clientOptions) {
		o.logger = &logger
	}
}

// WithRegisterer registers the client's Prometheus collectors on reg.
// Clients sharing a registry share collectors.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *clientOptions) {
		o.registerer = reg
	}
}

// New validates config and builds a Client. No request is sent.
func New(config Config, opts ...Option) (*Client, error) {
	config = config.withDefaults()

	endpoint, user, err := normalizeEndpoint(config.URL)
	if err != nil {
		return nil, err
	}
	// Credentials embedded in the URL apply only when none are configured.
	if user != nil && config.Username == "" && config.Password == "" {
		config.Username = user.Username()
		config.Password, _ = user.Password()
	}

	var o clientOptions
	for _, opt := range opts {
		opt(&o)
	}

	logger := zerolog.Nop()
	if o.logger != nil {
		logger = *o.logger
	}
	if config.Debug {
		logger = logger.Level(zerolog.DebugLevel)
	}

	client := &Client{
		config:     config,
		endpoint:   endpoint,
		httpClient: o.httpClient,
		logger:     logger.With().Str("component", "transmission").Str("endpoint", endpoint).Logger(),
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: config.RequestTimeout}
	}

	if config.Username != "" || config.Password != "" {
		credentials := config.Username + ":" + config.Password
		client.authorization = "Basic " + base64.StdEncoding.EncodeToString([]byte(credentials))
	}

	if config.RequestsPerSecond > 0 {
		burst := int(math.Ceil(config.RequestsPerSecond))
		client.limiter = rate.NewLimiter(rate.Limit(config.RequestsPerSecond), burst)
	}

	if o.registerer != nil {
		client.metrics, err = newMetrics(o.registerer)
		if err != nil {
			return nil, fmt.Errorf("error registering metrics: %w", err)
		}
	}

	return client, nil
}

// Endpoint returns the normalized RPC URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// SessionID returns the session id currently replayed to the daemon, or ""
// if none has been issued yet.
func (c *Client) SessionID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sessionID
}

// setSessionID stores id and reports whether it differs from the previous one.
func (c *Client) setSessionID(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	changed := c.sessionID != id
	c.sessionID = id
	return changed
}

func (c *Client) clearSessionID() {
	c.mu.Lock()
	c.sessionID = ""
	c.mu.Unlock()
}
