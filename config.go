package transmission

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	// DefaultRequestTimeout bounds a single HTTP exchange with the daemon.
	DefaultRequestTimeout = 30 * time.Second
	// DefaultMaxSessionRetries caps how many 409 challenges one call answers.
	DefaultMaxSessionRetries = 5
	// DefaultRPCPath is the daemon's stock RPC endpoint path.
	DefaultRPCPath = "/transmission/rpc"
)

// Config contains runtime client settings and credentials.
type Config struct {
	URL               string
	Username          string
	Password          string
	RequestTimeout    time.Duration
	MaxSessionRetries int
	// RequestsPerSecond throttles outgoing requests; zero disables throttling.
	RequestsPerSecond float64
	Debug             bool
}

// fileConfig is the on-disk TOML shape of Config.
type fileConfig struct {
	URL               string  `toml:"url"`
	Username          string  `toml:"username"`
	Password          string  `toml:"password"`
	RequestTimeout    string  `toml:"request_timeout"`
	MaxSessionRetries int     `toml:"max_session_retries"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Debug             bool    `toml:"debug"`
}

// LoadConfig reads a TOML config file. Missing fields keep their zero value
// and are defaulted by New.
func LoadConfig(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config %s: %w", path, err)
	}
	defer file.Close()

	var raw fileConfig
	decoder := toml.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&raw); err != nil {
		return Config{}, fmt.Errorf("decode config %s: %w", path, err)
	}

	cfg := Config{
		URL:               raw.URL,
		Username:          raw.Username,
		Password:          raw.Password,
		MaxSessionRetries: raw.MaxSessionRetries,
		RequestsPerSecond: raw.RequestsPerSecond,
		Debug:             raw.Debug,
	}
	if timeout := strings.TrimSpace(raw.RequestTimeout); timeout != "" {
		cfg.RequestTimeout, err = time.ParseDuration(timeout)
		if err != nil {
			return Config{}, fmt.Errorf("config %s: request_timeout: %w", path, err)
		}
	}
	return cfg, nil
}

func (c Config) withDefaults() Config {
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	if c.MaxSessionRetries <= 0 {
		c.MaxSessionRetries = DefaultMaxSessionRetries
	}
	if c.RequestsPerSecond < 0 {
		c.RequestsPerSecond = 0
	}
	return c
}

// normalizeEndpoint turns "host:9091", "http://host:9091/" and full RPC URLs
// into one canonical endpoint. Userinfo is stripped from the endpoint and
// returned separately.
func normalizeEndpoint(raw string) (string, *url.Userinfo, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil, NewClientError(ErrorCodeInvalidArgument, "daemon URL is required", nil, true)
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", nil, NewClientError(ErrorCodeInvalidArgument, "invalid daemon URL", err, true)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", nil, NewClientError(ErrorCodeInvalidArgument, fmt.Sprintf("unsupported URL scheme %q", u.Scheme), nil, true)
	}
	if u.Host == "" {
		return "", nil, NewClientError(ErrorCodeInvalidArgument, "daemon URL has no host", nil, true)
	}

	u.Path = strings.TrimRight(u.Path, "/")
	if u.Path == "" {
		u.Path = DefaultRPCPath
	}
	user := u.User
	u.RawQuery = ""
	u.Fragment = ""
	u.User = nil

	return u.String(), user, nil
}
