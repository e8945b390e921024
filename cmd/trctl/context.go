package main

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	transmission "github.com/jfxdev/go-transmission"
)

const defaultURL = "localhost:9091"

type globalFlags struct {
	configPath string
	url        string
	username   string
	password   string
	debug      bool
	json       bool
}

type commandContext struct {
	flags *globalFlags

	clientOnce sync.Once
	client     *transmission.Client
	clientErr  error
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

// config merges the config file (if any) with flags; flags win.
func (c *commandContext) config() (transmission.Config, error) {
	var cfg transmission.Config
	if path := strings.TrimSpace(c.flags.configPath); path != "" {
		loaded, err := transmission.LoadConfig(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if c.flags.url != "" {
		cfg.URL = c.flags.url
	}
	if c.flags.username != "" {
		cfg.Username = c.flags.username
	}
	if c.flags.password != "" {
		cfg.Password = c.flags.password
	}
	if c.flags.debug {
		cfg.Debug = true
	}
	if cfg.URL == "" {
		cfg.URL = defaultURL
	}
	return cfg, nil
}

func (c *commandContext) ensureClient(cmd *cobra.Command) (*transmission.Client, error) {
	c.clientOnce.Do(func() {
		cfg, err := c.config()
		if err != nil {
			c.clientErr = err
			return
		}
		logger := newLogger(cmd.ErrOrStderr(), cfg.Debug)
		c.client, c.clientErr = transmission.New(cfg, transmission.WithLogger(logger))
	})
	return c.client, c.clientErr
}

func (c *commandContext) withClient(cmd *cobra.Command, fn func(*transmission.Client) error) error {
	client, err := c.ensureClient(cmd)
	if err != nil {
		return fmt.Errorf("configure client: %w", err)
	}
	return fn(client)
}

func newLogger(out io.Writer, debug bool) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
	}
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(output).Level(level).With().Timestamp().Str("app", "trctl").Logger()
}

// failureError is a failure the daemon reported in its result field.
type failureError struct {
	method string
	reason string
}

func (e *failureError) Error() string {
	return fmt.Sprintf("%s: daemon answered %q", e.method, e.reason)
}

// checkResult turns a daemon-reported failure into a command error so the
// process exits non-zero.
func checkResult[T any](method string, result transmission.Result[T]) error {
	if result.OK() {
		return nil
	}
	return &failureError{method: method, reason: result.Failure()}
}
