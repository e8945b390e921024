package transmission

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jfxdev/go-transmission/request"
)

const (
	// SessionIDHeader carries the daemon-issued session id in both directions.
	SessionIDHeader = "X-Transmission-Session-Id"

	// ResultSuccess is the "result" value of a successful RPC call.
	ResultSuccess = "success"
)

// Request is the JSON envelope sent to the daemon.
type Request struct {
	Method    string `json:"method"`
	Arguments any    `json:"arguments,omitempty"`
}

// Response is the decoded JSON envelope returned by the daemon. Arguments is
// left raw so each caller decodes it into its own shape.
type Response struct {
	Result    string          `json:"result"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// OK reports whether the daemon answered "success".
func (r *Response) OK() bool {
	return r != nil && r.Result == ResultSuccess
}

// Invoke performs one logical RPC call.
//
// A 409 answer carries a fresh session id; Invoke stores it on the client and
// resends the same request, up to Config.MaxSessionRetries times. A 401 fails
// with an error matching ErrUnauthorized. Any other transport failure is
// returned as is, and a body that is not an RPC response fails with
// ErrorCodeDecode. A response whose result is not "success" is not an error.
func (c *Client) Invoke(ctx context.Context, method string, arguments any) (*Response, error) {
	if method == "" {
		return nil, NewClientError(ErrorCodeInvalidArgument, "remote method is required", nil, true)
	}

	payload, err := json.Marshal(Request{Method: method, Arguments: arguments})
	if err != nil {
		return nil, NewClientError(ErrorCodeInvalidArgument, fmt.Sprintf("cannot encode %s arguments", method), err, true)
	}

	start := time.Now()
	resp, err := c.exchange(ctx, method, payload)
	c.metrics.observe(method, start, resp, err)
	return resp, err
}

func (c *Client) exchange(ctx context.Context, method string, payload []byte) (*Response, error) {
	challenges := 0
	for {
		sessionID := c.SessionID()
		c.logger.Debug().
			Str("method", method).
			Int("challenges", challenges).
			Bool("has_session_id", sessionID != "").
			Msg("sending rpc request")

		httpResp, err := request.Do(http.MethodPost, c.endpoint,
			request.WithContext(ctx),
			request.WithClient(c.httpClient),
			request.WithBody(bytes.NewReader(payload)),
			request.WithHeaders(c.headers(sessionID)),
			request.WithPreRequestHook(c.throttle),
		)
		if err == nil {
			return decodeResponse(httpResp)
		}

		var statusErr *request.StatusError
		if !errors.As(err, &statusErr) {
			return nil, err
		}

		switch statusErr.StatusCode {
		case http.StatusConflict:
			issued := statusErr.Header.Get(SessionIDHeader)
			if issued == "" {
				return nil, NewClientError(ErrorCodeSessionChallenge, "daemon answered 409 without a session id", err, false)
			}
			c.metrics.challenge()
			if c.setSessionID(issued) {
				c.logger.Info().Str("method", method).Msg("session id updated by daemon")
			}

			challenges++
			if challenges > c.config.MaxSessionRetries {
				c.logger.Warn().Str("method", method).Int("challenges", challenges).Msg("giving up on repeated session id challenges")
				return nil, NewClientError(
					ErrorCodeSessionRetries,
					fmt.Sprintf("daemon issued %d consecutive session id challenges", challenges),
					err,
					false,
				)
			}
		case http.StatusUnauthorized:
			c.logger.Warn().Str("method", method).Msg("daemon rejected credentials")
			return nil, NewClientError(ErrorCodeUnauthorized, "authentication rejected by daemon", err, true)
		default:
			return nil, err
		}
	}
}

func (c *Client) headers(sessionID string) map[string]string {
	headers := map[string]string{
		"Accept":       "application/json",
		"Content-Type": "application/json",
	}
	if c.authorization != "" {
		headers["Authorization"] = c.authorization
	}
	if sessionID != "" {
		headers[SessionIDHeader] = sessionID
	}
	return headers
}

func (c *Client) throttle(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

func decodeResponse(httpResp *http.Response) (*Response, error) {
	defer httpResp.Body.Close()

	// Read the response body first to avoid context cancellation during JSON decoding
	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Result    *string         `json:"result"`
		Arguments json.RawMessage `json:"arguments"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, NewClientError(ErrorCodeDecode, "response is not valid JSON", err, true)
	}
	if envelope.Result == nil {
		return nil, NewClientError(ErrorCodeDecode, "response has no result field", nil, true)
	}

	return &Response{Result: *envelope.Result, Arguments: envelope.Arguments}, nil
}
