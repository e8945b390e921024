package transmission

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/jfxdev/go-transmission/request"
)

// ErrorCode represents a specific error type for client-side handling
type ErrorCode string

const (
	// ErrorCodeNone indicates no error
	ErrorCodeNone ErrorCode = ""

	// ErrorCodeUnauthorized indicates the daemon rejected the credentials (HTTP 401)
	ErrorCodeUnauthorized ErrorCode = "UNAUTHORIZED"

	// ErrorCodeForbidden indicates the daemon's RPC whitelist rejected the client (HTTP 403)
	ErrorCodeForbidden ErrorCode = "FORBIDDEN"

	// ErrorCodeSessionChallenge indicates a 409 challenge that could not be answered
	ErrorCodeSessionChallenge ErrorCode = "SESSION_CHALLENGE"

	// ErrorCodeSessionRetries indicates the daemon kept issuing 409 challenges
	ErrorCodeSessionRetries ErrorCode = "SESSION_RETRIES_EXHAUSTED"

	// ErrorCodeDecode indicates a response body that is not a valid RPC response
	ErrorCodeDecode ErrorCode = "DECODE_ERROR"

	// ErrorCodeInvalidArgument indicates a call rejected before anything was sent
	ErrorCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"

	// ErrorCodeTimeout indicates connection or request timeout - temporary, can retry
	ErrorCodeTimeout ErrorCode = "TIMEOUT"

	// ErrorCodeDNS indicates DNS resolution failure - check hostname configuration
	ErrorCodeDNS ErrorCode = "DNS_ERROR"

	// ErrorCodeHTTPSRequired indicates HTTP was used but HTTPS is required
	ErrorCodeHTTPSRequired ErrorCode = "HTTPS_REQUIRED"

	// ErrorCodeSSLError indicates SSL/TLS certificate or connection error
	ErrorCodeSSLError ErrorCode = "SSL_ERROR"

	// ErrorCodeVersionIncompatible indicates the daemon speaks an older RPC version than required
	ErrorCodeVersionIncompatible ErrorCode = "VERSION_INCOMPATIBLE"

	// ErrorCodeConnectionRefused indicates the server actively refused the connection
	ErrorCodeConnectionRefused ErrorCode = "CONNECTION_REFUSED"

	// ErrorCodeNetworkUnreachable indicates network routing issues
	ErrorCodeNetworkUnreachable ErrorCode = "NETWORK_UNREACHABLE"

	// ErrorCodeBadGateway indicates a proxy/gateway error (502)
	ErrorCodeBadGateway ErrorCode = "BAD_GATEWAY"

	// ErrorCodeServiceUnavailable indicates the service is temporarily unavailable (503)
	ErrorCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"

	// ErrorCodeUnknown indicates an unclassified error
	ErrorCodeUnknown ErrorCode = "UNKNOWN"
)

var (
	// ErrUnauthorized matches (via errors.Is) any error caused by a 401 from the daemon.
	ErrUnauthorized = NewClientError(ErrorCodeUnauthorized, "authentication rejected by daemon", nil, true)

	// ErrSessionRetriesExhausted matches calls that gave up after repeated 409 challenges.
	ErrSessionRetriesExhausted = NewClientError(ErrorCodeSessionRetries, "session id challenge repeated too many times", nil, false)
)

// ClientError represents a structured error with classification
type ClientError struct {
	Code    ErrorCode
	Message string
	Err     error
	// Permanent indicates whether this error requires user intervention (true)
	// or can be resolved by retrying (false)
	Permanent bool
}

func (e *ClientError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ClientError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a ClientError carrying the same code, so
// errors.Is(err, ErrUnauthorized) works for every 401 regardless of message.
func (e *ClientError) Is(target error) bool {
	t, ok := target.(*ClientError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// IsPermanent returns true if the error requires user intervention
func (e *ClientError) IsPermanent() bool {
	return e.Permanent
}

// NewClientError creates a new ClientError
func NewClientError(code ErrorCode, message string, err error, permanent bool) *ClientError {
	return &ClientError{
		Code:      code,
		Message:   message,
		Err:       err,
		Permanent: permanent,
	}
}

// ClassifyError analyzes an error and returns a structured ClientError
func ClassifyError(err error) *ClientError {
	if err == nil {
		return nil
	}

	// Already a ClientError
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr
	}

	errStr := err.Error()

	// Non-2xx answers from the daemon or a proxy in front of it
	var statusErr *request.StatusError
	if errors.As(err, &statusErr) {
		classified := classifyHTTPStatusCode(statusErr.StatusCode, strings.TrimSpace(string(statusErr.Body)))
		classified.Err = err
		return classified
	}

	// DNS errors
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return NewClientError(
			ErrorCodeDNS,
			fmt.Sprintf("Failed to resolve hostname: %s", dnsErr.Name),
			err,
			true,
		)
	}

	// Network operation errors (connection refused, timeout, etc.)
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return classifyOpError(opErr, err)
	}

	// URL errors
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return NewClientError(
				ErrorCodeTimeout,
				"Request timed out",
				err,
				false,
			)
		}
	}

	// TLS/SSL errors
	var certErr *tls.CertificateVerificationError
	if errors.As(err, &certErr) {
		return NewClientError(
			ErrorCodeSSLError,
			"SSL certificate verification failed",
			err,
			true,
		)
	}

	return classifyByMessage(errStr, err)
}

// classifyOpError classifies net.OpError errors
func classifyOpError(opErr *net.OpError, originalErr error) *ClientError {
	if opErr.Op == "dial" {
		if strings.Contains(opErr.Error(), "connection refused") {
			return NewClientError(
				ErrorCodeConnectionRefused,
				"Connection refused - daemon may be down or the RPC port is incorrect",
				originalErr,
				false,
			)
		}

		if strings.Contains(opErr.Error(), "no route to host") ||
			strings.Contains(opErr.Error(), "network is unreachable") {
			return NewClientError(
				ErrorCodeNetworkUnreachable,
				"Network unreachable - check network connectivity",
				originalErr,
				false,
			)
		}
	}

	if opErr.Timeout() {
		return NewClientError(
			ErrorCodeTimeout,
			"Connection timed out",
			originalErr,
			false,
		)
	}

	return NewClientError(
		ErrorCodeUnknown,
		"Network operation failed",
		originalErr,
		false,
	)
}

// classifyByMessage classifies errors based on error message patterns
func classifyByMessage(errStr string, err error) *ClientError {
	lowerErr := strings.ToLower(errStr)

	// Timeout patterns
	if strings.Contains(lowerErr, "timeout") ||
		strings.Contains(lowerErr, "deadline exceeded") ||
		strings.Contains(lowerErr, "context canceled") {
		return NewClientError(
			ErrorCodeTimeout,
			"Request timed out",
			err,
			false,
		)
	}

	// HTTP/HTTPS mismatch
	if strings.Contains(lowerErr, "malformed http response") ||
		strings.Contains(lowerErr, "first record does not look like a tls handshake") {
		return NewClientError(
			ErrorCodeHTTPSRequired,
			"Protocol mismatch - try using HTTPS instead of HTTP",
			err,
			true,
		)
	}

	// SSL/TLS patterns
	if strings.Contains(lowerErr, "certificate") ||
		strings.Contains(lowerErr, "x509") ||
		strings.Contains(lowerErr, "tls") ||
		strings.Contains(lowerErr, "ssl") {
		return NewClientError(
			ErrorCodeSSLError,
			"SSL/TLS connection failed - check certificate configuration",
			err,
			true,
		)
	}

	if strings.Contains(lowerErr, "connection refused") {
		return NewClientError(
			ErrorCodeConnectionRefused,
			"Connection refused - daemon may be down",
			err,
			false,
		)
	}

	// DNS patterns
	if strings.Contains(lowerErr, "no such host") ||
		strings.Contains(lowerErr, "lookup") ||
		strings.Contains(lowerErr, "dns") {
		return NewClientError(
			ErrorCodeDNS,
			"DNS resolution failed - check hostname",
			err,
			true,
		)
	}

	// Authentication patterns
	if strings.Contains(lowerErr, "unauthorized") ||
		strings.Contains(lowerErr, "authentication failed") ||
		strings.Contains(lowerErr, "invalid username") ||
		strings.Contains(lowerErr, "invalid password") ||
		strings.Contains(lowerErr, "invalid credentials") {
		return NewClientError(
			ErrorCodeUnauthorized,
			"Invalid username or password",
			err,
			true,
		)
	}

	return NewClientError(
		ErrorCodeUnknown,
		"Unknown error occurred",
		err,
		false,
	)
}

// IsRetryableError returns true if the error is temporary and can be retried
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}
	return !ClassifyError(err).Permanent
}

// IsPermanentError returns true if the error requires user intervention
func IsPermanentError(err error) bool {
	if err == nil {
		return false
	}
	return ClassifyError(err).Permanent
}

// classifyHTTPStatusCode classifies an HTTP status code into a ClientError
func classifyHTTPStatusCode(statusCode int, body string) *ClientError {
	switch statusCode {
	case http.StatusUnauthorized:
		return NewClientError(
			ErrorCodeUnauthorized,
			"Authentication rejected by daemon (401)",
			nil,
			true,
		)
	case http.StatusForbidden:
		return NewClientError(
			ErrorCodeForbidden,
			fmt.Sprintf("Forbidden (403), check the daemon's rpc-whitelist: %s", body),
			nil,
			true,
		)
	case http.StatusConflict:
		return NewClientError(
			ErrorCodeSessionChallenge,
			"Session id required (409)",
			nil,
			false,
		)
	case http.StatusBadGateway:
		return NewClientError(
			ErrorCodeBadGateway,
			fmt.Sprintf("Bad Gateway (502): %s", body),
			nil,
			false,
		)
	case http.StatusServiceUnavailable:
		return NewClientError(
			ErrorCodeServiceUnavailable,
			fmt.Sprintf("Service Unavailable (503): %s", body),
			nil,
			false,
		)
	case http.StatusGatewayTimeout:
		return NewClientError(
			ErrorCodeTimeout,
			fmt.Sprintf("Gateway Timeout (504): %s", body),
			nil,
			false,
		)
	default:
		return NewClientError(
			ErrorCodeUnknown,
			fmt.Sprintf("Request failed with status %d: %s", statusCode, body),
			nil,
			false,
		)
	}
}

// GetErrorCode extracts the error code from an error
func GetErrorCode(err error) ErrorCode {
	if err == nil {
		return ErrorCodeNone
	}
	return ClassifyError(err).Code
}
