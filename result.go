package transmission

import (
	"context"
	"encoding/json"
	"fmt"
)

// NoArguments is the payload of calls whose success carries no data.
type NoArguments struct{}

// Result is the outcome of an RPC call the daemon answered. A non-success
// result string is reported here, not as an error.
type Result[T any] struct {
	// Status is the raw "result" field, "success" or a failure reason.
	Status string
	// Arguments is decoded only when Status is "success".
	Arguments T
}

// OK reports whether the daemon answered "success".
func (r Result[T]) OK() bool {
	return r.Status == ResultSuccess
}

// Failure returns the daemon's failure reason, or "" on success.
func (r Result[T]) Failure() string {
	if r.OK() {
		return ""
	}
	return r.Status
}

func call[T any](ctx context.Context, c *Client, method string, arguments any) (Result[T], error) {
	resp, err := c.Invoke(ctx, method, arguments)
	if err != nil {
		return Result[T]{}, err
	}
	return decodeResult[T](method, resp)
}

func decodeResult[T any](method string, resp *Response) (Result[T], error) {
	result := Result[T]{Status: resp.Result}
	if !resp.OK() || len(resp.Arguments) == 0 || string(resp.Arguments) == "null" {
		return result, nil
	}
	if err := json.Unmarshal(resp.Arguments, &result.Arguments); err != nil {
		return Result[T]{}, NewClientError(ErrorCodeDecode, fmt.Sprintf("cannot decode %s arguments", method), err, true)
	}
	return result, nil
}
