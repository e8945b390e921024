package transmission

import "context"

// MoveQueueTop moves the selected torrents to the front of the queue.
func (c *Client) MoveQueueTop(ctx context.Context, ids IDs) (Result[NoArguments], error) {
	return c.moveQueue(ctx, "queue-move-top", ids)
}

// MoveQueueUp moves the selected torrents one slot towards the front.
func (c *Client) MoveQueueUp(ctx context.Context, ids IDs) (Result[NoArguments], error) {
	return c.moveQueue(ctx, "queue-move-up", ids)
}

// MoveQueueDown moves the selected torrents one slot towards the back.
func (c *Client) MoveQueueDown(ctx context.Context, ids IDs) (Result[NoArguments], error) {
	return c.moveQueue(ctx, "queue-move-down", ids)
}

// MoveQueueBottom moves the selected torrents to the back of the queue.
func (c *Client) MoveQueueBottom(ctx context.Context, ids IDs) (Result[NoArguments], error) {
	return c.moveQueue(ctx, "queue-move-bottom", ids)
}

func (c *Client) moveQueue(ctx context.Context, method string, ids IDs) (Result[NoArguments], error) {
	if ids.empty() {
		return Result[NoArguments]{}, NewClientError(ErrorCodeInvalidArgument, method+" needs explicit ids", nil, true)
	}
	return call[NoArguments](ctx, c, method, idsArgs{IDs: ids})
}
