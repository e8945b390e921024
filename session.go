package transmission

import (
	"context"
	"fmt"
)

// SetSession changes daemon settings (session-set). Keys are sent as given,
// e.g. "download-dir", "speed-limit-down", "alt-speed-enabled".
func (c *Client) SetSession(ctx context.Context, fields Fields) (Result[NoArguments], error) {
	if len(fields) == 0 {
		return Result[NoArguments]{}, NewClientError(ErrorCodeInvalidArgument, "session-set needs at least one field", nil, true)
	}
	return call[NoArguments](ctx, c, "session-set", fields)
}

type sessionGetArgs struct {
	Fields []string `json:"fields,omitempty"`
}

// GetSession reads daemon settings (session-get). No fields returns them all.
func (c *Client) GetSession(ctx context.Context, fields ...string) (Result[Session], error) {
	return call[Session](ctx, c, "session-get", sessionGetArgs{Fields: fields})
}

// SessionStats reads transfer statistics (session-stats).
func (c *Client) SessionStats(ctx context.Context) (Result[SessionStats], error) {
	return call[SessionStats](ctx, c, "session-stats", nil)
}

// UpdateBlocklist makes the daemon download its blocklist again (blocklist-update).
func (c *Client) UpdateBlocklist(ctx context.Context) (Result[BlocklistUpdate], error) {
	return call[BlocklistUpdate](ctx, c, "blocklist-update", nil)
}

// TestPort asks the daemon whether its peer port is reachable (port-test).
func (c *Client) TestPort(ctx context.Context) (Result[PortTest], error) {
	return call[PortTest](ctx, c, "port-test", nil)
}

// Disconnect sends session-close, which asks the daemon to shut down. On
// success the cached session id is dropped, so the next call starts a new
// handshake.
func (c *Client) Disconnect(ctx context.Context) (Result[NoArguments], error) {
	result, err := call[NoArguments](ctx, c, "session-close", nil)
	if err != nil {
		return result, err
	}
	if result.OK() {
		c.clearSessionID()
		c.logger.Info().Msg("session closed")
	}
	return result, nil
}

type freeSpaceArgs struct {
	Path string `json:"path"`
}

// FreeSpace reports free space in a daemon-side directory (free-space).
func (c *Client) FreeSpace(ctx context.Context, path string) (Result[FreeSpace], error) {
	if path == "" {
		return Result[FreeSpace]{}, NewClientError(ErrorCodeInvalidArgument, "path is required", nil, true)
	}
	return call[FreeSpace](ctx, c, "free-space", freeSpaceArgs{Path: path})
}

// SetBandwidthGroup creates or updates a bandwidth group (group-set). fields
// must contain "name".
func (c *Client) SetBandwidthGroup(ctx context.Context, fields Fields) (Result[NoArguments], error) {
	if name, _ := fields["name"].(string); name == "" {
		return Result[NoArguments]{}, NewClientError(ErrorCodeInvalidArgument, "group-set needs a name", nil, true)
	}
	return call[NoArguments](ctx, c, "group-set", fields)
}

type groupGetArgs struct {
	Group []string `json:"group,omitempty"`
}

// GetBandwidthGroups reads bandwidth groups (group-get). No names returns them all.
func (c *Client) GetBandwidthGroups(ctx context.Context, names ...string) (Result[BandwidthGroups], error) {
	return call[BandwidthGroups](ctx, c, "group-get", groupGetArgs{Group: names})
}

// SetSpeedLimits sets and enables the global speed limits in KB/s. A negative
// value disables that direction's limit.
func (c *Client) SetSpeedLimits(ctx context.Context, downloadKBps, uploadKBps int) (Result[NoArguments], error) {
	fields := Fields{
		"speed-limit-down-enabled": downloadKBps >= 0,
		"speed-limit-up-enabled":   uploadKBps >= 0,
	}
	if downloadKBps >= 0 {
		fields["speed-limit-down"] = downloadKBps
	}
	if uploadKBps >= 0 {
		fields["speed-limit-up"] = uploadKBps
	}
	return c.SetSession(ctx, fields)
}

// SetAltSpeedLimits sets the alternative ("turtle mode") limits in KB/s.
func (c *Client) SetAltSpeedLimits(ctx context.Context, downloadKBps, uploadKBps int) (Result[NoArguments], error) {
	if downloadKBps < 0 || uploadKBps < 0 {
		return Result[NoArguments]{}, NewClientError(ErrorCodeInvalidArgument, "alternative speed limits must not be negative", nil, true)
	}
	return c.SetSession(ctx, Fields{
		"alt-speed-down": downloadKBps,
		"alt-speed-up":   uploadKBps,
	})
}

// SetAltSpeedEnabled toggles the alternative speed limits.
func (c *Client) SetAltSpeedEnabled(ctx context.Context, enabled bool) (Result[NoArguments], error) {
	return c.SetSession(ctx, Fields{"alt-speed-enabled": enabled})
}

// SetQueueSizes sets how many torrents download and seed at once. Zero
// disables that queue.
func (c *Client) SetQueueSizes(ctx context.Context, download, seed int) (Result[NoArguments], error) {
	if download < 0 || seed < 0 {
		return Result[NoArguments]{}, NewClientError(ErrorCodeInvalidArgument, "queue sizes must not be negative", nil, true)
	}
	fields := Fields{
		"download-queue-enabled": download > 0,
		"seed-queue-enabled":     seed > 0,
	}
	if download > 0 {
		fields["download-queue-size"] = download
	}
	if seed > 0 {
		fields["seed-queue-size"] = seed
	}
	return c.SetSession(ctx, fields)
}

// DownloadDir returns the daemon's default download directory.
func (c *Client) DownloadDir(ctx context.Context) (string, error) {
	result, err := c.GetSession(ctx, "download-dir")
	if err != nil {
		return "", fmt.Errorf("failed to get session: %w", err)
	}
	if !result.OK() {
		return "", fmt.Errorf("session-get failed: %s", result.Failure())
	}
	return result.Arguments.DownloadDir, nil
}

// CheckVersion fails with ErrorCodeVersionIncompatible when the daemon's RPC
// version is below minimum.
func (c *Client) CheckVersion(ctx context.Context, minimum int) (Session, error) {
	result, err := c.GetSession(ctx, "version", "rpc-version", "rpc-version-minimum")
	if err != nil {
		return Session{}, fmt.Errorf("failed to get session: %w", err)
	}
	if !result.OK() {
		return Session{}, fmt.Errorf("session-get failed: %s", result.Failure())
	}

	session := result.Arguments
	if session.RPCVersion < minimum {
		return session, NewClientError(
			ErrorCodeVersionIncompatible,
			fmt.Sprintf("daemon %s speaks RPC version %d, need at least %d", session.Version, session.RPCVersion, minimum),
			nil,
			true,
		)
	}
	return session, nil
}
