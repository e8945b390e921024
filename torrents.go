package transmission

import (
	"context"
	"encoding/base64"
	"os"

	"github.com/pkg/errors"
)

type idsArgs struct {
	IDs IDs `json:"ids,omitzero"`
}

// StartTorrents queues the selected torrents for start (torrent-start).
func (c *Client) StartTorrents(ctx context.Context, ids IDs) (Result[NoArguments], error) {
	return call[NoArguments](ctx, c, "torrent-start", idsArgs{IDs: ids})
}

// StartTorrentsNow starts the selected torrents, bypassing the queue (torrent-start-now).
func (c *Client) StartTorrentsNow(ctx context.Context, ids IDs) (Result[NoArguments], error) {
	return call[NoArguments](ctx, c, "torrent-start-now", idsArgs{IDs: ids})
}

// StopTorrents stops the selected torrents (torrent-stop).
func (c *Client) StopTorrents(ctx context.Context, ids IDs) (Result[NoArguments], error) {
	return call[NoArguments](ctx, c, "torrent-stop", idsArgs{IDs: ids})
}

// VerifyTorrents rechecks local data of the selected torrents (torrent-verify).
func (c *Client) VerifyTorrents(ctx context.Context, ids IDs) (Result[NoArguments], error) {
	return call[NoArguments](ctx, c, "torrent-verify", idsArgs{IDs: ids})
}

// ReannounceTorrents asks trackers for more peers now (torrent-reannounce).
func (c *Client) ReannounceTorrents(ctx context.Context, ids IDs) (Result[NoArguments], error) {
	return call[NoArguments](ctx, c, "torrent-reannounce", idsArgs{IDs: ids})
}

// SetTorrents applies fields to the selected torrents (torrent-set). Keys are
// sent as given, e.g. "uploadLimit", "labels", "bandwidthPriority".
func (c *Client) SetTorrents(ctx context.Context, ids IDs, fields Fields) (Result[NoArguments], error) {
	args := make(Fields, len(fields)+1)
	for k, v := range fields {
		args[k] = v
	}
	if !ids.IsZero() {
		args["ids"] = ids
	}
	return call[NoArguments](ctx, c, "torrent-set", args)
}

type torrentGetArgs struct {
	Fields []string `json:"fields"`
	IDs    IDs      `json:"ids"`
}

// GetTorrents lists torrents (torrent-get). A zero ids selects AllTorrents and
// no fields selects DefaultTorrentFields.
func (c *Client) GetTorrents(ctx context.Context, ids IDs, fields ...string) (Result[TorrentList], error) {
	if ids.IsZero() {
		ids = AllTorrents
	}
	if len(fields) == 0 {
		fields = DefaultTorrentFields
	}
	return call[TorrentList](ctx, c, "torrent-get", torrentGetArgs{Fields: fields, IDs: ids})
}

// AddTorrent adds a torrent from a URL, magnet link, daemon-side path or
// base64 metainfo (torrent-add). A duplicate is reported in the payload.
func (c *Client) AddTorrent(ctx context.Context, opts AddTorrentOptions) (Result[AddedTorrent], error) {
	if (opts.Filename == "") == (opts.Metainfo == "") {
		return Result[AddedTorrent]{}, NewClientError(ErrorCodeInvalidArgument, "exactly one of filename or metainfo is required", nil, true)
	}
	return call[AddedTorrent](ctx, c, "torrent-add", opts)
}

// AddMagnet validates magnetURI and adds it.
func (c *Client) AddMagnet(ctx context.Context, magnetURI string, opts AddTorrentOptions) (Result[AddedTorrent], error) {
	magnet, err := ParseMagnetLink(magnetURI)
	if err != nil {
		return Result[AddedTorrent]{}, NewClientError(ErrorCodeInvalidArgument, "invalid magnet link", err, true)
	}
	if magnet.Hash == "" {
		return Result[AddedTorrent]{}, NewClientError(ErrorCodeInvalidArgument, "magnet link has no info hash", nil, true)
	}

	opts.Filename = magnetURI
	opts.Metainfo = ""
	return c.AddTorrent(ctx, opts)
}

// AddTorrentFile reads a local .torrent file and uploads its contents.
func (c *Client) AddTorrentFile(ctx context.Context, path string, opts AddTorrentOptions) (Result[AddedTorrent], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result[AddedTorrent]{}, errors.Wrapf(err, "failed to read torrent file %s", path)
	}
	if len(data) == 0 {
		return Result[AddedTorrent]{}, NewClientError(ErrorCodeInvalidArgument, "torrent file is empty: "+path, nil, true)
	}

	opts.Filename = ""
	opts.Metainfo = base64.StdEncoding.EncodeToString(data)
	return c.AddTorrent(ctx, opts)
}

type torrentRemoveArgs struct {
	IDs             IDs  `json:"ids"`
	DeleteLocalData bool `json:"delete-local-data,omitempty"`
}

// RemoveTorrents removes the selected torrents, and their data when
// deleteLocalData is set (torrent-remove). ids must name at least one
// torrent.
func (c *Client) RemoveTorrents(ctx context.Context, ids IDs, deleteLocalData bool) (Result[NoArguments], error) {
	if ids.empty() {
		return Result[NoArguments]{}, NewClientError(ErrorCodeInvalidArgument, "torrent-remove needs explicit ids", nil, true)
	}
	return call[NoArguments](ctx, c, "torrent-remove", torrentRemoveArgs{IDs: ids, DeleteLocalData: deleteLocalData})
}

type torrentSetLocationArgs struct {
	IDs      IDs    `json:"ids"`
	Location string `json:"location"`
	Move     bool   `json:"move,omitempty"`
}

// SetTorrentLocation points the selected torrents at location, moving the
// data there when move is set (torrent-set-location).
func (c *Client) SetTorrentLocation(ctx context.Context, ids IDs, location string, move bool) (Result[NoArguments], error) {
	if ids.empty() {
		return Result[NoArguments]{}, NewClientError(ErrorCodeInvalidArgument, "torrent-set-location needs explicit ids", nil, true)
	}
	if location == "" {
		return Result[NoArguments]{}, NewClientError(ErrorCodeInvalidArgument, "location is required", nil, true)
	}
	return call[NoArguments](ctx, c, "torrent-set-location", torrentSetLocationArgs{IDs: ids, Location: location, Move: move})
}

type torrentRenamePathArgs struct {
	IDs  IDs    `json:"ids"`
	Path string `json:"path"`
	Name string `json:"name"`
}

// RenameTorrentPath renames a file or folder inside one torrent
// (torrent-rename-path). id must select exactly one torrent.
func (c *Client) RenameTorrentPath(ctx context.Context, id IDs, path, name string) (Result[RenamedPath], error) {
	if id.Len() != 1 {
		return Result[RenamedPath]{}, NewClientError(ErrorCodeInvalidArgument, "torrent-rename-path needs exactly one torrent", nil, true)
	}
	if path == "" || name == "" {
		return Result[RenamedPath]{}, NewClientError(ErrorCodeInvalidArgument, "path and name are required", nil, true)
	}
	return call[RenamedPath](ctx, c, "torrent-rename-path", torrentRenamePathArgs{IDs: id, Path: path, Name: name})
}
