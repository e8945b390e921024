package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	transmission "github.com/jfxdev/go-transmission"
)

var listFields = []string{
	"id", "name", "status", "percentDone", "totalSize",
	"rateDownload", "rateUpload", "uploadRatio", "eta", "errorString",
}

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "list [ids...]",
		Aliases: []string{"ls"},
		Short:   "List torrents",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			return ctx.withClient(cmd, func(client *transmission.Client) error {
				result, err := client.GetTorrents(cmd.Context(), ids, listFields...)
				if err != nil {
					return err
				}
				if err := checkResult("torrent-get", result); err != nil {
					return err
				}
				torrents := result.Arguments.Torrents
				if ctx.flags.json {
					return writeJSON(cmd, torrents)
				}
				if len(torrents) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No torrents")
					return nil
				}
				printTable(cmd,
					[]string{"ID", "Name", "Status", "Done", "Size", "Down", "Up", "Ratio"},
					torrentRows(torrents),
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight},
				)
				return nil
			})
		},
	}
}

func torrentRows(torrents []transmission.Torrent) [][]string {
	rows := make([][]string, 0, len(torrents))
	for _, t := range torrents {
		status := t.Status.String()
		if t.ErrorString != "" {
			status += " (" + t.ErrorString + ")"
		}
		rows = append(rows, []string{
			strconv.FormatInt(t.ID, 10),
			t.Name,
			status,
			fmt.Sprintf("%.0f%%", t.PercentDone*100),
			formatBytes(t.TotalSize),
			formatRate(t.RateDownload),
			formatRate(t.RateUpload),
			formatRatio(t.UploadRatio),
		})
	}
	return rows
}

func formatBytes(n int64) string {
	if n <= 0 {
		return "0 B"
	}
	return humanize.Bytes(uint64(n))
}

func formatRate(n int64) string {
	if n <= 0 {
		return "-"
	}
	return humanize.Bytes(uint64(n)) + "/s"
}

// formatRatio renders the daemon's sentinel ratios (-1 none, -2 infinite).
func formatRatio(r float64) string {
	switch {
	case r == -2:
		return "inf"
	case r < 0:
		return "-"
	default:
		return strconv.FormatFloat(r, 'f', 2, 64)
	}
}

func newAddCommand(ctx *commandContext) *cobra.Command {
	var paused bool
	var downloadDir string

	cmd := &cobra.Command{
		Use:   "add <magnet|file.torrent|url>",
		Short: "Add a torrent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := strings.TrimSpace(args[0])
			opts := transmission.AddTorrentOptions{DownloadDir: downloadDir}
			if cmd.Flags().Changed("paused") {
				opts.Paused = &paused
			}

			return ctx.withClient(cmd, func(client *transmission.Client) error {
				result, err := addSource(cmd.Context(), client, source, opts)
				if err != nil {
					return err
				}
				if err := checkResult("torrent-add", result); err != nil {
					return err
				}
				if ctx.flags.json {
					return writeJSON(cmd, result.Arguments)
				}
				ref := result.Arguments.Torrent()
				if ref == nil {
					fmt.Fprintln(cmd.OutOrStdout(), "Torrent added")
					return nil
				}
				verb := "Added"
				if result.Arguments.Duplicate != nil {
					verb = "Already present"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: #%d %s (%s)\n", verb, ref.ID, ref.Name, ref.HashString)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&paused, "paused", false, "Add without starting")
	cmd.Flags().StringVar(&downloadDir, "download-dir", "", "Daemon-side download directory")
	return cmd
}

func addSource(ctx context.Context, client *transmission.Client, source string, opts transmission.AddTorrentOptions) (transmission.Result[transmission.AddedTorrent], error) {
	if strings.HasPrefix(source, "magnet:") {
		return client.AddMagnet(ctx, source, opts)
	}
	if info, err := os.Stat(source); err == nil && !info.IsDir() {
		return client.AddTorrentFile(ctx, source, opts)
	}
	opts.Filename = source
	return client.AddTorrent(ctx, opts)
}

type torrentAction func(*transmission.Client, context.Context, transmission.IDs) (transmission.Result[transmission.NoArguments], error)

func newActionCommands(ctx *commandContext) []*cobra.Command {
	var now bool
	start := newActionCommand(ctx, "start", "torrent-start", "Start torrents (all when no ids are given)", func(client *transmission.Client, c context.Context, ids transmission.IDs) (transmission.Result[transmission.NoArguments], error) {
		if now {
			return client.StartTorrentsNow(c, ids)
		}
		return client.StartTorrents(c, ids)
	})
	start.Flags().BoolVar(&now, "now", false, "Bypass the download queue")

	return []*cobra.Command{
		start,
		newActionCommand(ctx, "stop", "torrent-stop", "Stop torrents (all when no ids are given)", (*transmission.Client).StopTorrents),
		newActionCommand(ctx, "verify", "torrent-verify", "Verify local data", (*transmission.Client).VerifyTorrents),
		newActionCommand(ctx, "reannounce", "torrent-reannounce", "Ask trackers for more peers", (*transmission.Client).ReannounceTorrents),
	}
}

func newActionCommand(ctx *commandContext, use, method, short string, action torrentAction) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [ids...]",
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			return ctx.withClient(cmd, func(client *transmission.Client) error {
				result, err := action(client, cmd.Context(), ids)
				if err != nil {
					return err
				}
				if err := checkResult(method, result); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "OK")
				return nil
			})
		},
	}
}

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	var deleteData bool

	cmd := &cobra.Command{
		Use:     "remove <ids...>",
		Aliases: []string{"rm"},
		Short:   "Remove torrents",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			return ctx.withClient(cmd, func(client *transmission.Client) error {
				result, err := client.RemoveTorrents(cmd.Context(), ids, deleteData)
				if err != nil {
					return err
				}
				if err := checkResult("torrent-remove", result); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "OK")
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&deleteData, "delete-data", false, "Also delete downloaded data")
	return cmd
}

func newMoveCommand(ctx *commandContext) *cobra.Command {
	var location string

	cmd := &cobra.Command{
		Use:   "move <ids...> --to <dir>",
		Short: "Move torrent data to another daemon-side directory",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			return ctx.withClient(cmd, func(client *transmission.Client) error {
				result, err := client.SetTorrentLocation(cmd.Context(), ids, location, true)
				if err != nil {
					return err
				}
				if err := checkResult("torrent-set-location", result); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "OK")
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&location, "to", "", "Destination directory")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newQueueCommand(ctx *commandContext) *cobra.Command {
	queueCmd := &cobra.Command{
		Use:   "queue",
		Short: "Reorder the download queue",
	}

	moves := []struct {
		use    string
		method string
		short  string
		action torrentAction
	}{
		{"top", "queue-move-top", "Move torrents to the front of the queue", (*transmission.Client).MoveQueueTop},
		{"up", "queue-move-up", "Move torrents one place up", (*transmission.Client).MoveQueueUp},
		{"down", "queue-move-down", "Move torrents one place down", (*transmission.Client).MoveQueueDown},
		{"bottom", "queue-move-bottom", "Move torrents to the back of the queue", (*transmission.Client).MoveQueueBottom},
	}
	for _, m := range moves {
		sub := newActionCommand(ctx, m.use, m.method, m.short, m.action)
		sub.Use = m.use + " <ids...>"
		sub.Args = cobra.MinimumNArgs(1)
		queueCmd.AddCommand(sub)
	}

	return queueCmd
}
