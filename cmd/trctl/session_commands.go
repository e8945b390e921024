package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	transmission "github.com/jfxdev/go-transmission"
)

type statsView struct {
	Stats     transmission.SessionStats `json:"stats"`
	FreeSpace *transmission.FreeSpace   `json:"freeSpace,omitempty"`
}

func newStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show transfer statistics and free space",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(cmd, func(client *transmission.Client) error {
				var view statsView
				g, gctx := errgroup.WithContext(cmd.Context())

				g.Go(func() error {
					result, err := client.SessionStats(gctx)
					if err != nil {
						return err
					}
					if err := checkResult("session-stats", result); err != nil {
						return err
					}
					view.Stats = result.Arguments
					return nil
				})
				// Free space is optional: older daemons lack free-space and
				// session-get may be restricted. Any failure just drops the row.
				g.Go(func() error {
					dir, err := client.DownloadDir(gctx)
					if err != nil || dir == "" {
						return nil
					}
					result, err := client.FreeSpace(gctx, dir)
					if err == nil && result.OK() {
						view.FreeSpace = &result.Arguments
					}
					return nil
				})
				if err := g.Wait(); err != nil {
					return err
				}

				if ctx.flags.json {
					return writeJSON(cmd, view)
				}
				printTable(cmd, []string{"Metric", "Value"}, statsRows(view), []columnAlignment{alignLeft, alignRight})
				return nil
			})
		},
	}
}

func statsRows(view statsView) [][]string {
	s := view.Stats
	rows := [][]string{
		{"Torrents", strconv.Itoa(s.TorrentCount)},
		{"Active", strconv.Itoa(s.ActiveTorrentCount)},
		{"Paused", strconv.Itoa(s.PausedTorrentCount)},
		{"Download speed", formatRate(s.DownloadSpeed)},
		{"Upload speed", formatRate(s.UploadSpeed)},
		{"Downloaded (session)", formatBytes(s.CurrentStats.DownloadedBytes)},
		{"Uploaded (session)", formatBytes(s.CurrentStats.UploadedBytes)},
		{"Downloaded (total)", formatBytes(s.CumulativeStats.DownloadedBytes)},
		{"Uploaded (total)", formatBytes(s.CumulativeStats.UploadedBytes)},
		{"Active time (total)", (time.Duration(s.CumulativeStats.SecondsActive) * time.Second).String()},
	}
	if fs := view.FreeSpace; fs != nil {
		rows = append(rows, []string{"Free space (" + fs.Path + ")", formatBytes(fs.SizeBytes)})
	}
	return rows
}

func newSessionCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "session [fields...]",
		Short: "Show daemon settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(cmd, func(client *transmission.Client) error {
				result, err := client.GetSession(cmd.Context(), args...)
				if err != nil {
					return err
				}
				if err := checkResult("session-get", result); err != nil {
					return err
				}
				s := result.Arguments
				if ctx.flags.json {
					return writeJSON(cmd, s)
				}
				rows := [][]string{
					{"Version", s.Version},
					{"RPC version", fmt.Sprintf("%d (min %d)", s.RPCVersion, s.RPCVersionMinimum)},
					{"Download dir", s.DownloadDir},
					{"Peer port", strconv.Itoa(s.PeerPort)},
					{"Download limit", speedLimit(s.SpeedLimitDownEnabled, s.SpeedLimitDown)},
					{"Upload limit", speedLimit(s.SpeedLimitUpEnabled, s.SpeedLimitUp)},
					{"Alt speed", yesNo(s.AltSpeedEnabled)},
					{"Blocklist", fmt.Sprintf("%s (%d rules)", yesNo(s.BlocklistEnabled), s.BlocklistSize)},
				}
				printTable(cmd, []string{"Setting", "Value"}, rows, []columnAlignment{alignLeft, alignLeft})
				return nil
			})
		},
	}
}

func speedLimit(enabled bool, kbps int) string {
	if !enabled {
		return "unlimited"
	}
	return humanize.Bytes(uint64(kbps)*1000) + "/s"
}

func newFreeSpaceCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "free-space <path>",
		Short: "Show free space in a daemon-side directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(cmd, func(client *transmission.Client) error {
				result, err := client.FreeSpace(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if err := checkResult("free-space", result); err != nil {
					return err
				}
				if ctx.flags.json {
					return writeJSON(cmd, result.Arguments)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s free\n", result.Arguments.Path, formatBytes(result.Arguments.SizeBytes))
				return nil
			})
		},
	}
}

func newPortTestCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "port-test",
		Short: "Check whether the peer port is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(cmd, func(client *transmission.Client) error {
				result, err := client.TestPort(cmd.Context())
				if err != nil {
					return err
				}
				if err := checkResult("port-test", result); err != nil {
					return err
				}
				if ctx.flags.json {
					return writeJSON(cmd, result.Arguments)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Port open: %s\n", yesNo(result.Arguments.PortIsOpen))
				return nil
			})
		},
	}
}

func newBlocklistUpdateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "blocklist-update",
		Short: "Download the blocklist again",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(cmd, func(client *transmission.Client) error {
				result, err := client.UpdateBlocklist(cmd.Context())
				if err != nil {
					return err
				}
				if err := checkResult("blocklist-update", result); err != nil {
					return err
				}
				if ctx.flags.json {
					return writeJSON(cmd, result.Arguments)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Blocklist rules: %d\n", result.Arguments.BlocklistSize)
				return nil
			})
		},
	}
}
