package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/josephlewis42/rash/core/config"
	"github.com/josephlewis42/rash/core/logger"
	"github.com/josephlewis42/rash/core/ttylog"
	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/structpb"
)

var errNoLog = errors.New("no file given and none configured")

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rash-replay",
		Short: "Explore rash session transcripts and event logs.",
		Long: `Reads the files rash writes when the transcript or event_log settings are
configured. Without a file argument the configured path is used.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newCatCmd(), newEventsCmd())
	return rootCmd
}

// newCatCmd prints the output recorded in a transcript.
func newCatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cat [FILE.cast]",
		Short: "Print the full output of a recorded session.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := pathOrConfig(args, func(c *config.Configuration) string { return c.Transcript })
			if err != nil {
				return err
			}

			fd, err := os.Open(path)
			if err != nil {
				return err
			}
			defer fd.Close()

			source := ttylog.NewAsciicastLogSource(fd)
			return ttylog.Replay(source, ttylog.NewClientOutput(cmd.OutOrStdout()))
		},
	}
}

// newEventsCmd prints one line per event in a session event log.
func newEventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "events [FILE]",
		Short: "Summarize a session event log.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := pathOrConfig(args, func(c *config.Configuration) string { return c.EventLog })
			if err != nil {
				return err
			}

			fd, err := os.Open(path)
			if err != nil {
				return err
			}
			defer fd.Close()

			w := cmd.OutOrStdout()
			return logger.ReadJSONLinesLog(fd, func(le *structpb.Struct) {
				printEvent(w, le)
			})
		},
	}
}

func pathOrConfig(args []string, pick func(*config.Configuration) string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return "", err
	}
	if path := pick(cfg); path != "" {
		return path, nil
	}
	return "", errNoLog
}

// printEvent writes "TIME SESSION TYPE key=value..." with keys sorted.
func printEvent(w io.Writer, le *structpb.Struct) {
	fields := le.AsMap()

	timestamp := "-"
	if micros, ok := fields[logger.FieldTimestamp].(float64); ok {
		timestamp = time.UnixMicro(int64(micros)).UTC().Format(time.RFC3339)
	}

	var keys []string
	for k := range fields {
		switch k {
		case logger.FieldTimestamp, logger.FieldSessionID, logger.FieldType:
		default:
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %v %v", timestamp, fields[logger.FieldSessionID], fields[logger.FieldType])
	for _, k := range keys {
		fmt.Fprintf(&sb, " %s=%v", k, fields[k])
	}
	fmt.Fprintln(w, sb.String())
}
