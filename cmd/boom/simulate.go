package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/boom-router/boom/internal/errors"
	"github.com/boom-router/boom/pkg/location"
	"github.com/boom-router/boom/pkg/location/memory"
)

func simulateCmd() *cobra.Command {
	var (
		path    string
		record  bool
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "simulate OP...",
		Short: "Replay navigations against a memory provider",
		Long: `Replay a sequence of operations against a memory provider and
print the resulting History Log and location.

Operations:
  push:PATH     navigate to PATH
  replace:PATH  navigate to PATH, replacing the last entry
  reset         reset to --path (requires --record)

Examples:
  boom simulate --path /test --record push:/a replace:/b
  boom simulate --record push:/a reset`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr(), verbose)
			p := memory.New(memory.Config{Path: path, Record: record, Logger: logger})
			return runSimulate(cmd.OutOrStdout(), p, args)
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "/", "Initial path")
	cmd.Flags().BoolVarP(&record, "record", "r", false, "Keep a History Log")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every navigation")

	return cmd
}

func runSimulate(out io.Writer, p *memory.Provider, ops []string) error {
	notified := 0
	p.Subscribe(func() { notified++ })

	rec, recording := p.Recorder()

	for _, op := range ops {
		switch {
		case op == "reset":
			if !recording {
				return errors.New("E301").
					WithDetail("reset needs a recording provider").
					WithSuggestion("Pass --record")
			}
			rec.Reset()
		case strings.HasPrefix(op, "push:"):
			p.Navigate(strings.TrimPrefix(op, "push:"))
		case strings.HasPrefix(op, "replace:"):
			p.Navigate(strings.TrimPrefix(op, "replace:"), location.WithReplace())
		default:
			return errors.New("E301").WithDetailf("Unknown operation %q.", op)
		}
	}

	if recording {
		fmt.Fprintln(out, "history:")
		for i, entry := range rec.History().All() {
			fmt.Fprintf(out, "  %d  %s\n", i, entry)
		}
	}
	fmt.Fprintf(out, "location:  %s\n", p.Snapshot())
	fmt.Fprintf(out, "notified:  %d\n", notified)
	return nil
}
