package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boom-router/boom/pkg/paths"
)

func resolveCmd() *cobra.Command {
	var base string

	cmd := &cobra.Command{
		Use:   "resolve PATH",
		Short: "Show how a path relates to a base",
		Long: `Show both conversions the router applies to PATH under --base.

relative is what the router reports as its location when the provider
is at PATH. absolute is where the provider goes when the router
navigates to PATH.

Examples:
  boom resolve --base /app /app/users
  boom resolve --base /app /other
  boom resolve --base /app ~/other`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "relative  %s\n", paths.ToRelative(base, args[0]))
			fmt.Fprintf(out, "absolute  %s\n", paths.ToAbsolute(args[0], base))
		},
	}

	cmd.Flags().StringVarP(&base, "base", "b", "", "Router base path")

	return cmd
}

func decodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode STRING",
		Short: "Percent-decode a path the way the router does",
		Long: `Percent-decode STRING, leaving reserved characters escaped.
Malformed input is printed unchanged.

Examples:
  boom decode /users/J%C3%BCrgen
  boom decode /a%2Fb`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), paths.DecodeSafely(args[0]))
		},
	}
}
