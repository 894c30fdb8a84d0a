package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boom-router/boom/internal/errors"
)

func explainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain [CODE]",
		Short: "Describe an error code",
		Long: `Describe an error code reported by boom, or list every code
when none is given.

Examples:
  boom explain
  boom explain E203`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				for _, code := range errors.Codes() {
					tmpl, _ := errors.Lookup(code)
					fmt.Fprintf(out, "%s  %-8s %s\n", code, tmpl.Category, tmpl.Message)
				}
				return nil
			}

			tmpl, ok := errors.Lookup(args[0])
			if !ok {
				return errors.New("E303").WithDetailf("No error is registered as %q.", args[0])
			}
			fmt.Fprintf(out, "%s: %s\n", args[0], tmpl.Message)
			if tmpl.Detail != "" {
				info(out, "%s", tmpl.Detail)
			}
			if tmpl.Suggestion != "" {
				info(out, "Hint: %s", tmpl.Suggestion)
			}
			if tmpl.Status != 0 {
				info(out, "HTTP status: %d", tmpl.Status)
			}
			return nil
		},
	}
}
