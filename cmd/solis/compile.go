package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// compileCmd is a stub: spec.md's Non-goals place a native backend out of
// scope for this build. The subcommand exists so `solis compile` fails
// with a clear message instead of "unknown command".
func compileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compile FILE",
		Short: "Compile a Solis file to a native binary (not implemented in this build)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(os.Stderr, red("error")+": compile is not implemented in this build; use `solis run` to evaluate a file directly")
			os.Exit(1)
			return nil
		},
	}
}
