package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// lspCmd is a stub: the language-server front-end is out of scope for
// this build (spec.md's Non-goals).
func lspCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol front-end (not implemented in this build)",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(os.Stderr, red("error")+": lsp is not implemented in this build")
			os.Exit(1)
			return nil
		},
	}
}
