// Command solis is the driver binary: the REPL, the file runner, and
// stubs for the two out-of-scope surfaces spec.md's Non-goals name
// (native compilation, a language server) (SPEC_FULL.md A.5).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const (
	appName    = "solis"
	appVersion = "0.1.0"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     appName,
		Short:   "Solis — a small statically-typed functional language",
		Long:    "Solis is a tree-walking, Hindley-Milner-typed functional language.\nRun a file, or start the REPL with no arguments.",
		Version: appVersion,
	}

	rootCmd.AddCommand(replCmd())
	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(compileCmd())
	rootCmd.AddCommand(lspCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
