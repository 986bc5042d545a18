package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/solislang/solis/internal/builtins"
	cerrors "github.com/solislang/solis/internal/errors"
	"github.com/solislang/solis/internal/session"
	"github.com/solislang/solis/internal/value"
)

var (
	red   = color.New(color.FgRed).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
)

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run FILE",
		Short: "Type-check, evaluate, and force main in a Solis file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFile(args[0])
		},
	}
}

func runFile(path string) error {
	dir := filepath.Dir(path)
	sess, err := session.New(dir)
	if err != nil {
		return fmt.Errorf("starting session: %w", err)
	}
	defer sess.Close()

	loaded, err := sess.Loader.LoadFile(path, sess.TypeEnv, sess.ValueEnv)
	if err != nil {
		if serr, ok := err.(*cerrors.SolisError); ok {
			fmt.Fprintf(os.Stderr, "%s: %s\n", red(string(serr.Kind)), serr.Error())
			os.Exit(1)
		}
		return err
	}

	v, ok := loaded.ExportVal["main"]
	if !ok {
		fmt.Fprintf(os.Stderr, "%s: %s has no top-level `main` binding\n", red("error"), path)
		os.Exit(1)
	}

	forced, err := value.Force(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("error"), err)
		os.Exit(1)
	}
	if _, isUnit := forced.(*value.UnitValue); !isUnit {
		fmt.Println(builtins.Show(forced))
	} else {
		fmt.Fprintln(os.Stderr, green("ok"))
	}
	return nil
}
