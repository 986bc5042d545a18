package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/solislang/solis/internal/repl"
	"github.com/solislang/solis/internal/session"
)

func replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive REPL",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := os.Getwd()
			if err != nil {
				return err
			}
			sess, err := session.New(dir)
			if err != nil {
				return fmt.Errorf("starting session: %w", err)
			}
			defer sess.Close()

			repl.New(sess, dir).Start(os.Stdout)
			return nil
		},
	}
}
