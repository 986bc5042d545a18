// Package repl implements the interactive front-end named in spec.md §1,
// wired to a session.Session: each input line runs parse → infer → eval
// against the session's shared type/value environments, so bindings
// persist across lines the way a file's top-level declarations persist
// across the rest of the file (SPEC_FULL.md A.6).
package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"

	"github.com/solislang/solis/internal/session"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

// REPL is the Read-Eval-Print loop over a Session.
type REPL struct {
	sess       *session.Session
	workingDir string
	history    []string
	tty        bool
}

// New builds a REPL against sess. Color output and line-editing history
// are only enabled when stdout/stdin are an actual terminal (SPEC_FULL.md
// A.6), matching the teacher's color-function gating in cmd/ailang's
// driver.
func New(sess *session.Session, workingDir string) *REPL {
	tty := isatty.IsTerminal(os.Stdout.Fd()) && isatty.IsTerminal(os.Stdin.Fd())
	if !tty {
		color.NoColor = true
	}
	return &REPL{sess: sess, workingDir: workingDir, tty: tty}
}

// Start runs the loop until EOF or `:quit`.
func (r *REPL) Start(out io.Writer) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetMultiLineMode(true)

	historyFile := filepath.Join(os.TempDir(), ".solis_history")
	if r.tty {
		if f, err := os.Open(historyFile); err == nil {
			_, _ = line.ReadHistory(f)
			f.Close()
		}
	}

	fmt.Fprintf(out, "%s\n", bold("Solis"))
	fmt.Fprintln(out, dim("Type :help for help, :quit to exit"))
	fmt.Fprintln(out)

	line.SetCompleter(func(input string) (c []string) {
		if !strings.HasPrefix(input, ":") {
			return nil
		}
		for _, cmd := range []string{":help", ":quit", ":import", ":env", ":reset"} {
			if strings.HasPrefix(cmd, input) {
				c = append(c, cmd)
			}
		}
		return c
	})

	for {
		input, err := line.Prompt("solis> ")
		if err == io.EOF {
			fmt.Fprintln(out, green("Goodbye!"))
			break
		}
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", red("error"), err)
			continue
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)
		r.history = append(r.history, input)

		if strings.HasPrefix(input, ":") {
			if input == ":quit" || input == ":q" {
				fmt.Fprintln(out, green("Goodbye!"))
				break
			}
			r.handleCommand(input, out)
			continue
		}
		r.evalLine(input, out)
	}

	if r.tty {
		if f, err := os.Create(historyFile); err == nil {
			_, _ = line.WriteHistory(f)
			f.Close()
		}
	}
}
