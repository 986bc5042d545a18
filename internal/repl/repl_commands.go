package repl

import (
	"fmt"
	"io"
	"strings"

	cerrors "github.com/solislang/solis/internal/errors"
	"github.com/solislang/solis/internal/session"
)

func (r *REPL) handleCommand(cmd string, out io.Writer) {
	parts := strings.Fields(cmd)
	switch parts[0] {
	case ":help", ":h":
		r.printHelp(out)
	case ":env":
		r.printEnv(out)
	case ":reset":
		r.reset(out)
	case ":import", ":i":
		if len(parts) < 2 {
			fmt.Fprintln(out, "usage: :import <module>")
			return
		}
		r.importModule(parts[1], out)
	default:
		fmt.Fprintf(out, "%s: unknown command %q (try :help)\n", yellow("warning"), parts[0])
	}
}

func (r *REPL) printHelp(out io.Writer) {
	fmt.Fprintln(out, bold("Commands:"))
	fmt.Fprintln(out, "  :help, :h          show this message")
	fmt.Fprintln(out, "  :env               list bound names")
	fmt.Fprintln(out, "  :import <module>   bring a module's exports into scope")
	fmt.Fprintln(out, "  :reset             forget all session bindings")
	fmt.Fprintln(out, "  :quit, :q          exit")
}

func (r *REPL) printEnv(out io.Writer) {
	names := r.sess.ValueEnv.Names()
	for _, n := range names {
		fmt.Fprintln(out, n)
	}
}

func (r *REPL) reset(out io.Writer) {
	fresh, err := session.New(r.workingDir)
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("error"), err)
		return
	}
	r.sess = fresh
	fmt.Fprintln(out, green("session reset"))
}

func (r *REPL) importModule(name string, out io.Writer) {
	loaded, err := r.sess.Loader.Load(name, ".", r.sess.TypeEnv, r.sess.ValueEnv)
	if err != nil {
		if serr, ok := err.(*cerrors.SolisError); ok {
			printErrors([]*cerrors.SolisError{serr}, out)
			return
		}
		fmt.Fprintf(out, "%s: %v\n", red("error"), err)
		return
	}
	for name, scheme := range loaded.Exports {
		r.sess.TypeEnv = r.sess.TypeEnv.Extend(name, scheme)
	}
	for name, v := range loaded.ExportVal {
		r.sess.ValueEnv.Set(name, v)
	}
	fmt.Fprintf(out, "%s\n", green("imported "+name))
}

func printErrors(errs []*cerrors.SolisError, out io.Writer) {
	for _, e := range errs {
		fmt.Fprintf(out, "%s: %s\n", red(string(e.Kind)), e.Error())
	}
}
