package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/solislang/solis/internal/ast"
	"github.com/solislang/solis/internal/builtins"
	cerrors "github.com/solislang/solis/internal/errors"
	"github.com/solislang/solis/internal/parser"
	"github.com/solislang/solis/internal/types"
	"github.com/solislang/solis/internal/value"
)

// evalLine runs one REPL line. A `let name ... = expr` line with no
// trailing `in` persists as a session-wide binding (mirroring a file's
// top-level declaration); anything else is a one-shot expression.
func (r *REPL) evalLine(input string, out io.Writer) {
	if strings.HasPrefix(strings.TrimSpace(input), "let") {
		if decl, errs := parser.ParseDeclString(input); len(errs) == 0 {
			r.evalDecl(decl, out)
			return
		}
	}
	r.evalExpr(input, out)
}

func (r *REPL) evalExpr(input string, out io.Writer) {
	e, errs := parser.ParseExprString(input)
	if len(errs) > 0 {
		printErrors(errs, out)
		return
	}

	inf := types.NewInferencer(r.sess.Gen)
	result, terr := inf.Infer(e, r.sess.TypeEnv)
	if terr != nil {
		printErrors([]*cerrors.SolisError{terr}, out)
		return
	}

	v, err := r.sess.Eval.Eval(e, r.sess.ValueEnv)
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("error"), err)
		return
	}
	forced, err := value.Force(v)
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("error"), err)
		return
	}
	fmt.Fprintf(out, "%s : %s\n", builtins.Show(forced), yellow(result.Type.String()))
}

func (r *REPL) evalDecl(decl ast.Decl, out io.Writer) {
	inf := types.NewInferencer(r.sess.Gen)
	newTypeEnv, _, terr := inf.InferDecl(decl, r.sess.TypeEnv)
	if terr != nil {
		printErrors([]*cerrors.SolisError{terr}, out)
		return
	}
	r.sess.TypeEnv = newTypeEnv

	if err := r.sess.Eval.EvalModule(&ast.Module{Declarations: []ast.Decl{decl}}, r.sess.ValueEnv); err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("error"), err)
		return
	}
	if fd, ok := decl.(*ast.FuncDecl); ok {
		fmt.Fprintf(out, "%s\n", green(fd.Name+" defined"))
	} else {
		fmt.Fprintln(out, green("defined"))
	}
}
