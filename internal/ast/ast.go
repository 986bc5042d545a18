// Package ast defines the closed node sets the parser hands to the core
// (spec.md §6): a Module of declarations built from expressions and
// patterns. The lexer/parser that produce these values are external
// collaborators (spec.md §1) — this package only fixes the contract.
package ast

import "github.com/solislang/solis/internal/errors"

// Node is implemented by every AST node so each carries its own source
// location for diagnostics.
type Node interface {
	Pos() errors.Location
}

type Base struct {
	Loc errors.Location
}

func (b Base) Pos() errors.Location { return b.Loc }

// ---- Module & declarations ----

// Module is the parser's top-level unit (spec.md §6).
type Module struct {
	Base
	Name         string
	Imports      []*Import
	Declarations []Decl
}

// Decl is one of FuncDecl, TypeDecl, ModuleDecl, ImportDecl, TraitDecl, ImplDecl.
type Decl interface {
	Node
	declNode()
}

// Import brings another module's exported symbols into scope, optionally
// under an alias and an include/hide list (spec.md §6).
type Import struct {
	Base
	Module    string
	Alias     string   // "" if unqualified
	Qualified bool
	Include   []string // nil means "no restriction"
	Hide      []string
}

func (i *Import) declNode() {}

// Param is a lambda/function parameter pattern with an optional type
// annotation.
type Param struct {
	Pattern    Pattern
	Annotation Type // nil if unannotated
}

// FuncDecl declares a top-level (possibly recursive) function binding.
type FuncDecl struct {
	Base
	Name       string
	Annotation Type // nil if unannotated
	Params     []Param
	Body       Expr
	Recursive  bool
}

func (*FuncDecl) declNode() {}

// CtorDecl is one constructor alternative of a TypeDecl.
type CtorDecl struct {
	Name   string
	Fields []Type
}

// TypeDecl declares an algebraic data type: `data T a = C1 t... | C2 ...`.
type TypeDecl struct {
	Base
	Name       string
	Params     []string
	Ctors      []CtorDecl
}

func (*TypeDecl) declNode() {}

// TraitDecl declares a type class ("trait"): a set of method signatures.
type TraitDecl struct {
	Base
	Name    string
	TyParam string
	Methods []TraitMethod
}

func (*TraitDecl) declNode() {}

// TraitMethod is one method signature inside a trait declaration.
type TraitMethod struct {
	Name       string
	Annotation Type
}

// ImplDecl provides concrete method bodies for a trait at a specific type.
type ImplDecl struct {
	Base
	Trait   string
	ForType Type
	Methods []*FuncDecl
}

func (*ImplDecl) declNode() {}

// ---- Types (surface syntax, as parsed from annotations) ----

// Type is the surface syntax for type annotations.
type Type interface {
	typeNode()
}

type SimpleType struct{ Name string }
type ListType struct{ Element Type }
type FuncType struct {
	Params []Type
	Return Type
}
type AppType struct {
	Ctor string
	Args []Type
}
type ForallType struct {
	Vars []string
	Body Type
}

func (*SimpleType) typeNode() {}
func (*ListType) typeNode()   {}
func (*FuncType) typeNode()   {}
func (*AppType) typeNode()    {}
func (*ForallType) typeNode() {}

// ---- Expressions ----

// Expr is the closed set of expression node kinds (spec.md §3/§4.3).
type Expr interface {
	Node
	exprNode()
}

type IntLit struct {
	Base
	Value int64
}
type BigIntLit struct {
	Base
	Value string // decimal digits, arbitrary precision
}
type FloatLit struct {
	Base
	Value float64
}
type StringLit struct {
	Base
	Value string
}
type BoolLit struct {
	Base
	Value bool
}

// Var is a name reference, optionally module-qualified ("Mod.name").
type Var struct {
	Base
	Module string // "" if unqualified
	Name   string
}

// Lambda is `\ p1 p2 ... -> body` parsed as nested unary lambdas sharing
// one source span; Params holds every parameter in source order.
type Lambda struct {
	Base
	Params []Param
	Body   Expr
}

// App is function application `f x`.
type App struct {
	Base
	Func Expr
	Arg  Expr
}

// BinOp is an infix operator application.
type BinOp struct {
	Base
	Op          string
	Left, Right Expr
}

// If is the conditional.
type If struct {
	Base
	Cond, Then, Else Expr
}

// Let binds Pattern := Value within Body. Recursive let-bindings of a
// simple variable pattern (or an explicit `let rec`) pre-extend the
// environment before inferring/evaluating Value (spec.md §4.3/§4.5).
type Let struct {
	Base
	Pattern   Pattern
	Value     Expr
	Body      Expr
	Recursive bool
}

// ListExpr is a literal list `[e1, e2, ...]`.
type ListExpr struct {
	Base
	Elements []Expr
}

// MatchArm is one `pattern -> body` alternative.
type MatchArm struct {
	Pattern Pattern
	Body    Expr
}

// Match is pattern-match dispatch over a scrutinee.
type Match struct {
	Base
	Scrutinee Expr
	Arms      []MatchArm
}

// RecordExpr constructs a record literal.
type RecordExpr struct {
	Base
	Fields map[string]Expr
	Order  []string // field names in source order, for deterministic eval/print
}

// RecordAccess reads `Expr.Field`.
type RecordAccess struct {
	Base
	Record Expr
	Field  string
}

// RecordUpdate builds `{ Record | Field = Value, ... }`.
type RecordUpdate struct {
	Base
	Record Expr
	Fields map[string]Expr
	Order  []string
}

// Block sequences statements; its value is the last statement's value
// (Unit/Bool default for an empty block per spec.md §4.3's Block rule —
// the core interprets an empty block as Bool false).
type Block struct {
	Base
	Stmts []Expr
}

// Bind is the monadic `pattern <- expr` block statement.
type Bind struct {
	Base
	Pattern Pattern
	Value   Expr
}

// Strict forces its inner expression's value before returning it.
type Strict struct {
	Base
	Inner Expr
}

func (*IntLit) exprNode()       {}
func (*BigIntLit) exprNode()    {}
func (*FloatLit) exprNode()     {}
func (*StringLit) exprNode()    {}
func (*BoolLit) exprNode()      {}
func (*Var) exprNode()          {}
func (*Lambda) exprNode()       {}
func (*App) exprNode()          {}
func (*BinOp) exprNode()        {}
func (*If) exprNode()           {}
func (*Let) exprNode()          {}
func (*ListExpr) exprNode()     {}
func (*Match) exprNode()        {}
func (*RecordExpr) exprNode()   {}
func (*RecordAccess) exprNode() {}
func (*RecordUpdate) exprNode() {}
func (*Block) exprNode()        {}
func (*Bind) exprNode()         {}
func (*Strict) exprNode()       {}

// ---- Patterns ----

// Pattern is the closed set of pattern node kinds (spec.md §4.3).
type Pattern interface {
	patternNode()
}

type VarPat struct{ Name string }
type WildcardPat struct{}
type LitPat struct{ Value Expr } // IntLit/FloatLit/StringLit/BoolLit only

// ListPat matches a fixed-length list: `[a, b, c]`.
type ListPat struct{ Elements []Pattern }

// ConsPat matches a constructor application; Name "::" is the built-in
// list-cons pattern (spec.md's Open Question: ":" is accepted as a
// legacy alias for "::").
type ConsPat struct {
	Name string
	Args []Pattern
}

// RecordPat matches named fields against sub-patterns.
type RecordPat struct {
	Fields map[string]Pattern
	Order  []string
}

func (*VarPat) patternNode()      {}
func (*WildcardPat) patternNode() {}
func (*LitPat) patternNode()      {}
func (*ListPat) patternNode()     {}
func (*ConsPat) patternNode()     {}
func (*RecordPat) patternNode()   {}
