package parser

import (
	"strconv"

	"github.com/solislang/solis/internal/ast"
	cerrors "github.com/solislang/solis/internal/errors"
	"github.com/solislang/solis/internal/lexer"
)

// parseExpr is the entry point for any expression; it dispatches to the
// keyword-led forms first, then falls through to the precedence-climbing
// binary-operator parser.
func (p *Parser) parseExpr() ast.Expr {
	switch p.cur.Kind {
	case lexer.BACKSLASH:
		return p.parseLambda()
	case lexer.IF:
		return p.parseIf()
	case lexer.MATCH:
		return p.parseMatch()
	case lexer.LET:
		return p.parseLetExpr()
	default:
		return p.parseOr()
	}
}

func (p *Parser) parseLambda() ast.Expr {
	loc := p.loc()
	p.next() // backslash
	var params []ast.Param
	for !p.at(lexer.ARROW) && !p.at(lexer.EOF) {
		params = append(params, ast.Param{Pattern: p.parseAtomPattern()})
	}
	p.expect(lexer.ARROW, "->")
	body := p.parseExpr()
	return &ast.Lambda{Base: ast.Base{Loc: loc}, Params: params, Body: body}
}

func (p *Parser) parseIf() ast.Expr {
	loc := p.loc()
	p.next() // "if"
	cond := p.parseExpr()
	p.expect(lexer.THEN, "then")
	then := p.parseExpr()
	p.expect(lexer.ELSE, "else")
	elseE := p.parseExpr()
	return &ast.If{Base: ast.Base{Loc: loc}, Cond: cond, Then: then, Else: elseE}
}

func (p *Parser) parseMatch() ast.Expr {
	loc := p.loc()
	p.next() // "match"
	scrut := p.parseExpr()
	p.expect(lexer.WITH, "with")
	p.expect(lexer.LBRACE, "{")
	var arms []ast.MatchArm
	for !p.at(lexer.RBRACE) && !p.at(lexer.EOF) {
		pat := p.parsePattern()
		p.expect(lexer.ARROW, "->")
		body := p.parseExpr()
		arms = append(arms, ast.MatchArm{Pattern: pat, Body: body})
		if p.at(lexer.SEMI) {
			p.next()
		}
	}
	p.expect(lexer.RBRACE, "}")
	return &ast.Match{Base: ast.Base{Loc: loc}, Scrutinee: scrut, Arms: arms}
}

// parseLetExpr handles the expression form `let [rec] pattern = value in body`.
func (p *Parser) parseLetExpr() ast.Expr {
	loc := p.loc()
	p.next() // "let"
	recursive := false
	if p.at(lexer.REC) {
		recursive = true
		p.next()
	}
	pat := p.parsePattern()
	p.expect(lexer.ASSIGN, "=")
	value := p.parseExpr()
	p.expect(lexer.IN, "in")
	body := p.parseExpr()
	return &ast.Let{Base: ast.Base{Loc: loc}, Pattern: pat, Value: value, Body: body, Recursive: recursive}
}

// Binary-operator precedence climbing, lowest to highest:
// || ; && ; == != ; < > <= >= ; :: (right-assoc) ; ++ ; + - ; * /

func (p *Parser) parseOr() ast.Expr {
	left := p.parseAnd()
	for p.at(lexer.OR) {
		loc := p.loc()
		p.next()
		right := p.parseAnd()
		left = &ast.BinOp{Base: ast.Base{Loc: loc}, Op: "||", Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAnd() ast.Expr {
	left := p.parseEquality()
	for p.at(lexer.AND) {
		loc := p.loc()
		p.next()
		right := p.parseEquality()
		left = &ast.BinOp{Base: ast.Base{Loc: loc}, Op: "&&", Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseEquality() ast.Expr {
	left := p.parseRelational()
	for p.at(lexer.EQ) || p.at(lexer.NEQ) {
		op := opLiteral(p.cur.Kind)
		loc := p.loc()
		p.next()
		right := p.parseRelational()
		left = &ast.BinOp{Base: ast.Base{Loc: loc}, Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseRelational() ast.Expr {
	left := p.parseCons()
	for p.at(lexer.LT) || p.at(lexer.GT) || p.at(lexer.LE) || p.at(lexer.GE) {
		op := opLiteral(p.cur.Kind)
		loc := p.loc()
		p.next()
		right := p.parseCons()
		left = &ast.BinOp{Base: ast.Base{Loc: loc}, Op: op, Left: left, Right: right}
	}
	return left
}

// parseCons is right-associative: `x :: xs :: rest`.
func (p *Parser) parseCons() ast.Expr {
	left := p.parseAppend()
	if p.at(lexer.CONS) || p.at(lexer.COLON) {
		op := opLiteral(p.cur.Kind)
		loc := p.loc()
		p.next()
		right := p.parseCons()
		return &ast.BinOp{Base: ast.Base{Loc: loc}, Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAppend() ast.Expr {
	left := p.parseAdditive()
	for p.at(lexer.APPEND) {
		loc := p.loc()
		p.next()
		right := p.parseAdditive()
		left = &ast.BinOp{Base: ast.Base{Loc: loc}, Op: "++", Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for p.at(lexer.PLUS) || p.at(lexer.MINUS) {
		op := opLiteral(p.cur.Kind)
		loc := p.loc()
		p.next()
		right := p.parseMultiplicative()
		left = &ast.BinOp{Base: ast.Base{Loc: loc}, Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parseUnary()
	for p.at(lexer.STAR) || p.at(lexer.SLASH) {
		op := opLiteral(p.cur.Kind)
		loc := p.loc()
		p.next()
		right := p.parseUnary()
		left = &ast.BinOp{Base: ast.Base{Loc: loc}, Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expr {
	if p.at(lexer.BANG) {
		loc := p.loc()
		p.next()
		return &ast.Strict{Base: ast.Base{Loc: loc}, Inner: p.parseUnary()}
	}
	if p.at(lexer.MINUS) {
		loc := p.loc()
		p.next()
		return &ast.BinOp{Base: ast.Base{Loc: loc}, Op: "-", Left: &ast.IntLit{Value: 0}, Right: p.parseUnary()}
	}
	return p.parseApplication()
}

// parseApplication handles juxtaposition: `f x y` parses as `(f x) y`.
func (p *Parser) parseApplication() ast.Expr {
	fn := p.parseAtom()
	for p.startsAtom() {
		loc := p.loc()
		arg := p.parseAtom()
		fn = &ast.App{Base: ast.Base{Loc: loc}, Func: fn, Arg: arg}
	}
	return fn
}

func (p *Parser) startsAtom() bool {
	switch p.cur.Kind {
	case lexer.INT, lexer.BIGINT, lexer.FLOAT, lexer.STRING, lexer.TRUE, lexer.FALSE,
		lexer.IDENT, lexer.LPAREN, lexer.LBRACKET, lexer.LBRACE:
		return true
	default:
		return false
	}
}

func (p *Parser) parseAtom() ast.Expr {
	loc := p.loc()
	switch p.cur.Kind {
	case lexer.INT:
		n, _ := strconv.ParseInt(p.cur.Literal, 10, 64)
		p.next()
		return &ast.IntLit{Base: ast.Base{Loc: loc}, Value: n}
	case lexer.BIGINT:
		digits := p.cur.Literal
		p.next()
		return &ast.BigIntLit{Base: ast.Base{Loc: loc}, Value: digits}
	case lexer.FLOAT:
		f, _ := strconv.ParseFloat(p.cur.Literal, 64)
		p.next()
		return &ast.FloatLit{Base: ast.Base{Loc: loc}, Value: f}
	case lexer.STRING:
		s := p.cur.Literal
		p.next()
		return &ast.StringLit{Base: ast.Base{Loc: loc}, Value: s}
	case lexer.TRUE:
		p.next()
		return &ast.BoolLit{Base: ast.Base{Loc: loc}, Value: true}
	case lexer.FALSE:
		p.next()
		return &ast.BoolLit{Base: ast.Base{Loc: loc}, Value: false}
	case lexer.IDENT:
		return p.parseVarOrQualified(loc)
	case lexer.LPAREN:
		p.next()
		e := p.parseExpr()
		p.expect(lexer.RPAREN, ")")
		return p.parseRecordAccessChain(e)
	case lexer.LBRACKET:
		return p.parseListExpr(loc)
	case lexer.LBRACE:
		return p.parseRecordAccessChain(p.parseBraced(loc))
	default:
		p.errorf("expected an expression, found %q", p.cur.Literal)
		p.next()
		return &ast.BoolLit{Base: ast.Base{Loc: loc}, Value: false}
	}
}

// parseVarOrQualified distinguishes `Mod.name` (qualified reference) from
// `record.field` (access) by capitalization of the leading identifier,
// matching the module-naming convention this grammar otherwise leaves
// unconstrained: a capitalized identifier followed by `.` always parses as
// a qualified reference, and any other `name.field` as record access.
func (p *Parser) parseVarOrQualified(loc cerrors.Location) ast.Expr {
	name := p.cur.Literal
	p.next()
	if p.at(lexer.DOT) && isUpper(name) {
		p.next()
		field := p.cur.Literal
		p.expect(lexer.IDENT, "a name")
		return p.parseRecordAccessChain(&ast.Var{Base: ast.Base{Loc: loc}, Module: name, Name: field})
	}
	return p.parseRecordAccessChain(&ast.Var{Base: ast.Base{Loc: loc}, Name: name})
}

func (p *Parser) parseRecordAccessChain(e ast.Expr) ast.Expr {
	for p.at(lexer.DOT) {
		loc := p.loc()
		p.next()
		field := p.cur.Literal
		p.expect(lexer.IDENT, "a field name")
		e = &ast.RecordAccess{Base: ast.Base{Loc: loc}, Record: e, Field: field}
	}
	return e
}

func (p *Parser) parseListExpr(loc cerrors.Location) ast.Expr {
	p.next() // "["
	var elems []ast.Expr
	for !p.at(lexer.RBRACKET) && !p.at(lexer.EOF) {
		elems = append(elems, p.parseExpr())
		if p.at(lexer.COMMA) {
			p.next()
		}
	}
	p.expect(lexer.RBRACKET, "]")
	return &ast.ListExpr{Base: ast.Base{Loc: loc}, Elements: elems}
}

// parseBraced parses either a Block `{ stmt; stmt }`, a Record literal
// `{ field: e, ... }`, or a RecordUpdate `{ e | field = v, ... }`, using
// one token of lookahead to tell a record literal's `name:` from a
// block statement.
func (p *Parser) parseBraced(loc cerrors.Location) ast.Expr {
	p.next() // "{"
	if p.at(lexer.RBRACE) {
		p.next()
		return &ast.Block{Base: ast.Base{Loc: loc}}
	}
	if p.at(lexer.IDENT) && p.peek.Kind == lexer.COLON {
		return p.parseRecordLiteral(loc)
	}

	if p.at(lexer.LET) {
		letStmt := p.parseBlockLet()
		p.expect(lexer.RBRACE, "}")
		return &ast.Block{Base: ast.Base{Loc: loc}, Stmts: []ast.Expr{letStmt}}
	}
	if looksLikeBindPattern(p) {
		return p.parseBlockTail(loc, p.parseBlockStmt())
	}

	first := p.parseExpr()
	if p.at(lexer.PIPE) {
		return p.parseRecordUpdate(loc, first)
	}
	return p.parseBlockTail(loc, first)
}

func (p *Parser) parseRecordLiteral(loc cerrors.Location) ast.Expr {
	fields := map[string]ast.Expr{}
	var order []string
	for !p.at(lexer.RBRACE) && !p.at(lexer.EOF) {
		name := p.cur.Literal
		p.expect(lexer.IDENT, "a field name")
		p.expect(lexer.COLON, ":")
		fields[name] = p.parseExpr()
		order = append(order, name)
		if p.at(lexer.COMMA) {
			p.next()
		}
	}
	p.expect(lexer.RBRACE, "}")
	return &ast.RecordExpr{Base: ast.Base{Loc: loc}, Fields: fields, Order: order}
}

func (p *Parser) parseRecordUpdate(loc cerrors.Location, record ast.Expr) ast.Expr {
	p.next() // "|"
	fields := map[string]ast.Expr{}
	var order []string
	for !p.at(lexer.RBRACE) && !p.at(lexer.EOF) {
		name := p.cur.Literal
		p.expect(lexer.IDENT, "a field name")
		p.expect(lexer.ASSIGN, "=")
		fields[name] = p.parseExpr()
		order = append(order, name)
		if p.at(lexer.COMMA) {
			p.next()
		}
	}
	p.expect(lexer.RBRACE, "}")
	return &ast.RecordUpdate{Base: ast.Base{Loc: loc}, Record: record, Fields: fields, Order: order}
}

// parseBlockTail finishes parsing a Block whose first statement is
// already parsed, building nested Let continuations for any `let`
// statement and threading Bind statements through at eval/infer time.
func (p *Parser) parseBlockTail(loc cerrors.Location, first ast.Expr) ast.Expr {
	stmts := []ast.Expr{first}
	p.skipSemis()
	for !p.at(lexer.RBRACE) && !p.at(lexer.EOF) {
		if p.at(lexer.LET) {
			letStmt := p.parseBlockLet()
			stmts = append(stmts, letStmt)
			break // the let swallows everything after it as its Body
		}
		stmts = append(stmts, p.parseBlockStmt())
		p.skipSemis()
	}
	p.expect(lexer.RBRACE, "}")
	return &ast.Block{Base: ast.Base{Loc: loc}, Stmts: stmts}
}

// parseBlockStmt parses one block statement: either a monadic bind
// `pattern <- expr` or a plain expression.
func (p *Parser) parseBlockStmt() ast.Expr {
	if looksLikeBindPattern(p) {
		loc := p.loc()
		pat := p.parsePattern()
		p.expect(lexer.BACKARROW, "<-")
		value := p.parseExpr()
		return &ast.Bind{Base: ast.Base{Loc: loc}, Pattern: pat, Value: value}
	}
	return p.parseExpr()
}

// looksLikeBindPattern checks, without consuming, whether the upcoming
// tokens are `IDENT <-` — the only bind-pattern shape this grammar needs
// since lambda/match/let already consume more complex patterns elsewhere.
func looksLikeBindPattern(p *Parser) bool {
	return p.cur.Kind == lexer.IDENT && p.peek.Kind == lexer.BACKARROW
}

// parseBlockLet parses a `let [rec] pattern = expr` block statement and
// recursively parses the remaining statements as its Body.
func (p *Parser) parseBlockLet() ast.Expr {
	loc := p.loc()
	p.next() // "let"
	recursive := false
	if p.at(lexer.REC) {
		recursive = true
		p.next()
	}
	pat := p.parsePattern()
	p.expect(lexer.ASSIGN, "=")
	val := p.parseExpr()
	p.skipSemis()

	var rest []ast.Expr
	for !p.at(lexer.RBRACE) && !p.at(lexer.EOF) {
		if p.at(lexer.LET) {
			rest = append(rest, p.parseBlockLet())
			break
		}
		rest = append(rest, p.parseBlockStmt())
		p.skipSemis()
	}

	var body ast.Expr
	switch {
	case len(rest) == 0:
		if vp, ok := pat.(*ast.VarPat); ok {
			body = &ast.Var{Base: ast.Base{Loc: loc}, Name: vp.Name}
		} else {
			body = &ast.BoolLit{Base: ast.Base{Loc: loc}, Value: false}
		}
	case len(rest) == 1:
		body = rest[0]
	default:
		body = &ast.Block{Base: ast.Base{Loc: loc}, Stmts: rest}
	}

	return &ast.Let{Base: ast.Base{Loc: loc}, Pattern: pat, Value: val, Body: body, Recursive: recursive}
}

func opLiteral(k lexer.Kind) string {
	switch k {
	case lexer.EQ:
		return "=="
	case lexer.NEQ:
		return "!="
	case lexer.LT:
		return "<"
	case lexer.GT:
		return ">"
	case lexer.LE:
		return "<="
	case lexer.GE:
		return ">="
	case lexer.PLUS:
		return "+"
	case lexer.MINUS:
		return "-"
	case lexer.CONS:
		return "::"
	case lexer.COLON:
		return ":"
	default:
		return ""
	}
}

func isUpper(s string) bool {
	return len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z'
}
