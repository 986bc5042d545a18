package lexer

import "testing"

func TestNextToken(t *testing.T) {
	input := `let x = 5 + 10
let rec fact n = if n == 0 then 1 else n * fact (n - 1)

match xs {
  x :: rest => x,
  [] => 0
}

[1, 2, 3] ++ [4]
{ name: "Alice", age: 30 }
x <- f y
a -> b => c

-- a comment
true && false || !true
1.5 <= 2 and 3 >= 1 and 2 != 3
`

	tests := []struct {
		kind    Kind
		literal string
	}{
		{LET, "let"},
		{IDENT, "x"},
		{ASSIGN, "="},
		{INT, "5"},
		{PLUS, "+"},
		{INT, "10"},

		{LET, "let"},
		{REC, "rec"},
		{IDENT, "fact"},
		{IDENT, "n"},
		{ASSIGN, "="},
		{IF, "if"},
		{IDENT, "n"},
		{EQ, "=="},
		{INT, "0"},
		{THEN, "then"},
		{INT, "1"},
		{ELSE, "else"},
		{IDENT, "n"},
		{STAR, "*"},
		{IDENT, "fact"},
		{LPAREN, "("},
		{IDENT, "n"},
		{MINUS, "-"},
		{INT, "1"},
		{RPAREN, ")"},

		{MATCH, "match"},
		{IDENT, "xs"},
		{LBRACE, "{"},
		{IDENT, "x"},
		{CONS, "::"},
		{IDENT, "rest"},
		{FARROW, "=>"},
		{IDENT, "x"},
		{COMMA, ","},
		{LBRACKET, "["},
		{RBRACKET, "]"},
		{FARROW, "=>"},
		{INT, "0"},
		{RBRACE, "}"},

		{LBRACKET, "["},
		{INT, "1"},
		{COMMA, ","},
		{INT, "2"},
		{COMMA, ","},
		{INT, "3"},
		{RBRACKET, "]"},
		{APPEND, "++"},
		{LBRACKET, "["},
		{INT, "4"},
		{RBRACKET, "]"},

		{LBRACE, "{"},
		{IDENT, "name"},
		{COLON, ":"},
		{STRING, "Alice"},
		{COMMA, ","},
		{IDENT, "age"},
		{COLON, ":"},
		{INT, "30"},
		{RBRACE, "}"},

		{IDENT, "x"},
		{BACKARROW, "<-"},
		{IDENT, "f"},
		{IDENT, "y"},

		{IDENT, "a"},
		{ARROW, "->"},
		{IDENT, "b"},
		{FARROW, "=>"},
		{IDENT, "c"},

		{TRUE, "true"},
		{AND, "&&"},
		{FALSE, "false"},
		{OR, "||"},
		{BANG, "!"},
		{TRUE, "true"},

		{FLOAT, "1.5"},
		{LE, "<="},
		{INT, "2"},
		{IDENT, "and"},
		{INT, "3"},
		{GE, ">="},
		{INT, "1"},
		{IDENT, "and"},
		{INT, "2"},
		{NEQ, "!="},
		{INT, "3"},

		{EOF, ""},
	}

	l := New(input)
	for i, want := range tests {
		tok := l.NextToken()
		if tok.Kind != want.kind {
			t.Fatalf("token %d: kind = %d, want %d (literal %q)", i, tok.Kind, want.kind, tok.Literal)
		}
		if tok.Literal != want.literal {
			t.Fatalf("token %d: literal = %q, want %q", i, tok.Literal, want.literal)
		}
	}
}

func TestSkipsLineComments(t *testing.T) {
	l := New("1 -- trailing comment\n+ 2")
	var kinds []Kind
	for {
		tok := l.NextToken()
		if tok.Kind == EOF {
			break
		}
		kinds = append(kinds, tok.Kind)
	}
	if len(kinds) != 3 || kinds[0] != INT || kinds[1] != PLUS || kinds[2] != INT {
		t.Fatalf("unexpected token kinds: %v", kinds)
	}
}

func TestBigIntThreshold(t *testing.T) {
	l := New("123456789012345678901234567890")
	tok := l.NextToken()
	if tok.Kind != BIGINT {
		t.Fatalf("expected BIGINT for an oversized literal, got %d", tok.Kind)
	}
}

func TestStringEscapes(t *testing.T) {
	l := New(`"a\nb\tc\"d\\e"`)
	tok := l.NextToken()
	if tok.Kind != STRING {
		t.Fatalf("expected STRING, got %d", tok.Kind)
	}
	want := "a\nb\tc\"d\\e"
	if tok.Literal != want {
		t.Fatalf("literal = %q, want %q", tok.Literal, want)
	}
}

func TestIllegalAmpersand(t *testing.T) {
	l := New("&")
	tok := l.NextToken()
	if tok.Kind != ILLEGAL {
		t.Fatalf("expected ILLEGAL for a lone '&', got %d", tok.Kind)
	}
}
