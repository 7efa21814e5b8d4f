package lexer

import (
	"testing"

	"github.com/moneta-lang/moneta/internal/source"
)

func tokens(t *testing.T, input string, opts ...Option) []Token {
	t.Helper()
	l := New(source.New(input), opts...)
	var out []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("unexpected lex error: %v", err)
		}
		out = append(out, tok)
		if tok.Kind == EOF {
			return out
		}
	}
}

func TestOperatorRoundTrip(t *testing.T) {
	cases := map[string]Kind{
		"+": PLUS, "-": MINUS, "*": STAR, "/": SLASH,
		"+=": PLUS_ASSIGN, "-=": MINUS_ASSIGN,
		"==": EQ, "!=": NOT_EQ, "<": LT, "<=": LT_EQ, ">": GT, ">=": GT_EQ,
		"!": NOT, "&&": AND, "||": OR, "->": ARROW, "=": ASSIGN,
		"(": LPAREN, ")": RPAREN, "{": LBRACE, "}": RBRACE,
		":": COLON, ",": COMMA, ".": DOT, ";": SEMICOLON,
	}
	for op, kind := range cases {
		toks := tokens(t, " "+op+" ")
		if len(toks) != 2 {
			t.Fatalf("%q: expected one token + EOF, got %d", op, len(toks))
		}
		if toks[0].Kind != kind {
			t.Fatalf("%q: expected kind %v, got %v", op, kind, toks[0].Kind)
		}
	}
}

func TestLoneAmpersandIsError(t *testing.T) {
	l := New(source.New("&"))
	if _, err := l.NextToken(); err == nil {
		t.Fatal("expected error for lone '&'")
	}
}

func TestLonePipeIsError(t *testing.T) {
	l := New(source.New("|"))
	if _, err := l.NextToken(); err == nil {
		t.Fatal("expected error for lone '|'")
	}
}

func TestLeadingZeroIsSeparateToken(t *testing.T) {
	toks := tokens(t, "05")
	if len(toks) != 3 || toks[0].Kind != INT || toks[0].IntVal != 0 || toks[1].Kind != INT || toks[1].IntVal != 5 {
		t.Fatalf("expected [0, 5, EOF], got %+v", toks)
	}
}

func TestFloatLiteral(t *testing.T) {
	toks := tokens(t, "3.25")
	if toks[0].Kind != FLOAT || toks[0].FltVal != 3.25 {
		t.Fatalf("expected float 3.25, got %+v", toks[0])
	}
}

func TestMalformedFloatMissingFractionDigit(t *testing.T) {
	l := New(source.New("2."))
	if _, err := l.NextToken(); err == nil {
		t.Fatal("expected error for '2.' with no fractional digit")
	}
}

func TestIdentifierVsKeyword(t *testing.T) {
	toks := tokens(t, "if ifx")
	if toks[0].Kind != IF {
		t.Fatalf("expected IF, got %v", toks[0].Kind)
	}
	if toks[1].Kind != IDENT || toks[1].Literal != "ifx" {
		t.Fatalf("expected IDENT ifx, got %+v", toks[1])
	}
}

func TestCurrencyNameBecomesCurtypeConst(t *testing.T) {
	toks := tokens(t, "usd USD", WithCurrencyNames([]string{"USD"}))
	if toks[0].Kind != CURTYPE_CONST || toks[0].Literal != "USD" {
		t.Fatalf("expected CURTYPE_CONST USD (case-folded), got %+v", toks[0])
	}
	if toks[1].Kind != CURTYPE_CONST || toks[1].Literal != "USD" {
		t.Fatalf("expected CURTYPE_CONST USD, got %+v", toks[1])
	}
}

func TestStringEscapes(t *testing.T) {
	toks := tokens(t, `"a\"b\\c\n\td"`)
	want := "a\"b\\c\n\td"
	if toks[0].Kind != STRING || toks[0].Literal != want {
		t.Fatalf("expected %q, got %+v", want, toks[0])
	}
}

func TestUnknownEscapePassesThroughLiterally(t *testing.T) {
	toks := tokens(t, `"a\qb"`)
	if toks[0].Literal != `a\qb` {
		t.Fatalf("expected literal backslash+q, got %q", toks[0].Literal)
	}
}

func TestUnterminatedStringIsError(t *testing.T) {
	l := New(source.New(`"abc`))
	if _, err := l.NextToken(); err == nil {
		t.Fatal("expected error for unterminated string")
	}
}

func TestRawNewlineInStringIsError(t *testing.T) {
	l := New(source.New("\"abc\ndef\""))
	if _, err := l.NextToken(); err == nil {
		t.Fatal("expected error for raw newline in string")
	}
}

func TestCommentIsDistinctToken(t *testing.T) {
	toks := tokens(t, "# hello\n1")
	if toks[0].Kind != COMMENT || toks[0].Literal != " hello" {
		t.Fatalf("expected comment token, got %+v", toks[0])
	}
	if toks[1].Kind != INT {
		t.Fatalf("expected INT after comment, got %+v", toks[1])
	}
}

func TestPositionMonotonicity(t *testing.T) {
	toks := tokens(t, "var1 + var2\nvar3")
	for i := 1; i < len(toks); i++ {
		prev, cur := toks[i-1].Pos, toks[i].Pos
		if cur.Line < prev.Line || (cur.Line == prev.Line && cur.Column < prev.Column) {
			t.Fatalf("position went backwards: %+v -> %+v", prev, cur)
		}
	}
}

func TestIdentifierMaxLenExceeded(t *testing.T) {
	long := ""
	for i := 0; i < 81; i++ {
		long += "a"
	}
	l := New(source.New(long))
	if _, err := l.NextToken(); err == nil {
		t.Fatal("expected error for overlong identifier")
	}
}

func TestUnmatchableCharacter(t *testing.T) {
	l := New(source.New("@"))
	if _, err := l.NextToken(); err == nil {
		t.Fatal("expected error for unmatchable character")
	}
}
