package lexer

import (
	"strconv"
	"strings"

	"github.com/moneta-lang/moneta/internal/errors"
	"github.com/moneta-lang/moneta/internal/source"
)

// Config holds the lexer's length limits and the known currency names.
type Config struct {
	IdentifierMaxLen int
	StrMaxLen        int
	IntMaxLen        int
	FloatMaxLen      int
	CurrencyNames    []string
}

// DefaultConfig returns the default length limits.
func DefaultConfig() Config {
	return Config{
		IdentifierMaxLen: 80,
		StrMaxLen:        120,
		IntMaxLen:        15,
		FloatMaxLen:      30,
	}
}

// Option configures a Lexer at construction time.
type Option func(*Lexer)

// WithCurrencyNames supplies the set of known currency-type identifiers
// (case-insensitive; stored uppercased) discovered by the exchange-rate
// analyser before the program lexer is built.
func WithCurrencyNames(names []string) Option {
	return func(l *Lexer) {
		set := make(map[string]bool, len(names))
		for _, n := range names {
			set[strings.ToUpper(n)] = true
		}
		l.currencyNames = set
	}
}

// WithConfig overrides the default length limits.
func WithConfig(cfg Config) Option {
	return func(l *Lexer) {
		l.cfg = cfg
	}
}

// Lexer tokenises characters read from a source.Reader into Tokens.
type Lexer struct {
	r             *source.Reader
	cfg           Config
	currencyNames map[string]bool
}

// New creates a Lexer reading from r, applying any supplied Options.
func New(r *source.Reader, opts ...Option) *Lexer {
	l := &Lexer{r: r, cfg: DefaultConfig()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Lexer) errf(pos source.Position, format string, args ...any) error {
	return errors.New(errors.Lexical, pos, format, args...)
}

// NextToken produces the next Token, or a lexical error.
func (l *Lexer) NextToken() (Token, error) {
	l.skipWhitespace()
	pos := l.r.Pos()
	ch := l.r.Peek()

	switch {
	case ch == source.EOF:
		return NewToken(EOF, "", pos), nil
	case ch == '#':
		return l.readComment(pos)
	case isDigit(ch):
		return l.readNumber(pos)
	case ch == '"':
		return l.readString(pos)
	case isLetter(ch):
		return l.readIdentifier(pos)
	}

	if tok, ok, err := l.readOperator(pos); ok || err != nil {
		return tok, err
	}

	return Token{}, l.errf(pos, "cannot match any token at %q", string(ch))
}

func (l *Lexer) skipWhitespace() {
	for {
		switch l.r.Peek() {
		case ' ', '\t', '\r', '\n':
			l.r.Advance()
		default:
			return
		}
	}
}

func (l *Lexer) readComment(pos source.Position) (Token, error) {
	l.r.Advance() // consume '#'
	var sb strings.Builder
	for l.r.Peek() != '\n' && l.r.Peek() != source.EOF {
		sb.WriteRune(l.r.Peek())
		l.r.Advance()
	}
	return NewToken(COMMENT, sb.String(), pos), nil
}

// readNumber: a leading '0' is the whole integer part (any following
// digits start a fresh token), so it is the integer 0 unless a '.' follows;
// otherwise digits accumulate. An optional '.' plus at least one digit forms
// a float. Length limits are enforced on decimal digit counts.
func (l *Lexer) readNumber(pos source.Position) (Token, error) {
	var digits strings.Builder
	if l.r.Peek() == '0' {
		l.r.Advance()
		if l.r.Peek() != '.' {
			tok := NewToken(INT, "0", pos)
			tok.IntVal = 0
			return tok, nil
		}
		digits.WriteRune('0')
	}

	for isDigit(l.r.Peek()) {
		digits.WriteRune(l.r.Peek())
		l.r.Advance()
	}
	if digits.Len() > l.cfg.IntMaxLen {
		return Token{}, l.errf(pos, "integer literal exceeds maximum length of %d digits", l.cfg.IntMaxLen)
	}

	if l.r.Peek() != '.' {
		n, _ := strconv.ParseInt(digits.String(), 10, 64)
		tok := NewToken(INT, digits.String(), pos)
		tok.IntVal = n
		return tok, nil
	}

	l.r.Advance() // consume '.'
	var frac strings.Builder
	for isDigit(l.r.Peek()) {
		frac.WriteRune(l.r.Peek())
		l.r.Advance()
	}
	if frac.Len() == 0 {
		return Token{}, l.errf(pos, "malformed number: expected digit after '.'")
	}
	if frac.Len() > l.cfg.FloatMaxLen {
		return Token{}, l.errf(pos, "float literal exceeds maximum length of %d fractional digits", l.cfg.FloatMaxLen)
	}

	whole, _ := strconv.ParseFloat(digits.String(), 64)
	fracVal, _ := strconv.ParseFloat(frac.String(), 64)
	scale := 1.0
	for range frac.String() {
		scale *= 10
	}
	value := whole + fracVal/scale

	literal := digits.String() + "." + frac.String()
	tok := NewToken(FLOAT, literal, pos)
	tok.FltVal = value
	return tok, nil
}

func (l *Lexer) readString(pos source.Position) (Token, error) {
	l.r.Advance() // consume opening quote
	var sb strings.Builder
	for {
		ch := l.r.Peek()
		switch {
		case ch == source.EOF:
			return Token{}, l.errf(pos, "unterminated string literal")
		case ch == '\n':
			return Token{}, l.errf(pos, "unterminated string literal: raw newline in string")
		case ch == '"':
			l.r.Advance()
			return NewToken(STRING, sb.String(), pos), nil
		case ch == '\\':
			l.r.Advance()
			esc := l.r.Peek()
			switch esc {
			case '"':
				sb.WriteRune('"')
			case '\\':
				sb.WriteRune('\\')
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			default:
				sb.WriteRune('\\')
				sb.WriteRune(esc)
			}
			l.r.Advance()
		default:
			sb.WriteRune(ch)
			l.r.Advance()
		}
		if sb.Len() > l.cfg.StrMaxLen {
			return Token{}, l.errf(pos, "string literal exceeds maximum length of %d", l.cfg.StrMaxLen)
		}
	}
}

func (l *Lexer) readIdentifier(pos source.Position) (Token, error) {
	var sb strings.Builder
	for isLetter(l.r.Peek()) || isDigit(l.r.Peek()) || l.r.Peek() == '_' {
		sb.WriteRune(l.r.Peek())
		l.r.Advance()
		if sb.Len() > l.cfg.IdentifierMaxLen {
			return Token{}, l.errf(pos, "identifier exceeds maximum length of %d", l.cfg.IdentifierMaxLen)
		}
	}
	name := sb.String()

	if kind, ok := keywords[name]; ok {
		return NewToken(kind, name, pos), nil
	}

	upper := strings.ToUpper(name)
	if l.currencyNames[upper] {
		return NewToken(CURTYPE_CONST, upper, pos), nil
	}

	return NewToken(IDENT, name, pos), nil
}

// readOperator handles single- and double-character operators and
// punctuation. Returns ok=false if ch doesn't start any known operator.
func (l *Lexer) readOperator(pos source.Position) (Token, bool, error) {
	ch := l.r.Peek()

	single := map[rune]Kind{
		'*': STAR, ':': COLON, '(': LPAREN, ')': RPAREN,
		'.': DOT, ',': COMMA, '{': LBRACE, '}': RBRACE, ';': SEMICOLON,
	}
	if kind, ok := single[ch]; ok {
		l.r.Advance()
		return NewToken(kind, string(ch), pos), true, nil
	}

	switch ch {
	case '/':
		l.r.Advance()
		return NewToken(SLASH, "/", pos), true, nil
	case '+':
		l.r.Advance()
		if l.r.Peek() == '=' {
			l.r.Advance()
			return NewToken(PLUS_ASSIGN, "+=", pos), true, nil
		}
		return NewToken(PLUS, "+", pos), true, nil
	case '-':
		l.r.Advance()
		switch l.r.Peek() {
		case '=':
			l.r.Advance()
			return NewToken(MINUS_ASSIGN, "-=", pos), true, nil
		case '>':
			l.r.Advance()
			return NewToken(ARROW, "->", pos), true, nil
		}
		return NewToken(MINUS, "-", pos), true, nil
	case '<':
		l.r.Advance()
		if l.r.Peek() == '=' {
			l.r.Advance()
			return NewToken(LT_EQ, "<=", pos), true, nil
		}
		return NewToken(LT, "<", pos), true, nil
	case '>':
		l.r.Advance()
		if l.r.Peek() == '=' {
			l.r.Advance()
			return NewToken(GT_EQ, ">=", pos), true, nil
		}
		return NewToken(GT, ">", pos), true, nil
	case '=':
		l.r.Advance()
		if l.r.Peek() == '=' {
			l.r.Advance()
			return NewToken(EQ, "==", pos), true, nil
		}
		return NewToken(ASSIGN, "=", pos), true, nil
	case '!':
		l.r.Advance()
		if l.r.Peek() == '=' {
			l.r.Advance()
			return NewToken(NOT_EQ, "!=", pos), true, nil
		}
		return NewToken(NOT, "!", pos), true, nil
	case '&':
		l.r.Advance()
		if l.r.Peek() == '&' {
			l.r.Advance()
			return NewToken(AND, "&&", pos), true, nil
		}
		return Token{}, true, l.errf(pos, "expected '&&', got stray '&'")
	case '|':
		l.r.Advance()
		if l.r.Peek() == '|' {
			l.r.Advance()
			return NewToken(OR, "||", pos), true, nil
		}
		return Token{}, true, l.errf(pos, "expected '||', got stray '|'")
	}

	return Token{}, false, nil
}

// isLetter is deliberately ASCII-only. An identifier starts with a letter;
// underscores and digits are only legal in continuation position.
func isLetter(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
