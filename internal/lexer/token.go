// Package lexer tokenises moneta source text into a stream of Tokens,
// recognising keywords and exchange-rate-table-supplied currency-type
// identifiers as distinct kinds.
package lexer

import "github.com/moneta-lang/moneta/internal/source"

// Kind is the closed enumeration of token kinds.
type Kind int

const (
	ILLEGAL Kind = iota
	EOF
	COMMENT

	IDENT
	INT
	FLOAT
	STRING
	CURTYPE_CONST
	TRUE
	FALSE

	// Type keywords
	INT_KW
	FLOAT_KW
	STR_KW
	CUR_KW
	CURTYPE_KW
	DICT_KW
	BOOL_KW
	VOID_KW

	// Control keywords
	IF
	ELIF
	ELSE
	WHILE
	FOR
	IN
	FROM
	RETURN

	// Operators and punctuation
	PLUS
	MINUS
	STAR
	SLASH
	ASSIGN     // =
	PLUS_ASSIGN  // +=
	MINUS_ASSIGN // -=
	EQ           // ==
	NOT_EQ       // !=
	LT
	LT_EQ
	GT
	GT_EQ
	NOT   // !
	AND   // &&
	OR    // ||
	ARROW // ->

	LPAREN
	RPAREN
	LBRACE
	RBRACE
	COLON
	COMMA
	DOT
	SEMICOLON
)

var kindNames = map[Kind]string{
	ILLEGAL: "ILLEGAL", EOF: "EOF", COMMENT: "COMMENT",
	IDENT: "IDENT", INT: "INT", FLOAT: "FLOAT", STRING: "STRING",
	CURTYPE_CONST: "CURTYPE_CONST", TRUE: "TRUE", FALSE: "FALSE",
	INT_KW: "int", FLOAT_KW: "float", STR_KW: "str", CUR_KW: "cur",
	CURTYPE_KW: "curtype", DICT_KW: "dict", BOOL_KW: "bool", VOID_KW: "void",
	IF: "if", ELIF: "elif", ELSE: "else", WHILE: "while", FOR: "for",
	IN: "in", FROM: "from", RETURN: "return",
	PLUS: "+", MINUS: "-", STAR: "*", SLASH: "/", ASSIGN: "=",
	PLUS_ASSIGN: "+=", MINUS_ASSIGN: "-=", EQ: "==", NOT_EQ: "!=",
	LT: "<", LT_EQ: "<=", GT: ">", GT_EQ: ">=", NOT: "!", AND: "&&", OR: "||",
	ARROW: "->", LPAREN: "(", RPAREN: ")", LBRACE: "{", RBRACE: "}",
	COLON: ":", COMMA: ",", DOT: ".", SEMICOLON: ";",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "UNKNOWN"
}

// keywords maps reserved words to their token kind. Identifiers that don't
// match any entry here (and aren't a known currency name) become IDENT.
var keywords = map[string]Kind{
	"int": INT_KW, "float": FLOAT_KW, "str": STR_KW, "cur": CUR_KW,
	"curtype": CURTYPE_KW, "dict": DICT_KW, "bool": BOOL_KW, "void": VOID_KW,
	"true": TRUE, "false": FALSE,
	"if": IF, "elif": ELIF, "else": ELSE, "while": WHILE, "for": FOR,
	"in": IN, "from": FROM, "return": RETURN,
}

// Token is a single lexical unit: its kind, literal payload, and position.
type Token struct {
	Kind    Kind
	Literal string
	IntVal  int64
	FltVal  float64
	Pos     source.Position
}

func NewToken(kind Kind, literal string, pos source.Position) Token {
	return Token{Kind: kind, Literal: literal, Pos: pos}
}
