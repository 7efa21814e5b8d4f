// Package parser implements moneta's recursive-descent, one-token-lookahead
// parser, turning the lexer's token stream into an AST and reporting the
// first grammar violation with its source position.
package parser

import (
	"github.com/moneta-lang/moneta/internal/ast"
	"github.com/moneta-lang/moneta/internal/errors"
	"github.com/moneta-lang/moneta/internal/lexer"
)

// Parser consumes tokens from a Lexer and builds an *ast.Program.
// It skips COMMENT tokens transparently.
type Parser struct {
	lex  *lexer.Lexer
	cur  lexer.Token
	peek lexer.Token
}

// New constructs a Parser and consumes the first token so that cur and
// peek are both primed.
func New(lex *lexer.Lexer) (*Parser, error) {
	p := &Parser{lex: lex}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) advance() error {
	tok, err := p.nextNonComment()
	if err != nil {
		return err
	}
	p.cur = p.peek
	p.peek = tok
	return nil
}

func (p *Parser) nextNonComment() (lexer.Token, error) {
	for {
		tok, err := p.lex.NextToken()
		if err != nil {
			return lexer.Token{}, err
		}
		if tok.Kind != lexer.COMMENT {
			return tok, nil
		}
	}
}

func (p *Parser) expect(kind lexer.Kind) (lexer.Token, error) {
	if p.cur.Kind != kind {
		return lexer.Token{}, errors.New(errors.Syntactic, p.cur.Pos, "expected %s, got %s", kind.String(), p.cur.Kind.String())
	}
	tok := p.cur
	if err := p.advance(); err != nil {
		return lexer.Token{}, err
	}
	return tok, nil
}

// canStartExpr reports whether cur's kind may begin a `term`, used to tell
// "missing expression after OP" apart from a deeper parse error inside a
// syntactically-present operand.
func (p *Parser) canStartExpr() bool {
	switch p.cur.Kind {
	case lexer.INT, lexer.FLOAT, lexer.STRING, lexer.TRUE, lexer.FALSE,
		lexer.CURTYPE_CONST, lexer.LBRACE, lexer.LPAREN, lexer.IDENT,
		lexer.MINUS, lexer.NOT:
		return true
	default:
		return false
	}
}

func (p *Parser) missingExprAfter(opTok lexer.Token) error {
	return errors.New(errors.Syntactic, opTok.Pos, "missing expression after %s", opTok.Literal)
}

// ParseProgram parses { function_definition } until EOF.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	prog := ast.NewProgram()
	for p.cur.Kind != lexer.EOF {
		fn, err := p.parseFunctionDefinition()
		if err != nil {
			return nil, err
		}
		if prev, exists := prog.Functions[fn.Name]; exists {
			return nil, errors.New(errors.Syntactic, fn.Pos(),
				"function '%s' redefined (previously defined at Ln %d Col %d)",
				fn.Name, prev.Pos().Line, prev.Pos().Column)
		}
		prog.Functions[fn.Name] = fn
		prog.Order = append(prog.Order, fn.Name)
	}
	return prog, nil
}

func (p *Parser) parseFunctionDefinition() (*ast.FunctionDef, error) {
	pos := p.cur.Pos
	retType, err := p.parseType(true)
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	params, err := p.parseParameters()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewFunctionDef(pos, nameTok.Literal, retType, params, body), nil
}

func (p *Parser) parseParameters() ([]ast.Param, error) {
	var params []ast.Param
	if p.cur.Kind == lexer.RPAREN {
		return params, nil
	}
	for {
		typ, err := p.parseType(false)
		if err != nil {
			return nil, err
		}
		nameTok, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		params = append(params, ast.Param{Name: nameTok.Literal, Type: typ})
		if p.cur.Kind != lexer.COMMA {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return params, nil
}

// parseType consumes a type keyword. allowVoid permits the `void` keyword,
// legal only as a function return type.
func (p *Parser) parseType(allowVoid bool) (ast.TypeEnum, error) {
	kind := p.cur.Kind
	var typ ast.TypeEnum
	switch kind {
	case lexer.INT_KW:
		typ = ast.Int
	case lexer.FLOAT_KW:
		typ = ast.Float
	case lexer.STR_KW:
		typ = ast.Str
	case lexer.CUR_KW:
		typ = ast.Cur
	case lexer.CURTYPE_KW:
		typ = ast.CurType
	case lexer.DICT_KW:
		typ = ast.Dict
	case lexer.BOOL_KW:
		typ = ast.Bool
	case lexer.VOID_KW:
		if !allowVoid {
			return 0, errors.New(errors.Syntactic, p.cur.Pos, "'void' is not a valid type here")
		}
		typ = ast.Void
	default:
		return 0, errors.New(errors.Syntactic, p.cur.Pos, "expected a type, got %s", p.cur.Kind.String())
	}
	if err := p.advance(); err != nil {
		return 0, err
	}
	return typ, nil
}

func (p *Parser) parseBlock() ([]ast.Statement, error) {
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}
	var stmts []ast.Statement
	for p.cur.Kind != lexer.RBRACE {
		if p.cur.Kind == lexer.EOF {
			return nil, errors.New(errors.Syntactic, p.cur.Pos, "expected %s, got %s", lexer.RBRACE.String(), lexer.EOF.String())
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.cur.Kind {
	case lexer.INT_KW, lexer.FLOAT_KW, lexer.STR_KW, lexer.CUR_KW,
		lexer.CURTYPE_KW, lexer.DICT_KW, lexer.BOOL_KW, lexer.VOID_KW:
		return p.parseDeclaration()
	case lexer.IF:
		return p.parseConditional()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.FOR:
		return p.parseFor()
	case lexer.RETURN:
		return p.parseReturn()
	case lexer.FROM:
		return p.parseCurrencyTransfer()
	case lexer.IDENT:
		return p.parseAssignmentOrCall()
	default:
		return nil, errors.New(errors.Syntactic, p.cur.Pos, "expected statement, got %s", p.cur.Kind.String())
	}
}

func (p *Parser) parseDeclaration() (ast.Statement, error) {
	pos := p.cur.Pos
	typ, err := p.parseType(false)
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	var init ast.Expression
	if p.cur.Kind == lexer.ASSIGN {
		if err := p.advance(); err != nil {
			return nil, err
		}
		init, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	return ast.NewDeclarationStmt(pos, typ, nameTok.Literal, init), nil
}

func (p *Parser) parseAssignmentOrCall() (ast.Statement, error) {
	pos := p.cur.Pos
	accessExpr, err := p.parseObjectAccess()
	if err != nil {
		return nil, err
	}
	oa := accessExpr.(*ast.ObjectAccess)
	last := oa.Segments[len(oa.Segments)-1]

	switch p.cur.Kind {
	case lexer.ASSIGN, lexer.PLUS_ASSIGN, lexer.MINUS_ASSIGN:
		if last.IsCall() {
			return nil, errors.New(errors.Syntactic, pos, "cannot assign to the result of a call")
		}
		op := p.cur.Kind
		if err := p.advance(); err != nil {
			return nil, err
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.SEMICOLON); err != nil {
			return nil, err
		}
		return ast.NewAssignStmt(pos, oa, op, value), nil
	default:
		if !last.IsCall() {
			return nil, errors.New(errors.Syntactic, pos, "expected assignment after identifier")
		}
		if _, err := p.expect(lexer.SEMICOLON); err != nil {
			return nil, err
		}
		return ast.NewExprStmt(pos, oa), nil
	}
}

func (p *Parser) parseConditional() (ast.Statement, error) {
	pos := p.cur.Pos
	if err := p.advance(); err != nil { // consume 'if'
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	conds := []ast.Expression{cond}
	blocks := [][]ast.Statement{block}

	for p.cur.Kind == lexer.ELIF {
		if err := p.advance(); err != nil {
			return nil, err
		}
		c, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		b, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		conds = append(conds, c)
		blocks = append(blocks, b)
	}

	var elseBlock []ast.Statement
	if p.cur.Kind == lexer.ELSE {
		if err := p.advance(); err != nil {
			return nil, err
		}
		elseBlock, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
		if elseBlock == nil {
			// An empty `else { }` is still present; only an absent else is nil.
			elseBlock = []ast.Statement{}
		}
	}

	return ast.NewConditionalStmt(pos, conds, blocks, elseBlock), nil
}

func (p *Parser) parseWhile() (ast.Statement, error) {
	pos := p.cur.Pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewWhileStmt(pos, cond, body), nil
}

func (p *Parser) parseFor() (ast.Statement, error) {
	pos := p.cur.Pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.IN); err != nil {
		return nil, err
	}
	iterable, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewForStmt(pos, nameTok.Literal, iterable, body), nil
}

func (p *Parser) parseReturn() (ast.Statement, error) {
	pos := p.cur.Pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	var value ast.Expression
	if p.cur.Kind != lexer.SEMICOLON {
		var err error
		value, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	return ast.NewReturnStmt(pos, value), nil
}

func (p *Parser) parseCurrencyTransfer() (ast.Statement, error) {
	pos := p.cur.Pos
	if err := p.advance(); err != nil { // consume 'from'
		return nil, err
	}
	first, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.ARROW); err != nil {
		return nil, err
	}
	second, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	exprs := []ast.Expression{first, second}

	if p.cur.Kind == lexer.ARROW {
		if err := p.advance(); err != nil {
			return nil, err
		}
		third, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, third)
	}
	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}

	if len(exprs) == 3 {
		if !isAssignableTarget(exprs[0]) || !isAssignableTarget(exprs[2]) {
			return nil, errors.New(errors.Syntactic, pos, "transfer source and destination must both be assignable")
		}
	} else {
		if !isAssignableTarget(exprs[0]) && !isAssignableTarget(exprs[1]) {
			return nil, errors.New(errors.Syntactic, pos, "transfer requires at least one assignable account")
		}
	}

	return ast.NewTransferStmt(pos, exprs), nil
}

func isAssignableTarget(e ast.Expression) bool {
	oa, ok := e.(*ast.ObjectAccess)
	if !ok {
		return false
	}
	return !oa.Segments[len(oa.Segments)-1].IsCall()
}

// ---- Expressions ----

func (p *Parser) parseExpression() (ast.Expression, error) {
	left, err := p.parseConjunction()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == lexer.OR {
		opTok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		if !p.canStartExpr() {
			return nil, p.missingExprAfter(opTok)
		}
		right, err := p.parseConjunction()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryExpr(opTok.Pos, lexer.OR, left, right)
	}
	return left, nil
}

func (p *Parser) parseConjunction() (ast.Expression, error) {
	left, err := p.parseNegation()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == lexer.AND {
		opTok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		if !p.canStartExpr() {
			return nil, p.missingExprAfter(opTok)
		}
		right, err := p.parseNegation()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryExpr(opTok.Pos, lexer.AND, left, right)
	}
	return left, nil
}

func (p *Parser) parseNegation() (ast.Expression, error) {
	if p.cur.Kind == lexer.NOT {
		opTok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		if !p.canStartExpr() {
			return nil, p.missingExprAfter(opTok)
		}
		operand, err := p.parseRelation()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryExpr(opTok.Pos, lexer.NOT, operand), nil
	}
	return p.parseRelation()
}

func isRelOp(k lexer.Kind) bool {
	switch k {
	case lexer.LT, lexer.LT_EQ, lexer.GT, lexer.GT_EQ, lexer.EQ, lexer.NOT_EQ:
		return true
	default:
		return false
	}
}

func (p *Parser) parseRelation() (ast.Expression, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if isRelOp(p.cur.Kind) {
		opTok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		if !p.canStartExpr() {
			return nil, p.missingExprAfter(opTok)
		}
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		return ast.NewBinaryExpr(opTok.Pos, opTok.Kind, left, right), nil
	}
	return left, nil
}

func (p *Parser) parseAdditive() (ast.Expression, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == lexer.PLUS || p.cur.Kind == lexer.MINUS {
		opTok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		if !p.canStartExpr() {
			return nil, p.missingExprAfter(opTok)
		}
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryExpr(opTok.Pos, opTok.Kind, left, right)
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == lexer.STAR || p.cur.Kind == lexer.SLASH {
		opTok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		if !p.canStartExpr() {
			return nil, p.missingExprAfter(opTok)
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryExpr(opTok.Pos, opTok.Kind, left, right)
	}
	return left, nil
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	if p.cur.Kind == lexer.MINUS {
		opTok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		if !p.canStartExpr() {
			return nil, p.missingExprAfter(opTok)
		}
		operand, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryExpr(opTok.Pos, lexer.MINUS, operand), nil
	}
	return p.parseTerm()
}

func (p *Parser) parseTerm() (ast.Expression, error) {
	pos := p.cur.Pos
	switch p.cur.Kind {
	case lexer.INT:
		value := p.cur.IntVal
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.cur.Kind == lexer.CURTYPE_CONST {
			tag := p.cur.Literal
			if err := p.advance(); err != nil {
				return nil, err
			}
			return ast.NewCurrencyLiteral(pos, float64(value), tag), nil
		}
		return ast.NewIntLiteral(pos, value), nil

	case lexer.FLOAT:
		value := p.cur.FltVal
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.cur.Kind == lexer.CURTYPE_CONST {
			tag := p.cur.Literal
			if err := p.advance(); err != nil {
				return nil, err
			}
			return ast.NewCurrencyLiteral(pos, value, tag), nil
		}
		return ast.NewFloatLiteral(pos, value), nil

	case lexer.STRING:
		value := p.cur.Literal
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewStringLiteral(pos, value), nil

	case lexer.TRUE:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewBoolLiteral(pos, true), nil

	case lexer.FALSE:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewBoolLiteral(pos, false), nil

	case lexer.CURTYPE_CONST:
		tag := p.cur.Literal
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewCurTypeLiteral(pos, tag), nil

	case lexer.LBRACE:
		return p.parseDictLiteral()

	case lexer.LPAREN:
		if err := p.advance(); err != nil {
			return nil, err
		}
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return expr, nil

	case lexer.IDENT:
		return p.parseObjectAccess()

	default:
		return nil, errors.New(errors.Syntactic, pos, "expected expression, got %s", p.cur.Kind.String())
	}
}

func (p *Parser) parseDictLiteral() (ast.Expression, error) {
	pos := p.cur.Pos
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}
	var pairs []ast.DictPair
	if p.cur.Kind != lexer.RBRACE {
		pair, err := p.parseDictPair()
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, pair)
		for p.cur.Kind == lexer.COMMA {
			if err := p.advance(); err != nil {
				return nil, err
			}
			pair, err := p.parseDictPair()
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, pair)
		}
		if p.cur.Kind == lexer.STRING {
			return nil, errors.New(errors.Syntactic, p.cur.Pos, "expected ',' between dict entries, got a stray string")
		}
	}
	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return ast.NewDictLiteral(pos, pairs), nil
}

func (p *Parser) parseDictPair() (ast.DictPair, error) {
	keyTok, err := p.expect(lexer.STRING)
	if err != nil {
		return ast.DictPair{}, err
	}
	if _, err := p.expect(lexer.COLON); err != nil {
		return ast.DictPair{}, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return ast.DictPair{}, err
	}
	return ast.DictPair{Key: keyTok.Literal, Value: value}, nil
}

func (p *Parser) parseObjectAccess() (ast.Expression, error) {
	pos := p.cur.Pos
	var segments []ast.Segment
	for {
		seg, err := p.parseIdOrCall()
		if err != nil {
			return nil, err
		}
		segments = append(segments, seg)
		if p.cur.Kind != lexer.DOT {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return ast.NewObjectAccess(pos, segments), nil
}

func (p *Parser) parseIdOrCall() (ast.Segment, error) {
	pos := p.cur.Pos
	nameTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return ast.Segment{}, err
	}
	if p.cur.Kind != lexer.LPAREN {
		return ast.Segment{Name: nameTok.Literal, At: pos}, nil
	}
	if err := p.advance(); err != nil {
		return ast.Segment{}, err
	}
	var args []ast.Expression
	if p.cur.Kind != lexer.RPAREN {
		arg, err := p.parseExpression()
		if err != nil {
			return ast.Segment{}, err
		}
		args = append(args, arg)
		for p.cur.Kind == lexer.COMMA {
			if err := p.advance(); err != nil {
				return ast.Segment{}, err
			}
			arg, err := p.parseExpression()
			if err != nil {
				return ast.Segment{}, err
			}
			args = append(args, arg)
		}
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return ast.Segment{}, err
	}
	return ast.Segment{Name: nameTok.Literal, Args: args, IsCal: true, At: pos}, nil
}
