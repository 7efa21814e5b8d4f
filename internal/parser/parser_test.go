package parser

import (
	"strings"
	"testing"

	"github.com/moneta-lang/moneta/internal/ast"
	"github.com/moneta-lang/moneta/internal/errors"
	"github.com/moneta-lang/moneta/internal/lexer"
	"github.com/moneta-lang/moneta/internal/source"
)

func parse(t *testing.T, input string) (*ast.Program, error) {
	t.Helper()
	lex := lexer.New(source.New(input), lexer.WithCurrencyNames([]string{"USD", "PLN"}))
	p, err := New(lex)
	if err != nil {
		return nil, err
	}
	return p.ParseProgram()
}

func mustParse(t *testing.T, input string) *ast.Program {
	t.Helper()
	prog, err := parse(t, input)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return prog
}

func wantSyntaxError(t *testing.T, input, fragment string) *errors.SourceError {
	t.Helper()
	_, err := parse(t, input)
	if err == nil {
		t.Fatalf("expected a syntax error containing %q, got success", fragment)
	}
	se, ok := err.(*errors.SourceError)
	if !ok {
		t.Fatalf("expected a SourceError, got %T: %v", err, err)
	}
	if se.Kind != errors.Syntactic {
		t.Fatalf("expected a Syntactic error, got %v: %v", se.Kind, se)
	}
	if !strings.Contains(se.Message, fragment) {
		t.Fatalf("expected message containing %q, got %q", fragment, se.Message)
	}
	return se
}

func TestEmptyProgram(t *testing.T) {
	prog := mustParse(t, "")
	if len(prog.Order) != 0 {
		t.Fatalf("expected no functions, got %v", prog.Order)
	}
}

func TestFunctionDefinition(t *testing.T) {
	prog := mustParse(t, `int add(int a, int b) { return a + b; }`)
	fn := prog.Functions["add"]
	if fn == nil {
		t.Fatal("expected function 'add'")
	}
	if fn.ReturnType != ast.Int {
		t.Fatalf("expected int return type, got %v", fn.ReturnType)
	}
	if len(fn.Params) != 2 || fn.Params[0].Name != "a" || fn.Params[1].Type != ast.Int {
		t.Fatalf("unexpected params: %+v", fn.Params)
	}
}

func TestFunctionRedefinition(t *testing.T) {
	se := wantSyntaxError(t, `
void f() { }
void f() { }`, "redefined")
	if !strings.Contains(se.Message, "Ln 2") {
		t.Fatalf("expected a reference to the prior definition's line, got %q", se.Message)
	}
}

func TestVoidParameterRejected(t *testing.T) {
	wantSyntaxError(t, `void f(void x) { }`, "'void' is not a valid type here")
}

func TestVoidDeclarationRejected(t *testing.T) {
	wantSyntaxError(t, `void f() { void x; }`, "'void' is not a valid type here")
}

func TestBareIdentifierStatementRejected(t *testing.T) {
	wantSyntaxError(t, `void f() { x; }`, "expected assignment after identifier")
}

func TestAssignToCallRejected(t *testing.T) {
	wantSyntaxError(t, `void f() { g() = 1; }`, "cannot assign to the result of a call")
}

func TestCallStatementAllowed(t *testing.T) {
	prog := mustParse(t, `void f() { g(1, 2); }`)
	stmt, ok := prog.Functions["f"].Body[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected an ExprStmt, got %T", prog.Functions["f"].Body[0])
	}
	last := stmt.Access.Segments[len(stmt.Access.Segments)-1]
	if !last.IsCall() || len(last.Args) != 2 {
		t.Fatalf("expected a two-argument call, got %+v", last)
	}
}

func TestCurrencyLiteralFusedByParser(t *testing.T) {
	prog := mustParse(t, `void f() { cur a = 10 USD; }`)
	decl := prog.Functions["f"].Body[0].(*ast.DeclarationStmt)
	lit, ok := decl.Init.(*ast.CurrencyLiteral)
	if !ok {
		t.Fatalf("expected a fused CurrencyLiteral, got %T", decl.Init)
	}
	if lit.Amount != 10 || lit.Tag != "USD" {
		t.Fatalf("unexpected literal: %+v", lit)
	}
}

func TestFloatCurrencyLiteral(t *testing.T) {
	prog := mustParse(t, `void f() { cur a = 2.5 PLN; }`)
	decl := prog.Functions["f"].Body[0].(*ast.DeclarationStmt)
	lit := decl.Init.(*ast.CurrencyLiteral)
	if lit.Amount != 2.5 || lit.Tag != "PLN" {
		t.Fatalf("unexpected literal: %+v", lit)
	}
}

func TestAdditiveLeftAssociative(t *testing.T) {
	prog := mustParse(t, `void f() { int x = 1 - 2 - 3; }`)
	decl := prog.Functions["f"].Body[0].(*ast.DeclarationStmt)
	if got := decl.Init.String(); got != "((1 - 2) - 3)" {
		t.Fatalf("expected left-associative folding, got %s", got)
	}
}

func TestMultiplicativeBindsTighter(t *testing.T) {
	prog := mustParse(t, `void f() { int x = 1 + 2 * 3; }`)
	decl := prog.Functions["f"].Body[0].(*ast.DeclarationStmt)
	if got := decl.Init.String(); got != "(1 + (2 * 3))" {
		t.Fatalf("expected * to bind tighter than +, got %s", got)
	}
}

func TestRelationIsNonAssociative(t *testing.T) {
	// At most one relop per relation level: a < b < c cannot parse.
	wantSyntaxError(t, `void f() { bool b = 1 < 2 < 3; }`, "expected")
}

func TestMissingExpressionAfterOperator(t *testing.T) {
	se := wantSyntaxError(t, `void f() { int x = 1 + ; }`, "missing expression after +")
	if se.Pos.Line != 1 || se.Pos.Column != 22 {
		t.Fatalf("expected the operator's position, got Ln %d Col %d", se.Pos.Line, se.Pos.Column)
	}
}

func TestDictLiteral(t *testing.T) {
	prog := mustParse(t, `void f() { dict d = {"a": 1 USD, "b": 2 PLN}; }`)
	decl := prog.Functions["f"].Body[0].(*ast.DeclarationStmt)
	lit := decl.Init.(*ast.DictLiteral)
	if len(lit.Pairs) != 2 || lit.Pairs[0].Key != "a" || lit.Pairs[1].Key != "b" {
		t.Fatalf("unexpected dict pairs: %+v", lit.Pairs)
	}
}

func TestDictMissingCommaBetweenPairs(t *testing.T) {
	wantSyntaxError(t, `void f() { dict d = {"a": 1 USD "b": 2 PLN}; }`, "stray string")
}

func TestTransferThreeExpressionForm(t *testing.T) {
	prog := mustParse(t, `void f() { from a -> 30 USD -> b; }`)
	tr := prog.Functions["f"].Body[0].(*ast.TransferStmt)
	if len(tr.Exprs) != 3 {
		t.Fatalf("expected 3 expressions, got %d", len(tr.Exprs))
	}
}

func TestTransferThreeFormNeedsAssignableEnds(t *testing.T) {
	wantSyntaxError(t, `void f() { from 10 USD -> 5 USD -> b; }`, "assignable")
}

func TestTransferTwoFormNeedsOneAssignable(t *testing.T) {
	wantSyntaxError(t, `void f() { from 10 USD -> 5 USD; }`, "assignable")
}

func TestTransferTwoFormWithOneAccount(t *testing.T) {
	prog := mustParse(t, `void f() { from a -> 5 USD; }`)
	tr := prog.Functions["f"].Body[0].(*ast.TransferStmt)
	if len(tr.Exprs) != 2 {
		t.Fatalf("expected 2 expressions, got %d", len(tr.Exprs))
	}
}

func TestObjectAccessChain(t *testing.T) {
	prog := mustParse(t, `void f() { d.get("x").set_value(0); }`)
	stmt := prog.Functions["f"].Body[0].(*ast.ExprStmt)
	segs := stmt.Access.Segments
	if len(segs) != 3 || segs[0].Name != "d" || !segs[1].IsCall() || segs[2].Name != "set_value" {
		t.Fatalf("unexpected segments: %+v", segs)
	}
}

func TestConditionalWithElifChain(t *testing.T) {
	prog := mustParse(t, `void f() {
		if (a) { } elif (b) { } elif (c) { } else { }
	}`)
	cond := prog.Functions["f"].Body[0].(*ast.ConditionalStmt)
	if len(cond.Conds) != 3 {
		t.Fatalf("expected if + 2 elifs, got %d conditions", len(cond.Conds))
	}
	if cond.Else == nil {
		t.Fatal("expected an else block")
	}
}

func TestCommentsAreSkipped(t *testing.T) {
	prog := mustParse(t, `# leading comment
void f() { # inline
	return; # trailing
}`)
	if prog.Functions["f"] == nil {
		t.Fatal("expected function 'f' despite comments")
	}
}

func TestGrammarIdempotence(t *testing.T) {
	input := `
int fib(int n) {
	if (n < 2) { return n; }
	return fib(n - 1) + fib(n - 2);
}

void main() {
	dict d = {"a": 10 USD, "b": 43 PLN};
	for e in d {
		e.value.set_value(0);
	}
	cur a = 10 USD;
	while (fib(5) > 0) {
		from a -> 1 USD;
		return;
	}
}`
	first := mustParse(t, input)
	second := mustParse(t, input)
	if first.String() != second.String() {
		t.Fatalf("expected structurally equal ASTs:\n%s\n---\n%s", first, second)
	}
}

func TestExpectedTokenErrorCarriesPosition(t *testing.T) {
	se := wantSyntaxError(t, `void f( { }`, "expected")
	if se.Pos.Line != 1 || se.Pos.Column != 9 {
		t.Fatalf("expected Ln 1 Col 9, got Ln %d Col %d", se.Pos.Line, se.Pos.Column)
	}
}
