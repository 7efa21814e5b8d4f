package scope

import (
	"testing"

	"github.com/moneta-lang/moneta/internal/ast"
)

type intVal int

func (intVal) Type() ast.TypeEnum { return ast.Int }
func (v intVal) String() string   { return "" }

func TestBlockScopeIsolation(t *testing.T) {
	f := NewFrame(ast.Void, false)
	f.Declare("x", intVal(1))

	f.PushScope()
	f.Declare("y", intVal(2))
	if _, ok := f.Lookup("y"); !ok {
		t.Fatalf("expected y visible inside its own block")
	}
	if _, ok := f.Lookup("x"); !ok {
		t.Fatalf("expected x visible from the enclosing scope")
	}
	f.PopScope()

	if _, ok := f.Lookup("y"); ok {
		t.Fatalf("expected y to no longer be visible after its block ended")
	}
	if _, ok := f.Lookup("x"); !ok {
		t.Fatalf("expected x to remain visible after the inner block ended")
	}
}

func TestDeclareRejectsRedeclarationInSameScope(t *testing.T) {
	f := NewFrame(ast.Void, false)
	if !f.Declare("x", intVal(1)) {
		t.Fatalf("expected first declaration of x to succeed")
	}
	if f.Declare("x", intVal(2)) {
		t.Fatalf("expected redeclaration of x in the same scope to fail")
	}
}

func TestShadowingInNestedScopeIsAllowed(t *testing.T) {
	f := NewFrame(ast.Void, false)
	f.Declare("x", intVal(1))
	f.PushScope()
	if !f.Declare("x", intVal(2)) {
		t.Fatalf("expected shadowing x in a nested scope to succeed")
	}
	h, _ := f.Lookup("x")
	if h.V.(intVal) != 2 {
		t.Fatalf("expected inner x to shadow outer x")
	}
	f.PopScope()
	h, _ = f.Lookup("x")
	if h.V.(intVal) != 1 {
		t.Fatalf("expected outer x to reappear once the inner scope ended")
	}
}

func TestLookupIsCaseSensitive(t *testing.T) {
	f := NewFrame(ast.Void, false)
	f.Declare("Total", intVal(1))
	if _, ok := f.Lookup("total"); ok {
		t.Fatalf("expected lookup to be case-sensitive")
	}
}

func TestGlobalsRejectsDuplicateFunctionNames(t *testing.T) {
	g := NewGlobals()
	fn := &ast.FunctionDef{Name: "main", ReturnType: ast.Void}
	if err := g.DefineFunc(fn); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.DefineFunc(fn); err == nil {
		t.Fatalf("expected an error redefining function %q", fn.Name)
	}
}
