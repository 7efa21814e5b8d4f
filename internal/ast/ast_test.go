package ast

import (
	"testing"

	"github.com/moneta-lang/moneta/internal/source"
)

func TestCurrencyLiteralString(t *testing.T) {
	lit := &CurrencyLiteral{Amount: 10, Tag: "USD"}
	if got := lit.String(); got != "10.00 USD" {
		t.Fatalf("expected %q, got %q", "10.00 USD", got)
	}
}

func TestProgramPreservesOrder(t *testing.T) {
	p := NewProgram()
	p.Functions["main"] = &FunctionDef{Name: "main", ReturnType: Void, baseNode: baseNode{At: source.Position{Line: 1, Column: 1}}}
	p.Order = append(p.Order, "main")
	p.Functions["helper"] = &FunctionDef{Name: "helper", ReturnType: Int, baseNode: baseNode{At: source.Position{Line: 5, Column: 1}}}
	p.Order = append(p.Order, "helper")

	if len(p.Order) != 2 || p.Order[0] != "main" || p.Order[1] != "helper" {
		t.Fatalf("expected insertion order preserved, got %v", p.Order)
	}
}

func TestObjectAccessString(t *testing.T) {
	oa := &ObjectAccess{Segments: []Segment{
		{Name: "e"},
		{Name: "set_value", Args: []Expression{&IntLiteral{Value: 0}}, IsCal: true},
	}}
	if got := oa.String(); got != "e.set_value(0)" {
		t.Fatalf("unexpected string: %q", got)
	}
}
