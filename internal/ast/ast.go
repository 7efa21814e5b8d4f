// Package ast defines the node taxonomy produced by the parser. There is
// no visitor layer; the interpreter type-switches on these concrete types
// directly.
package ast

import (
	"fmt"
	"strings"

	"github.com/moneta-lang/moneta/internal/lexer"
	"github.com/moneta-lang/moneta/internal/source"
)

// Node is the base interface every AST node satisfies.
type Node interface {
	Pos() source.Position
	String() string
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action.
type Statement interface {
	Node
	statementNode()
}

type baseNode struct {
	At source.Position
}

func (b baseNode) Pos() source.Position { return b.At }

// ---- Literals ----

type IntLiteral struct {
	baseNode
	Value int64
}

func (*IntLiteral) expressionNode()   {}
func (n *IntLiteral) String() string { return fmt.Sprintf("%d", n.Value) }

type FloatLiteral struct {
	baseNode
	Value float64
}

func (*FloatLiteral) expressionNode()   {}
func (n *FloatLiteral) String() string { return fmt.Sprintf("%g", n.Value) }

type StringLiteral struct {
	baseNode
	Value string
}

func (*StringLiteral) expressionNode()   {}
func (n *StringLiteral) String() string { return fmt.Sprintf("%q", n.Value) }

type BoolLiteral struct {
	baseNode
	Value bool
}

func (*BoolLiteral) expressionNode()   {}
func (n *BoolLiteral) String() string { return fmt.Sprintf("%t", n.Value) }

// CurTypeLiteral is a bare currency-type constant used as a value, e.g.
// in `d.get(USD)`.
type CurTypeLiteral struct {
	baseNode
	Tag string
}

func (*CurTypeLiteral) expressionNode()   {}
func (n *CurTypeLiteral) String() string { return n.Tag }

// CurrencyLiteral is a number fused with a trailing currency-type constant
// by the parser, e.g. `10 USD`.
type CurrencyLiteral struct {
	baseNode
	Amount float64
	Tag    string
}

func (*CurrencyLiteral) expressionNode() {}
func (n *CurrencyLiteral) String() string {
	return fmt.Sprintf("%.2f %s", n.Amount, n.Tag)
}

// DictPair is one name:expression entry of a dict literal.
type DictPair struct {
	Key   string
	Value Expression
}

type DictLiteral struct {
	baseNode
	Pairs []DictPair
}

func (*DictLiteral) expressionNode() {}
func (n *DictLiteral) String() string {
	var parts []string
	for _, p := range n.Pairs {
		parts = append(parts, fmt.Sprintf("%q: %s", p.Key, p.Value.String()))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// ---- Object access ----

// Segment is one step of a dotted object-access chain: either a plain
// identifier reference or a call with arguments.
type Segment struct {
	Name  string
	Args  []Expression // nil for a plain identifier reference
	IsCal bool
	At    source.Position
}

// IsCall reports whether this segment is a function/method call.
func (s Segment) IsCall() bool { return s.IsCal }

// ObjectAccess is a non-empty dotted chain of Segments, e.g. `a.b.c()`.
type ObjectAccess struct {
	baseNode
	Segments []Segment
}

func (*ObjectAccess) expressionNode() {}
func (n *ObjectAccess) String() string {
	var parts []string
	for _, s := range n.Segments {
		if s.IsCall() {
			var args []string
			for _, a := range s.Args {
				args = append(args, a.String())
			}
			parts = append(parts, s.Name+"("+strings.Join(args, ", ")+")")
		} else {
			parts = append(parts, s.Name)
		}
	}
	return strings.Join(parts, ".")
}

// ---- Binary/unary expressions ----

type BinaryExpr struct {
	baseNode
	Op    lexer.Kind
	Left  Expression
	Right Expression
}

func (*BinaryExpr) expressionNode() {}
func (n *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Left.String(), n.Op.String(), n.Right.String())
}

type UnaryExpr struct {
	baseNode
	Op      lexer.Kind
	Operand Expression
}

func (*UnaryExpr) expressionNode() {}
func (n *UnaryExpr) String() string {
	return fmt.Sprintf("(%s%s)", n.Op.String(), n.Operand.String())
}

// NewPos is a small constructor helper used throughout the parser.
func NewPos(p source.Position) source.Position { return p }
