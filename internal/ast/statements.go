package ast

import (
	"fmt"
	"strings"

	"github.com/moneta-lang/moneta/internal/lexer"
)

// DeclarationStmt declares a typed local with an optional initialiser.
type DeclarationStmt struct {
	baseNode
	Type TypeEnum
	Name string
	Init Expression // nil if absent
}

func (*DeclarationStmt) statementNode() {}
func (n *DeclarationStmt) String() string {
	if n.Init == nil {
		return fmt.Sprintf("%s %s;", n.Type, n.Name)
	}
	return fmt.Sprintf("%s %s = %s;", n.Type, n.Name, n.Init.String())
}

// AssignStmt covers "=", "+=" and "-=" against an assignable object-access
// target.
type AssignStmt struct {
	baseNode
	Target *ObjectAccess
	Op     lexer.Kind // ASSIGN, PLUS_ASSIGN, MINUS_ASSIGN
	Value  Expression
}

func (*AssignStmt) statementNode() {}
func (n *AssignStmt) String() string {
	return fmt.Sprintf("%s %s %s;", n.Target.String(), n.Op.String(), n.Value.String())
}

// ExprStmt is a bare object-access statement whose last segment is a call
// (the parser rejects a bare identifier statement).
type ExprStmt struct {
	baseNode
	Access *ObjectAccess
}

func (*ExprStmt) statementNode() {}
func (n *ExprStmt) String() string { return n.Access.String() + ";" }

// ConditionalStmt models if/elif*/else. Conds[0]/Blocks[0] is the `if`
// branch; subsequent entries are `elif` branches. Each condition keeps its
// own position so a type error on an elif's condition is reported there,
// not at the enclosing `if`.
type ConditionalStmt struct {
	baseNode
	Conds  []Expression
	Blocks [][]Statement
	Else   []Statement // nil if absent
}

func (*ConditionalStmt) statementNode() {}
func (n *ConditionalStmt) String() string {
	var sb strings.Builder
	for i, cond := range n.Conds {
		if i == 0 {
			sb.WriteString("if ")
		} else {
			sb.WriteString("elif ")
		}
		sb.WriteString(cond.String())
		sb.WriteString(" { ... } ")
	}
	if n.Else != nil {
		sb.WriteString("else { ... }")
	}
	return sb.String()
}

type WhileStmt struct {
	baseNode
	Cond Expression
	Body []Statement
}

func (*WhileStmt) statementNode() {}
func (n *WhileStmt) String() string { return "while " + n.Cond.String() + " { ... }" }

// ForStmt iterates an identifier over a dictionary expression.
type ForStmt struct {
	baseNode
	Var      string
	Iterable Expression
	Body     []Statement
}

func (*ForStmt) statementNode() {}
func (n *ForStmt) String() string {
	return fmt.Sprintf("for %s in %s { ... }", n.Var, n.Iterable.String())
}

type ReturnStmt struct {
	baseNode
	Value Expression // nil if absent
}

func (*ReturnStmt) statementNode() {}
func (n *ReturnStmt) String() string {
	if n.Value == nil {
		return "return;"
	}
	return "return " + n.Value.String() + ";"
}

// TransferStmt is `from X -> AMOUNT` (2 expressions) or
// `from X -> AMOUNT -> Y` (3 expressions). Exprs holds them in source
// order; the interpreter decides account-vs-amount roles.
type TransferStmt struct {
	baseNode
	Exprs []Expression
}

func (*TransferStmt) statementNode() {}
func (n *TransferStmt) String() string {
	var parts []string
	for _, e := range n.Exprs {
		parts = append(parts, e.String())
	}
	return "from " + strings.Join(parts, " -> ") + ";"
}
