package ast

import (
	"fmt"
	"strings"

	"github.com/moneta-lang/moneta/internal/source"
)

// Param is one (name, type) entry of a function's parameter list.
type Param struct {
	Name string
	Type TypeEnum
}

// FunctionDef is a user-defined function: name, return type, ordered
// parameters, and body.
type FunctionDef struct {
	baseNode
	Name       string
	ReturnType TypeEnum
	Params     []Param
	Body       []Statement
}

func (*FunctionDef) statementNode() {}
func (n *FunctionDef) String() string {
	var params []string
	for _, p := range n.Params {
		params = append(params, fmt.Sprintf("%s %s", p.Type, p.Name))
	}
	return fmt.Sprintf("%s %s(%s) { ... }", n.ReturnType, n.Name, strings.Join(params, ", "))
}

// Program is the root node: a name -> definition mapping preserving
// declaration order.
type Program struct {
	Functions map[string]*FunctionDef
	Order     []string
}

func NewProgram() *Program {
	return &Program{Functions: make(map[string]*FunctionDef)}
}

// Pos returns the position of the first function, or (1,1) if empty.
func (p *Program) Pos() source.Position {
	if len(p.Order) > 0 {
		return p.Functions[p.Order[0]].Pos()
	}
	return source.Position{Line: 1, Column: 1}
}

func (p *Program) String() string {
	var sb strings.Builder
	for _, name := range p.Order {
		sb.WriteString(p.Functions[name].String())
		sb.WriteString("\n")
	}
	return sb.String()
}
