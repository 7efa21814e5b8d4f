package ast

import (
	"github.com/moneta-lang/moneta/internal/lexer"
	"github.com/moneta-lang/moneta/internal/source"
)

// Constructors carrying a source position. baseNode's field is unexported,
// so code outside this package builds nodes through these rather than
// composite-literal syntax.

func NewFunctionDef(pos source.Position, name string, ret TypeEnum, params []Param, body []Statement) *FunctionDef {
	return &FunctionDef{baseNode: baseNode{At: pos}, Name: name, ReturnType: ret, Params: params, Body: body}
}

func NewDeclarationStmt(pos source.Position, typ TypeEnum, name string, init Expression) *DeclarationStmt {
	return &DeclarationStmt{baseNode: baseNode{At: pos}, Type: typ, Name: name, Init: init}
}

func NewAssignStmt(pos source.Position, target *ObjectAccess, op lexer.Kind, value Expression) *AssignStmt {
	return &AssignStmt{baseNode: baseNode{At: pos}, Target: target, Op: op, Value: value}
}

func NewExprStmt(pos source.Position, access *ObjectAccess) *ExprStmt {
	return &ExprStmt{baseNode: baseNode{At: pos}, Access: access}
}

func NewConditionalStmt(pos source.Position, conds []Expression, blocks [][]Statement, els []Statement) *ConditionalStmt {
	return &ConditionalStmt{baseNode: baseNode{At: pos}, Conds: conds, Blocks: blocks, Else: els}
}

func NewWhileStmt(pos source.Position, cond Expression, body []Statement) *WhileStmt {
	return &WhileStmt{baseNode: baseNode{At: pos}, Cond: cond, Body: body}
}

func NewForStmt(pos source.Position, v string, iterable Expression, body []Statement) *ForStmt {
	return &ForStmt{baseNode: baseNode{At: pos}, Var: v, Iterable: iterable, Body: body}
}

func NewReturnStmt(pos source.Position, value Expression) *ReturnStmt {
	return &ReturnStmt{baseNode: baseNode{At: pos}, Value: value}
}

func NewTransferStmt(pos source.Position, exprs []Expression) *TransferStmt {
	return &TransferStmt{baseNode: baseNode{At: pos}, Exprs: exprs}
}

func NewBinaryExpr(pos source.Position, op lexer.Kind, left, right Expression) *BinaryExpr {
	return &BinaryExpr{baseNode: baseNode{At: pos}, Op: op, Left: left, Right: right}
}

func NewUnaryExpr(pos source.Position, op lexer.Kind, operand Expression) *UnaryExpr {
	return &UnaryExpr{baseNode: baseNode{At: pos}, Op: op, Operand: operand}
}

func NewIntLiteral(pos source.Position, v int64) *IntLiteral {
	return &IntLiteral{baseNode: baseNode{At: pos}, Value: v}
}

func NewFloatLiteral(pos source.Position, v float64) *FloatLiteral {
	return &FloatLiteral{baseNode: baseNode{At: pos}, Value: v}
}

func NewStringLiteral(pos source.Position, v string) *StringLiteral {
	return &StringLiteral{baseNode: baseNode{At: pos}, Value: v}
}

func NewBoolLiteral(pos source.Position, v bool) *BoolLiteral {
	return &BoolLiteral{baseNode: baseNode{At: pos}, Value: v}
}

func NewCurTypeLiteral(pos source.Position, tag string) *CurTypeLiteral {
	return &CurTypeLiteral{baseNode: baseNode{At: pos}, Tag: tag}
}

func NewCurrencyLiteral(pos source.Position, amount float64, tag string) *CurrencyLiteral {
	return &CurrencyLiteral{baseNode: baseNode{At: pos}, Amount: amount, Tag: tag}
}

func NewDictLiteral(pos source.Position, pairs []DictPair) *DictLiteral {
	return &DictLiteral{baseNode: baseNode{At: pos}, Pairs: pairs}
}

func NewObjectAccess(pos source.Position, segments []Segment) *ObjectAccess {
	return &ObjectAccess{baseNode: baseNode{At: pos}, Segments: segments}
}
