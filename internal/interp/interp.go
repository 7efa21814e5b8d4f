package interp

import (
	"bufio"
	"io"

	"github.com/moneta-lang/moneta/internal/ast"
	"github.com/moneta-lang/moneta/internal/currency"
	"github.com/moneta-lang/moneta/internal/errors"
	"github.com/moneta-lang/moneta/internal/lexer"
	"github.com/moneta-lang/moneta/internal/rates"
	"github.com/moneta-lang/moneta/internal/scope"
	"github.com/moneta-lang/moneta/internal/source"
)

// flow is what executing a statement reports upward: either fall through to
// the next statement or unwind to the nearest call frame. Threading this as
// a return value replaces the flag-based evaluator state the visitor-pattern
// rendition of this interpreter carried around.
type flow int

const (
	flowNone flow = iota
	flowReturn
)

// Interpreter executes a parsed program against an exchange-rate table.
type Interpreter struct {
	globals *scope.Globals
	frame   *scope.Frame
	stack   []*scope.Frame
	rates   *rates.Table
	out     io.Writer
	in      *bufio.Reader

	// retval carries the value of the last executed return statement while
	// flowReturn unwinds to the call site.
	retval scope.Value
}

// New builds an interpreter writing to out and reading `input` lines from in.
func New(table *rates.Table, out io.Writer, in io.Reader) *Interpreter {
	return &Interpreter{
		globals: scope.NewGlobals(),
		rates:   table,
		out:     out,
		in:      bufio.NewReader(in),
	}
}

func semErr(pos source.Position, format string, args ...any) error {
	return errors.New(errors.Semantic, pos, format, args...)
}

// Run registers the program's functions and built-ins, then invokes main.
func (i *Interpreter) Run(prog *ast.Program) error {
	i.registerBuiltins()
	for _, name := range prog.Order {
		fn := prog.Functions[name]
		if _, taken := i.globals.LookupBuiltin(name); taken {
			return semErr(fn.Pos(), "function '%s' shadows a built-in function", name)
		}
		if err := i.globals.DefineFunc(fn); err != nil {
			return semErr(fn.Pos(), "%v", err)
		}
	}

	main, ok := i.globals.LookupFunc("main")
	if !ok {
		return semErr(prog.Pos(), "missing main function")
	}
	if main.ReturnType != ast.Void {
		return semErr(main.Pos(), "main function has to be void type")
	}
	if len(main.Params) != 0 {
		return semErr(main.Pos(), "main function takes no parameters")
	}

	_, err := i.callFunction(main, nil, main.Pos())
	return err
}

// callFunction installs a fresh frame, binds arguments to parameters
// positionally (checking each runtime type against the declared type),
// executes the body, and restores the caller's frame.
func (i *Interpreter) callFunction(fn *ast.FunctionDef, args []scope.Value, callPos source.Position) (scope.Value, error) {
	if len(args) != len(fn.Params) {
		return nil, semErr(callPos, "wrong amount of arguments to '%s': expected %d, got %d",
			fn.Name, len(fn.Params), len(args))
	}

	i.stack = append(i.stack, i.frame)
	i.frame = scope.NewFrame(fn.ReturnType, fn.ReturnType != ast.Void)
	defer func() {
		i.frame = i.stack[len(i.stack)-1]
		i.stack = i.stack[:len(i.stack)-1]
	}()

	for n, p := range fn.Params {
		if args[n].Type() != p.Type {
			return nil, semErr(callPos, "argument %d of '%s': expected %s, got %s",
				n+1, fn.Name, p.Type, args[n].Type())
		}
		i.frame.Bind(p.Name, args[n])
	}

	i.retval = nil
	f, err := i.execBlock(fn.Body)
	if err != nil {
		return nil, err
	}
	ret := i.retval
	i.retval = nil

	if fn.ReturnType != ast.Void && (f != flowReturn || ret == nil) {
		return nil, semErr(callPos, "function '%s' ended without returning a %s value", fn.Name, fn.ReturnType)
	}
	return ret, nil
}

// execBlock enters a scope, runs statements in order until one unwinds,
// and leaves the scope.
func (i *Interpreter) execBlock(stmts []ast.Statement) (flow, error) {
	i.frame.PushScope()
	defer i.frame.PopScope()
	for _, stmt := range stmts {
		f, err := i.execStmt(stmt)
		if err != nil {
			return flowNone, err
		}
		if f == flowReturn {
			return flowReturn, nil
		}
	}
	return flowNone, nil
}

func (i *Interpreter) execStmt(stmt ast.Statement) (flow, error) {
	switch s := stmt.(type) {
	case *ast.DeclarationStmt:
		return flowNone, i.execDeclaration(s)
	case *ast.AssignStmt:
		return flowNone, i.execAssign(s)
	case *ast.ExprStmt:
		_, err := i.evalObjectAccess(s.Access)
		return flowNone, err
	case *ast.ConditionalStmt:
		return i.execConditional(s)
	case *ast.WhileStmt:
		return i.execWhile(s)
	case *ast.ForStmt:
		return i.execFor(s)
	case *ast.ReturnStmt:
		return i.execReturn(s)
	case *ast.TransferStmt:
		return flowNone, i.execTransfer(s)
	default:
		return flowNone, semErr(stmt.Pos(), "unsupported statement")
	}
}

func (i *Interpreter) execDeclaration(s *ast.DeclarationStmt) error {
	if i.frame.DeclaredInCurrentScope(s.Name) {
		return semErr(s.Pos(), "redeclaration of a variable '%s'", s.Name)
	}
	value := zeroValue(s.Type)
	if s.Init != nil {
		v, err := i.evalExpr(s.Init)
		if err != nil {
			return err
		}
		if v == nil {
			return semErr(s.Init.Pos(), "initialiser produces no value")
		}
		if v.Type() != s.Type {
			return semErr(s.Pos(), "type mismatch: cannot initialise %s '%s' with %s", s.Type, s.Name, v.Type())
		}
		value = v
	}
	i.frame.Declare(s.Name, value)
	return nil
}

func (i *Interpreter) execAssign(s *ast.AssignStmt) error {
	pl, err := i.evalPlace(s.Target)
	if err != nil {
		return err
	}
	v, err := i.evalExpr(s.Value)
	if err != nil {
		return err
	}
	if v == nil {
		return semErr(s.Value.Pos(), "expression produces no value")
	}

	old := pl.get()
	if v.Type() != old.Type() {
		return semErr(s.Pos(), "type mismatch: cannot assign %s to %s", v.Type(), old.Type())
	}

	switch s.Op {
	case lexer.ASSIGN:
		pl.set(v)
		return nil
	case lexer.PLUS_ASSIGN:
		return i.applyCompound(pl, old, v, lexer.PLUS, s.Pos())
	case lexer.MINUS_ASSIGN:
		return i.applyCompound(pl, old, v, lexer.MINUS, s.Pos())
	default:
		return semErr(s.Pos(), "unsupported assignment operator %s", s.Op)
	}
}

// applyCompound folds the right-hand value into the place for += and -=.
// The usual binary type matrix applies, restricted here to same-type
// operands by the assignment's own type check above; currency operands go
// through the rate-aware arithmetic.
func (i *Interpreter) applyCompound(pl place, old, v scope.Value, op lexer.Kind, pos source.Position) error {
	result, err := i.binaryNumericOp(op, old, v, pos)
	if err != nil {
		return err
	}
	pl.set(result)
	return nil
}

func (i *Interpreter) execConditional(s *ast.ConditionalStmt) (flow, error) {
	for n, cond := range s.Conds {
		v, err := i.evalExpr(cond)
		if err != nil {
			return flowNone, err
		}
		b, ok := v.(BoolValue)
		if !ok {
			return flowNone, semErr(cond.Pos(), "condition must be a bool, got %s", typeName(v))
		}
		if b.V {
			return i.execBlock(s.Blocks[n])
		}
	}
	if s.Else != nil {
		return i.execBlock(s.Else)
	}
	return flowNone, nil
}

func (i *Interpreter) execWhile(s *ast.WhileStmt) (flow, error) {
	for {
		v, err := i.evalExpr(s.Cond)
		if err != nil {
			return flowNone, err
		}
		b, ok := v.(BoolValue)
		if !ok {
			return flowNone, semErr(s.Cond.Pos(), "condition must be a bool, got %s", typeName(v))
		}
		if !b.V {
			return flowNone, nil
		}
		f, err := i.execBlock(s.Body)
		if err != nil {
			return flowNone, err
		}
		if f == flowReturn {
			return flowReturn, nil
		}
	}
}

func (i *Interpreter) execFor(s *ast.ForStmt) (flow, error) {
	v, err := i.evalExpr(s.Iterable)
	if err != nil {
		return flowNone, err
	}
	d, ok := v.(DictValue)
	if !ok {
		return flowNone, semErr(s.Iterable.Pos(), "for loop iterates a dict, got %s", typeName(v))
	}

	i.frame.PushScope()
	defer i.frame.PopScope()
	for _, entry := range d.D.Entries() {
		i.frame.Bind(s.Var, EntryValue{E: entry})
		f, err := i.execBlock(s.Body)
		if err != nil {
			return flowNone, err
		}
		if f == flowReturn {
			return flowReturn, nil
		}
	}
	return flowNone, nil
}

func (i *Interpreter) execReturn(s *ast.ReturnStmt) (flow, error) {
	if s.Value == nil {
		if i.frame.HasReturn {
			return flowNone, semErr(s.Pos(), "expected return of a %s value", i.frame.Expected)
		}
		i.retval = nil
		return flowReturn, nil
	}

	v, err := i.evalExpr(s.Value)
	if err != nil {
		return flowNone, err
	}
	if !i.frame.HasReturn {
		return flowNone, semErr(s.Pos(), "void function cannot return a value")
	}
	if v == nil || v.Type() != i.frame.Expected {
		return flowNone, semErr(s.Pos(), "wrong return type: expected %s, got %s", i.frame.Expected, typeName(v))
	}
	i.retval = v
	return flowReturn, nil
}

// execTransfer implements `from X -> AMOUNT [-> Y]`. Every expression must
// evaluate to a currency value; the writes go back through the assignable
// places using the rate-aware arithmetic, so a cross-tag transfer conserves
// the total in reference units.
func (i *Interpreter) execTransfer(s *ast.TransferStmt) error {
	values := make([]currency.Value, len(s.Exprs))
	places := make([]place, len(s.Exprs))
	for n, e := range s.Exprs {
		if oa, ok := e.(*ast.ObjectAccess); ok && isAssignable(oa) {
			pl, err := i.evalPlace(oa)
			if err != nil {
				return err
			}
			cv, ok := pl.get().(CurValue)
			if !ok {
				return semErr(e.Pos(), "expected cur expressions in transfer, got %s", typeName(pl.get()))
			}
			places[n] = pl
			values[n] = *cv.V
			continue
		}
		v, err := i.evalExpr(e)
		if err != nil {
			return err
		}
		cv, ok := v.(CurValue)
		if !ok {
			return semErr(e.Pos(), "expected cur expressions in transfer, got %s", typeName(v))
		}
		values[n] = *cv.V
	}

	write := func(n int, v currency.Value) {
		if places[n] != nil {
			places[n].set(CurValue{V: &v})
		}
	}

	if len(s.Exprs) == 3 {
		newSrc, err := currency.Sub(values[0], values[1], i.rates)
		if err != nil {
			return semErr(s.Pos(), "%v", err)
		}
		newDst, err := currency.Add(values[2], values[1], i.rates)
		if err != nil {
			return semErr(s.Pos(), "%v", err)
		}
		write(0, newSrc)
		write(2, newDst)
		return nil
	}

	newDst, err := currency.Add(values[1], values[0], i.rates)
	if err != nil {
		return semErr(s.Pos(), "%v", err)
	}
	newSrc, err := currency.Sub(values[0], values[1], i.rates)
	if err != nil {
		return semErr(s.Pos(), "%v", err)
	}
	write(1, newDst)
	write(0, newSrc)
	return nil
}

func isAssignable(oa *ast.ObjectAccess) bool {
	return !oa.Segments[len(oa.Segments)-1].IsCall()
}

func typeName(v scope.Value) string {
	if v == nil {
		return "void"
	}
	return v.Type().String()
}
