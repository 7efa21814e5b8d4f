package interp

import (
	"github.com/moneta-lang/moneta/internal/ast"
	"github.com/moneta-lang/moneta/internal/currency"
	"github.com/moneta-lang/moneta/internal/lexer"
	"github.com/moneta-lang/moneta/internal/scope"
	"github.com/moneta-lang/moneta/internal/source"
)

func (i *Interpreter) evalExpr(e ast.Expression) (scope.Value, error) {
	switch x := e.(type) {
	case *ast.IntLiteral:
		return IntValue{V: x.Value}, nil
	case *ast.FloatLiteral:
		return FloatValue{V: x.Value}, nil
	case *ast.StringLiteral:
		return StrValue{V: x.Value}, nil
	case *ast.BoolLiteral:
		return BoolValue{V: x.Value}, nil
	case *ast.CurTypeLiteral:
		return CurTypeValue{Tag: currency.NewTag(x.Tag)}, nil
	case *ast.CurrencyLiteral:
		return CurValue{V: &currency.Value{Amount: x.Amount, Type: currency.NewTag(x.Tag)}}, nil
	case *ast.DictLiteral:
		return i.evalDictLiteral(x)
	case *ast.ObjectAccess:
		return i.evalObjectAccess(x)
	case *ast.UnaryExpr:
		return i.evalUnary(x)
	case *ast.BinaryExpr:
		return i.evalBinary(x)
	default:
		return nil, semErr(e.Pos(), "unsupported expression")
	}
}

// evalDictLiteral builds a dictionary from name:expression pairs. Values
// must be currency values and account names must be unique.
func (i *Interpreter) evalDictLiteral(x *ast.DictLiteral) (scope.Value, error) {
	d := currency.NewDict()
	for _, pair := range x.Pairs {
		v, err := i.evalExpr(pair.Value)
		if err != nil {
			return nil, err
		}
		cv, ok := v.(CurValue)
		if !ok {
			return nil, semErr(pair.Value.Pos(), "expected cur in dict value, got %s", typeName(v))
		}
		if err := d.Add(pair.Key, cv.V); err != nil {
			return nil, semErr(x.Pos(), "multiple account name %q defined", pair.Key)
		}
	}
	return DictValue{D: d}, nil
}

func (i *Interpreter) evalUnary(x *ast.UnaryExpr) (scope.Value, error) {
	v, err := i.evalExpr(x.Operand)
	if err != nil {
		return nil, err
	}

	if x.Op == lexer.NOT {
		b, ok := v.(BoolValue)
		if !ok {
			return nil, semErr(x.Pos(), "'!' expects a bool, got %s", typeName(v))
		}
		return BoolValue{V: !b.V}, nil
	}

	switch n := v.(type) {
	case IntValue:
		return IntValue{V: -n.V}, nil
	case FloatValue:
		return FloatValue{V: -n.V}, nil
	case CurValue:
		neg := currency.Negate(*n.V)
		return CurValue{V: &neg}, nil
	default:
		return nil, semErr(x.Pos(), "cannot negate %s", typeName(v))
	}
}

func (i *Interpreter) evalBinary(x *ast.BinaryExpr) (scope.Value, error) {
	// && and || decide on the left operand alone when they can; the right
	// operand must not be evaluated then.
	if x.Op == lexer.AND || x.Op == lexer.OR {
		return i.evalLogical(x)
	}

	left, err := i.evalExpr(x.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evalExpr(x.Right)
	if err != nil {
		return nil, err
	}

	switch x.Op {
	case lexer.PLUS, lexer.MINUS, lexer.STAR, lexer.SLASH:
		return i.binaryNumericOp(x.Op, left, right, x.Pos())
	case lexer.LT, lexer.LT_EQ, lexer.GT, lexer.GT_EQ, lexer.EQ, lexer.NOT_EQ:
		return i.compare(x.Op, left, right, x.Pos())
	default:
		return nil, semErr(x.Pos(), "unsupported operator %s", x.Op)
	}
}

func (i *Interpreter) evalLogical(x *ast.BinaryExpr) (scope.Value, error) {
	left, err := i.evalExpr(x.Left)
	if err != nil {
		return nil, err
	}
	lb, ok := left.(BoolValue)
	if !ok {
		return nil, semErr(x.Pos(), "'%s' expects bool operands, got %s", x.Op, typeName(left))
	}
	if x.Op == lexer.AND && !lb.V {
		return BoolValue{V: false}, nil
	}
	if x.Op == lexer.OR && lb.V {
		return BoolValue{V: true}, nil
	}
	right, err := i.evalExpr(x.Right)
	if err != nil {
		return nil, err
	}
	rb, ok := right.(BoolValue)
	if !ok {
		return nil, semErr(x.Pos(), "'%s' expects bool operands, got %s", x.Op, typeName(right))
	}
	return BoolValue{V: rb.V}, nil
}

// binaryNumericOp applies +, -, * or /. Each operator admits a fixed set
// of (left, right) type pairs; everything else is a semantic error at the
// operator's position.
func (i *Interpreter) binaryNumericOp(op lexer.Kind, left, right scope.Value, pos source.Position) (scope.Value, error) {
	switch op {
	case lexer.PLUS:
		return i.addValues(left, right, pos)
	case lexer.MINUS:
		return i.subValues(left, right, pos)
	case lexer.STAR:
		return i.mulValues(left, right, pos)
	case lexer.SLASH:
		return i.divValues(left, right, pos)
	}
	return nil, semErr(pos, "unsupported operator %s", op)
}

func (i *Interpreter) addValues(left, right scope.Value, pos source.Position) (scope.Value, error) {
	switch l := left.(type) {
	case IntValue:
		if r, ok := right.(IntValue); ok {
			return intResult(float64(l.V)+float64(r.V), l.V+r.V, pos)
		}
	case FloatValue:
		if r, ok := right.(FloatValue); ok {
			return floatResult(l.V+r.V, pos)
		}
	case StrValue:
		if r, ok := right.(StrValue); ok {
			return StrValue{V: l.V + r.V}, nil
		}
	case CurValue:
		if r, ok := right.(CurValue); ok {
			sum, err := currency.Add(*l.V, *r.V, i.rates)
			if err != nil {
				return nil, semErr(pos, "%v", err)
			}
			return CurValue{V: &sum}, nil
		}
	}
	return nil, semErr(pos, "different types in add operation: %s + %s", typeName(left), typeName(right))
}

func (i *Interpreter) subValues(left, right scope.Value, pos source.Position) (scope.Value, error) {
	switch l := left.(type) {
	case IntValue:
		if r, ok := right.(IntValue); ok {
			return intResult(float64(l.V)-float64(r.V), l.V-r.V, pos)
		}
	case FloatValue:
		if r, ok := right.(FloatValue); ok {
			return floatResult(l.V-r.V, pos)
		}
	case CurValue:
		if r, ok := right.(CurValue); ok {
			diff, err := currency.Sub(*l.V, *r.V, i.rates)
			if err != nil {
				return nil, semErr(pos, "%v", err)
			}
			return CurValue{V: &diff}, nil
		}
	}
	return nil, semErr(pos, "different types in sub operation: %s - %s", typeName(left), typeName(right))
}

func (i *Interpreter) mulValues(left, right scope.Value, pos source.Position) (scope.Value, error) {
	switch l := left.(type) {
	case IntValue:
		switch r := right.(type) {
		case IntValue:
			return intResult(float64(l.V)*float64(r.V), l.V*r.V, pos)
		case StrValue:
			return repeatStr(r.V, l.V, pos)
		case CurValue:
			return scaleCur(*r.V, float64(l.V), pos)
		}
	case FloatValue:
		switch r := right.(type) {
		case FloatValue:
			return floatResult(l.V*r.V, pos)
		case CurValue:
			return scaleCur(*r.V, l.V, pos)
		}
	case StrValue:
		if r, ok := right.(IntValue); ok {
			return repeatStr(l.V, r.V, pos)
		}
	case CurValue:
		switch r := right.(type) {
		case IntValue:
			return scaleCur(*l.V, float64(r.V), pos)
		case FloatValue:
			return scaleCur(*l.V, r.V, pos)
		}
	}
	return nil, semErr(pos, "different types in multiply operation: %s * %s", typeName(left), typeName(right))
}

func (i *Interpreter) divValues(left, right scope.Value, pos source.Position) (scope.Value, error) {
	switch l := left.(type) {
	case FloatValue:
		if r, ok := right.(FloatValue); ok {
			if r.V == 0 {
				return nil, semErr(pos, "division by zero")
			}
			return floatResult(l.V/r.V, pos)
		}
	case CurValue:
		var divisor float64
		switch r := right.(type) {
		case IntValue:
			divisor = float64(r.V)
		case FloatValue:
			divisor = r.V
		default:
			return nil, semErr(pos, "wrong types in divide operation: %s / %s", typeName(left), typeName(right))
		}
		q, err := currency.DivideBy(*l.V, divisor)
		if err != nil {
			return nil, semErr(pos, "%v", err)
		}
		return CurValue{V: &q}, nil
	}
	return nil, semErr(pos, "wrong types in divide operation: %s / %s", typeName(left), typeName(right))
}

// compare applies a relation operator. Currency pairs normalise through the
// rate table; int and float mix freely as numbers; ==/!= additionally apply
// to strings, booleans and currency-type tags.
func (i *Interpreter) compare(op lexer.Kind, left, right scope.Value, pos source.Position) (scope.Value, error) {
	if l, ok := left.(CurValue); ok {
		if r, ok := right.(CurValue); ok {
			c, err := currency.Compare(*l.V, *r.V, i.rates)
			if err != nil {
				return nil, semErr(pos, "%v", err)
			}
			return BoolValue{V: relate(op, c)}, nil
		}
	}

	if ln, lok := numeric(left); lok {
		if rn, rok := numeric(right); rok {
			switch {
			case ln < rn:
				return BoolValue{V: relate(op, -1)}, nil
			case ln > rn:
				return BoolValue{V: relate(op, 1)}, nil
			default:
				return BoolValue{V: relate(op, 0)}, nil
			}
		}
	}

	if op == lexer.EQ || op == lexer.NOT_EQ {
		eq, ok := equatable(left, right)
		if ok {
			if op == lexer.NOT_EQ {
				eq = !eq
			}
			return BoolValue{V: eq}, nil
		}
	}

	return nil, semErr(pos, "wrong types for comparison: %s %s %s", typeName(left), op, typeName(right))
}

// relate converts a three-way comparison into the boolean the operator asks
// about.
func relate(op lexer.Kind, c int) bool {
	switch op {
	case lexer.LT:
		return c < 0
	case lexer.LT_EQ:
		return c <= 0
	case lexer.GT:
		return c > 0
	case lexer.GT_EQ:
		return c >= 0
	case lexer.EQ:
		return c == 0
	default:
		return c != 0
	}
}

func numeric(v scope.Value) (float64, bool) {
	switch n := v.(type) {
	case IntValue:
		return float64(n.V), true
	case FloatValue:
		return n.V, true
	default:
		return 0, false
	}
}

// equatable handles the ==-only types: strings, booleans and curtype tags.
func equatable(left, right scope.Value) (bool, bool) {
	switch l := left.(type) {
	case StrValue:
		if r, ok := right.(StrValue); ok {
			return l.V == r.V, true
		}
	case BoolValue:
		if r, ok := right.(BoolValue); ok {
			return l.V == r.V, true
		}
	case CurTypeValue:
		if r, ok := right.(CurTypeValue); ok {
			return l.Tag == r.Tag, true
		}
	}
	return false, false
}

// intResult guards against silent int64 wraparound: the magnitude check
// runs on the exact float64 rendition of the operation, not on the possibly
// already-wrapped integer result.
func intResult(exact float64, v int64, pos source.Position) (scope.Value, error) {
	if err := currency.CheckMagnitude(exact); err != nil {
		return nil, semErr(pos, "%v", err)
	}
	return IntValue{V: v}, nil
}

func floatResult(v float64, pos source.Position) (scope.Value, error) {
	if err := currency.CheckMagnitude(v); err != nil {
		return nil, semErr(pos, "%v", err)
	}
	return FloatValue{V: v}, nil
}

func scaleCur(v currency.Value, n float64, pos source.Position) (scope.Value, error) {
	scaled, err := currency.ScaleBy(v, n)
	if err != nil {
		return nil, semErr(pos, "%v", err)
	}
	return CurValue{V: &scaled}, nil
}

func repeatStr(s string, n int64, pos source.Position) (scope.Value, error) {
	if n < 0 {
		n = 0
	}
	if int64(len(s))*n > int64(1<<20) {
		return nil, semErr(pos, "repeated string exceeds the maximum size")
	}
	out := make([]byte, 0, int(n)*len(s))
	for j := int64(0); j < n; j++ {
		out = append(out, s...)
	}
	return StrValue{V: string(out)}, nil
}
