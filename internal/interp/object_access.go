package interp

import (
	"github.com/moneta-lang/moneta/internal/ast"
	"github.com/moneta-lang/moneta/internal/currency"
	"github.com/moneta-lang/moneta/internal/scope"
	"github.com/moneta-lang/moneta/internal/source"
)

// A place is an assignable location: the left-hand side of an assignment or
// a currency-transfer endpoint. Splitting place evaluation from value
// evaluation replaces the single resolving-flag-gated traversal the
// visitor-style rendition of this interpreter used.
type place interface {
	get() scope.Value
	set(v scope.Value)
}

// handlePlace rebinds a variable's handle. Re-binding never propagates
// through call boundaries or dictionary aliases; only in-place mutation
// (set_value, dict contents) does.
type handlePlace struct{ h *scope.Handle }

func (p handlePlace) get() scope.Value  { return p.h.V }
func (p handlePlace) set(v scope.Value) { p.h.V = v }

// entryPlace writes through a dictionary entry's shared currency cell, so
// every alias of the entry observes the new amount.
type entryPlace struct{ e *currency.Entry }

func (p entryPlace) get() scope.Value { return CurValue{V: p.e.Value} }
func (p entryPlace) set(v scope.Value) {
	if cv, ok := v.(CurValue); ok {
		*p.e.Value = *cv.V
	}
}

// evalPlace resolves an object-access chain to an assignable place. The
// parser guarantees the final segment is not a call.
func (i *Interpreter) evalPlace(oa *ast.ObjectAccess) (place, error) {
	segs := oa.Segments
	if len(segs) == 1 {
		h, ok := i.frame.Lookup(segs[0].Name)
		if !ok {
			return nil, semErr(segs[0].At, "'%s' was not declared in this scope", segs[0].Name)
		}
		return handlePlace{h: h}, nil
	}

	// Dotted path: evaluate everything up to the last segment as a value,
	// then resolve the final name against it.
	head := ast.NewObjectAccess(oa.Pos(), segs[:len(segs)-1])
	v, err := i.evalObjectAccess(head)
	if err != nil {
		return nil, err
	}
	last := segs[len(segs)-1]

	entry, ok := v.(EntryValue)
	if !ok {
		return nil, semErr(last.At, "%s has no assignable field '%s'", typeName(v), last.Name)
	}
	switch last.Name {
	case "value":
		return entryPlace{e: entry.E}, nil
	case "name":
		return nil, semErr(last.At, "cannot assign to a dictionary entry's name")
	default:
		return nil, semErr(last.At, "dictionary entry has no field '%s'", last.Name)
	}
}

// evalObjectAccess walks a dotted chain left to right: the head segment is
// a variable reference or a function call; each later segment is a method
// call or field lookup on the running value.
func (i *Interpreter) evalObjectAccess(oa *ast.ObjectAccess) (scope.Value, error) {
	head := oa.Segments[0]
	var current scope.Value
	if head.IsCall() {
		v, err := i.callByName(head)
		if err != nil {
			return nil, err
		}
		current = v
	} else {
		h, ok := i.frame.Lookup(head.Name)
		if !ok {
			return nil, semErr(head.At, "'%s' was not declared in this scope", head.Name)
		}
		current = h.V
	}

	for _, seg := range oa.Segments[1:] {
		if current == nil {
			return nil, semErr(seg.At, "void value has no member '%s'", seg.Name)
		}
		var err error
		if seg.IsCall() {
			current, err = i.callMethod(current, seg)
		} else {
			current, err = fieldLookup(current, seg)
		}
		if err != nil {
			return nil, err
		}
	}
	return current, nil
}

// callByName dispatches a head-position call to a user-defined function or
// a built-in, evaluating arguments left to right in the caller's frame.
func (i *Interpreter) callByName(seg ast.Segment) (scope.Value, error) {
	args := make([]scope.Value, 0, len(seg.Args))
	for _, a := range seg.Args {
		v, err := i.evalExpr(a)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, semErr(a.Pos(), "argument produces no value")
		}
		args = append(args, v)
	}

	if fn, ok := i.globals.LookupFunc(seg.Name); ok {
		return i.callFunction(fn, args, seg.At)
	}
	if fn, ok := i.globals.LookupBuiltin(seg.Name); ok {
		return fn(args, seg.At)
	}
	return nil, semErr(seg.At, "function '%s' not found", seg.Name)
}

// callMethod dispatches the fixed method surface runtime values carry:
// set_value on a currency value, add and get on a dictionary.
func (i *Interpreter) callMethod(recv scope.Value, seg ast.Segment) (scope.Value, error) {
	args := make([]scope.Value, 0, len(seg.Args))
	for _, a := range seg.Args {
		v, err := i.evalExpr(a)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, semErr(a.Pos(), "argument produces no value")
		}
		args = append(args, v)
	}

	switch r := recv.(type) {
	case CurValue:
		if seg.Name == "set_value" {
			return nil, curSetValue(r, args, seg.At)
		}
	case DictValue:
		switch seg.Name {
		case "add":
			return nil, dictAdd(r, args, seg.At)
		case "get":
			return dictGet(r, args, seg.At)
		}
	case EntryValue:
		// Entry fields are not callable, but `e.value.set_value(n)` routes
		// through fieldLookup first, so reaching here means a typo.
	}
	return nil, semErr(seg.At, "%s has no method '%s'", typeName(recv), seg.Name)
}

func fieldLookup(recv scope.Value, seg ast.Segment) (scope.Value, error) {
	entry, ok := recv.(EntryValue)
	if !ok {
		return nil, semErr(seg.At, "%s has no field '%s'", typeName(recv), seg.Name)
	}
	switch seg.Name {
	case "name":
		return StrValue{V: entry.E.Name}, nil
	case "value":
		return CurValue{V: entry.E.Value}, nil
	default:
		return nil, semErr(seg.At, "dictionary entry has no field '%s'", seg.Name)
	}
}

// curSetValue replaces the amount in place, preserving the tag; every alias
// of the cell observes the write.
func curSetValue(r CurValue, args []scope.Value, pos source.Position) error {
	if len(args) != 1 {
		return semErr(pos, "set_value expects one argument, got %d", len(args))
	}
	switch n := args[0].(type) {
	case IntValue:
		r.V.Amount = float64(n.V)
	case FloatValue:
		r.V.Amount = n.V
	default:
		return semErr(pos, "set_value accepts only int or float, got %s", typeName(args[0]))
	}
	return nil
}

func dictAdd(r DictValue, args []scope.Value, pos source.Position) error {
	if len(args) != 2 {
		return semErr(pos, "add expects a name and a value, got %d argument(s)", len(args))
	}
	name, ok := args[0].(StrValue)
	if !ok {
		return semErr(pos, "add accepts only str and cur, got %s", typeName(args[0]))
	}
	cv, ok := args[1].(CurValue)
	if !ok {
		return semErr(pos, "add accepts only str and cur, got %s", typeName(args[1]))
	}
	if err := r.D.Add(name.V, cv.V); err != nil {
		return semErr(pos, "%v", err)
	}
	return nil
}

func dictGet(r DictValue, args []scope.Value, pos source.Position) (scope.Value, error) {
	if len(args) != 1 {
		return nil, semErr(pos, "get expects one argument, got %d", len(args))
	}
	switch key := args[0].(type) {
	case StrValue:
		e, ok := r.D.Get(key.V)
		if !ok {
			return nil, semErr(pos, "get(%q) - no such name in dictionary", key.V)
		}
		return CurValue{V: e.Value}, nil
	case CurTypeValue:
		return DictValue{D: r.D.FilterByTag(key.Tag)}, nil
	default:
		return nil, semErr(pos, "get expects a str or curtype key, got %s", typeName(args[0]))
	}
}
