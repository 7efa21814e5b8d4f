package interp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/moneta-lang/moneta/internal/scope"
	"github.com/moneta-lang/moneta/internal/source"
)

// registerBuiltins installs the fixed built-in function set into the global
// function table before main runs.
func (i *Interpreter) registerBuiltins() {
	i.globals.DefineBuiltin("print", i.builtinPrint)
	i.globals.DefineBuiltin("input", i.builtinInput)
	i.globals.DefineBuiltin("to_int", builtinToInt)
	i.globals.DefineBuiltin("to_float", builtinToFloat)
	i.globals.DefineBuiltin("to_str", builtinToStr)
}

func (i *Interpreter) builtinPrint(args []scope.Value, pos source.Position) (scope.Value, error) {
	if len(args) != 1 {
		return nil, semErr(pos, "print expects one argument, got %d", len(args))
	}
	fmt.Fprintln(i.out, args[0].String())
	return nil, nil
}

func (i *Interpreter) builtinInput(args []scope.Value, pos source.Position) (scope.Value, error) {
	if len(args) != 1 {
		return nil, semErr(pos, "input expects one argument, got %d", len(args))
	}
	prompt, ok := args[0].(StrValue)
	if !ok {
		return nil, semErr(pos, "input expects a str prompt, got %s", typeName(args[0]))
	}
	fmt.Fprint(i.out, prompt.V)
	line, err := i.in.ReadString('\n')
	if err != nil && line == "" {
		return nil, semErr(pos, "no input available")
	}
	return StrValue{V: strings.TrimRight(line, "\r\n")}, nil
}

func builtinToInt(args []scope.Value, pos source.Position) (scope.Value, error) {
	if len(args) != 1 {
		return nil, semErr(pos, "to_int expects one argument, got %d", len(args))
	}
	switch v := args[0].(type) {
	case FloatValue:
		return IntValue{V: int64(v.V)}, nil
	case StrValue:
		n, err := strconv.ParseInt(strings.TrimSpace(v.V), 10, 64)
		if err != nil {
			return nil, semErr(pos, "wrong value to convert: %q", v.V)
		}
		return IntValue{V: n}, nil
	default:
		return nil, semErr(pos, "to_int converts only float or str, got %s", typeName(args[0]))
	}
}

func builtinToFloat(args []scope.Value, pos source.Position) (scope.Value, error) {
	if len(args) != 1 {
		return nil, semErr(pos, "to_float expects one argument, got %d", len(args))
	}
	switch v := args[0].(type) {
	case IntValue:
		return FloatValue{V: float64(v.V)}, nil
	case StrValue:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.V), 64)
		if err != nil {
			return nil, semErr(pos, "wrong value to convert: %q", v.V)
		}
		return FloatValue{V: f}, nil
	default:
		return nil, semErr(pos, "to_float converts only int or str, got %s", typeName(args[0]))
	}
}

// builtinToStr renders a value through the same String() the print built-in
// uses, so a currency stringifies identically everywhere.
func builtinToStr(args []scope.Value, pos source.Position) (scope.Value, error) {
	if len(args) != 1 {
		return nil, semErr(pos, "to_str expects one argument, got %d", len(args))
	}
	switch args[0].(type) {
	case IntValue, FloatValue, CurValue, CurTypeValue:
		return StrValue{V: args[0].String()}, nil
	default:
		return nil, semErr(pos, "to_str converts only int, float, cur or curtype, got %s", typeName(args[0]))
	}
}
