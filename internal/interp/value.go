// Package interp walks the AST against an exchange-rate table, evaluating
// expressions to runtime values and executing statements with lexical
// scoping, function dispatch and currency-aware semantics.
package interp

import (
	"fmt"
	"strconv"

	"github.com/moneta-lang/moneta/internal/ast"
	"github.com/moneta-lang/moneta/internal/currency"
	"github.com/moneta-lang/moneta/internal/scope"
)

// The concrete runtime value types. Primitives (int, float, str, bool,
// curtype) are copied freely; CurValue and DictValue hold pointers so that
// passing them as call arguments or storing them in a dictionary shares one
// underlying cell — mutating through any alias is visible through every
// other alias, while re-binding a variable never is.

type IntValue struct{ V int64 }

func (IntValue) Type() ast.TypeEnum { return ast.Int }
func (v IntValue) String() string   { return strconv.FormatInt(v.V, 10) }

type FloatValue struct{ V float64 }

func (FloatValue) Type() ast.TypeEnum { return ast.Float }
func (v FloatValue) String() string   { return strconv.FormatFloat(v.V, 'f', -1, 64) }

type StrValue struct{ V string }

func (StrValue) Type() ast.TypeEnum { return ast.Str }
func (v StrValue) String() string   { return v.V }

type BoolValue struct{ V bool }

func (BoolValue) Type() ast.TypeEnum { return ast.Bool }
func (v BoolValue) String() string   { return strconv.FormatBool(v.V) }

type CurTypeValue struct{ Tag currency.Tag }

func (CurTypeValue) Type() ast.TypeEnum { return ast.CurType }
func (v CurTypeValue) String() string   { return v.Tag.String() }

// CurValue shares its *currency.Value cell with every alias: a dictionary
// entry, a for-loop variable's .value field, a callee's parameter.
type CurValue struct{ V *currency.Value }

func (CurValue) Type() ast.TypeEnum { return ast.Cur }
func (v CurValue) String() string   { return v.V.String() }

type DictValue struct{ D *currency.Dict }

func (DictValue) Type() ast.TypeEnum { return ast.Dict }
func (v DictValue) String() string {
	out := "{"
	for i, e := range v.D.Entries() {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%q: %s", e.Name, e.Value.String())
	}
	return out + "}"
}

// EntryValue is what a for loop binds its identifier to: a handle onto one
// dictionary entry, exposing .name and .value fields. It is not a declarable
// type (no type keyword names it), so Type() never participates in a
// declaration-site check; it reports Dict so error messages stay sensible.
type EntryValue struct{ E *currency.Entry }

func (EntryValue) Type() ast.TypeEnum { return ast.Dict }
func (v EntryValue) String() string {
	return fmt.Sprintf("%s: %s", v.E.Name, v.E.Value.String())
}

// zeroValue is the value a declaration without an initialiser binds.
func zeroValue(t ast.TypeEnum) scope.Value {
	switch t {
	case ast.Int:
		return IntValue{}
	case ast.Float:
		return FloatValue{}
	case ast.Str:
		return StrValue{}
	case ast.Bool:
		return BoolValue{}
	case ast.Cur:
		return CurValue{V: &currency.Value{}}
	case ast.CurType:
		return CurTypeValue{}
	case ast.Dict:
		return DictValue{D: currency.NewDict()}
	default:
		return nil
	}
}
