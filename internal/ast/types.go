package ast

// TypeEnum is the closed set of types a moneta value can carry.
// Declarations and parameters may never be Void; only a function's
// return type may.
type TypeEnum int

const (
	Int TypeEnum = iota
	Float
	Str
	Cur
	CurType
	Bool
	Dict
	Void
)

func (t TypeEnum) String() string {
	switch t {
	case Int:
		return "int"
	case Float:
		return "float"
	case Str:
		return "str"
	case Cur:
		return "cur"
	case CurType:
		return "curtype"
	case Bool:
		return "bool"
	case Dict:
		return "dict"
	case Void:
		return "void"
	default:
		return "?"
	}
}
