// Package currency implements moneta's rate-aware currency value type:
// an amount tagged with a currency, compared and combined through an
// exchange-rate table, plus the insertion-ordered account dictionary.
package currency

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// MaxMagnitude is the maximum signed-integer magnitude every numeric
// result is held to.
const MaxMagnitude = float64(math.MaxInt64)

// ErrDivisionByZero is raised instead of letting a zero divisor produce
// IEEE-754 Inf/NaN.
var ErrDivisionByZero = errors.New("division by zero")

// Tag is an uppercase currency-type name; equality is by wrapped string.
type Tag string

// NewTag case-folds s to uppercase, matching the lexer's CURTYPE_CONST
// handling.
func NewTag(s string) Tag {
	return Tag(strings.ToUpper(s))
}

func (t Tag) String() string { return string(t) }

// Value is an amount bound to a currency tag.
type Value struct {
	Amount float64
	Type   Tag
}

// String renders the canonical textual form:
// "<amount formatted to two decimals> <tag>".
func (v Value) String() string {
	return fmt.Sprintf("%.2f %s", v.Amount, v.Type)
}

// Rates is the exchange-rate lookup the arithmetic below needs. Satisfied
// by *rates.Table; declared as an interface here (rather than importing
// internal/rates) so this package stays a leaf.
type Rates interface {
	Rate(tag string) (float64, bool)
}

// CheckMagnitude enforces the value-size bound: every numeric result must
// fit within the maximum signed-integer magnitude.
func CheckMagnitude(x float64) error {
	if math.Abs(x) > MaxMagnitude {
		return fmt.Errorf("value %.2f exceeds the maximum representable magnitude", x)
	}
	return nil
}

func normalize(v Value, r Rates) (float64, error) {
	rate, ok := r.Rate(string(v.Type))
	if !ok {
		return 0, fmt.Errorf("unknown currency type %q", v.Type)
	}
	if rate == 0 {
		return 0, fmt.Errorf("currency type %q has a zero exchange rate", v.Type)
	}
	return v.Amount / rate, nil
}

// Add implements rate-aware addition: same-tag operands skip normalisation;
// cross-tag operands normalise to the reference unit, sum, and are
// denominated back in the left operand's tag.
func Add(l, r Value, rates Rates) (Value, error) {
	if l.Type == r.Type {
		sum := l.Amount + r.Amount
		if err := CheckMagnitude(sum); err != nil {
			return Value{}, err
		}
		return Value{Amount: sum, Type: l.Type}, nil
	}
	return combine(l, r, rates, func(a, b float64) float64 { return a + b })
}

// Sub mirrors Add for subtraction.
func Sub(l, r Value, rates Rates) (Value, error) {
	if l.Type == r.Type {
		diff := l.Amount - r.Amount
		if err := CheckMagnitude(diff); err != nil {
			return Value{}, err
		}
		return Value{Amount: diff, Type: l.Type}, nil
	}
	return combine(l, r, rates, func(a, b float64) float64 { return a - b })
}

func combine(l, r Value, rates Rates, op func(a, b float64) float64) (Value, error) {
	ln, err := normalize(l, rates)
	if err != nil {
		return Value{}, err
	}
	rn, err := normalize(r, rates)
	if err != nil {
		return Value{}, err
	}
	lRate, _ := rates.Rate(string(l.Type))
	result := op(ln, rn) * lRate
	if err := CheckMagnitude(result); err != nil {
		return Value{}, err
	}
	return Value{Amount: result, Type: l.Type}, nil
}

// Compare normalises both operands through the rate table unconditionally.
// The same-tag fast path that arithmetic uses is not mirrored here: both
// paths coincide for same-tag operands, and normalising always keeps the
// comparison down to one code path. Returns -1, 0 or 1.
func Compare(l, r Value, rates Rates) (int, error) {
	ln, err := normalize(l, rates)
	if err != nil {
		return 0, err
	}
	rn, err := normalize(r, rates)
	if err != nil {
		return 0, err
	}
	switch {
	case ln < rn:
		return -1, nil
	case ln > rn:
		return 1, nil
	default:
		return 0, nil
	}
}

// ScaleBy implements currency-by-scalar multiplication: scales the amount,
// preserves the tag, and never consults the rate table.
func ScaleBy(v Value, n float64) (Value, error) {
	result := v.Amount * n
	if err := CheckMagnitude(result); err != nil {
		return Value{}, err
	}
	return Value{Amount: result, Type: v.Type}, nil
}

// DivideBy implements currency-by-scalar division, scaling the amount and
// preserving the tag. A zero divisor raises ErrDivisionByZero rather than
// producing IEEE-754 Inf/NaN.
func DivideBy(v Value, n float64) (Value, error) {
	if n == 0 {
		return Value{}, ErrDivisionByZero
	}
	result := v.Amount / n
	if err := CheckMagnitude(result); err != nil {
		return Value{}, err
	}
	return Value{Amount: result, Type: v.Type}, nil
}

// Negate returns -v, preserving the tag.
func Negate(v Value) Value {
	return Value{Amount: -v.Amount, Type: v.Type}
}
