package trio

import (
	"fmt"
	"math"
)

// Tag identifies which variant a Value holds.
type Tag int

const (
	TNum Tag = iota
	TStr
	TBool
	TUnit
	TColor
	TArray
	TMap
	TFuture
	TCont
)

func (t Tag) String() string {
	switch t {
	case TNum:
		return "Num"
	case TStr:
		return "Str"
	case TBool:
		return "Bool"
	case TUnit:
		return "Unit"
	case TColor:
		return "Color"
	case TArray:
		return "Array"
	case TMap:
		return "Map"
	case TFuture:
		return "Future"
	case TCont:
		return "Continuation"
	default:
		return "Unknown"
	}
}

// Pair is a single map entry. Maps preserve insertion order and allow
// duplicate keys; lookup is a linear scan with first-match-wins.
type Pair struct {
	Key Value
	Val Value
}

// Value is the closed set of runtime values. Exactly one variant field is
// meaningful, selected by Tag. Values are never mutated after construction;
// operations on composites return fresh copies.
type Value struct {
	Tag   Tag
	Num   float64
	Str   string
	Bool  bool
	Color Color
	Arr   []Value
	Map   []Pair
	Fut   *Future
	Cont  *Continuation
}

var Unit = Value{Tag: TUnit}

func NumVal(n float64) Value        { return Value{Tag: TNum, Num: n} }
func StrVal(s string) Value         { return Value{Tag: TStr, Str: s} }
func BoolVal(b bool) Value          { return Value{Tag: TBool, Bool: b} }
func ColorVal(c Color) Value        { return Value{Tag: TColor, Color: c} }
func ArrayVal(elems []Value) Value  { return Value{Tag: TArray, Arr: elems} }
func MapVal(pairs []Pair) Value     { return Value{Tag: TMap, Map: pairs} }
func FutureVal(f *Future) Value     { return Value{Tag: TFuture, Fut: f} }
func ContVal(c *Continuation) Value { return Value{Tag: TCont, Cont: c} }

// Add sums numbers, concatenates strings and arrays, and adds colors
// channel-wise with saturation.
func (v Value) Add(other Value) (Value, error) {
	switch {
	case v.Tag == TNum && other.Tag == TNum:
		return NumVal(v.Num + other.Num), nil
	case v.Tag == TStr && other.Tag == TStr:
		return StrVal(v.Str + other.Str), nil
	case v.Tag == TColor && other.Tag == TColor:
		return ColorVal(v.Color.Add(other.Color)), nil
	case v.Tag == TArray && other.Tag == TArray:
		out := make([]Value, 0, len(v.Arr)+len(other.Arr))
		out = append(out, v.Arr...)
		out = append(out, other.Arr...)
		return ArrayVal(out), nil
	}
	return Unit, typeMismatch("cannot add %s and %s", v.Tag, other.Tag)
}

func (v Value) Sub(other Value) (Value, error) {
	switch {
	case v.Tag == TNum && other.Tag == TNum:
		return NumVal(v.Num - other.Num), nil
	case v.Tag == TColor && other.Tag == TColor:
		return ColorVal(v.Color.Sub(other.Color)), nil
	}
	return Unit, typeMismatch("cannot subtract %s and %s", v.Tag, other.Tag)
}

func (v Value) Mul(other Value) (Value, error) {
	if v.Tag == TNum && other.Tag == TNum {
		return NumVal(v.Num * other.Num), nil
	}
	return Unit, typeMismatch("cannot multiply %s and %s", v.Tag, other.Tag)
}

func (v Value) Div(other Value) (Value, error) {
	if v.Tag == TNum && other.Tag == TNum {
		if other.Num == 0 {
			return Unit, &TrioError{Kind: DivisionByZero, Message: "division by zero"}
		}
		return NumVal(v.Num / other.Num), nil
	}
	return Unit, typeMismatch("cannot divide %s and %s", v.Tag, other.Tag)
}

// Blend averages two colors channel-wise.
func (v Value) Blend(other Value) (Value, error) {
	if v.Tag == TColor && other.Tag == TColor {
		return ColorVal(v.Color.Blend(other.Color)), nil
	}
	return Unit, typeMismatch("cannot blend %s and %s", v.Tag, other.Tag)
}

// Scale multiplies a color's channels by factor, clamped to [0,255].
func (v Value) Scale(factor float64) (Value, error) {
	if v.Tag == TColor {
		return ColorVal(v.Color.Scale(factor)), nil
	}
	return Unit, typeMismatch("cannot scale %s", v.Tag)
}

// Mix linearly interpolates two colors; ratio is clamped to [0,1].
func (v Value) Mix(other Value, ratio float64) (Value, error) {
	if v.Tag == TColor && other.Tag == TColor {
		return ColorVal(v.Color.Mix(other.Color, ratio)), nil
	}
	return Unit, typeMismatch("cannot mix %s and %s", v.Tag, other.Tag)
}

func (v Value) LessThan(other Value) (Value, error) {
	switch {
	case v.Tag == TNum && other.Tag == TNum:
		return BoolVal(v.Num < other.Num), nil
	case v.Tag == TStr && other.Tag == TStr:
		return BoolVal(v.Str < other.Str), nil
	}
	return Unit, typeMismatch("cannot compare %s and %s", v.Tag, other.Tag)
}

func (v Value) GreaterThan(other Value) (Value, error) {
	switch {
	case v.Tag == TNum && other.Tag == TNum:
		return BoolVal(v.Num > other.Num), nil
	case v.Tag == TStr && other.Tag == TStr:
		return BoolVal(v.Str > other.Str), nil
	}
	return Unit, typeMismatch("cannot compare %s and %s", v.Tag, other.Tag)
}

// Equals never fails: values of different variants are simply unequal.
// Futures and continuations have no useful equality and always compare false.
func (v Value) Equals(other Value) Value {
	if v.Tag != other.Tag {
		return BoolVal(false)
	}
	switch v.Tag {
	case TNum:
		return BoolVal(math.Abs(v.Num-other.Num) < epsilon)
	case TStr:
		return BoolVal(v.Str == other.Str)
	case TBool:
		return BoolVal(v.Bool == other.Bool)
	case TUnit:
		return BoolVal(true)
	case TColor:
		return BoolVal(v.Color == other.Color)
	}
	return BoolVal(false)
}

const epsilon = 2.220446049250313e-16

// Truthy maps any value to a condition. Colors, futures and continuations
// count as truthy; Unit never does.
func (v Value) Truthy() bool {
	switch v.Tag {
	case TBool:
		return v.Bool
	case TNum:
		return v.Num != 0
	case TStr:
		return v.Str != ""
	case TArray:
		return len(v.Arr) > 0
	case TMap:
		return len(v.Map) > 0
	case TUnit:
		return false
	}
	return true
}

// Index reads an array element by numeric position or scans a map for the
// first pair whose key equals the given one.
func (v Value) Index(idx Value) (Value, error) {
	switch v.Tag {
	case TArray:
		if idx.Tag != TNum {
			return Unit, typeMismatch("array index must be a number, got %s", idx.Tag)
		}
		i := int(idx.Num)
		if i < 0 || i >= len(v.Arr) {
			return Unit, &TrioError{
				Kind:    IndexOutOfBounds,
				Message: fmt.Sprintf("index %d out of bounds for array of length %d", i, len(v.Arr)),
			}
		}
		return v.Arr[i], nil
	case TMap:
		for _, p := range v.Map {
			if p.Key.Equals(idx).Bool {
				return p.Val, nil
			}
		}
		return Unit, &TrioError{
			Kind:    KeyNotFound,
			Message: fmt.Sprintf("key %s not found in map", Format(idx)),
		}
	}
	return Unit, typeMismatch("cannot index %s", v.Tag)
}

func typeMismatch(format string, args ...interface{}) *TrioError {
	return &TrioError{Kind: TypeMismatch, Message: fmt.Sprintf(format, args...)}
}
