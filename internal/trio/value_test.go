package trio

import "testing"

func num(n float64) Value { return NumVal(n) }

func TestAdd(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want Value
	}{
		{"numbers", num(5), num(3), num(8)},
		{"strings", StrVal("foo"), StrVal("bar"), StrVal("foobar")},
		{"colors", ColorVal(NewColor(100, 0, 0)), ColorVal(NewColor(0, 150, 0)), ColorVal(NewColor(100, 150, 0))},
		{"colors saturate", ColorVal(NewColor(200, 100, 50)), ColorVal(NewColor(100, 200, 250)), ColorVal(NewColor(255, 255, 255))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.a.Add(tt.b)
			if err != nil {
				t.Fatalf("Add: %v", err)
			}
			if !got.Equals(tt.want).Bool {
				t.Errorf("got %s, want %s", Format(got), Format(tt.want))
			}
		})
	}
}

func TestAddArraysConcatenates(t *testing.T) {
	a := ArrayVal([]Value{num(1), num(2)})
	b := ArrayVal([]Value{num(3), num(4)})

	got, err := a.Add(b)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if len(got.Arr) != len(a.Arr)+len(b.Arr) {
		t.Fatalf("length = %d, want %d", len(got.Arr), len(a.Arr)+len(b.Arr))
	}
	for i, want := range []float64{1, 2, 3, 4} {
		if got.Arr[i].Num != want {
			t.Errorf("element %d = %v, want %v", i, got.Arr[i].Num, want)
		}
	}
	// The operands must be untouched.
	if len(a.Arr) != 2 || len(b.Arr) != 2 {
		t.Error("concatenation mutated an operand")
	}
}

func TestAddTypeMismatch(t *testing.T) {
	_, err := num(1).Add(BoolVal(true))
	if err == nil {
		t.Fatal("expected error")
	}
	if Kind(err) != TypeMismatch {
		t.Errorf("kind = %v, want TypeMismatch", Kind(err))
	}
}

func TestSubMulDiv(t *testing.T) {
	if v, err := num(10).Sub(num(3)); err != nil || v.Num != 7 {
		t.Errorf("Sub = %v, %v", v, err)
	}
	if v, err := num(6).Mul(num(7)); err != nil || v.Num != 42 {
		t.Errorf("Mul = %v, %v", v, err)
	}
	if v, err := num(20).Div(num(4)); err != nil || v.Num != 5 {
		t.Errorf("Div = %v, %v", v, err)
	}
}

func TestDivByZero(t *testing.T) {
	_, err := num(10).Div(num(0))
	if err == nil {
		t.Fatal("expected error")
	}
	if Kind(err) != DivisionByZero {
		t.Errorf("kind = %v, want DivisionByZero", Kind(err))
	}
}

func TestColorSub(t *testing.T) {
	got, err := ColorVal(NewColor(200, 100, 50)).Sub(ColorVal(NewColor(50, 30, 10)))
	if err != nil {
		t.Fatalf("Sub: %v", err)
	}
	if got.Color != (Color{R: 150, G: 70, B: 40}) {
		t.Errorf("got %s", Format(got))
	}
	// Differences floor at zero.
	floored, _ := ColorVal(NewColor(10, 10, 10)).Sub(ColorVal(NewColor(50, 5, 20)))
	if floored.Color != (Color{R: 0, G: 5, B: 0}) {
		t.Errorf("got %s", Format(floored))
	}
}

func TestColorBlend(t *testing.T) {
	got, err := ColorVal(NewColor(255, 0, 0)).Blend(ColorVal(NewColor(0, 0, 255)))
	if err != nil {
		t.Fatalf("Blend: %v", err)
	}
	if got.Color != (Color{R: 127, G: 0, B: 127}) {
		t.Errorf("got %s", Format(got))
	}
}

func TestColorBlendIdentity(t *testing.T) {
	c := ColorVal(NewColor(42, 120, 250))
	got, _ := c.Blend(c)
	if got.Color != c.Color {
		t.Errorf("blend(c,c) = %s, want %s", Format(got), Format(c))
	}
}

func TestColorScale(t *testing.T) {
	got, err := ColorVal(NewColor(100, 50, 200)).Scale(2)
	if err != nil {
		t.Fatalf("Scale: %v", err)
	}
	if got.Color != (Color{R: 200, G: 100, B: 255}) {
		t.Errorf("got %s", Format(got))
	}
}

func TestColorScaleIdentity(t *testing.T) {
	c := ColorVal(NewColor(100, 50, 200))
	got, _ := c.Scale(1)
	if got.Color != c.Color {
		t.Errorf("scale(c,1) = %s, want %s", Format(got), Format(c))
	}
}

func TestColorMix(t *testing.T) {
	got, err := ColorVal(NewColor(255, 0, 0)).Mix(ColorVal(NewColor(0, 0, 255)), 0.5)
	if err != nil {
		t.Fatalf("Mix: %v", err)
	}
	if got.Color != (Color{R: 127, G: 0, B: 127}) {
		t.Errorf("got %s", Format(got))
	}
	// Out-of-range ratios clamp.
	all, _ := ColorVal(NewColor(10, 10, 10)).Mix(ColorVal(NewColor(200, 200, 200)), 5)
	if all.Color != (Color{R: 200, G: 200, B: 200}) {
		t.Errorf("clamped mix = %s", Format(all))
	}
}

func TestComparisons(t *testing.T) {
	tests := []struct {
		name string
		got  func() (Value, error)
		want bool
	}{
		{"num less", func() (Value, error) { return num(1).LessThan(num(2)) }, true},
		{"num greater", func() (Value, error) { return num(1).GreaterThan(num(2)) }, false},
		{"text less", func() (Value, error) { return StrVal("abc").LessThan(StrVal("abd")) }, true},
		{"text greater", func() (Value, error) { return StrVal("b").GreaterThan(StrVal("a")) }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := tt.got()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if v.Bool != tt.want {
				t.Errorf("got %t, want %t", v.Bool, tt.want)
			}
		})
	}
}

func TestComparisonTypeMismatch(t *testing.T) {
	if _, err := num(1).LessThan(StrVal("a")); Kind(err) != TypeMismatch {
		t.Errorf("cross-type less: err = %v", err)
	}
	if _, err := BoolVal(true).GreaterThan(BoolVal(false)); Kind(err) != TypeMismatch {
		t.Errorf("bool greater: err = %v", err)
	}
}

func TestEquals(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"numbers", num(7), num(7), true},
		{"numbers differ", num(7), num(8), false},
		{"strings", StrVal("x"), StrVal("x"), true},
		{"bools", BoolVal(true), BoolVal(true), true},
		{"units", Unit, Unit, true},
		{"colors", ColorVal(NewColor(1, 2, 3)), ColorVal(NewColor(1, 2, 3)), true},
		{"cross-variant is false, not an error", num(1), StrVal("1"), false},
		{"unit vs zero", Unit, num(0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equals(tt.b).Bool; got != tt.want {
				t.Errorf("got %t, want %t", got, tt.want)
			}
		})
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"true", BoolVal(true), true},
		{"false", BoolVal(false), false},
		{"nonzero", num(3), true},
		{"zero", num(0), false},
		{"unit", Unit, false},
		{"text", StrVal("x"), true},
		{"empty text", StrVal(""), false},
		{"array", ArrayVal([]Value{num(1)}), true},
		{"empty array", ArrayVal(nil), false},
		{"empty map", MapVal(nil), false},
		{"color", ColorVal(NewColor(0, 0, 0)), true},
		{"future", FutureVal(NewPendingFuture()), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Truthy(); got != tt.want {
				t.Errorf("got %t, want %t", got, tt.want)
			}
		})
	}
}

func TestArrayIndex(t *testing.T) {
	arr := ArrayVal([]Value{num(10), num(20), num(30)})

	got, err := arr.Index(num(1))
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if got.Num != 20 {
		t.Errorf("got %v, want 20", got.Num)
	}

	if _, err := arr.Index(num(-1)); Kind(err) != IndexOutOfBounds {
		t.Errorf("negative index: err = %v", err)
	}
	if _, err := arr.Index(num(3)); Kind(err) != IndexOutOfBounds {
		t.Errorf("index == length: err = %v", err)
	}
	if _, err := arr.Index(StrVal("x")); Kind(err) != TypeMismatch {
		t.Errorf("string index: err = %v", err)
	}
}

func TestMapIndex(t *testing.T) {
	m := MapVal([]Pair{
		{Key: StrVal("x"), Val: num(100)},
		{Key: StrVal("y"), Val: num(200)},
	})

	got, err := m.Index(StrVal("x"))
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if got.Num != 100 {
		t.Errorf("got %v, want 100", got.Num)
	}

	if _, err := m.Index(StrVal("z")); Kind(err) != KeyNotFound {
		t.Errorf("missing key: err = %v", err)
	}
}

func TestMapIndexFirstMatchWins(t *testing.T) {
	m := MapVal([]Pair{
		{Key: StrVal("k"), Val: num(1)},
		{Key: StrVal("k"), Val: num(2)},
	})
	got, err := m.Index(StrVal("k"))
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if got.Num != 1 {
		t.Errorf("got %v, want first pair's value", got.Num)
	}
}

func TestIndexNonIndexable(t *testing.T) {
	if _, err := num(5).Index(num(0)); Kind(err) != TypeMismatch {
		t.Errorf("err = %v, want TypeMismatch", err)
	}
}
