package trio

import "testing"

// evalPi runs a postfix line against a fresh session.
func evalPi(t *testing.T, src string) Value {
	t.Helper()
	s := NewSession("pi")
	v, err := s.EvalSource(src)
	if err != nil {
		t.Fatalf("eval %q: %v", src, err)
	}
	return v
}

func TestPiArithmetic(t *testing.T) {
	tests := []struct {
		src  string
		want float64
	}{
		{"3 4 +", 7},
		{"10 3 -", 7},
		{"6 7 *", 42},
		{"20 4 /", 5},
		{"3 4 + 5 *", 35},
		{"2 3 4 * +", 14},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			v := evalPi(t, tt.src)
			if v.Tag != TNum || v.Num != tt.want {
				t.Errorf("got %s, want %v", Format(v), tt.want)
			}
		})
	}
}

func TestPiAssignment(t *testing.T) {
	s := NewSession("pi")
	v, err := s.EvalSource("5 x =")
	if err != nil {
		t.Fatal(err)
	}
	if v.Num != 5 {
		t.Errorf("assignment yielded %s", Format(v))
	}
	bound, ok := s.Env.Get("x")
	if !ok || bound.Num != 5 {
		t.Errorf("x = %v, %t", bound, ok)
	}
}

func TestPiQuotedAssignmentTarget(t *testing.T) {
	s := NewSession("pi")
	if _, err := s.EvalSource(`7 "y" =`); err != nil {
		t.Fatal(err)
	}
	if v, ok := s.Env.Get("y"); !ok || v.Num != 7 {
		t.Errorf("y = %v, %t", v, ok)
	}
}

func TestPiLiterals(t *testing.T) {
	tests := []struct {
		src  string
		want Value
	}{
		{"true", BoolVal(true)},
		{"unit", Unit},
		{`"hi"`, StrVal("hi")},
		{"3.5", num(3.5)},
		{"color(255,0,0)", ColorVal(NewColor(255, 0, 0))},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			v := evalPi(t, tt.src)
			if !v.Equals(tt.want).Bool {
				t.Errorf("got %s, want %s", Format(v), Format(tt.want))
			}
		})
	}
}

func TestPiArrayLiteral(t *testing.T) {
	v := evalPi(t, "[1,2,3]")
	if v.Tag != TArray || len(v.Arr) != 3 || v.Arr[2].Num != 3 {
		t.Errorf("got %s", Format(v))
	}
}

func TestPiMapLiteral(t *testing.T) {
	v := evalPi(t, `[{"x",100},{"y",200}]`)
	if v.Tag != TMap || len(v.Map) != 2 {
		t.Fatalf("got %s", Format(v))
	}
	got, err := v.Index(StrVal("x"))
	if err != nil || got.Num != 100 {
		t.Errorf("lookup = %v, %v", got, err)
	}
}

func TestPiEmptyInputIsUnit(t *testing.T) {
	if v := evalPi(t, "   "); v.Tag != TUnit {
		t.Errorf("got %s, want Unit", Format(v))
	}
}

func TestPiParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"leftover operands", "3 4"},
		{"missing operand", "3 +"},
		{"bad assignment target", "5 6 ="},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession("pi")
			_, err := s.EvalSource(tt.src)
			if Kind(err) != ParseError {
				t.Errorf("err = %v, want ParseError", err)
			}
		})
	}
}

func TestPiResumeAndBreak(t *testing.T) {
	s := NewSession("pi")
	if v, err := s.EvalSource("resume"); err != nil || v.Tag != TUnit {
		t.Errorf("resume = %s, %v", Format(v), err)
	}
	if v, err := s.EvalSource("break"); err != nil || v.Tag != TUnit {
		t.Errorf("break = %s, %v", Format(v), err)
	}
}
