package trio

import (
	"path/filepath"
	"testing"
)

func TestSessionSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.gz")

	env := NewEnv()
	env.Set("n", num(42))
	env.Set("s", StrVal("hello"))
	env.Set("b", BoolVal(true))
	env.Set("c", ColorVal(NewColor(10, 20, 30)))
	env.Set("arr", ArrayVal([]Value{num(1), StrVal("two")}))
	env.Set("m", MapVal([]Pair{{Key: StrVal("k"), Val: num(9)}}))
	env.Set("u", Unit)

	if err := SaveSession(path, env); err != nil {
		t.Fatal(err)
	}

	restored := NewEnv()
	if err := LoadSession(path, restored); err != nil {
		t.Fatal(err)
	}

	for name := range env.Snapshot() {
		orig, _ := env.Get(name)
		back, ok := restored.Get(name)
		if !ok {
			t.Errorf("%s not restored", name)
			continue
		}
		if !back.Equals(orig).Bool && orig.Tag != TArray && orig.Tag != TMap {
			t.Errorf("%s = %s, want %s", name, Format(back), Format(orig))
		}
	}

	arr, _ := restored.Get("arr")
	if arr.Tag != TArray || len(arr.Arr) != 2 || arr.Arr[1].Str != "two" {
		t.Errorf("arr = %s", Format(arr))
	}
	m, _ := restored.Get("m")
	if got, err := m.Index(StrVal("k")); err != nil || got.Num != 9 {
		t.Errorf("m lookup = %v, %v", got, err)
	}
}

func TestSessionSaveDegradesFuturesToUnit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.gz")

	env := NewEnv()
	env.Set("f", FutureVal(ResolvedFuture(num(1))))
	env.Set("c", ContVal(NewContinuation(&LiteralExpr{Value: num(2)}, env)))

	if err := SaveSession(path, env); err != nil {
		t.Fatal(err)
	}
	restored := NewEnv()
	if err := LoadSession(path, restored); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"f", "c"} {
		v, ok := restored.Get(name)
		if !ok || v.Tag != TUnit {
			t.Errorf("%s = %s, want Unit", name, Format(v))
		}
	}
}

func TestSessionLoadMissingFile(t *testing.T) {
	if err := LoadSession(filepath.Join(t.TempDir(), "nope.gz"), NewEnv()); err == nil {
		t.Error("expected an error")
	}
}

func TestSessionLoadOverlaysExistingEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.gz")
	saved := NewEnv()
	saved.Set("x", num(2))
	if err := SaveSession(path, saved); err != nil {
		t.Fatal(err)
	}

	env := NewEnv()
	env.Set("x", num(1))
	env.Set("keep", StrVal("yes"))
	if err := LoadSession(path, env); err != nil {
		t.Fatal(err)
	}

	if v, _ := env.Get("x"); v.Num != 2 {
		t.Errorf("x = %s, want overwritten", Format(v))
	}
	if v, _ := env.Get("keep"); v.Str != "yes" {
		t.Errorf("keep = %s, want untouched", Format(v))
	}
}
