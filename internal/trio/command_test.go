package trio

import (
	"strings"
	"testing"
)

func TestRunCommandCapturesStdout(t *testing.T) {
	v, err := runCommand("echo hello")
	if err != nil {
		t.Fatal(err)
	}
	if v.Tag != TStr || v.Str != "hello" {
		t.Errorf("got %s", Format(v))
	}
}

func TestRunCommandKeepsInnerNewlines(t *testing.T) {
	v, err := runCommand("printf 'a\\nb\\n'")
	if err != nil {
		t.Fatal(err)
	}
	if v.Str != "a\nb" {
		t.Errorf("got %q, want one trailing newline trimmed", v.Str)
	}
}

func TestRunCommandNonZeroExit(t *testing.T) {
	_, err := runCommand("exit 3")
	if Kind(err) != ExternalCommandError {
		t.Fatalf("err = %v, want ExternalCommandError", err)
	}
	if !strings.Contains(err.Error(), "3") {
		t.Errorf("error %q does not carry the exit status", err.Error())
	}
}

func TestRunCommandStderrInHelp(t *testing.T) {
	_, err := runCommand("echo oops >&2; exit 1")
	te, ok := err.(*TrioError)
	if !ok {
		t.Fatalf("err is %T", err)
	}
	if !strings.Contains(te.Help, "oops") {
		t.Errorf("help %q does not carry stderr", te.Help)
	}
}

func TestCommandThroughDialect(t *testing.T) {
	v := evalRho(t, "`echo from rho`")
	if v.Str != "from rho" {
		t.Errorf("got %s", Format(v))
	}
}

func TestCommandOutputInExpression(t *testing.T) {
	v := evalRho(t, "`echo abc` + `echo def`")
	if v.Str != "abcdef" {
		t.Errorf("got %s", Format(v))
	}
}

func TestSpliceBackticks(t *testing.T) {
	s := NewSession("pi")
	out, err := s.SpliceBackticks("before `echo mid` after")
	if err != nil {
		t.Fatal(err)
	}
	if out != "before mid after" {
		t.Errorf("got %q", out)
	}
}

func TestSpliceBackticksUnterminated(t *testing.T) {
	s := NewSession("pi")
	out, err := s.SpliceBackticks("odd ` tick")
	if err != nil {
		t.Fatal(err)
	}
	if out != "odd ` tick" {
		t.Errorf("got %q, want the line untouched", out)
	}
}

func TestSpliceBackticksFailureAborts(t *testing.T) {
	s := NewSession("pi")
	if _, err := s.SpliceBackticks("x `exit 1` y"); Kind(err) != ExternalCommandError {
		t.Errorf("err = %v, want ExternalCommandError", err)
	}
}
