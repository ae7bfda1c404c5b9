package trio

import (
	"fmt"
	"strings"
)

// Session ties an evaluator to a long-lived environment and a current
// dialect. Variable bindings and pending continuations survive across
// top-level evaluations; errors abort only the expression that raised them.
type Session struct {
	Eval    *Evaluator
	Env     *Env
	Dialect string
}

func NewSession(dialect string) *Session {
	return &Session{
		Eval:    NewEvaluator(),
		Env:     NewEnv(),
		Dialect: dialect,
	}
}

// SetDialect switches the front-end. Valid names are pi, rho and tau.
func (s *Session) SetDialect(name string) error {
	switch name {
	case "pi", "rho", "tau":
		s.Dialect = name
		return nil
	}
	return fmt.Errorf("unknown dialect %q", name)
}

// EvalSource parses src with the current dialect and evaluates the resulting
// statements in order against the session environment, returning the last
// value.
func (s *Session) EvalSource(src string) (Value, error) {
	var stmts []Expr
	switch s.Dialect {
	case "pi":
		expr, err := ParsePi(src)
		if err != nil {
			return Unit, err
		}
		stmts = []Expr{expr}
	case "tau":
		parsed, err := ParseTau(src)
		if err != nil {
			return Unit, err
		}
		stmts = parsed
	default:
		parsed, err := ParseRho(src)
		if err != nil {
			return Unit, err
		}
		stmts = parsed
	}

	result := Unit
	for _, stmt := range stmts {
		v, err := s.Eval.Eval(stmt, s.Env)
		if err != nil {
			return Unit, err
		}
		result = v
	}
	return result, nil
}

// SpliceBackticks replaces every `cmd` span in line with the command's
// captured output and returns the assembled text. Command failures abort the
// whole line.
func (s *Session) SpliceBackticks(line string) (string, error) {
	var out strings.Builder
	rest := line
	for {
		start := strings.IndexByte(rest, '`')
		if start < 0 {
			out.WriteString(rest)
			return out.String(), nil
		}
		end := strings.IndexByte(rest[start+1:], '`')
		if end < 0 {
			out.WriteString(rest)
			return out.String(), nil
		}
		out.WriteString(rest[:start])
		cmd := rest[start+1 : start+1+end]
		if cmd != "" {
			v, err := s.Eval.Eval(&CommandExpr{
				Command: &LiteralExpr{Value: StrVal(cmd)},
			}, s.Env)
			if err != nil {
				return "", err
			}
			out.WriteString(v.Str)
		}
		rest = rest[start+2+end:]
	}
}
