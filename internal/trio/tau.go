package trio

import "strings"

// ParseTau reads the async dialect: `async <expr>` and `await <expr>`
// prefixes, standalone or on the right-hand side of an assignment.
// Everything else is plain infix and delegates to the rho front-end.
func ParseTau(src string) ([]Expr, error) {
	trimmed := strings.TrimSpace(src)

	if fields := strings.Fields(trimmed); len(fields) >= 3 && fields[1] == "=" &&
		(fields[2] == "async" || fields[2] == "await") && isIdent(fields[0]) {
		idx := strings.Index(trimmed, fields[2]) + len(fields[2])
		inner, err := parseRhoLine(strings.TrimSpace(trimmed[idx:]))
		if err != nil {
			return nil, err
		}
		var rhs Expr
		if fields[2] == "async" {
			rhs = &AsyncExpr{Body: inner}
		} else {
			rhs = &AwaitExpr{Target: inner}
		}
		return []Expr{&AssignExpr{Name: fields[0], Value: rhs}}, nil
	}

	if rest, ok := strings.CutPrefix(trimmed, "async "); ok {
		inner, err := parseRhoLine(strings.TrimSpace(rest))
		if err != nil {
			return nil, err
		}
		return []Expr{&AsyncExpr{Body: inner}}, nil
	}

	if rest, ok := strings.CutPrefix(trimmed, "await "); ok {
		inner, err := parseRhoLine(strings.TrimSpace(rest))
		if err != nil {
			return nil, err
		}
		return []Expr{&AwaitExpr{Target: inner}}, nil
	}

	return ParseRho(src)
}
