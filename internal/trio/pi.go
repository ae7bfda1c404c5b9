package trio

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePi reads the postfix dialect: whitespace-separated tokens where
// operators pop their operands from a stack of partial trees. The result is
// a single expression tree; leftover operands are a parse error.
func ParsePi(input string) (Expr, error) {
	tokens := strings.Fields(input)
	var stack []Expr

	pop2 := func(op string) (Expr, Expr, error) {
		if len(stack) < 2 {
			return nil, nil, &TrioError{
				Kind:    ParseError,
				Message: fmt.Sprintf("not enough operands for %s", op),
			}
		}
		b := stack[len(stack)-1]
		a := stack[len(stack)-2]
		stack = stack[:len(stack)-2]
		return a, b, nil
	}

	for _, tok := range tokens {
		switch tok {
		case "+", "-", "*", "/":
			a, b, err := pop2(tok)
			if err != nil {
				return nil, err
			}
			stack = append(stack, &BinaryExpr{Op: binOpFor(tok), Left: a, Right: b})
		case "=":
			// value name =
			a, b, err := pop2("=")
			if err != nil {
				return nil, err
			}
			name, err := assignName(b)
			if err != nil {
				return nil, err
			}
			stack = append(stack, &AssignExpr{Name: name, Value: a})
		case "-->":
			if len(stack) == 0 {
				return nil, &TrioError{Kind: ParseError, Message: "no value to print"}
			}
			top := stack[len(stack)-1]
			stack[len(stack)-1] = &EmitExpr{Target: top}
		case "resume":
			stack = append(stack, &ResumeExpr{})
		case "break":
			stack = append(stack, &BreakExpr{})
		default:
			if v, err := parseLiteral(tok); err == nil {
				stack = append(stack, &LiteralExpr{Value: v})
			} else {
				stack = append(stack, &VarExpr{Name: tok})
			}
		}
	}

	switch len(stack) {
	case 0:
		return &LiteralExpr{Value: Unit}, nil
	case 1:
		return stack[0], nil
	default:
		return nil, &TrioError{
			Kind:    ParseError,
			Message: fmt.Sprintf("stack has %d values remaining", len(stack)),
		}
	}
}

func binOpFor(tok string) BinaryOp {
	switch tok {
	case "+":
		return OpAdd
	case "-":
		return OpSub
	case "*":
		return OpMul
	default:
		return OpDiv
	}
}

// assignName accepts either a quoted string ("x" 5 =) or a bare word as the
// binding target of a postfix assignment.
func assignName(e Expr) (string, error) {
	switch n := e.(type) {
	case *LiteralExpr:
		if n.Value.Tag == TStr {
			return n.Value.Str, nil
		}
	case *VarExpr:
		return n.Name, nil
	}
	return "", &TrioError{Kind: ParseError, Message: "variable name must be a string"}
}

// parseLiteral reads a self-contained literal token: a number, a quoted
// string, an array [1,2,3], a map [{k,v},{k,v}] or color(r,g,b).
func parseLiteral(input string) (Value, error) {
	input = strings.TrimSpace(input)

	if len(input) >= 2 {
		if (input[0] == '"' && input[len(input)-1] == '"') ||
			(input[0] == '\'' && input[len(input)-1] == '\'') {
			return StrVal(input[1 : len(input)-1]), nil
		}
	}

	if n, err := strconv.ParseFloat(input, 64); err == nil {
		return NumVal(n), nil
	}

	switch input {
	case "true":
		return BoolVal(true), nil
	case "false":
		return BoolVal(false), nil
	case "unit":
		return Unit, nil
	}

	if strings.HasPrefix(input, "[") && strings.HasSuffix(input, "]") {
		inner := input[1 : len(input)-1]
		if strings.TrimSpace(inner) == "" {
			return ArrayVal(nil), nil
		}
		if strings.HasPrefix(strings.TrimSpace(inner), "{") {
			return parseMapLiteral(inner)
		}
		var elems []Value
		for _, part := range strings.Split(inner, ",") {
			v, err := parseLiteral(part)
			if err != nil {
				return Unit, err
			}
			elems = append(elems, v)
		}
		return ArrayVal(elems), nil
	}

	if strings.HasPrefix(input, "color(") && strings.HasSuffix(input, ")") {
		return parseColorLiteral(input[6 : len(input)-1])
	}

	return Unit, &TrioError{
		Kind:    ParseError,
		Message: fmt.Sprintf("cannot parse value: %s", input),
	}
}

func parseColorLiteral(args string) (Value, error) {
	parts := strings.Split(args, ",")
	if len(parts) != 3 {
		return Unit, &TrioError{Kind: ParseError, Message: "color takes exactly three channels"}
	}
	var ch [3]uint8
	for i, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return Unit, &TrioError{
				Kind:    ParseError,
				Message: fmt.Sprintf("invalid color channel %q", strings.TrimSpace(p)),
			}
		}
		ch[i] = uint8(n)
	}
	return ColorVal(NewColor(ch[0], ch[1], ch[2])), nil
}

// parseMapLiteral reads the inner text of [{k,v},{k,v}]; duplicate keys are
// kept in order.
func parseMapLiteral(inner string) (Value, error) {
	var pairs []Pair
	depth := 0
	var current strings.Builder

	for _, ch := range inner {
		switch ch {
		case '{':
			depth++
			if depth == 1 {
				current.Reset()
				continue
			}
		case '}':
			depth--
			if depth == 0 {
				parts := strings.Split(current.String(), ",")
				if len(parts) != 2 {
					return Unit, &TrioError{Kind: ParseError, Message: "map entries are {key,value} pairs"}
				}
				key, err := parseLiteral(parts[0])
				if err != nil {
					return Unit, err
				}
				val, err := parseLiteral(parts[1])
				if err != nil {
					return Unit, err
				}
				pairs = append(pairs, Pair{Key: key, Val: val})
				continue
			}
		}
		if depth > 0 {
			current.WriteRune(ch)
		}
	}
	if depth != 0 {
		return Unit, &TrioError{Kind: ParseError, Message: "unbalanced braces in map literal"}
	}
	return MapVal(pairs), nil
}
