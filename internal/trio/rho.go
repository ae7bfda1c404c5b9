package trio

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// The infix dialect. Expressions parse through a participle grammar;
// for/while headers take tab-indented bodies, assembled by an indentation
// grouper before the per-line grammar runs.

var rhoLexerDef = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Backtick", Pattern: "`[^`]*`"},
	{Name: "String", Pattern: `"[^"]*"|'[^']*'`},
	{Name: "Number", Pattern: `[0-9]+(\.[0-9]+)?`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `==|[-+*/<>=,(){}\[\];|]`},
	{Name: "whitespace", Pattern: `[ \t]+`},
})

var rhoParser = participle.MustBuild[rhoLine](
	participle.Lexer(rhoLexerDef),
	participle.UseLookahead(2),
)

type rhoLine struct {
	Assign *rhoAssign `parser:"  @@"`
	Expr   *rhoSeq    `parser:"| @@"`
}

type rhoAssign struct {
	Name  string  `parser:"@Ident \"=\""`
	Value *rhoSeq `parser:"@@"`
}

// Continuation algebra sits at the lowest precedence: c1 ; c2 composes,
// c1 | c2 chooses.
type rhoSeq struct {
	Left *rhoCmp       `parser:"@@"`
	Rest []*rhoSeqTail `parser:"@@*"`
}

type rhoSeqTail struct {
	Op   string  `parser:"@(\";\" | \"|\")"`
	Term *rhoCmp `parser:"@@"`
}

type rhoCmp struct {
	Left  *rhoAdd `parser:"@@"`
	Op    string  `parser:"[ @(\"<\" | \">\" | \"==\")"`
	Right *rhoAdd `parser:"  @@ ]"`
}

type rhoAdd struct {
	Left *rhoMul       `parser:"@@"`
	Rest []*rhoAddTail `parser:"@@*"`
}

type rhoAddTail struct {
	Op   string  `parser:"@(\"+\" | \"-\")"`
	Term *rhoMul `parser:"@@"`
}

type rhoMul struct {
	Left *rhoPostfix   `parser:"@@"`
	Rest []*rhoMulTail `parser:"@@*"`
}

type rhoMulTail struct {
	Op   string      `parser:"@(\"*\" | \"/\")"`
	Term *rhoPostfix `parser:"@@"`
}

type rhoPostfix struct {
	Primary *rhoPrimary `parser:"@@"`
	Indexes []*rhoSeq   `parser:"(\"[\" @@ \"]\")*"`
}

type rhoPrimary struct {
	Color    *rhoColor    `parser:"  @@"`
	Blend    *rhoBlend    `parser:"| @@"`
	Scale    *rhoScale    `parser:"| @@"`
	Mix      *rhoMix      `parser:"| @@"`
	Continue *rhoContinue `parser:"| @@"`
	Resume   bool         `parser:"| @\"resume\""`
	Break    bool         `parser:"| @\"break\""`
	Array    *rhoArray    `parser:"| @@"`
	Neg      *rhoPrimary  `parser:"| \"-\" @@"`
	Command  *string      `parser:"| @Backtick"`
	Number   *float64     `parser:"| @Number"`
	Str      *string      `parser:"| @String"`
	Ident    *string      `parser:"| @Ident"`
	Sub      *rhoSeq      `parser:"| \"(\" @@ \")\""`
}

type rhoColor struct {
	R *rhoSeq `parser:"\"color\" \"(\" @@ \",\""`
	G *rhoSeq `parser:"@@ \",\""`
	B *rhoSeq `parser:"@@ \")\""`
}

type rhoBlend struct {
	A *rhoSeq `parser:"\"blend\" \"(\" @@ \",\""`
	B *rhoSeq `parser:"@@ \")\""`
}

type rhoScale struct {
	Target *rhoSeq `parser:"\"scale\" \"(\" @@ \",\""`
	Factor *rhoSeq `parser:"@@ \")\""`
}

type rhoMix struct {
	A     *rhoSeq `parser:"\"mix\" \"(\" @@ \",\""`
	B     *rhoSeq `parser:"@@ \",\""`
	Ratio *rhoSeq `parser:"@@ \")\""`
}

type rhoContinue struct {
	Target *rhoPostfix `parser:"\"continue\" @@"`
}

// rhoArray covers both array literals [1,2,3] and map literals [{k,v},{k,v}].
type rhoArray struct {
	Pairs []*rhoPair `parser:"\"[\" ( @@ ( \",\" @@ )*"`
	Elems []*rhoSeq  `parser:"    | @@ ( \",\" @@ )* )? \"]\""`
}

type rhoPair struct {
	Key *rhoSeq `parser:"\"{\" @@ \",\""`
	Val *rhoSeq `parser:"@@ \"}\""`
}

// ParseRho turns infix source into a sequence of top-level expression trees.
func ParseRho(src string) ([]Expr, error) {
	lines, err := rhoSplit(src)
	if err != nil {
		return nil, err
	}
	stmts, next, err := parseRhoBlock(lines, 0, 0)
	if err != nil {
		return nil, err
	}
	if next != len(lines) {
		return nil, &TrioError{
			Kind:    ParseError,
			Message: fmt.Sprintf("line %d: unexpected indentation", lines[next].num),
		}
	}
	return stmts, nil
}

type rhoSrcLine struct {
	depth int
	text  string
	num   int
}

func rhoSplit(src string) ([]rhoSrcLine, error) {
	var out []rhoSrcLine
	for i, raw := range strings.Split(src, "\n") {
		depth := 0
		for depth < len(raw) && raw[depth] == '\t' {
			depth++
		}
		text := strings.TrimSpace(raw[depth:])
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		out = append(out, rhoSrcLine{depth: depth, text: text, num: i + 1})
	}
	return out, nil
}

func parseRhoBlock(lines []rhoSrcLine, start, depth int) ([]Expr, int, error) {
	var stmts []Expr
	i := start
	for i < len(lines) {
		ln := lines[i]
		if ln.depth < depth {
			break
		}
		if ln.depth > depth {
			return nil, 0, &TrioError{
				Kind:    ParseError,
				Message: fmt.Sprintf("line %d: unexpected indentation", ln.num),
			}
		}

		switch {
		case strings.HasPrefix(ln.text, "for "):
			header := strings.TrimSpace(strings.TrimPrefix(ln.text, "for "))
			parts := strings.SplitN(header, " in ", 2)
			if len(parts) != 2 || !isIdent(strings.TrimSpace(parts[0])) {
				return nil, 0, &TrioError{
					Kind:    ParseError,
					Message: fmt.Sprintf("line %d: expected 'for <name> in <expr>'", ln.num),
				}
			}
			source, err := parseRhoLine(strings.TrimSpace(parts[1]))
			if err != nil {
				return nil, 0, lineErr(ln.num, err)
			}
			body, next, err := parseRhoBlock(lines, i+1, depth+1)
			if err != nil {
				return nil, 0, err
			}
			stmts = append(stmts, &ForExpr{Var: strings.TrimSpace(parts[0]), Source: source, Body: body})
			i = next

		case strings.HasPrefix(ln.text, "while "):
			cond, err := parseRhoLine(strings.TrimSpace(strings.TrimPrefix(ln.text, "while ")))
			if err != nil {
				return nil, 0, lineErr(ln.num, err)
			}
			body, next, err := parseRhoBlock(lines, i+1, depth+1)
			if err != nil {
				return nil, 0, err
			}
			stmts = append(stmts, &WhileExpr{Cond: cond, Body: body})
			i = next

		default:
			expr, err := parseRhoLine(ln.text)
			if err != nil {
				return nil, 0, lineErr(ln.num, err)
			}
			stmts = append(stmts, expr)
			i++
		}
	}
	return stmts, i, nil
}

func lineErr(num int, err error) error {
	if te, ok := err.(*TrioError); ok {
		return &TrioError{Kind: te.Kind, Message: fmt.Sprintf("line %d: %s", num, te.Message), Help: te.Help}
	}
	return err
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// parseRhoLine parses a single infix expression or assignment.
func parseRhoLine(text string) (Expr, error) {
	line, err := rhoParser.ParseString("", text)
	if err != nil {
		return nil, &TrioError{Kind: ParseError, Message: err.Error()}
	}
	if line.Assign != nil {
		value, err := line.Assign.Value.toExpr()
		if err != nil {
			return nil, err
		}
		return &AssignExpr{Name: line.Assign.Name, Value: value}, nil
	}
	return line.Expr.toExpr()
}

func (s *rhoSeq) toExpr() (Expr, error) {
	left, err := s.Left.toExpr()
	if err != nil {
		return nil, err
	}
	for _, tail := range s.Rest {
		right, err := tail.Term.toExpr()
		if err != nil {
			return nil, err
		}
		op := OpCompose
		if tail.Op == "|" {
			op = OpChoice
		}
		left = &BinaryExpr{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (c *rhoCmp) toExpr() (Expr, error) {
	left, err := c.Left.toExpr()
	if err != nil {
		return nil, err
	}
	if c.Op == "" {
		return left, nil
	}
	right, err := c.Right.toExpr()
	if err != nil {
		return nil, err
	}
	op := OpEquals
	switch c.Op {
	case "<":
		op = OpLess
	case ">":
		op = OpGreater
	}
	return &BinaryExpr{Op: op, Left: left, Right: right}, nil
}

func (a *rhoAdd) toExpr() (Expr, error) {
	left, err := a.Left.toExpr()
	if err != nil {
		return nil, err
	}
	for _, tail := range a.Rest {
		right, err := tail.Term.toExpr()
		if err != nil {
			return nil, err
		}
		op := OpAdd
		if tail.Op == "-" {
			op = OpSub
		}
		left = &BinaryExpr{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (m *rhoMul) toExpr() (Expr, error) {
	left, err := m.Left.toExpr()
	if err != nil {
		return nil, err
	}
	for _, tail := range m.Rest {
		right, err := tail.Term.toExpr()
		if err != nil {
			return nil, err
		}
		op := OpMul
		if tail.Op == "/" {
			op = OpDiv
		}
		left = &BinaryExpr{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *rhoPostfix) toExpr() (Expr, error) {
	expr, err := p.Primary.toExpr()
	if err != nil {
		return nil, err
	}
	for _, idx := range p.Indexes {
		index, err := idx.toExpr()
		if err != nil {
			return nil, err
		}
		expr = &IndexExpr{Target: expr, Index: index}
	}
	return expr, nil
}

func (p *rhoPrimary) toExpr() (Expr, error) {
	switch {
	case p.Color != nil:
		return triple(p.Color.R, p.Color.G, p.Color.B, func(r, g, b Expr) Expr {
			return &ColorExpr{R: r, G: g, B: b}
		})
	case p.Blend != nil:
		return triple(p.Blend.A, p.Blend.B, nil, func(a, b, _ Expr) Expr {
			return &BinaryExpr{Op: OpBlend, Left: a, Right: b}
		})
	case p.Scale != nil:
		return triple(p.Scale.Target, p.Scale.Factor, nil, func(t, f, _ Expr) Expr {
			return &ScaleExpr{Target: t, Factor: f}
		})
	case p.Mix != nil:
		return triple(p.Mix.A, p.Mix.B, p.Mix.Ratio, func(a, b, r Expr) Expr {
			return &MixExpr{A: a, B: b, Ratio: r}
		})
	case p.Continue != nil:
		target, err := p.Continue.Target.toExpr()
		if err != nil {
			return nil, err
		}
		return &ContinueExpr{Target: target}, nil
	case p.Resume:
		return &ResumeExpr{}, nil
	case p.Break:
		return &BreakExpr{}, nil
	case p.Array != nil:
		return p.Array.toExpr()
	case p.Neg != nil:
		inner, err := p.Neg.toExpr()
		if err != nil {
			return nil, err
		}
		return &BinaryExpr{Op: OpSub, Left: &LiteralExpr{Value: NumVal(0)}, Right: inner}, nil
	case p.Command != nil:
		text := strings.Trim(*p.Command, "`")
		return &CommandExpr{Command: &LiteralExpr{Value: StrVal(text)}}, nil
	case p.Number != nil:
		return &LiteralExpr{Value: NumVal(*p.Number)}, nil
	case p.Str != nil:
		s := *p.Str
		return &LiteralExpr{Value: StrVal(s[1 : len(s)-1])}, nil
	case p.Ident != nil:
		switch *p.Ident {
		case "true":
			return &LiteralExpr{Value: BoolVal(true)}, nil
		case "false":
			return &LiteralExpr{Value: BoolVal(false)}, nil
		case "unit":
			return &LiteralExpr{Value: Unit}, nil
		}
		return &VarExpr{Name: *p.Ident}, nil
	case p.Sub != nil:
		return p.Sub.toExpr()
	}
	return nil, &TrioError{Kind: ParseError, Message: "empty expression"}
}

// triple converts up to three sub-expressions and combines them; the third
// may be nil for two-argument forms.
func triple(a, b, c *rhoSeq, build func(a, b, c Expr) Expr) (Expr, error) {
	ea, err := a.toExpr()
	if err != nil {
		return nil, err
	}
	eb, err := b.toExpr()
	if err != nil {
		return nil, err
	}
	var ec Expr
	if c != nil {
		ec, err = c.toExpr()
		if err != nil {
			return nil, err
		}
	}
	return build(ea, eb, ec), nil
}

func (a *rhoArray) toExpr() (Expr, error) {
	if len(a.Pairs) > 0 {
		entries := make([]MapEntry, 0, len(a.Pairs))
		for _, p := range a.Pairs {
			key, err := p.Key.toExpr()
			if err != nil {
				return nil, err
			}
			val, err := p.Val.toExpr()
			if err != nil {
				return nil, err
			}
			entries = append(entries, MapEntry{Key: key, Val: val})
		}
		return &MapLitExpr{Entries: entries}, nil
	}
	elems := make([]Expr, 0, len(a.Elems))
	for _, el := range a.Elems {
		expr, err := el.toExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, expr)
	}
	return &ArrayLitExpr{Elems: elems}, nil
}
