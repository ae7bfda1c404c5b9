package trio

import (
	"fmt"
	"strings"
)

// Expr is a node of the common expression tree. All three dialect front-ends
// reduce to this grammar; the evaluator is total over it.
type Expr interface {
	String() string
}

type LiteralExpr struct {
	Value Value
}

func (e *LiteralExpr) String() string { return Format(e.Value) }

type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpBlend
	OpLess
	OpGreater
	OpEquals
	OpCompose
	OpChoice
)

func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpBlend:
		return "blend"
	case OpLess:
		return "<"
	case OpGreater:
		return ">"
	case OpEquals:
		return "=="
	case OpCompose:
		return ";"
	case OpChoice:
		return "|"
	default:
		return "?"
	}
}

type BinaryExpr struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (e *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left, e.Op, e.Right)
}

// ColorExpr builds a color from three channel expressions; each channel is
// coerced to a number and clamped to [0,255].
type ColorExpr struct {
	R, G, B Expr
}

func (e *ColorExpr) String() string {
	return fmt.Sprintf("color(%s, %s, %s)", e.R, e.G, e.B)
}

type ScaleExpr struct {
	Target Expr
	Factor Expr
}

func (e *ScaleExpr) String() string {
	return fmt.Sprintf("scale(%s, %s)", e.Target, e.Factor)
}

type MixExpr struct {
	A, B  Expr
	Ratio Expr
}

func (e *MixExpr) String() string {
	return fmt.Sprintf("mix(%s, %s, %s)", e.A, e.B, e.Ratio)
}

type VarExpr struct {
	Name string
}

func (e *VarExpr) String() string { return e.Name }

// AssignExpr updates an existing binding where one is visible, otherwise
// binds in the current scope; it yields the bound value, so assignment is
// an expression, not a statement.
type AssignExpr struct {
	Name  string
	Value Expr
}

func (e *AssignExpr) String() string {
	return fmt.Sprintf("%s = %s", e.Name, e.Value)
}

// BlockExpr evaluates its body in a fresh child scope and yields the last
// value, or Unit when empty.
type BlockExpr struct {
	Body []Expr
}

func (e *BlockExpr) String() string {
	parts := make([]string, len(e.Body))
	for i, s := range e.Body {
		parts[i] = s.String()
	}
	return "{" + strings.Join(parts, "; ") + "}"
}

type ForExpr struct {
	Var    string
	Source Expr
	Body   []Expr
}

func (e *ForExpr) String() string {
	return fmt.Sprintf("for %s in %s", e.Var, e.Source)
}

type WhileExpr struct {
	Cond Expr
	Body []Expr
}

func (e *WhileExpr) String() string {
	return fmt.Sprintf("while %s", e.Cond)
}

type ResumeExpr struct{}

func (e *ResumeExpr) String() string { return "resume" }

type BreakExpr struct{}

func (e *BreakExpr) String() string { return "break" }

type ContinueExpr struct {
	Target Expr
}

func (e *ContinueExpr) String() string {
	return fmt.Sprintf("continue %s", e.Target)
}

type AsyncExpr struct {
	Body Expr
}

func (e *AsyncExpr) String() string { return "async " + e.Body.String() }

type AwaitExpr struct {
	Target Expr
}

func (e *AwaitExpr) String() string { return "await " + e.Target.String() }

type IndexExpr struct {
	Target Expr
	Index  Expr
}

func (e *IndexExpr) String() string {
	return fmt.Sprintf("%s[%s]", e.Target, e.Index)
}

// CommandExpr runs its text as a host shell command. The text may itself be
// runtime-computed; this is a deliberate, unsandboxed trust boundary.
type CommandExpr struct {
	Command Expr
}

func (e *CommandExpr) String() string { return "`" + e.Command.String() + "`" }

// EmitExpr prints array elements to the evaluator's output and yields Unit;
// for any other value it is the identity.
type EmitExpr struct {
	Target Expr
}

func (e *EmitExpr) String() string { return e.Target.String() + " -->" }

// ArrayLitExpr evaluates its elements left to right and builds an array.
type ArrayLitExpr struct {
	Elems []Expr
}

func (e *ArrayLitExpr) String() string {
	parts := make([]string, len(e.Elems))
	for i, el := range e.Elems {
		parts[i] = el.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

type MapEntry struct {
	Key Expr
	Val Expr
}

// MapLitExpr builds an ordered map; duplicate keys are kept as written.
type MapLitExpr struct {
	Entries []MapEntry
}

func (e *MapLitExpr) String() string {
	parts := make([]string, len(e.Entries))
	for i, en := range e.Entries {
		parts[i] = "{" + en.Key.String() + ", " + en.Val.String() + "}"
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// retryAwaitExpr is the deferred half of awaiting a pending future. It is
// one-shot: a future that is still pending on retry yields itself rather
// than re-queueing.
type retryAwaitExpr struct {
	Target Expr
}

func (e *retryAwaitExpr) String() string { return "await " + e.Target.String() }
