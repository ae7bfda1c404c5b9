package trio

import (
	"fmt"
	"io"
	"os"
)

// Evaluator reduces expression trees to values. It owns the continuation
// stack for its session; a failing evaluation aborts only the current
// top-level expression, never the session.
type Evaluator struct {
	conts contStack
	Out   io.Writer
}

func NewEvaluator() *Evaluator {
	return &Evaluator{Out: os.Stdout}
}

// PendingContinuations reports how many deferred computations are stacked.
func (e *Evaluator) PendingContinuations() int {
	return e.conts.len()
}

// Eval is a structural match on node kind. Operands evaluate left to right;
// errors propagate upward and are never replaced with defaults.
func (e *Evaluator) Eval(expr Expr, env *Env) (Value, error) {
	switch n := expr.(type) {
	case *LiteralExpr:
		return n.Value, nil

	case *BinaryExpr:
		return e.evalBinary(n, env)

	case *ColorExpr:
		return e.evalColor(n, env)

	case *ScaleExpr:
		target, err := e.Eval(n.Target, env)
		if err != nil {
			return Unit, err
		}
		factor, err := e.evalNum(n.Factor, env)
		if err != nil {
			return Unit, err
		}
		return target.Scale(factor)

	case *MixExpr:
		a, err := e.Eval(n.A, env)
		if err != nil {
			return Unit, err
		}
		b, err := e.Eval(n.B, env)
		if err != nil {
			return Unit, err
		}
		ratio, err := e.evalNum(n.Ratio, env)
		if err != nil {
			return Unit, err
		}
		return a.Mix(b, ratio)

	case *VarExpr:
		v, ok := env.Get(n.Name)
		if !ok {
			return Unit, &TrioError{
				Kind:    UnboundVariable,
				Message: fmt.Sprintf("variable %q is not defined", n.Name),
				Help:    fmt.Sprintf("assign it first: %s = <value>", n.Name),
			}
		}
		return v, nil

	case *AssignExpr:
		v, err := e.Eval(n.Value, env)
		if err != nil {
			return Unit, err
		}
		env.Set(n.Name, v)
		return v, nil

	case *BlockExpr:
		return e.evalBody(n.Body, env.Child())

	case *ForExpr:
		return e.evalFor(n, env)

	case *WhileExpr:
		return e.evalWhile(n, env)

	case *ResumeExpr:
		return e.Resume()

	case *BreakExpr:
		return e.Break(), nil

	case *ContinueExpr:
		v, err := e.Eval(n.Target, env)
		if err != nil {
			return Unit, err
		}
		return e.ContinueWith(v, env)

	case *AsyncExpr:
		v, err := e.Eval(n.Body, env)
		if err != nil {
			return FutureVal(RejectedFuture(err.Error())), nil
		}
		return FutureVal(ResolvedFuture(v)), nil

	case *AwaitExpr:
		return e.evalAwait(n.Target, env, false)

	case *retryAwaitExpr:
		return e.evalAwait(n.Target, env, true)

	case *IndexExpr:
		target, err := e.Eval(n.Target, env)
		if err != nil {
			return Unit, err
		}
		idx, err := e.Eval(n.Index, env)
		if err != nil {
			return Unit, err
		}
		return target.Index(idx)

	case *CommandExpr:
		text, err := e.Eval(n.Command, env)
		if err != nil {
			return Unit, err
		}
		if text.Tag != TStr {
			return Unit, typeMismatch("command text must be a string, got %s", text.Tag)
		}
		return runCommand(text.Str)

	case *ArrayLitExpr:
		elems := make([]Value, 0, len(n.Elems))
		for _, el := range n.Elems {
			v, err := e.Eval(el, env)
			if err != nil {
				return Unit, err
			}
			elems = append(elems, v)
		}
		return ArrayVal(elems), nil

	case *MapLitExpr:
		pairs := make([]Pair, 0, len(n.Entries))
		for _, entry := range n.Entries {
			key, err := e.Eval(entry.Key, env)
			if err != nil {
				return Unit, err
			}
			val, err := e.Eval(entry.Val, env)
			if err != nil {
				return Unit, err
			}
			pairs = append(pairs, Pair{Key: key, Val: val})
		}
		return MapVal(pairs), nil

	case *EmitExpr:
		v, err := e.Eval(n.Target, env)
		if err != nil {
			return Unit, err
		}
		if v.Tag == TArray {
			for _, el := range v.Arr {
				fmt.Fprintf(e.Out, "%s ", Format(el))
			}
			fmt.Fprintln(e.Out)
			return Unit, nil
		}
		return v, nil
	}

	return Unit, typeMismatch("unknown expression node %T", expr)
}

func (e *Evaluator) evalBinary(n *BinaryExpr, env *Env) (Value, error) {
	// Choice is lazy in its right arm.
	if n.Op == OpChoice {
		left, err := e.Eval(n.Left, env)
		if err != nil {
			return Unit, err
		}
		if left.Tag == TUnit {
			return e.Eval(n.Right, env)
		}
		return left, nil
	}

	left, err := e.Eval(n.Left, env)
	if err != nil {
		return Unit, err
	}
	right, err := e.Eval(n.Right, env)
	if err != nil {
		return Unit, err
	}

	switch n.Op {
	case OpAdd:
		return left.Add(right)
	case OpSub:
		return left.Sub(right)
	case OpMul:
		return left.Mul(right)
	case OpDiv:
		return left.Div(right)
	case OpBlend:
		return left.Blend(right)
	case OpLess:
		return left.LessThan(right)
	case OpGreater:
		return left.GreaterThan(right)
	case OpEquals:
		return left.Equals(right), nil
	case OpCompose:
		// Both sides must be continuations; the left one runs first.
		if left.Tag != TCont || right.Tag != TCont {
			return Unit, typeMismatch("compose requires two continuations, got %s and %s", left.Tag, right.Tag)
		}
		e.conts.push(right.Cont)
		e.conts.push(left.Cont)
		return Unit, nil
	}
	return Unit, typeMismatch("unknown binary operator %s", n.Op)
}

func (e *Evaluator) evalColor(n *ColorExpr, env *Env) (Value, error) {
	r, err := e.evalNum(n.R, env)
	if err != nil {
		return Unit, err
	}
	g, err := e.evalNum(n.G, env)
	if err != nil {
		return Unit, err
	}
	b, err := e.evalNum(n.B, env)
	if err != nil {
		return Unit, err
	}
	return ColorVal(Color{R: clampChannel(r), G: clampChannel(g), B: clampChannel(b)}), nil
}

func (e *Evaluator) evalNum(expr Expr, env *Env) (float64, error) {
	v, err := e.Eval(expr, env)
	if err != nil {
		return 0, err
	}
	if v.Tag != TNum {
		return 0, typeMismatch("expected a number, got %s", v.Tag)
	}
	return v.Num, nil
}

// evalBody runs an ordered sequence of expressions in env, yielding the last
// value or Unit for an empty sequence.
func (e *Evaluator) evalBody(body []Expr, env *Env) (Value, error) {
	result := Unit
	for _, expr := range body {
		v, err := e.Eval(expr, env)
		if err != nil {
			return Unit, err
		}
		result = v
	}
	return result, nil
}

// evalFor iterates a snapshot of the source array. Each iteration binds the
// loop variable in a fresh child scope; rebinding the source mid-loop does
// not change the captured sequence.
func (e *Evaluator) evalFor(n *ForExpr, env *Env) (Value, error) {
	source, err := e.Eval(n.Source, env)
	if err != nil {
		return Unit, err
	}
	if source.Tag != TArray {
		return Unit, typeMismatch("for loop requires an array, got %s", source.Tag)
	}
	result := Unit
	for _, el := range source.Arr {
		iter := env.Child()
		iter.Define(n.Var, el)
		v, err := e.evalBody(n.Body, iter)
		if err != nil {
			return Unit, err
		}
		result = v
	}
	return result, nil
}

// evalWhile re-tests the condition before every pass and always yields Unit;
// while loops are effect-oriented and discard the body's value.
func (e *Evaluator) evalWhile(n *WhileExpr, env *Env) (Value, error) {
	for {
		cond, err := e.Eval(n.Cond, env)
		if err != nil {
			return Unit, err
		}
		if !cond.Truthy() {
			return Unit, nil
		}
		if _, err := e.evalBody(n.Body, env.Child()); err != nil {
			return Unit, err
		}
	}
}

// Resume pops the most recently deferred computation and evaluates it in its
// captured environment. An empty stack resumes to Unit, not an error.
func (e *Evaluator) Resume() (Value, error) {
	cont := e.conts.pop()
	if cont == nil {
		return Unit, nil
	}
	return e.Eval(cont.Expr, cont.Env)
}

// Break discards the entire continuation stack and yields Unit. No sentinel
// frame is reserved; after a break there is nothing left to resume to.
func (e *Evaluator) Break() Value {
	e.conts.clear()
	return Unit
}

// ContinueWith pushes a continuation and immediately resumes. A value that
// is not already a continuation is captured as one that yields it.
func (e *Evaluator) ContinueWith(v Value, env *Env) (Value, error) {
	if v.Tag == TCont {
		e.conts.push(v.Cont)
	} else {
		e.conts.push(NewContinuation(&LiteralExpr{Value: v}, env))
	}
	return e.Resume()
}

// Defer captures an expression and environment on the continuation stack
// without running it.
func (e *Evaluator) Defer(expr Expr, env *Env) {
	e.conts.push(NewContinuation(expr, env))
}

func (e *Evaluator) evalAwait(target Expr, env *Env, retrying bool) (Value, error) {
	v, err := e.Eval(target, env)
	if err != nil {
		return Unit, err
	}
	if v.Tag != TFuture {
		// Awaiting a settled plain value is the identity.
		return v, nil
	}
	switch v.Fut.State() {
	case Resolved:
		return v.Fut.Value(), nil
	case Rejected:
		return Unit, &TrioError{Kind: FutureRejected, Message: v.Fut.Reason()}
	default:
		if retrying {
			// Still pending after one deferred retry; hand the future back.
			return v, nil
		}
		e.conts.push(NewContinuation(&retryAwaitExpr{Target: target}, env))
		return e.Resume()
	}
}
