package trio

// Continuation is a deferred computation: an expression closed over the
// environment that was active when it was captured.
type Continuation struct {
	Expr Expr
	Env  *Env
}

func NewContinuation(expr Expr, env *Env) *Continuation {
	return &Continuation{Expr: expr, Env: env}
}

// contStack is the session's ordered sequence of deferred computations.
// Entries resume last-in-first-out. Only the evaluator mutates it.
type contStack struct {
	entries []*Continuation
}

func (s *contStack) push(c *Continuation) {
	s.entries = append(s.entries, c)
}

func (s *contStack) pop() *Continuation {
	if len(s.entries) == 0 {
		return nil
	}
	top := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return top
}

// clear drops every pending entry, not just the top.
func (s *contStack) clear() {
	s.entries = s.entries[:0]
}

func (s *contStack) len() int {
	return len(s.entries)
}
