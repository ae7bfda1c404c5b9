package trio

// Env maps variable names to values, chained to a parent scope for lexical
// lookup. Child bindings shadow the parent's and vanish when the scope exits.
type Env struct {
	vars   map[string]Value
	parent *Env
}

func NewEnv() *Env {
	return &Env{vars: make(map[string]Value)}
}

func (e *Env) Child() *Env {
	return &Env{vars: make(map[string]Value), parent: e}
}

// Get walks the scope chain outward.
func (e *Env) Get(name string) (Value, bool) {
	if v, ok := e.vars[name]; ok {
		return v, true
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return Unit, false
}

// Set updates an existing binding in the nearest scope that has one, so a
// loop body can grow an outer accumulator; names never seen before bind in
// the current scope and are discarded when it exits.
func (e *Env) Set(name string, v Value) {
	for scope := e; scope != nil; scope = scope.parent {
		if _, ok := scope.vars[name]; ok {
			scope.vars[name] = v
			return
		}
	}
	e.vars[name] = v
}

// Define binds in the current scope unconditionally, shadowing any parent
// binding of the same name.
func (e *Env) Define(name string, v Value) {
	e.vars[name] = v
}

// Snapshot copies the current scope's own bindings, ignoring parents.
func (e *Env) Snapshot() map[string]Value {
	out := make(map[string]Value, len(e.vars))
	for k, v := range e.vars {
		out[k] = v
	}
	return out
}
