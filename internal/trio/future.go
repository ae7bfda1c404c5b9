package trio

// FutureState is the lifecycle of a Future: Pending until it settles, then
// either Resolved or Rejected forever.
type FutureState int

const (
	Pending FutureState = iota
	Resolved
	Rejected
)

// Future holds an eagerly-computed result behind a state tag. There is no
// scheduler; a future settles at most once and terminal states never revert.
type Future struct {
	state  FutureState
	value  Value
	reason string
}

func NewPendingFuture() *Future {
	return &Future{state: Pending}
}

func ResolvedFuture(v Value) *Future {
	return &Future{state: Resolved, value: v}
}

func RejectedFuture(reason string) *Future {
	return &Future{state: Rejected, reason: reason}
}

func (f *Future) State() FutureState { return f.state }

// Value returns the resolved value; meaningful only in the Resolved state.
func (f *Future) Value() Value { return f.value }

// Reason returns the rejection message; meaningful only in the Rejected state.
func (f *Future) Reason() string { return f.reason }

// Resolve settles a pending future. Settled futures are left untouched.
func (f *Future) Resolve(v Value) {
	if f.state == Pending {
		f.state = Resolved
		f.value = v
	}
}

// Reject settles a pending future with a failure message.
func (f *Future) Reject(reason string) {
	if f.state == Pending {
		f.state = Rejected
		f.reason = reason
	}
}
