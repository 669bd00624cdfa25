// SPDX-License-Identifier: MIT
// Package core: scoped, reversible model modification.
//
// A Scope is the Go rendering of a context-managed model block: every
// tracked mutation (SetBounds, SetObjective, SetModification, KnockOut)
// performed while the scope is active is recorded as an undo action and
// replayed in LIFO order when the scope exits — on normal return and on
// error alike. Scopes nest strictly; each frame only unwinds its own
// mutations, so sweep drivers can run a nested per-iteration scope while an
// outer scope holds the sweep-wide setup (min-growth bounds, regularizer).

package core

// undoFn reverts exactly one recorded mutation. Undo actions write the
// model fields directly and are never themselves recorded.
type undoFn func()

type scopeFrame struct {
	undos []undoFn
}

// Scope runs fn inside a fresh modification frame. All tracked mutations
// performed by fn (directly or through nested calls) are reverted before
// Scope returns, in reverse order of application. The error returned by fn
// is passed through unchanged; reversal happens on every exit path.
func (c *Community) Scope(fn func() error) error {
	frame := &scopeFrame{}
	c.scopes = append(c.scopes, frame)
	defer func() {
		c.scopes = c.scopes[:len(c.scopes)-1]
		for i := len(frame.undos) - 1; i >= 0; i-- {
			frame.undos[i]()
		}
	}()
	return fn()
}

// InScope reports whether a modification frame is currently active.
func (c *Community) InScope() bool { return len(c.scopes) > 0 }

// Defer registers an explicit cleanup action on the innermost active frame,
// to run during that frame's unwind (before the automatic reversal of
// mutations recorded earlier in the frame). Without an active frame the
// action is dropped — mirroring reversal-context semantics where cleanup
// only applies inside a managed block.
func (c *Community) Defer(fn func()) {
	if len(c.scopes) == 0 {
		return
	}
	frame := c.scopes[len(c.scopes)-1]
	frame.undos = append(frame.undos, fn)
}

// record appends an automatic undo action to the innermost active frame.
// Outside any frame the mutation is permanent and nothing is recorded.
func (c *Community) record(fn undoFn) {
	if len(c.scopes) == 0 {
		return
	}
	frame := c.scopes[len(c.scopes)-1]
	frame.undos = append(frame.undos, fn)
}

// Snapshot is a deep copy of the mutable model state, used to verify full
// reversal (see Community.Snapshot).
type Snapshot struct {
	Bounds       map[string][2]float64
	Objective    Objective
	Modification string
}

// Snapshot captures the mutable model state: every variable's bound
// interval, the objective expression and the modification marker.
func (c *Community) Snapshot() Snapshot {
	s := Snapshot{
		Bounds:       make(map[string][2]float64, len(c.vars)),
		Objective:    c.objective.Clone(),
		Modification: c.modification,
	}
	for name, v := range c.vars {
		s.Bounds[name] = [2]float64{v.lb, v.ub}
	}
	return s
}
