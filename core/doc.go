// Package core defines the central Community model: named flux variables
// with mutable bounds, linear constraints, member bookkeeping, reactions
// taggable by community-membership id, a mutable objective expression and
// strictly nested, reversible modification scopes.
//
// 🚀 What is a Community?
//
//	A Community is a constrained optimization problem describing a
//	multi-organism ("community") metabolic model:
//	  • one flux variable per reaction, plus the distinguished
//	    community_objective variable tracking whole-community growth
//	  • one growth variable and one objective_<species> constraint per
//	    declared member species
//	  • a linear or quadratic objective expression, solved by an external
//	    solver (see package solver)
//
// ✨ Key guarantees:
//   - Scoped reversal: every bound, objective or marker mutation performed
//     inside Scope is undone on exit — normal return or error alike — so
//     sweep drivers always start each iteration from a clean model state.
//   - Deterministic ordering: variables, constraints and members iterate
//     in declaration order; no map-order leakage into results.
//   - Explicit errors: all user-triggered failures return package sentinel
//     errors matched via errors.Is; no panics on user input.
//
// ⚙️ Usage:
//
//	com := core.New("gut")
//	_ = com.AddMember(core.Member{ID: "a", Abundance: 0.5})
//	_ = com.AddMember(core.Member{ID: "b", Abundance: 0.5})
//	_ = com.AddConstraint("objective_a", map[string]float64{"growth_a": 1}, 0, 0)
//	...
//	err := com.Scope(func() error {
//	    _ = com.SetBounds(core.ObjectiveVariable, 0.5, math.Inf(1))
//	    ... solve ...
//	    return nil
//	}) // bounds restored here
package core
