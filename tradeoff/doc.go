// Package tradeoff implements tradeoff optimization between community and
// egoistic growth, plus species-knockout simulation, on top of a Community
// model (package core) and a solve backend (package solver).
//
// 🚀 What does it compute?
//
//	A pure max-community-growth objective is degenerate: many flux
//	distributions reach the same community growth rate. The cooperativity
//	cost installed by RegularizeL2Norm selects, among them, the solution
//	closest to each member's individually-optimal ("egoistic") growth —
//	the fairest community/individual tradeoff.
//
//	  • CooperativeTradeoff / CooperativeTradeoffSweep — fix a fraction
//	    (or a descending sweep of fractions) of the maximal community
//	    growth rate as a floor, then optimize the cooperativity cost.
//	  • KnockoutSpecies — remove each candidate species in turn and report
//	    how every remaining member's growth rate responds, as a raw,
//	    change or relative matrix.
//
// ✨ Guarantees:
//   - Full reversal: after any driver returns — success or error — the
//     model's bounds, objective and modification marker are bit-identical
//     to their pre-call state.
//   - No silent stacking: a model already carrying a modification marker is
//     rejected with ErrAlreadyModified before anything is mutated.
//   - Local recovery: a non-optimal per-fraction or per-species solve
//     triggers exactly one narrowed-interval crossover solve, and its
//     result is used as-is; only baseline solves abort the whole sweep
//     (solver.ErrOptimization).
//
// ⚙️ Usage:
//
//	be := solver.NewSimplex()
//	sol, err := tradeoff.CooperativeTradeoff(com, be, core.UniformGrowth(0), 0.5,
//	    tradeoff.WithLinearCost(true))
//	...
//	table, err := tradeoff.KnockoutSpecies(com, be, com.Species(), 0.5,
//	    tradeoff.MethodChange|tradeoff.MethodRelative,
//	    tradeoff.WithLinearCost(true), tradeoff.WithSelfDiagonal(false))
package tradeoff
