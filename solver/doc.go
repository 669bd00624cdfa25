// Package solver defines the solve-side contracts consumed by the tradeoff
// drivers — Status, Solution, the Solver interface — plus the solve glue
// the drivers layer on top of any backend:
//
//   - OptimizeWithRetry: bounded retries around a solve, with optional
//     per-attempt relaxation when the backend implements Relaxer; fails
//     with ErrOptimization (wrapping a caller-supplied diagnostic) when no
//     attempt reaches optimal status.
//   - Crossover: a single narrowed-interval recovery solve used to salvage
//     a feasible solution when an exact-style bound turns out numerically
//     infeasible. Crossover itself never fails; callers interpret the
//     returned status.
//   - Simplex: a reference backend built on gonum's LP simplex
//     (gonum.org/v1/gonum/optimize/convex/lp). It handles models with
//     linear objectives; L2-regularized (quadratic) models require a
//     QP-capable backend and are rejected with ErrQuadraticObjective.
//
// The package does not define a solver algorithm of its own: a backend is
// an external collaborator behind the Solver interface.
package solver
