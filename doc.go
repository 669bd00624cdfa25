// Package comopt is a toolkit for constraint-based optimization over
// multi-organism ("community") metabolic models: tradeoffs between
// whole-community growth and each member's individual ("egoistic") growth
// rate, and species-knockout simulation.
//
// 🚀 What is comopt?
//
//	A solver-agnostic orchestration layer: you bring a model and a solve
//	backend, comopt builds the layered objectives, handles infeasible
//	solves via crossover recovery, and keeps every model mutation strictly
//	scoped and reversible.
//
// Everything is organized under four subpackages plus a CLI:
//
//	core/     — the Community model: variables, bounds, constraints,
//	            reactions, reversible modification scopes
//	solver/   — Status/Solution contracts, retrying optimizer, crossover
//	            recovery, and a reference LP simplex backend (gonum)
//	tradeoff/ — the drivers: cooperativity cost (L2/L1), cooperative
//	            tradeoff sweeps, species knockouts
//	modelio/  — YAML community-model codec
//	cmd/comopt — command line interface over the above
//
// Quick example:
//
//	com, _ := modelio.Load("gut.yaml")
//	be := solver.NewSimplex()
//	sol, err := tradeoff.CooperativeTradeoff(com, be,
//	    core.UniformGrowth(0), 0.5, tradeoff.WithLinearCost(true))
//
// See each subpackage's doc.go for contracts and guarantees.
package comopt
