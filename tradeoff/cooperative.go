package tradeoff

import (
	"math"
	"sort"

	"github.com/symbiota/comopt/core"
	"github.com/symbiota/comopt/solver"
)

// CooperativeTradeoff finds the best tradeoff between community and
// individual growth at a single tradeoff fraction and returns the bare
// Solution.
//
// The model is mutated only transiently: every bound and objective change
// is reverted before the call returns, on success and on error alike.
// Errors: ErrAlreadyModified, ErrBadFraction, core.ErrBadMinGrowth,
// solver.ErrOptimization (baseline infeasible) and backend mechanical
// errors.
func CooperativeTradeoff(com *core.Community, s solver.Solver, minGrowth core.GrowthSpec, fraction float64, opts ...Option) (*solver.Solution, error) {
	entries, err := sweep(com, s, minGrowth, []float64{fraction}, gatherOptions(opts))
	if err != nil {
		return nil, err
	}
	return entries[0].Solution, nil
}

// CooperativeTradeoffSweep runs the tradeoff at every given fraction and
// returns one entry per fraction, ordered by descending fraction regardless
// of input order. Larger fractions are solved first: the tightest floor
// runs while the backend state is freshest, and later, more-relaxed solves
// can reuse its warm-start information.
func CooperativeTradeoffSweep(com *core.Community, s solver.Solver, minGrowth core.GrowthSpec, fractions []float64, opts ...Option) (*TradeoffTable, error) {
	entries, err := sweep(com, s, minGrowth, fractions, gatherOptions(opts))
	if err != nil {
		return nil, err
	}
	return &TradeoffTable{Entries: entries}, nil
}

// sweep is the shared driver. Per fraction, sequential:
//  1. Enter a scoped modification block (all mutations below revert on
//     exit).
//  2. Guard against an active modification marker.
//  3. Normalize and apply the minimum-growth specification.
//  4. Maximize community_objective for the baseline growth rate G.
//  5. Install the cooperativity cost with a zero floor (the floor is
//     fraction-scaled per iteration).
//  6. For each fraction fr, descending: floor ← fr·G (upper bound left
//     unbounded), solve; on a non-optimal status narrow to
//     [0.99·fr·G, 1.01·fr·G] and run exactly one crossover recovery,
//     keeping its result whatever the status.
func sweep(com *core.Community, s solver.Solver, minGrowth core.GrowthSpec, fractions []float64, o options) ([]TradeoffEntry, error) {
	if len(fractions) == 0 {
		return nil, ErrNoFractions
	}
	for _, fr := range fractions {
		if !validFraction(fr) {
			return nil, ErrBadFraction
		}
	}
	// 6-pre) Descending processing order, input left untouched.
	sorted := append([]float64(nil), fractions...)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	solveOpts := solver.SolveOptions{Fluxes: o.fluxes}
	entries := make([]TradeoffEntry, 0, len(sorted))

	err := com.Scope(func() error {
		if com.Modification() != "" {
			return ErrAlreadyModified
		}
		mg, err := minGrowth.Normalize(com.Members())
		if err != nil {
			return err
		}
		if err = com.ApplyMinGrowth(mg); err != nil {
			return err
		}

		com.SetObjective(core.LinearObjective(core.Maximize,
			map[string]float64{core.ObjectiveVariable: 1}))
		growth, err := solver.OptimizeWithRetry(s, com,
			"could not get community growth rate", o.retryAttempts, o.log)
		if err != nil {
			return err
		}

		if err = installCost(com, 0, o); err != nil {
			return err
		}

		for _, fr := range sorted {
			if err = com.SetBounds(core.ObjectiveVariable, fr*growth, math.Inf(1)); err != nil {
				return err
			}
			sol, err := s.Solve(com, solveOpts)
			if err != nil {
				return err
			}
			if !sol.Status.IsOptimal() {
				target := fr * growth
				if err = com.SetBounds(core.ObjectiveVariable,
					CrossoverLower*target, CrossoverUpper*target); err != nil {
					return err
				}
				sol = solver.Crossover(s, com, sol, solveOpts, o.log)
			}
			entries = append(entries, TradeoffEntry{Fraction: fr, Solution: sol})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// installCost installs the configured cooperativity cost.
func installCost(com *core.Community, minGrowth float64, o options) error {
	if o.linearCost {
		return RegularizeL1Norm(com, minGrowth)
	}
	return RegularizeL2Norm(com, minGrowth)
}
