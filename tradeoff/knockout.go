package tradeoff

import (
	"fmt"
	"math"

	"github.com/schollz/progressbar/v3"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/symbiota/comopt/core"
	"github.com/symbiota/comopt/solver"
)

// KnockoutSpecies simulates removing each candidate species from the
// community and reports how every remaining member's growth rate responds.
//
// Protocol:
//  1. Scoped block + modification guard.
//  2. Zero minimum growth for all members (no per-member floor).
//  3. Baseline community growth C0 (maximize community_objective).
//  4. Install the cooperativity cost with floor fraction·C0.
//  5. One knockout-free solve for the reference row old.
//  6. Per candidate sp (optionally behind a progress bar): nested scope,
//     relax the community growth interval to [0, C0], disable every
//     reaction tagged sp, compute the post-knockout community growth G_sp
//     in a further-nested scope (so the objective swap reverts and the
//     cost installed in step 4 applies to the following solve), pin
//     [fraction·G_sp, G_sp] and solve; a non-optimal status narrows to
//     [0, fraction·G_sp] with one crossover recovery. The row transform
//     follows method: change first (new − old), then relative (divide by
//     the pre-transform old).
//  7. Assemble the matrix indexed by knocked-out species, dropping virtual
//     pseudo-member columns; WithSelfDiagonal(false) forces self-to-self
//     cells to NaN.
//
// A baseline failure aborts the whole sweep with solver.ErrOptimization;
// there is no partial result. Non-optimal statuses on individual rows
// surface only through each row Solution's status during the run.
func KnockoutSpecies(com *core.Community, s solver.Solver, species []string, fraction float64, method Method, opts ...Option) (*KnockoutTable, error) {
	o := gatherOptions(opts)
	if len(species) == 0 {
		return nil, ErrNoSpecies
	}
	if !validFraction(fraction) {
		return nil, ErrBadFraction
	}
	for _, sp := range species {
		m, err := com.Member(sp)
		if err != nil {
			return nil, err
		}
		if m.Virtual {
			return nil, core.ErrMemberNotFound
		}
	}

	solveOpts := solver.SolveOptions{Fluxes: o.fluxes}
	var table *KnockoutTable

	err := com.Scope(func() error {
		if com.Modification() != "" {
			return ErrAlreadyModified
		}
		mg, err := core.UniformGrowth(0).Normalize(com.Members())
		if err != nil {
			return err
		}
		if err = com.ApplyMinGrowth(mg); err != nil {
			return err
		}

		com.SetObjective(core.LinearObjective(core.Maximize,
			map[string]float64{core.ObjectiveVariable: 1}))
		c0, err := solver.OptimizeWithRetry(s, com,
			"could not get community growth rate", o.retryAttempts, o.log)
		if err != nil {
			return err
		}

		if err = installCost(com, fraction*c0, o); err != nil {
			return err
		}
		base, err := s.Solve(com, solveOpts)
		if err != nil {
			return err
		}
		old := base.Growth

		var bar *progressbar.ProgressBar
		if o.progress {
			bar = progressbar.Default(int64(len(species)), "knockouts")
		}

		rows := make([][]float64, 0, len(species))
		for _, sp := range species {
			if err = com.Scope(func() error {
				o.log.Info().Str("community", com.ID()).Str("species", sp).
					Msg("getting growth rates for knockout")
				if err := com.SetBounds(core.ObjectiveVariable, 0, c0); err != nil {
					return err
				}
				com.KnockOut(sp)

				var gsp float64
				if err := com.Scope(func() error {
					com.SetObjective(core.LinearObjective(core.Maximize,
						map[string]float64{core.ObjectiveVariable: 1}))
					var err error
					gsp, err = solver.OptimizeWithRetry(s, com,
						fmt.Sprintf("could not get community growth rate for knockout %s", sp),
						o.retryAttempts, o.log)
					return err
				}); err != nil {
					return err
				}

				if err := com.SetBounds(core.ObjectiveVariable, fraction*gsp, gsp); err != nil {
					return err
				}
				sol, err := s.Solve(com, solveOpts)
				if err != nil {
					return err
				}
				if !sol.Status.IsOptimal() {
					if err = com.SetBounds(core.ObjectiveVariable, 0, fraction*gsp); err != nil {
						return err
					}
					sol = solver.Crossover(s, com, sol, solveOpts, o.log)
				}
				rows = append(rows, transformRow(sol.Growth, old, method))
				return nil
			}); err != nil {
				return err
			}
			if bar != nil {
				_ = bar.Add(1)
			}
		}

		table = assembleTable(com, species, old.Members, rows, o.selfDiagonal)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return table, nil
}

// transformRow aligns the post-knockout row to the baseline member order
// and applies the reporting transform. Members missing from the new row
// (never the case with a well-behaved backend) come out as NaN.
func transformRow(newRates, old solver.GrowthRates, method Method) []float64 {
	row := make([]float64, len(old.Members))
	for i, id := range old.Members {
		if r, ok := newRates.Rate(id); ok {
			row[i] = r
		} else {
			row[i] = math.NaN()
		}
	}
	if method.Has(MethodChange) {
		floats.Sub(row, old.Rates)
	}
	if method.Has(MethodRelative) {
		floats.Div(row, old.Rates)
	}
	return row
}

// assembleTable builds the final matrix, dropping virtual pseudo-member
// columns and blanking the diagonal when self-comparison is off.
func assembleTable(com *core.Community, knockouts, memberOrder []string, rows [][]float64, selfDiagonal bool) *KnockoutTable {
	keep := make([]int, 0, len(memberOrder))
	cols := make([]string, 0, len(memberOrder))
	for j, id := range memberOrder {
		if m, err := com.Member(id); err == nil && m.Virtual {
			continue
		}
		keep = append(keep, j)
		cols = append(cols, id)
	}

	data := mat.NewDense(len(knockouts), len(cols), nil)
	for i, row := range rows {
		for j, src := range keep {
			data.Set(i, j, row[src])
		}
	}
	if !selfDiagonal {
		for i, ko := range knockouts {
			if j := indexOf(cols, ko); j >= 0 {
				data.Set(i, j, math.NaN())
			}
		}
	}
	return &KnockoutTable{
		Knockouts: append([]string(nil), knockouts...),
		Members:   cols,
		Data:      data,
	}
}
