package tradeoff

import (
	"gonum.org/v1/gonum/mat"

	"github.com/symbiota/comopt/core"
)

// RegularizeL2Norm installs the quadratic cooperativity cost on the model:
// an objective finding, among solutions keeping at least minGrowth
// community growth, the one closest to the members' individual maximal
// growth rates.
//
// Effects, in order:
//  1. The community_objective lower bound is raised to minGrowth, and a
//     reversal action restoring [0, +Inf) is registered on the active
//     scope (if any).
//  2. For every member species, the variables of its objective_<species>
//     constraint whose bound interval is wider than ActiveBoundEpsilon are
//     collected as active egoistic terms; each member contributes
//     (n·Σ terms)², n the member count, and the accumulated sum of squares
//     is negated so a maximizing solver minimizes it.
//  3. The modification marker is set to ModificationL2Norm.
//
// The minimization-as-negated-maximization framing keeps the single
// objective direction used across the module.
func RegularizeL2Norm(com *core.Community, minGrowth float64) error {
	return regularize(com, minGrowth, false)
}

// RegularizeL1Norm installs the linear (Manhattan) cooperativity cost:
// squares are replaced by absolute values, which reduce to plain sums for
// non-negative growth terms. Exact for the standard model shape and
// solvable by an LP-only backend; marker ModificationL1Norm.
func RegularizeL1Norm(com *core.Community, minGrowth float64) error {
	return regularize(com, minGrowth, true)
}

func regularize(com *core.Community, minGrowth float64, linear bool) error {
	log := com.Logger()
	log.Info().Str("community", com.ID()).Bool("linear", linear).
		Msg("adding cooperativity cost")

	// 1) Pin the community growth floor; register the explicit reset.
	v, err := com.Variable(core.ObjectiveVariable)
	if err != nil {
		return err
	}
	if err = com.SetBounds(core.ObjectiveVariable, minGrowth, v.Upper()); err != nil {
		return err
	}
	com.Defer(com.ResetCommunityGrowthBounds)

	// 2) Collect each member's active egoistic terms.
	species := com.Species()
	scale := float64(len(species))
	groups := make([][]string, 0, len(species))
	for _, sp := range species {
		con, err := com.Constraint(core.ObjectiveConstraint(sp))
		if err != nil {
			return err
		}
		var active []string
		for _, cv := range con.Variables() {
			lb, ub := cv.Bounds()
			if ub-lb > ActiveBoundEpsilon {
				active = append(active, cv.Name())
			}
		}
		groups = append(groups, active)
	}

	if linear {
		com.SetObjective(l1Objective(groups, scale))
		com.SetModification(ModificationL1Norm)
	} else {
		com.SetObjective(l2Objective(groups, scale))
		com.SetModification(ModificationL2Norm)
	}

	log.Info().Str("community", com.ID()).Msg("finished adding tradeoff objective")
	return nil
}

// l2Objective builds maximize −Σ_members (scale·Σ terms)² as a quadratic
// form: every ordered pair (i, j) within a member's group contributes
// −scale² to Q[i,j].
func l2Objective(groups [][]string, scale float64) core.Objective {
	index := make(map[string]int)
	var vars []string
	for _, g := range groups {
		for _, name := range g {
			if _, ok := index[name]; !ok {
				index[name] = len(vars)
				vars = append(vars, name)
			}
		}
	}
	if len(vars) == 0 {
		// No active egoistic terms anywhere: the cost is identically zero.
		return core.Objective{Sense: core.Maximize}
	}
	q := mat.NewSymDense(len(vars), nil)
	coeff := -scale * scale
	for _, g := range groups {
		for a, na := range g {
			for b := a; b < len(g); b++ {
				i, j := index[na], index[g[b]]
				if i > j {
					i, j = j, i
				}
				q.SetSym(i, j, q.At(i, j)+coeff)
			}
		}
	}
	return core.Objective{
		Sense: core.Maximize,
		Quad:  &core.QuadForm{Vars: vars, Coeffs: q},
	}
}

// l1Objective builds maximize −Σ_members scale·Σ terms. Growth terms are
// non-negative, so the absolute values collapse to plain sums.
func l1Objective(groups [][]string, scale float64) core.Objective {
	coeffs := make(map[string]float64)
	for _, g := range groups {
		for _, name := range g {
			coeffs[name] -= scale
		}
	}
	return core.LinearObjective(core.Maximize, coeffs)
}
