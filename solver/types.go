package solver

import (
	"errors"
	"math"

	"github.com/symbiota/comopt/core"
)

// ErrOptimization is returned by OptimizeWithRetry when the retry policy is
// exhausted without reaching optimal status. The caller-supplied diagnostic
// message is attached at the raise site; match with errors.Is.
var ErrOptimization = errors.New("solver: optimization failed")

// ErrQuadraticObjective is returned by the Simplex backend when asked to
// solve a model with a quadratic objective (L2-regularized models need a
// QP-capable backend).
var ErrQuadraticObjective = errors.New("solver: quadratic objective requires a QP-capable backend")

// Status is the outcome classification of a solve.
type Status int

const (
	// StatusUnknown is the zero value: no solve has classified the model.
	StatusUnknown Status = iota

	// StatusOptimal indicates a proven optimal solution.
	StatusOptimal

	// StatusInfeasible indicates the model admits no feasible point.
	StatusInfeasible

	// StatusUnbounded indicates the objective is unbounded in its sense.
	StatusUnbounded

	// StatusNumeric indicates the backend failed numerically (singular
	// basis, iteration limit, tolerance breakdown) without proving
	// optimality or infeasibility.
	StatusNumeric
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnbounded:
		return "unbounded"
	case StatusNumeric:
		return "numeric failure"
	default:
		return "unknown"
	}
}

// IsOptimal reports whether the solve proved optimality.
func (s Status) IsOptimal() bool { return s == StatusOptimal }

// IsInfeasible reports whether the solve proved infeasibility.
func (s Status) IsInfeasible() bool { return s == StatusInfeasible }

// GrowthRates is a member-aligned growth-rate row: Rates[i] is the growth
// rate of Members[i]. The ordering is the community's declared member order
// (virtual pseudo-members included, with NaN where no growth variable
// exists).
type GrowthRates struct {
	Members []string
	Rates   []float64
}

// Rate returns the rate of the named member.
func (g GrowthRates) Rate(member string) (float64, bool) {
	for i, id := range g.Members {
		if id == member {
			return g.Rates[i], true
		}
	}
	return 0, false
}

// Clone returns a deep copy of the row.
func (g GrowthRates) Clone() GrowthRates {
	return GrowthRates{
		Members: append([]string(nil), g.Members...),
		Rates:   append([]float64(nil), g.Rates...),
	}
}

// Solution is the immutable result of one solve: a status, the objective
// value (NaN unless optimal), the per-member growth-rate row and, when
// requested, the full flux vector.
type Solution struct {
	Status    Status
	Objective float64
	Growth    GrowthRates
	Fluxes    map[string]float64
}

// SolveOptions carries per-solve switches.
type SolveOptions struct {
	// Fluxes requests the full flux vector on the returned Solution.
	Fluxes bool
}

// Solver is a solve backend: given the community model in its current
// state, classify it and return a Solution. A mechanical failure (backend
// crash, unsupported model shape) is reported as a non-nil error; ordinary
// infeasibility is a Solution with the matching status and a nil error.
type Solver interface {
	Solve(com *core.Community, opts SolveOptions) (*Solution, error)
}

// Relaxer is an optional backend capability: OptimizeWithRetry calls
// Relax between attempts so the backend can loosen numerical tolerances.
// attempt counts from 1.
type Relaxer interface {
	Relax(attempt int)
}

// GrowthFromValues assembles the member-aligned growth row from a solved
// variable-value map. Members without a growth variable (the medium
// pseudo-member) get NaN.
func GrowthFromValues(com *core.Community, values map[string]float64) GrowthRates {
	ids := com.MemberIDs()
	rates := make([]float64, len(ids))
	for i, id := range ids {
		if v, ok := values[core.GrowthVariable(id)]; ok {
			rates[i] = v
		} else {
			rates[i] = math.NaN()
		}
	}
	return GrowthRates{Members: ids, Rates: rates}
}
