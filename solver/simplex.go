package solver

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/symbiota/comopt/core"
)

// DefaultTolerance is the simplex pivot tolerance used by a fresh Simplex
// backend.
const DefaultTolerance = 1e-10

// relaxFactor is the per-retry tolerance multiplier applied by Relax.
const relaxFactor = 10.0

// Simplex is a reference Solver backend built on gonum's LP simplex. It
// converts the community model — bounded variables, ranged linear
// constraints, linear objective — into standard form (min cᵀx, Ax = b,
// x ≥ 0) and delegates to lp.Simplex.
//
// Limitations: quadratic objectives (the L2 cooperativity cost) are
// rejected with ErrQuadraticObjective; use the linear (L1) cost or plug in
// a QP-capable backend.
//
// Simplex implements Relaxer: each Relax call loosens the pivot tolerance
// by a factor of ten, and a successful optimal solve resets it.
type Simplex struct {
	tol     float64
	relaxed float64
}

// SimplexOption configures NewSimplex.
type SimplexOption func(*Simplex)

// WithTolerance sets the base pivot tolerance. Panics on a non-positive or
// non-finite value (programmer error).
func WithTolerance(tol float64) SimplexOption {
	if tol <= 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
		panic("solver: tolerance must be positive and finite")
	}
	return func(s *Simplex) { s.tol = tol }
}

// NewSimplex creates a Simplex backend with DefaultTolerance unless
// overridden.
func NewSimplex(opts ...SimplexOption) *Simplex {
	s := &Simplex{tol: DefaultTolerance, relaxed: 1}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Relax implements Relaxer by loosening the effective tolerance.
func (s *Simplex) Relax(attempt int) {
	s.relaxed *= relaxFactor
}

// Solve classifies the model in its current state.
//
// Steps:
//  1. Reject quadratic objectives (ErrQuadraticObjective).
//  2. Build the standard form: shift finite lower bounds to zero, mirror
//     upper-only variables, split free variables, turn finite variable
//     upper bounds and ranged constraint rows into slack rows.
//  3. Run lp.Simplex; map lp errors to Status values (infeasibility and
//     unboundedness are Solutions, not errors).
//  4. Recover original variable values and assemble the growth-rate row.
func (s *Simplex) Solve(com *core.Community, opts SolveOptions) (*Solution, error) {
	obj := com.Objective()
	if obj.IsQuadratic() {
		return nil, ErrQuadraticObjective
	}

	sf, err := buildStandardForm(com, obj)
	if err != nil {
		return nil, err
	}

	xStd, status := sf.run(s.tol * s.relaxed)
	if !status.IsOptimal() {
		return notOptimalSolution(com, status), nil
	}
	s.relaxed = 1

	values := sf.recover(xStd)
	sol := &Solution{
		Status:    StatusOptimal,
		Objective: obj.Value(values),
		Growth:    GrowthFromValues(com, values),
	}
	if opts.Fluxes {
		sol.Fluxes = values
	}
	return sol, nil
}

// notOptimalSolution builds the Solution reported for a non-optimal solve:
// NaN objective and an all-NaN growth row.
func notOptimalSolution(com *core.Community, status Status) *Solution {
	return &Solution{
		Status:    status,
		Objective: math.NaN(),
		Growth:    GrowthFromValues(com, nil),
	}
}

// stdVar records how one original variable maps into standard-form columns:
// x = offset + Σ signs[k]·x̂[cols[k]].
type stdVar struct {
	offset float64
	cols   []int
	signs  []float64
}

// standardForm is the assembled min cᵀx̂, Ax̂ = b̂, x̂ ≥ 0 problem plus the
// mapping back to original variables.
type standardForm struct {
	c    []float64
	rows [][]float64
	rhs  []float64
	n    int

	varNames []string
	varsMap  map[string]stdVar

	// constant objective offset from bound shifting, in original sense.
	objOffset float64
	maximize  bool
}

func buildStandardForm(com *core.Community, obj core.Objective) (*standardForm, error) {
	sf := &standardForm{
		varNames: com.VariableNames(),
		varsMap:  make(map[string]stdVar),
		maximize: obj.Sense == core.Maximize,
	}

	// 2a) Columns: shift/mirror/split each variable to x̂ ≥ 0, collecting
	//     finite-upper-bound slack rows as we go.
	type boundRow struct {
		col   int
		width float64
	}
	var boundRows []boundRow
	for _, name := range sf.varNames {
		v, err := com.Variable(name)
		if err != nil {
			return nil, err
		}
		lb, ub := v.Bounds()
		var sv stdVar
		switch {
		case !math.IsInf(lb, -1):
			// x = lb + x̂, x̂ ≥ 0; finite ub adds x̂ + s = ub − lb.
			sv = stdVar{offset: lb, cols: []int{sf.n}, signs: []float64{1}}
			sf.n++
			if !math.IsInf(ub, 1) {
				boundRows = append(boundRows, boundRow{col: sv.cols[0], width: ub - lb})
			}
		case !math.IsInf(ub, 1):
			// x = ub − x̂, x̂ ≥ 0.
			sv = stdVar{offset: ub, cols: []int{sf.n}, signs: []float64{-1}}
			sf.n++
		default:
			// Free: x = x̂⁺ − x̂⁻.
			sv = stdVar{cols: []int{sf.n, sf.n + 1}, signs: []float64{1, -1}}
			sf.n += 2
		}
		sf.varsMap[name] = sv
	}

	// 2b) Constraint rows in declaration order.
	for _, cn := range com.ConstraintNames() {
		con, err := com.Constraint(cn)
		if err != nil {
			return nil, err
		}
		row := make([]float64, sf.n)
		base := 0.0
		for _, v := range con.Variables() {
			coeff := con.Coefficient(v.Name())
			sv := sf.varsMap[v.Name()]
			base += coeff * sv.offset
			for k, col := range sv.cols {
				row[col] += coeff * sv.signs[k]
			}
		}
		lo, hi := con.Bounds()
		switch {
		case lo == hi:
			sf.addRow(row, lo-base, 0)
		case !math.IsInf(lo, -1) && math.IsInf(hi, 1):
			sf.addRow(row, lo-base, -1)
		case math.IsInf(lo, -1) && !math.IsInf(hi, 1):
			sf.addRow(row, hi-base, +1)
		case !math.IsInf(lo, -1) && !math.IsInf(hi, 1):
			// Ranged row: a·x̂ − s = lo − base with 0 ≤ s ≤ hi − lo,
			// the slack range enforced by its own slack row.
			sCol := sf.growColumns(1)
			row = append(row, make([]float64, sf.n-len(row))...)
			row[sCol] = -1
			sf.addRow(row, lo-base, 0)
			rng := make([]float64, sf.n)
			rng[sCol] = 1
			sf.addRow(rng, hi-lo, +1)
		default:
			// (-Inf, +Inf) row constrains nothing.
		}
	}

	// 2c) Finite variable upper bounds.
	for _, br := range boundRows {
		row := make([]float64, sf.n)
		row[br.col] = 1
		sf.addRow(row, br.width, +1)
	}

	// 2d) Objective: minimize; maximize is negated.
	sf.c = make([]float64, sf.n)
	for name, coeff := range obj.Linear {
		sv, ok := sf.varsMap[name]
		if !ok {
			return nil, core.ErrVariableNotFound
		}
		sf.objOffset += coeff * sv.offset
		for k, col := range sv.cols {
			sign := 1.0
			if sf.maximize {
				sign = -1.0
			}
			sf.c[col] += sign * coeff * sv.signs[k]
		}
	}

	return sf, nil
}

// addRow appends one standard-form row. slackSign > 0 adds a "≤"-style
// slack (+s), slackSign < 0 a "≥"-style surplus (−s), zero an equality.
func (sf *standardForm) addRow(row []float64, rhs float64, slackSign int) {
	if slackSign != 0 {
		col := sf.growColumns(1)
		row = append(row, make([]float64, sf.n-len(row))...)
		if slackSign > 0 {
			row[col] = 1
		} else {
			row[col] = -1
		}
	}
	sf.rows = append(sf.rows, row)
	sf.rhs = append(sf.rhs, rhs)
}

// growColumns appends k fresh columns and returns the index of the first.
func (sf *standardForm) growColumns(k int) int {
	first := sf.n
	sf.n += k
	return first
}

// run pads all rows to the final column count, normalizes the rhs to be
// non-negative and invokes lp.Simplex, mapping lp errors to a Status.
func (sf *standardForm) run(tol float64) ([]float64, Status) {
	m := len(sf.rows)
	if m == 0 {
		// No rows at all: only box structure. Every x̂ ≥ 0 and any
		// negative reduced cost is unbounded; otherwise the origin is
		// optimal.
		for _, cj := range sf.c {
			if cj < 0 {
				return nil, StatusUnbounded
			}
		}
		return make([]float64, sf.n), StatusOptimal
	}
	data := make([]float64, m*sf.n)
	b := make([]float64, m)
	for i, row := range sf.rows {
		flip := 1.0
		if sf.rhs[i] < 0 {
			flip = -1.0
		}
		b[i] = flip * sf.rhs[i]
		for j, coeff := range row {
			data[i*sf.n+j] = flip * coeff
		}
	}
	a := mat.NewDense(m, sf.n, data)

	_, xStd, err := lp.Simplex(sf.c, a, b, tol, nil)
	switch {
	case err == nil:
		return xStd, StatusOptimal
	case errors.Is(err, lp.ErrInfeasible):
		return nil, StatusInfeasible
	case errors.Is(err, lp.ErrUnbounded):
		return nil, StatusUnbounded
	default:
		return nil, StatusNumeric
	}
}

// recover maps a standard-form solution vector back to original variable
// values.
func (sf *standardForm) recover(xStd []float64) map[string]float64 {
	values := make(map[string]float64, len(sf.varNames))
	for _, name := range sf.varNames {
		sv := sf.varsMap[name]
		x := sv.offset
		for k, col := range sv.cols {
			if col < len(xStd) {
				x += sv.signs[k] * xStd[col]
			}
		}
		values[name] = x
	}
	return values
}
