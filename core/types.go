package core

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// ObjectiveVariable is the name of the distinguished variable tracking
// whole-community growth. It is created by New and always present.
const ObjectiveVariable = "community_objective"

// GrowthVariable returns the name of the growth-rate variable for a member
// species. AddMember creates it as a reaction tagged with the member id, so
// knocking the species out also pins its growth to zero.
func GrowthVariable(member string) string { return "growth_" + member }

// ObjectiveConstraint returns the name of the per-member constraint whose
// associated variables carry that member's egoistic-objective terms.
// The model invariant is exactly one such constraint per declared member.
func ObjectiveConstraint(member string) string { return "objective_" + member }

// Member is one community member.
//
//   - ID        — species identifier; also the community-membership tag on
//     that member's reactions.
//   - Abundance — relative abundance in the community (informational for
//     the drivers; used by model builders when weighting the
//     community objective).
//   - Virtual   — true for pseudo-members such as the shared "medium"
//     compartment: excluded from min-growth normalization and
//     dropped from knockout result columns.
type Member struct {
	ID        string
	Abundance float64
	Virtual   bool
}

// Variable is a named model variable with a mutable bound interval.
// Bounds are mutated through Community.SetBounds so that active scopes can
// record the reversal.
type Variable struct {
	name string
	lb   float64
	ub   float64
}

// Name returns the variable identifier.
func (v *Variable) Name() string { return v.name }

// Lower returns the current lower bound (may be -Inf).
func (v *Variable) Lower() float64 { return v.lb }

// Upper returns the current upper bound (may be +Inf).
func (v *Variable) Upper() float64 { return v.ub }

// Bounds returns the current (lower, upper) bound pair.
func (v *Variable) Bounds() (lb, ub float64) { return v.lb, v.ub }

// Constraint is a linear constraint row: lower ≤ Σ coeff_j · x_j ≤ upper.
// An equality row has lower == upper. Coefficients are fixed at creation;
// only variable bounds and the objective are mutable model state.
type Constraint struct {
	name   string
	vars   []*Variable
	coeffs map[string]float64
	lb     float64
	ub     float64
}

// Name returns the constraint identifier.
func (c *Constraint) Name() string { return c.name }

// Variables returns the constraint's associated variables in declaration
// order. The returned slice is shared; callers must not mutate it.
func (c *Constraint) Variables() []*Variable { return c.vars }

// Coefficient returns the coefficient of the named variable in this row
// (zero if the variable does not participate).
func (c *Constraint) Coefficient(name string) float64 { return c.coeffs[name] }

// Bounds returns the row's (lower, upper) bound pair.
func (c *Constraint) Bounds() (lb, ub float64) { return c.lb, c.ub }

// Reaction is a model reaction: a flux variable tagged with the id of the
// community member it belongs to. Knocking out a member disables every
// reaction carrying its tag by pinning the flux bounds to zero.
type Reaction struct {
	id          string
	communityID string
	v           *Variable
}

// ID returns the reaction identifier (also its flux variable name).
func (r *Reaction) ID() string { return r.id }

// CommunityID returns the id of the member this reaction belongs to.
func (r *Reaction) CommunityID() string { return r.communityID }

// Variable returns the reaction's flux variable.
func (r *Reaction) Variable() *Variable { return r.v }

// Sense is the optimization direction of an objective expression.
type Sense int

const (
	// Maximize the objective expression (the package-wide convention:
	// minimization problems are expressed as maximizing a negation).
	Maximize Sense = iota

	// Minimize the objective expression.
	Minimize
)

// String implements fmt.Stringer.
func (s Sense) String() string {
	if s == Minimize {
		return "minimize"
	}
	return "maximize"
}

// QuadForm is a quadratic objective term xᵀQx over an ordered variable
// subset. Q is symmetric; the value is the full bilinear expansion
// Σᵢ Σⱼ Q[i,j]·xᵢ·xⱼ.
type QuadForm struct {
	// Vars lists the participating variable names; row/column i of Coeffs
	// corresponds to Vars[i].
	Vars []string

	// Coeffs is the symmetric coefficient matrix Q.
	Coeffs *mat.SymDense
}

// Clone returns a deep copy of the quadratic form.
func (q *QuadForm) Clone() *QuadForm {
	if q == nil {
		return nil
	}
	cp := &QuadForm{Vars: append([]string(nil), q.Vars...)}
	if q.Coeffs != nil {
		n := q.Coeffs.SymmetricDim()
		cp.Coeffs = mat.NewSymDense(n, nil)
		cp.Coeffs.CopySym(q.Coeffs)
	}
	return cp
}

// Objective is a model objective expression: a linear part plus an optional
// quadratic form, optimized in the given Sense. The zero value is an empty
// maximization objective.
type Objective struct {
	Sense  Sense
	Linear map[string]float64
	Quad   *QuadForm
}

// LinearObjective builds a purely linear objective over the given
// coefficient map.
func LinearObjective(sense Sense, coeffs map[string]float64) Objective {
	return Objective{Sense: sense, Linear: coeffs}
}

// IsQuadratic reports whether the objective carries a quadratic term.
func (o Objective) IsQuadratic() bool { return o.Quad != nil }

// Clone returns a deep copy of the objective.
func (o Objective) Clone() Objective {
	cp := Objective{Sense: o.Sense, Quad: o.Quad.Clone()}
	if o.Linear != nil {
		cp.Linear = make(map[string]float64, len(o.Linear))
		for k, v := range o.Linear {
			cp.Linear[k] = v
		}
	}
	return cp
}

// Value evaluates the objective expression at the given variable values.
// Missing values are treated as zero. The Sense is not applied; Value
// returns the raw expression value.
func (o Objective) Value(values map[string]float64) float64 {
	total := 0.0
	for name, c := range o.Linear {
		total += c * values[name]
	}
	if o.Quad != nil && o.Quad.Coeffs != nil {
		x := mat.NewVecDense(len(o.Quad.Vars), nil)
		for i, name := range o.Quad.Vars {
			x.SetVec(i, values[name])
		}
		total += mat.Inner(x, o.Quad.Coeffs, x)
	}
	return total
}

// validBounds reports whether (lb, ub) is an acceptable bound interval:
// no NaN and lb ≤ ub.
func validBounds(lb, ub float64) bool {
	if math.IsNaN(lb) || math.IsNaN(ub) {
		return false
	}
	return lb <= ub
}
