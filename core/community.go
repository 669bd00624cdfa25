package core

import (
	"math"

	"github.com/rs/zerolog"
)

// Community is a multi-organism constrained optimization model.
//
// Mutable state is limited to variable bounds, the objective expression and
// the modification marker; everything else (members, constraint rows,
// reaction tags) is fixed after construction. All mutations performed inside
// a Scope are reverted on exit (see scope.go).
//
// Community is not safe for concurrent use: the drivers in package tradeoff
// run strictly sequential sweeps, and the scoped-reversal discipline is what
// isolates iterations from each other.
type Community struct {
	id string

	members []Member

	vars     map[string]*Variable
	varOrder []string

	cons     map[string]*Constraint
	conOrder []string

	reactions []*Reaction

	objective    Objective
	modification string

	scopes []*scopeFrame

	log zerolog.Logger
}

// CommunityOption configures New.
type CommunityOption func(*Community)

// WithLogger attaches a zerolog logger to the community. The default is a
// no-op logger.
func WithLogger(log zerolog.Logger) CommunityOption {
	return func(c *Community) { c.log = log }
}

// New creates an empty community with the given id. The distinguished
// community_objective variable is created with bounds [0, +Inf).
func New(id string, opts ...CommunityOption) *Community {
	c := &Community{
		id:   id,
		vars: make(map[string]*Variable),
		cons: make(map[string]*Constraint),
		log:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.addVariable(ObjectiveVariable, 0, math.Inf(1))
	return c
}

// ID returns the community identifier.
func (c *Community) ID() string { return c.id }

// Logger returns the community's logger.
func (c *Community) Logger() zerolog.Logger { return c.log }

// Members returns all declared members (including virtual pseudo-members)
// in declaration order. The returned slice is a copy.
func (c *Community) Members() []Member {
	return append([]Member(nil), c.members...)
}

// MemberIDs returns the ids of all members, virtual ones included, in
// declaration order. This is the canonical row order of growth-rate tables.
func (c *Community) MemberIDs() []string {
	ids := make([]string, len(c.members))
	for i, m := range c.members {
		ids[i] = m.ID
	}
	return ids
}

// Species returns the ids of the biological (non-virtual) members in
// declaration order.
func (c *Community) Species() []string {
	ids := make([]string, 0, len(c.members))
	for _, m := range c.members {
		if !m.Virtual {
			ids = append(ids, m.ID)
		}
	}
	return ids
}

// Member returns the declared member with the given id.
func (c *Community) Member(id string) (Member, error) {
	for _, m := range c.members {
		if m.ID == id {
			return m, nil
		}
	}
	return Member{}, ErrMemberNotFound
}

// Variable returns the named variable.
func (c *Community) Variable(name string) (*Variable, error) {
	v, ok := c.vars[name]
	if !ok {
		return nil, ErrVariableNotFound
	}
	return v, nil
}

// VariableNames returns all variable names in declaration order.
func (c *Community) VariableNames() []string {
	return append([]string(nil), c.varOrder...)
}

// Constraint returns the named constraint.
func (c *Community) Constraint(name string) (*Constraint, error) {
	con, ok := c.cons[name]
	if !ok {
		return nil, ErrConstraintNotFound
	}
	return con, nil
}

// ConstraintNames returns all constraint names in declaration order.
func (c *Community) ConstraintNames() []string {
	return append([]string(nil), c.conOrder...)
}

// Reactions returns all reactions in declaration order. The returned slice
// is a copy; the pointed-to reactions are shared.
func (c *Community) Reactions() []*Reaction {
	return append([]*Reaction(nil), c.reactions...)
}

// Objective returns a deep copy of the current objective expression.
func (c *Community) Objective() Objective { return c.objective.Clone() }

// Modification returns the active modification marker ("" when none).
// Drivers use it as a reentrancy guard against stacking incompatible
// objectives.
func (c *Community) Modification() string { return c.modification }

// AddMember declares a community member. Non-virtual members get a growth
// reaction named GrowthVariable(id) with bounds [0, +Inf), tagged with the
// member id so that a knockout also pins the member's growth to zero.
func (c *Community) AddMember(m Member) error {
	if m.ID == "" {
		return ErrEmptyID
	}
	if _, err := c.Member(m.ID); err == nil {
		return ErrDuplicateID
	}
	c.members = append(c.members, m)
	if m.Virtual {
		return nil
	}
	return c.AddReaction(GrowthVariable(m.ID), m.ID, 0, math.Inf(1))
}

// AddVariable declares a plain model variable with the given bounds.
func (c *Community) AddVariable(name string, lb, ub float64) error {
	if name == "" {
		return ErrEmptyID
	}
	if !validBounds(lb, ub) {
		return ErrBadBounds
	}
	if _, ok := c.vars[name]; ok {
		return ErrDuplicateID
	}
	c.addVariable(name, lb, ub)
	return nil
}

// AddReaction declares a reaction: a flux variable named id, tagged with
// the owning member's community id.
func (c *Community) AddReaction(id, communityID string, lb, ub float64) error {
	if id == "" || communityID == "" {
		return ErrEmptyID
	}
	if err := c.AddVariable(id, lb, ub); err != nil {
		return err
	}
	c.reactions = append(c.reactions, &Reaction{
		id:          id,
		communityID: communityID,
		v:           c.vars[id],
	})
	return nil
}

// AddConstraint declares a linear constraint row over existing variables.
// An equality row has lb == ub. Every referenced variable must already be
// declared.
func (c *Community) AddConstraint(name string, coeffs map[string]float64, lb, ub float64) error {
	if name == "" {
		return ErrEmptyID
	}
	if !validBounds(lb, ub) {
		return ErrBadBounds
	}
	if _, ok := c.cons[name]; ok {
		return ErrDuplicateID
	}
	con := &Constraint{
		name:   name,
		coeffs: make(map[string]float64, len(coeffs)),
		lb:     lb,
		ub:     ub,
	}
	// Associate variables in declaration order for deterministic iteration.
	for _, vn := range c.varOrder {
		coeff, ok := coeffs[vn]
		if !ok || coeff == 0 {
			continue
		}
		con.vars = append(con.vars, c.vars[vn])
		con.coeffs[vn] = coeff
	}
	if len(con.coeffs) != nonZero(coeffs) {
		return ErrVariableNotFound
	}
	c.cons[name] = con
	c.conOrder = append(c.conOrder, name)
	return nil
}

// Validate checks the model invariants: every non-virtual member must have
// exactly one objective_<species> constraint. Builders (and codecs) call it
// after construction; the drivers assume a validated model.
func (c *Community) Validate() error {
	for _, sp := range c.Species() {
		if _, ok := c.cons[ObjectiveConstraint(sp)]; !ok {
			return ErrMissingObjectiveConstraint
		}
	}
	return nil
}

// SetBounds sets the bound interval of the named variable. When a scope is
// active the previous interval is recorded and restored on scope exit.
func (c *Community) SetBounds(name string, lb, ub float64) error {
	v, ok := c.vars[name]
	if !ok {
		return ErrVariableNotFound
	}
	if !validBounds(lb, ub) {
		return ErrBadBounds
	}
	plb, pub := v.lb, v.ub
	c.record(func() { v.lb, v.ub = plb, pub })
	v.lb, v.ub = lb, ub
	return nil
}

// SetObjective replaces the objective expression. When a scope is active
// the previous expression is recorded and restored on scope exit.
func (c *Community) SetObjective(obj Objective) {
	prev := c.objective
	c.record(func() { c.objective = prev })
	c.objective = obj.Clone()
}

// SetModification sets the modification marker. When a scope is active the
// previous marker is recorded and restored on scope exit.
func (c *Community) SetModification(marker string) {
	prev := c.modification
	c.record(func() { c.modification = prev })
	c.modification = marker
}

// KnockOut disables every reaction tagged with the given community id by
// pinning its flux bounds to [0, 0], and returns the number of reactions
// disabled. Reversal is recorded per reaction on the active scope.
func (c *Community) KnockOut(communityID string) int {
	n := 0
	for _, r := range c.reactions {
		if r.communityID != communityID {
			continue
		}
		v := r.v
		plb, pub := v.lb, v.ub
		c.record(func() { v.lb, v.ub = plb, pub })
		v.lb, v.ub = 0, 0
		n++
	}
	c.log.Debug().Str("community", c.id).Str("member", communityID).
		Int("reactions", n).Msg("knocked out member reactions")
	return n
}

// ResetCommunityGrowthBounds restores the community_objective variable to
// its unconstrained interval [0, +Inf).
func (c *Community) ResetCommunityGrowthBounds() {
	v := c.vars[ObjectiveVariable]
	plb, pub := v.lb, v.ub
	c.record(func() { v.lb, v.ub = plb, pub })
	v.lb, v.ub = 0, math.Inf(1)
}

func (c *Community) addVariable(name string, lb, ub float64) {
	c.vars[name] = &Variable{name: name, lb: lb, ub: ub}
	c.varOrder = append(c.varOrder, name)
}

func nonZero(coeffs map[string]float64) int {
	n := 0
	for _, v := range coeffs {
		if v != 0 {
			n++
		}
	}
	return n
}
