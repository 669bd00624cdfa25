package core

import "math"

// GrowthSpec is a minimum-growth specification: either a single scalar
// applied to every biological member, or a per-member map. Normalize turns
// either form into the canonical per-member mapping consumed by
// ApplyMinGrowth.
type GrowthSpec struct {
	uniform   float64
	perMember map[string]float64
}

// UniformGrowth specifies the same minimum growth rate for every member.
func UniformGrowth(rate float64) GrowthSpec {
	return GrowthSpec{uniform: rate}
}

// PerMemberGrowth specifies an individual minimum growth rate per member
// id. Normalize rejects maps that mention unknown species or omit a
// declared one.
func PerMemberGrowth(rates map[string]float64) GrowthSpec {
	cp := make(map[string]float64, len(rates))
	for k, v := range rates {
		cp[k] = v
	}
	return GrowthSpec{perMember: cp}
}

// Normalize resolves the specification against the given member list and
// returns exactly one non-negative entry per biological member. Virtual
// members are skipped. Returns ErrBadMinGrowth on negative or NaN rates,
// on unknown map keys, and on maps missing a declared member.
func (g GrowthSpec) Normalize(members []Member) (map[string]float64, error) {
	out := make(map[string]float64)
	for _, m := range members {
		if m.Virtual {
			continue
		}
		rate := g.uniform
		if g.perMember != nil {
			r, ok := g.perMember[m.ID]
			if !ok {
				return nil, ErrBadMinGrowth
			}
			rate = r
		}
		if rate < 0 || math.IsNaN(rate) {
			return nil, ErrBadMinGrowth
		}
		out[m.ID] = rate
	}
	if g.perMember != nil && len(g.perMember) != len(out) {
		return nil, ErrBadMinGrowth
	}
	return out, nil
}

// ApplyMinGrowth pushes a normalized minimum-growth mapping into the model
// by raising the lower bound of each member's growth variable. Upper bounds
// are untouched. Reversal is recorded on the active scope.
func (c *Community) ApplyMinGrowth(min map[string]float64) error {
	for _, m := range c.members {
		if m.Virtual {
			continue
		}
		rate, ok := min[m.ID]
		if !ok {
			return ErrBadMinGrowth
		}
		v, err := c.Variable(GrowthVariable(m.ID))
		if err != nil {
			return err
		}
		if err := c.SetBounds(v.Name(), rate, v.Upper()); err != nil {
			return err
		}
	}
	return nil
}
