package tradeoff_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symbiota/comopt/core"
	"github.com/symbiota/comopt/tradeoff"
)

// TestRegularizeL2Norm_QuadraticForm verifies the installed cost on the
// standard two-member model: scale = 2, each member contributes
// −(2·growth)², so the diagonal carries −4 and the cost at growth rates
// {0.5, 0.5} evaluates to −2.
func TestRegularizeL2Norm_QuadraticForm(t *testing.T) {
	com := buildCommunity(t)

	err := com.Scope(func() error {
		require.NoError(t, tradeoff.RegularizeL2Norm(com, 0.3))

		v, err := com.Variable(core.ObjectiveVariable)
		require.NoError(t, err)
		lb, ub := v.Bounds()
		assert.Equal(t, 0.3, lb, "community growth floor pinned")
		assert.True(t, math.IsInf(ub, 1), "upper bound untouched")

		assert.Equal(t, tradeoff.ModificationL2Norm, com.Modification())

		obj := com.Objective()
		require.True(t, obj.IsQuadratic())
		assert.Equal(t, core.Maximize, obj.Sense)
		assert.ElementsMatch(t, []string{"growth_a", "growth_b"}, obj.Quad.Vars)
		assert.InDelta(t, -2.0, obj.Value(map[string]float64{
			"growth_a": 0.5, "growth_b": 0.5,
		}), 1e-12)
		assert.InDelta(t, -8.0, obj.Value(map[string]float64{
			"growth_a": 1.0, "growth_b": 1.0,
		}), 1e-12)
		return nil
	})
	require.NoError(t, err)
}

// TestRegularizeL2Norm_MultiTermGroup verifies the within-group cross
// terms: a member whose egoistic objective spans two variables must get
// the full square of their sum, not the sum of squares.
func TestRegularizeL2Norm_MultiTermGroup(t *testing.T) {
	com := core.New("single")
	require.NoError(t, com.AddMember(core.Member{ID: "a", Abundance: 1}))
	require.NoError(t, com.AddReaction("rxn_a", "a", 0, 1))
	require.NoError(t, com.SetBounds("growth_a", 0, 1))
	require.NoError(t, com.AddConstraint("objective_a",
		map[string]float64{"growth_a": 1, "rxn_a": 1}, 0, math.Inf(1)))

	err := com.Scope(func() error {
		require.NoError(t, tradeoff.RegularizeL2Norm(com, 0))

		// scale = 1, so the cost is −(growth_a + rxn_a)².
		obj := com.Objective()
		assert.InDelta(t, -4.0, obj.Value(map[string]float64{
			"growth_a": 1, "rxn_a": 1,
		}), 1e-12)
		assert.InDelta(t, -1.0, obj.Value(map[string]float64{
			"growth_a": 1, "rxn_a": 0,
		}), 1e-12)
		return nil
	})
	require.NoError(t, err)
}

// TestRegularize_ActiveBoundEpsilon verifies that variables pinned to an
// interval narrower than ActiveBoundEpsilon drop out of the cost.
func TestRegularize_ActiveBoundEpsilon(t *testing.T) {
	com := buildCommunity(t)
	require.NoError(t, com.SetBounds("growth_b", 0.5, 0.5+1e-7))

	err := com.Scope(func() error {
		require.NoError(t, tradeoff.RegularizeL2Norm(com, 0))
		obj := com.Objective()
		require.True(t, obj.IsQuadratic())
		assert.Equal(t, []string{"growth_a"}, obj.Quad.Vars,
			"near-pinned growth_b is not an active term")
		return nil
	})
	require.NoError(t, err)
}

// TestRegularizeL1Norm verifies the linear variant: coefficient −scale per
// active growth term and the l1 marker.
func TestRegularizeL1Norm(t *testing.T) {
	com := buildCommunity(t)

	err := com.Scope(func() error {
		require.NoError(t, tradeoff.RegularizeL1Norm(com, 0.2))

		assert.Equal(t, tradeoff.ModificationL1Norm, com.Modification())
		obj := com.Objective()
		assert.False(t, obj.IsQuadratic())
		assert.Equal(t, -2.0, obj.Linear["growth_a"])
		assert.Equal(t, -2.0, obj.Linear["growth_b"])
		return nil
	})
	require.NoError(t, err)
}

// TestRegularize_ScopedReversal verifies that the floor, the objective and
// the marker all revert on scope exit, bit-identically.
func TestRegularize_ScopedReversal(t *testing.T) {
	com := buildCommunity(t)
	before := com.Snapshot()

	err := com.Scope(func() error {
		return tradeoff.RegularizeL2Norm(com, 0.7)
	})
	require.NoError(t, err)
	assert.Equal(t, before, com.Snapshot())

	v, err := com.Variable(core.ObjectiveVariable)
	require.NoError(t, err)
	lb, _ := v.Bounds()
	assert.Equal(t, 0.0, lb, "floor reset on exit")
	assert.Equal(t, "", com.Modification())
}
