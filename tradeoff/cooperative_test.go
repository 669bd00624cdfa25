package tradeoff_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symbiota/comopt/core"
	"github.com/symbiota/comopt/solver"
	"github.com/symbiota/comopt/tradeoff"
)

// TestCooperativeTradeoffSweep_OrderAndBounds runs a scripted sweep:
// baseline G = 1.0, fractions {0.5, 1.0} in ascending input order. The
// result must come back descending, and the community-growth floor
// observed during each fraction solve must equal fr·G.
func TestCooperativeTradeoffSweep_OrderAndBounds(t *testing.T) {
	com := buildCommunity(t)
	s := &scriptSolver{responses: []scriptResponse{
		optimal(1.0), // baseline
		optimal(-0.5),
		optimal(-2.0),
	}}

	table, err := tradeoff.CooperativeTradeoffSweep(com, s,
		core.UniformGrowth(0), []float64{0.5, 1.0})
	require.NoError(t, err)

	assert.Equal(t, []float64{1.0, 0.5}, table.Fractions(), "descending regardless of input order")
	require.Len(t, s.records, 3)

	base := s.records[0]
	assert.Equal(t, 0.0, base.objLB, "baseline solved without a growth floor")
	assert.False(t, base.quadratic, "baseline objective is the plain community objective")
	assert.Equal(t, 1.0, base.linear[core.ObjectiveVariable])
	assert.Equal(t, "", base.marker, "cost not installed yet during the baseline")

	full := s.records[1]
	assert.Equal(t, 1.0, full.objLB, "floor fr·G for fr = 1.0")
	assert.True(t, math.IsInf(full.objUB, 1), "upper bound left unbounded")
	assert.True(t, full.quadratic, "default cost is the quadratic one")
	assert.Equal(t, tradeoff.ModificationL2Norm, full.marker)

	half := s.records[2]
	assert.Equal(t, 0.5, half.objLB, "floor fr·G for fr = 0.5")
}

// TestCooperativeTradeoff_SingleReturnsBareSolution verifies the
// single-fraction form returns the Solution itself, not a table.
func TestCooperativeTradeoff_SingleReturnsBareSolution(t *testing.T) {
	com := buildCommunity(t)
	want := optimalGrowth(-1.0, map[string]float64{"a": 0.9, "b": 0.8})
	s := &scriptSolver{responses: []scriptResponse{optimal(2.0), want}}

	sol, err := tradeoff.CooperativeTradeoff(com, s, core.UniformGrowth(0), 1.0)
	require.NoError(t, err)
	assert.Same(t, want.sol, sol)
}

// TestCooperativeTradeoff_CrossoverOnce verifies the recovery protocol: a
// non-optimal fraction solve narrows the interval to
// [0.99·fr·G, 1.01·fr·G], runs exactly one crossover solve and keeps its
// result.
func TestCooperativeTradeoff_CrossoverOnce(t *testing.T) {
	com := buildCommunity(t)
	recovered := optimalGrowth(-0.8, map[string]float64{"a": 0.4, "b": 0.4})
	s := &scriptSolver{responses: []scriptResponse{
		optimal(1.0), // baseline G = 1.0
		nonOptimal(solver.StatusInfeasible),
		recovered,
	}}

	sol, err := tradeoff.CooperativeTradeoff(com, s, core.UniformGrowth(0), 0.8)
	require.NoError(t, err)
	assert.Same(t, recovered.sol, sol, "the crossover result is used as-is")
	require.Len(t, s.records, 3, "exactly one recovery attempt")

	rec := s.records[2]
	assert.InDelta(t, 0.99*0.8, rec.objLB, 1e-12)
	assert.InDelta(t, 1.01*0.8, rec.objUB, 1e-12)
}

// TestCooperativeTradeoff_CrossoverResultKeptEvenIfNonOptimal verifies
// that a still-non-optimal recovery result is reported on the entry with
// no further retries.
func TestCooperativeTradeoff_CrossoverResultKeptEvenIfNonOptimal(t *testing.T) {
	com := buildCommunity(t)
	still := nonOptimal(solver.StatusNumeric)
	s := &scriptSolver{responses: []scriptResponse{
		optimal(1.0),
		nonOptimal(solver.StatusInfeasible),
		still,
	}}

	sol, err := tradeoff.CooperativeTradeoff(com, s, core.UniformGrowth(0), 0.9)
	require.NoError(t, err)
	assert.Same(t, still.sol, sol)
	assert.Equal(t, solver.StatusNumeric, sol.Status,
		"caller is responsible for inspecting the status")
	assert.Len(t, s.records, 3)
}

// TestCooperativeTradeoff_AlreadyModified verifies the reentrancy guard
// fails fast without mutating the model.
func TestCooperativeTradeoff_AlreadyModified(t *testing.T) {
	com := buildCommunity(t)
	com.SetModification(tradeoff.ModificationL2Norm)
	before := com.Snapshot()
	s := &scriptSolver{responses: []scriptResponse{optimal(1.0)}}

	_, err := tradeoff.CooperativeTradeoff(com, s, core.UniformGrowth(0), 1.0)
	assert.ErrorIs(t, err, tradeoff.ErrAlreadyModified)
	assert.Equal(t, before, com.Snapshot())
	assert.Empty(t, s.records, "no solve may happen")
}

// TestCooperativeTradeoff_FullReversal verifies bit-identical model state
// after a successful sweep and after a baseline failure.
func TestCooperativeTradeoff_FullReversal(t *testing.T) {
	com := buildCommunity(t)
	before := com.Snapshot()

	ok := &scriptSolver{responses: []scriptResponse{optimal(1.0), optimal(-1.0)}}
	_, err := tradeoff.CooperativeTradeoffSweep(com, ok,
		core.UniformGrowth(0.1), []float64{0.3, 0.7})
	require.NoError(t, err)
	assert.Equal(t, before, com.Snapshot(), "reversal after success")

	bad := &scriptSolver{responses: []scriptResponse{nonOptimal(solver.StatusInfeasible)}}
	_, err = tradeoff.CooperativeTradeoff(com, bad, core.UniformGrowth(0), 1.0)
	assert.ErrorIs(t, err, solver.ErrOptimization,
		"baseline failure aborts the whole sweep")
	assert.Equal(t, before, com.Snapshot(), "reversal after error")
}

// TestCooperativeTradeoff_FractionValidation exercises ErrNoFractions and
// ErrBadFraction.
func TestCooperativeTradeoff_FractionValidation(t *testing.T) {
	com := buildCommunity(t)
	s := &scriptSolver{responses: []scriptResponse{optimal(1.0)}}

	_, err := tradeoff.CooperativeTradeoffSweep(com, s, core.UniformGrowth(0), nil)
	assert.ErrorIs(t, err, tradeoff.ErrNoFractions)

	for _, fr := range []float64{0, -0.5, 1.5, math.NaN()} {
		_, err = tradeoff.CooperativeTradeoff(com, s, core.UniformGrowth(0), fr)
		assert.ErrorIs(t, err, tradeoff.ErrBadFraction, "fraction %v", fr)
	}
}

// TestCooperativeTradeoff_LinearCost verifies WithLinearCost installs the
// L1 objective: linear coefficients −n per active growth term, marker
// ModificationL1Norm.
func TestCooperativeTradeoff_LinearCost(t *testing.T) {
	com := buildCommunity(t)
	s := &scriptSolver{responses: []scriptResponse{optimal(1.0), optimal(-2.0)}}

	_, err := tradeoff.CooperativeTradeoff(com, s, core.UniformGrowth(0), 1.0,
		tradeoff.WithLinearCost(true))
	require.NoError(t, err)
	require.Len(t, s.records, 2)

	rec := s.records[1]
	assert.False(t, rec.quadratic)
	assert.Equal(t, tradeoff.ModificationL1Norm, rec.marker)
	assert.Equal(t, -2.0, rec.linear["growth_a"], "scale = member count = 2, negated")
	assert.Equal(t, -2.0, rec.linear["growth_b"])
}

// TestCooperativeTradeoffSweep_EndToEndSimplex runs the whole pipeline on
// the real LP backend with the linear cost: baseline G = 1, so the floor
// fr·G forces total growth 2·fr and the cost drives it down to exactly
// that floor.
func TestCooperativeTradeoffSweep_EndToEndSimplex(t *testing.T) {
	com := buildCommunity(t)
	be := solver.NewSimplex()

	table, err := tradeoff.CooperativeTradeoffSweep(com, be,
		core.UniformGrowth(0), []float64{0.5, 1.0},
		tradeoff.WithLinearCost(true), tradeoff.WithFluxes(true))
	require.NoError(t, err)
	require.Len(t, table.Entries, 2)

	full := table.Entries[0]
	assert.Equal(t, 1.0, full.Fraction)
	require.Equal(t, solver.StatusOptimal, full.Solution.Status)
	assert.InDelta(t, 1.0, full.Solution.Fluxes[core.ObjectiveVariable], 1e-9)
	ra, _ := full.Solution.Growth.Rate("a")
	rb, _ := full.Solution.Growth.Rate("b")
	assert.InDelta(t, 2.0, ra+rb, 1e-9, "floor 1.0 forces both members to their cap")

	half := table.Entries[1]
	assert.Equal(t, 0.5, half.Fraction)
	require.Equal(t, solver.StatusOptimal, half.Solution.Status)
	assert.InDelta(t, 0.5, half.Solution.Fluxes[core.ObjectiveVariable], 1e-9)
	ra, _ = half.Solution.Growth.Rate("a")
	rb, _ = half.Solution.Growth.Rate("b")
	assert.InDelta(t, 1.0, ra+rb, 1e-9, "cost drives total growth down to the floor")
}
