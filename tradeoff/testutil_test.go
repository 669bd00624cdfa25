package tradeoff_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/symbiota/comopt/core"
	"github.com/symbiota/comopt/solver"
)

// buildCommunity assembles the standard two-member test model: members a
// and b plus a virtual medium, growth rates capped at 1, community growth
// tied to the abundance-weighted growth sum.
func buildCommunity(t *testing.T) *core.Community {
	t.Helper()
	com := core.New("demo")
	require.NoError(t, com.AddMember(core.Member{ID: "a", Abundance: 0.5}))
	require.NoError(t, com.AddMember(core.Member{ID: "b", Abundance: 0.5}))
	require.NoError(t, com.AddMember(core.Member{ID: "medium", Virtual: true}))
	require.NoError(t, com.SetBounds("growth_a", 0, 1))
	require.NoError(t, com.SetBounds("growth_b", 0, 1))
	require.NoError(t, com.AddConstraint("objective_a", map[string]float64{"growth_a": 1}, 0, math.Inf(1)))
	require.NoError(t, com.AddConstraint("objective_b", map[string]float64{"growth_b": 1}, 0, math.Inf(1)))
	require.NoError(t, com.AddConstraint("community_growth",
		map[string]float64{core.ObjectiveVariable: 1, "growth_a": -0.5, "growth_b": -0.5}, 0, 0))
	require.NoError(t, com.Validate())
	return com
}

// solveRecord captures the model state observed during one Solve call.
type solveRecord struct {
	objLB, objUB float64 // community_objective bounds
	gaLB, gaUB   float64 // growth_a bounds (knockout visibility)
	quadratic    bool
	linear       map[string]float64
	marker       string
}

// scriptSolver replays a queue of responses (sticky last) while recording
// the model state seen by every Solve call.
type scriptSolver struct {
	responses []scriptResponse
	records   []solveRecord
}

type scriptResponse struct {
	sol *solver.Solution
	err error
}

func (s *scriptSolver) Solve(com *core.Community, opts solver.SolveOptions) (*solver.Solution, error) {
	obj := com.Objective()
	rec := solveRecord{
		quadratic: obj.IsQuadratic(),
		linear:    obj.Linear,
		marker:    com.Modification(),
	}
	if v, err := com.Variable(core.ObjectiveVariable); err == nil {
		rec.objLB, rec.objUB = v.Bounds()
	}
	if v, err := com.Variable("growth_a"); err == nil {
		rec.gaLB, rec.gaUB = v.Bounds()
	}
	s.records = append(s.records, rec)

	i := len(s.records) - 1
	if i >= len(s.responses) {
		i = len(s.responses) - 1
	}
	r := s.responses[i]
	return r.sol, r.err
}

func optimal(objective float64) scriptResponse {
	return scriptResponse{sol: &solver.Solution{Status: solver.StatusOptimal, Objective: objective}}
}

func optimalGrowth(objective float64, rates map[string]float64) scriptResponse {
	g := solver.GrowthRates{Members: []string{"a", "b", "medium"}}
	for _, id := range g.Members {
		r, ok := rates[id]
		if !ok {
			r = math.NaN()
		}
		g.Rates = append(g.Rates, r)
	}
	return scriptResponse{sol: &solver.Solution{
		Status:    solver.StatusOptimal,
		Objective: objective,
		Growth:    g,
	}}
}

func nonOptimal(status solver.Status) scriptResponse {
	return scriptResponse{sol: &solver.Solution{Status: status, Objective: math.NaN()}}
}

// knockoutScript is the scripted call sequence shared by the knockout
// tests: C0 = 1.0, baseline row {a: 0.8, b: 0.6},
// knockout of a gives G_a = 0.6 and row {a: 0, b: 0.5}, knockout of b
// gives G_b = 0.8 and row {a: 0.7, b: 0}.
func knockoutScript() []scriptResponse {
	return []scriptResponse{
		optimal(1.0), // baseline community growth C0
		optimalGrowth(0, map[string]float64{"a": 0.8, "b": 0.6}), // reference row
		optimal(0.6), // post-knockout growth for a
		optimalGrowth(0, map[string]float64{"a": 0.0, "b": 0.5}),
		optimal(0.8), // post-knockout growth for b
		optimalGrowth(0, map[string]float64{"a": 0.7, "b": 0.0}),
	}
}
