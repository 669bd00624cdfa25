package solver_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/symbiota/comopt/core"
	"github.com/symbiota/comopt/solver"
)

// stubSolver replays a fixed queue of (solution, error) responses and
// records Relax calls. When the queue runs dry it keeps returning the last
// response.
type stubSolver struct {
	responses []stubResponse
	calls     int
	relaxes   []int
}

type stubResponse struct {
	sol *solver.Solution
	err error
}

func (s *stubSolver) Solve(com *core.Community, opts solver.SolveOptions) (*solver.Solution, error) {
	i := s.calls
	if i >= len(s.responses) {
		i = len(s.responses) - 1
	}
	s.calls++
	r := s.responses[i]
	return r.sol, r.err
}

func (s *stubSolver) Relax(attempt int) {
	s.relaxes = append(s.relaxes, attempt)
}

func optimal(objective float64) stubResponse {
	return stubResponse{sol: &solver.Solution{Status: solver.StatusOptimal, Objective: objective}}
}

func nonOptimal(status solver.Status) stubResponse {
	return stubResponse{sol: &solver.Solution{Status: status, Objective: math.NaN()}}
}

// lpCommunity builds a tiny standalone LP: maximize x + y with x ∈ [0, 2],
// y ∈ [0, 3] and x + y ≤ 4.
func lpCommunity(t *testing.T) *core.Community {
	t.Helper()
	com := core.New("lp")
	require.NoError(t, com.AddVariable("x", 0, 2))
	require.NoError(t, com.AddVariable("y", 0, 3))
	require.NoError(t, com.AddConstraint("cap", map[string]float64{"x": 1, "y": 1}, math.Inf(-1), 4))
	com.SetObjective(core.LinearObjective(core.Maximize, map[string]float64{"x": 1, "y": 1}))
	return com
}

// growthCommunity builds the standard two-member community solved by the
// Simplex backend in tests: growth rates capped at 1, community growth
// tied to the abundance-weighted sum.
func growthCommunity(t *testing.T) *core.Community {
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
	com.SetObjective(core.LinearObjective(core.Maximize,
		map[string]float64{core.ObjectiveVariable: 1}))
	return com
}
