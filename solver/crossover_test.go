package solver_test

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/symbiota/comopt/solver"
)

// TestCrossover_ReturnsRecoverySolution verifies that the recovery solve's
// result replaces the original solution.
func TestCrossover_ReturnsRecoverySolution(t *testing.T) {
	com := growthCommunity(t)
	bad := nonOptimal(solver.StatusInfeasible).sol
	good := optimal(0.5).sol
	s := &stubSolver{responses: []stubResponse{{sol: good}}}

	got := solver.Crossover(s, com, bad, solver.SolveOptions{}, zerolog.Nop())
	assert.Same(t, good, got)
	assert.Equal(t, 1, s.calls, "exactly one recovery attempt")
}

// TestCrossover_NonOptimalRecoveryIsKept verifies that a still-non-optimal
// recovery result is returned as-is — interpreting the status is the
// caller's job.
func TestCrossover_NonOptimalRecoveryIsKept(t *testing.T) {
	com := growthCommunity(t)
	bad := nonOptimal(solver.StatusInfeasible).sol
	still := nonOptimal(solver.StatusNumeric).sol
	s := &stubSolver{responses: []stubResponse{{sol: still}}}

	got := solver.Crossover(s, com, bad, solver.SolveOptions{}, zerolog.Nop())
	assert.Same(t, still, got)
}

// TestCrossover_MechanicalErrorKeepsOriginal verifies the never-fails
// contract: on a backend error the original solution comes back.
func TestCrossover_MechanicalErrorKeepsOriginal(t *testing.T) {
	com := growthCommunity(t)
	bad := nonOptimal(solver.StatusInfeasible).sol
	s := &stubSolver{responses: []stubResponse{{err: errors.New("boom")}}}

	got := solver.Crossover(s, com, bad, solver.SolveOptions{}, zerolog.Nop())
	assert.Same(t, bad, got)
}
