package solver

import (
	"github.com/rs/zerolog"

	"github.com/symbiota/comopt/core"
)

// Crossover performs a single recovery solve after a bounded-interval solve
// came back non-optimal. The caller has already narrowed the feasible
// interval around the intended target; Crossover re-solves the model as-is
// and returns whichever Solution results — it never fails.
//
// On a mechanical backend error the original (non-optimal) solution is
// returned unchanged, so downstream code always has a status to inspect.
// Exactly one recovery attempt is made; interpreting a still-non-optimal
// status is the caller's responsibility.
func Crossover(s Solver, com *core.Community, infeasible *Solution, opts SolveOptions, log zerolog.Logger) *Solution {
	status := StatusUnknown
	if infeasible != nil {
		status = infeasible.Status
	}
	log.Info().Str("community", com.ID()).Stringer("status", status).
		Msg("solve was not optimal, trying crossover")
	sol, err := s.Solve(com, opts)
	if err != nil || sol == nil {
		log.Warn().Str("community", com.ID()).Err(err).
			Msg("crossover solve failed, keeping original solution")
		return infeasible
	}
	return sol
}
