package solver

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/symbiota/comopt/core"
)

// DefaultRetryAttempts is the default number of solve attempts made by
// OptimizeWithRetry before giving up.
const DefaultRetryAttempts = 3

// OptimizeWithRetry solves the model in its current state, retrying up to
// attempts times. Between attempts, a backend implementing Relaxer gets a
// chance to loosen its numerical tolerances. Returns the optimal objective
// value on success.
//
// Contracts:
//   - attempts ≤ 0 selects DefaultRetryAttempts.
//   - No side effects on the model: bounds and objective are read, never
//     written.
//   - On exhaustion the error wraps ErrOptimization and carries message,
//     the caller's diagnostic (e.g. "could not get community growth rate").
//   - A mechanical backend error counts as a failed attempt; the last one
//     is attached to the returned error chain.
func OptimizeWithRetry(s Solver, com *core.Community, message string, attempts int, log zerolog.Logger) (float64, error) {
	if attempts <= 0 {
		attempts = DefaultRetryAttempts
	}
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		sol, err := s.Solve(com, SolveOptions{})
		if err == nil && sol != nil && sol.Status.IsOptimal() {
			return sol.Objective, nil
		}
		lastErr = err
		status := StatusUnknown
		if sol != nil {
			status = sol.Status
		}
		log.Debug().Str("community", com.ID()).Int("attempt", attempt).
			Stringer("status", status).Err(err).Msg("solve attempt not optimal")
		if attempt == attempts {
			break
		}
		if r, ok := s.(Relaxer); ok {
			r.Relax(attempt)
		}
	}
	if lastErr != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrOptimization, message, lastErr)
	}
	return 0, fmt.Errorf("%w: %s", ErrOptimization, message)
}
