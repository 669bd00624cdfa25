// Package tradeoff: functional configuration for the drivers.
// DEFAULTS below are the single source of truth for zero-value behavior;
// WithX constructors validate their inputs and panic only on programmer
// error, in line with the rest of the module.

package tradeoff

import (
	"math"

	"github.com/rs/zerolog"
)

const (
	// ActiveBoundEpsilon is the bound-interval width above which a
	// variable of a member's objective constraint counts as an active
	// egoistic-objective term in the cooperativity cost.
	ActiveBoundEpsilon = 1e-6

	// CrossoverLower and CrossoverUpper bracket the narrowed recovery
	// interval around the intended target after a non-optimal tradeoff
	// solve: [CrossoverLower·target, CrossoverUpper·target].
	CrossoverLower = 0.99
	CrossoverUpper = 1.01

	// ModificationL2Norm marks a model carrying the quadratic
	// cooperativity cost.
	ModificationL2Norm = "l2 norm"

	// ModificationL1Norm marks a model carrying the linear (Manhattan)
	// cooperativity cost.
	ModificationL1Norm = "l1 norm"
)

type options struct {
	log           zerolog.Logger
	progress      bool
	fluxes        bool
	linearCost    bool
	selfDiagonal  bool
	retryAttempts int
}

// Option configures a driver call.
type Option func(*options)

// WithLogger attaches a zerolog logger to the driver call (default: no-op).
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithProgress renders a terminal progress bar over the knockout sweep.
// Purely observational: iteration order and values are unaffected.
func WithProgress(on bool) Option {
	return func(o *options) { o.progress = on }
}

// WithFluxes requests full flux vectors on returned Solutions.
func WithFluxes(on bool) Option {
	return func(o *options) { o.fluxes = on }
}

// WithLinearCost selects the linear (L1/Manhattan) cooperativity cost
// instead of the quadratic one. The linear cost is exact for non-negative
// growth rates and solvable by the LP-only reference backend.
func WithLinearCost(on bool) Option {
	return func(o *options) { o.linearCost = on }
}

// WithSelfDiagonal controls whether knockout tables keep the self-to-self
// cells (default true). With false, every cell where the knocked-out
// species equals the measured species is forced to NaN.
func WithSelfDiagonal(on bool) Option {
	return func(o *options) { o.selfDiagonal = on }
}

// WithRetryAttempts overrides the baseline-solve retry budget. Panics on a
// negative value (programmer error); zero selects the default.
func WithRetryAttempts(n int) Option {
	if n < 0 {
		panic("tradeoff: negative retry attempts")
	}
	return func(o *options) { o.retryAttempts = n }
}

// gatherOptions applies opts over the documented defaults.
func gatherOptions(opts []Option) options {
	o := options{
		log:          zerolog.Nop(),
		selfDiagonal: true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// validFraction reports whether fr is a usable tradeoff fraction in (0, 1].
func validFraction(fr float64) bool {
	return !math.IsNaN(fr) && fr > 0 && fr <= 1
}
