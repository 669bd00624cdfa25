// SPDX-License-Identifier: MIT
// Package tradeoff: sentinel error set. Drivers return ONLY these sentinels
// (or sentinels from core/solver) for user-triggered conditions; tests
// match them via errors.Is.

package tradeoff

import "errors"

var (
	// ErrAlreadyModified is returned when a driver is invoked on a model
	// that already carries an active modification marker from an unfinished
	// outer operation. Nothing is mutated in that case.
	ErrAlreadyModified = errors.New("tradeoff: community already carries a modification")

	// ErrNoFractions is returned by the sweep driver when no tradeoff
	// fractions are given.
	ErrNoFractions = errors.New("tradeoff: no tradeoff fractions given")

	// ErrBadFraction is returned when a tradeoff fraction lies outside
	// (0, 1] or is NaN.
	ErrBadFraction = errors.New("tradeoff: tradeoff fraction outside (0, 1]")

	// ErrUnknownMethod is returned when a knockout method string names an
	// unrecognized reporting flag.
	ErrUnknownMethod = errors.New("tradeoff: unknown knockout method flag")

	// ErrNoSpecies is returned when the knockout driver is given no
	// candidate species.
	ErrNoSpecies = errors.New("tradeoff: no knockout candidates given")
)
