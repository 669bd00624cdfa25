// SPDX-License-Identifier: MIT
// Package core: sentinel error set.
// All user-triggered error conditions in this package return one of the
// sentinels below; callers match them with errors.Is. Messages carry the
// "core: ..." prefix for grep-friendly logs. Wrap with fmt.Errorf only at
// outer boundaries when extra context is essential.

package core

import "errors"

var (
	// ErrEmptyID indicates an empty member, variable, constraint or
	// reaction identifier.
	ErrEmptyID = errors.New("core: empty identifier")

	// ErrDuplicateID indicates that a member, variable, constraint or
	// reaction with the same identifier already exists.
	ErrDuplicateID = errors.New("core: duplicate identifier")

	// ErrMemberNotFound indicates that the referenced member species is not
	// declared on the community.
	ErrMemberNotFound = errors.New("core: member not found")

	// ErrVariableNotFound indicates that the referenced variable does not
	// exist on the community.
	ErrVariableNotFound = errors.New("core: variable not found")

	// ErrConstraintNotFound indicates that the referenced constraint does
	// not exist on the community.
	ErrConstraintNotFound = errors.New("core: constraint not found")

	// ErrBadBounds indicates an inverted bound interval (lower > upper) or
	// a NaN bound.
	ErrBadBounds = errors.New("core: invalid bounds")

	// ErrBadMinGrowth indicates an invalid minimum-growth specification:
	// a negative rate, a NaN rate, or a per-member map mentioning an
	// unknown species.
	ErrBadMinGrowth = errors.New("core: invalid minimum growth specification")

	// ErrMissingObjectiveConstraint indicates that a declared member has no
	// matching objective_<species> constraint (violates the model
	// invariant of exactly one per member).
	ErrMissingObjectiveConstraint = errors.New("core: member lacks an objective constraint")
)
