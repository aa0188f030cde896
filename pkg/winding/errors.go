package winding

import "errors"

var (
	// ErrInvalidSpec reports a machine description that cannot be wound with
	// the integral-slot formulas: non-positive counts, odd pole counts, or a
	// slot count that does not divide evenly into poles and phases.
	ErrInvalidSpec = errors.New("winding: invalid machine specification")

	// ErrDegenerateFormula reports a distribution factor whose divisor is
	// zero, which would otherwise leak NaN or Inf into the figures.
	ErrDegenerateFormula = errors.New("winding: degenerate winding formula")

	// ErrPitchOutOfRange reports a custom pitch offset that leaves no
	// positive coil span.
	ErrPitchOutOfRange = errors.New("winding: coil pitch out of range")
)
