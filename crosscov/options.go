// SPDX-License-Identifier: MIT

package crosscov

import (
	"math"

	"github.com/katalvlaran/crosscov/logging"
	"github.com/katalvlaran/crosscov/matrix"
)

// DefaultSymmetryTolerance is the relative tolerance of the symmetry check
// applied to the estimated covariance.
const DefaultSymmetryTolerance = 1e-10

const (
	panicSymmetryTolerance = "crosscov: WithSymmetryTolerance: tolerance must be finite and >= 0"
	panicNormalization     = "crosscov: WithNormalization: unknown normalization"
)

// Option configures Estimate.
type Option func(*Options)

// Options is the resolved Estimate configuration.
type Options struct {
	log           logging.Logger
	normalization matrix.Normalization
	symmetryTol   float64
}

// WithLogger sets the diagnostics sink. A nil l keeps the Nop default.
func WithLogger(l logging.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithNormalization selects the covariance denominator.
// Panics on an undeclared value.
func WithNormalization(n matrix.Normalization) Option {
	if !n.Valid() {
		panic(panicNormalization)
	}

	return func(o *Options) { o.normalization = n }
}

// WithSymmetryTolerance sets the relative tolerance of the symmetry check.
// Panics if tol is negative or not finite.
func WithSymmetryTolerance(tol float64) Option {
	if tol < 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
		panic(panicSymmetryTolerance)
	}

	return func(o *Options) { o.symmetryTol = tol }
}

func gatherOptions(user ...Option) Options {
	o := Options{
		log:           logging.NewNop(),
		normalization: matrix.DefaultNormalization,
		symmetryTol:   DefaultSymmetryTolerance,
	}
	for _, set := range user {
		set(&o)
	}

	return o
}
