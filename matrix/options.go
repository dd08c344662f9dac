// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for the numeric kernels.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal).
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package matrix

import (
	"fmt"
	"strings"
)

// Normalization selects the denominator of the weighted covariance.
type Normalization int

const (
	// PairwiseWeight divides entry (i,j) by Σ_k w_k,i·w_k,j.
	// A bin pair that never shares a weighted realization is degenerate.
	PairwiseWeight Normalization = iota

	// WeightSumProduct divides entry (i,j) by (Σ_k w_k,i)·(Σ_k w_k,j),
	// as in picca's export_cross_covariance.
	WeightSumProduct
)

// Config spellings of Normalization.
const (
	NormalizationPairwise   = "pairwise"
	NormalizationSumProduct = "sum-product"
)

// String returns the config spelling.
func (n Normalization) String() string {
	switch n {
	case PairwiseWeight:
		return NormalizationPairwise
	case WeightSumProduct:
		return NormalizationSumProduct
	default:
		return fmt.Sprintf("Normalization(%d)", int(n))
	}
}

// Valid reports whether n is one of the declared conventions.
func (n Normalization) Valid() bool {
	return n == PairwiseWeight || n == WeightSumProduct
}

// ParseNormalization maps a config spelling onto a Normalization.
func ParseNormalization(s string) (Normalization, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case NormalizationPairwise:
		return PairwiseWeight, nil
	case NormalizationSumProduct, "picca":
		return WeightSumProduct, nil
	default:
		return PairwiseWeight, fmt.Errorf("matrix: unknown normalization %q", s)
	}
}

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultValidateNaNInf toggles strict finite-value validation on ingestion and Set.
	DefaultValidateNaNInf = true

	// DefaultNormalization is the estimator denominator used when none is given.
	DefaultNormalization = PairwiseWeight
)

// ---------- Internal panic messages (no magic strings) ----------

const panicNormalizationInvalid = "matrix: WithNormalization: unknown normalization"

// Option mutates internal options. Safe to apply repeatedly (last-writer-wins).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept ...Option.
type Options struct {
	normalization Normalization // DefaultNormalization
}

// Normalization returns the resolved denominator convention.
func (o Options) Normalization() Normalization { return o.normalization }

// WithNormalization selects the covariance denominator.
// Panics on values outside the declared constants (programmer error).
func WithNormalization(n Normalization) Option {
	if !n.Valid() {
		panic(panicNormalizationInvalid)
	}

	return func(o *Options) { o.normalization = n }
}

// NewMatrixOptions resolves opts over the documented defaults.
func NewMatrixOptions(opts ...Option) Options {
	return gatherOptions(opts...)
}

// gatherOptions applies user setters on top of defaults, in order.
func gatherOptions(user ...Option) Options {
	o := Options{
		normalization: DefaultNormalization,
	}
	for _, set := range user {
		set(&o)
	}

	return o
}
