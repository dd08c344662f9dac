// SPDX-License-Identifier: MIT

// Package config loads the export tool's settings from an optional YAML file
// and XCOV_* environment variables.
package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/crosscov/logging"
	"github.com/katalvlaran/crosscov/matrix"
)

// Config is the full tool configuration.
type Config struct {
	Input     InputConfig       `mapstructure:"input" yaml:"input"`
	Output    OutputConfig      `mapstructure:"output" yaml:"output"`
	Estimator EstimatorConfig   `mapstructure:"estimator" yaml:"estimator"`
	Log       logging.LogConfig `mapstructure:"log" yaml:"log"`
}

// InputConfig controls how jackknife files are read.
type InputConfig struct {
	// HDU is the zero-based index of the jackknife table. Default 2.
	HDU int `mapstructure:"hdu" yaml:"hdu"`
}

// OutputConfig controls the result file.
type OutputConfig struct {
	// Clobber replaces an existing output file. Default true.
	Clobber bool `mapstructure:"clobber" yaml:"clobber"`

	// TableName is the EXTNAME of the result table. Default CROSSCOV.
	TableName string `mapstructure:"table_name" yaml:"table_name"`
}

// EstimatorConfig controls the covariance estimator.
type EstimatorConfig struct {
	// Normalization is "pairwise" (default) or "sum-product".
	Normalization string `mapstructure:"normalization" yaml:"normalization"`

	// SymmetryTol is the relative tolerance of the covariance symmetry check.
	SymmetryTol float64 `mapstructure:"symmetry_tol" yaml:"symmetry_tol"`
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Input.HDU < 0 {
		errs = append(errs, fmt.Errorf("input.hdu must be >= 0, got %d", c.Input.HDU))
	}
	if c.Output.TableName == "" {
		errs = append(errs, errors.New("output.table_name must not be empty"))
	}
	if _, err := matrix.ParseNormalization(c.Estimator.Normalization); err != nil {
		errs = append(errs, fmt.Errorf("estimator.normalization: %w", err))
	}
	if tol := c.Estimator.SymmetryTol; tol < 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
		errs = append(errs, fmt.Errorf("estimator.symmetry_tol must be finite and >= 0, got %g", tol))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	switch c.Log.Format {
	case "", logging.FormatConsole, logging.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("log.format must be %q or %q, got %q",
			logging.FormatConsole, logging.FormatJSON, c.Log.Format))
	}

	return errors.Join(errs...)
}

// Normalization returns the parsed estimator normalization.
func (c *Config) Normalization() matrix.Normalization {
	n, _ := matrix.ParseNormalization(c.Estimator.Normalization) // checked by Validate

	return n
}
