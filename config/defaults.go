// SPDX-License-Identifier: MIT

package config

import (
	"github.com/spf13/viper"

	"github.com/katalvlaran/crosscov/crosscov"
	"github.com/katalvlaran/crosscov/fitstable"
	"github.com/katalvlaran/crosscov/logging"
	"github.com/katalvlaran/crosscov/matrix"
)

// Default values, mirrored from the library packages.
const (
	DefaultHDU           = fitstable.DefaultHDU
	DefaultClobber       = fitstable.DefaultClobber
	DefaultTableName     = fitstable.DefaultTableName
	DefaultSymmetryTol   = crosscov.DefaultSymmetryTolerance
	DefaultLogLevel      = logging.LevelInfo
	DefaultLogFormat     = logging.FormatConsole
	DefaultOutputPath    = "stdout"
	defaultNormalization = matrix.NormalizationPairwise
)

// setDefaults registers every key with viper so environment overrides
// resolve during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("input.hdu", DefaultHDU)
	v.SetDefault("output.clobber", DefaultClobber)
	v.SetDefault("output.table_name", DefaultTableName)
	v.SetDefault("estimator.normalization", defaultNormalization)
	v.SetDefault("estimator.symmetry_tol", DefaultSymmetryTol)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)
	v.SetDefault("log.output_paths", []string{DefaultOutputPath})
}

// ApplyDefaults fills zero-valued string and slice fields of a Config built
// in code. Numeric and boolean fields are left alone since zero is valid.
func ApplyDefaults(cfg *Config) {
	if cfg.Output.TableName == "" {
		cfg.Output.TableName = DefaultTableName
	}
	if cfg.Estimator.Normalization == "" {
		cfg.Estimator.Normalization = defaultNormalization
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if len(cfg.Log.OutputPaths) == 0 {
		cfg.Log.OutputPaths = []string{DefaultOutputPath}
	}
}

// Default returns the configuration used when no file or environment is given.
func Default() *Config {
	cfg := &Config{
		Input:     InputConfig{HDU: DefaultHDU},
		Output:    OutputConfig{Clobber: DefaultClobber},
		Estimator: EstimatorConfig{SymmetryTol: DefaultSymmetryTol},
	}
	ApplyDefaults(cfg)

	return cfg
}
