// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/crosscov/matrix"
)

const sampleYAML = `
input:
  hdu: 1
output:
  clobber: false
  table_name: XCOV
estimator:
  normalization: sum-product
  symmetry_tol: 1.0e-8
log:
  level: debug
  format: json
  output_paths: ["stderr"]
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "xcov.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 2, cfg.Input.HDU)
	assert.True(t, cfg.Output.Clobber)
	assert.Equal(t, matrix.PairwiseWeight, cfg.Normalization())
	assert.Equal(t, []string{"stdout"}, cfg.Log.OutputPaths)
}

func TestLoad_File(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Input.HDU)
	assert.False(t, cfg.Output.Clobber)
	assert.Equal(t, "XCOV", cfg.Output.TableName)
	assert.Equal(t, matrix.WeightSumProduct, cfg.Normalization())
	assert.InDelta(t, 1e-8, cfg.Estimator.SymmetryTol, 1e-20)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, []string{"stderr"}, cfg.Log.OutputPaths)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("XCOV_ESTIMATOR_NORMALIZATION", "pairwise")
	t.Setenv("XCOV_INPUT_HDU", "3")

	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)
	assert.Equal(t, matrix.PairwiseWeight, cfg.Normalization())
	assert.Equal(t, 3, cfg.Input.HDU)
	assert.Equal(t, "XCOV", cfg.Output.TableName)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)

	_, err = Load(writeConfig(t, "estimator:\n  normalization: median\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "estimator.normalization")
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Input.HDU = -1
	cfg.Estimator.SymmetryTol = -1
	cfg.Log.Level = "loud"
	cfg.Log.Format = "xml"

	err := cfg.Validate()
	require.Error(t, err)
	for _, key := range []string{"input.hdu", "symmetry_tol", "log.level", "log.format"} {
		assert.Contains(t, err.Error(), key)
	}
	require.NoError(t, Default().Validate())
}

func TestApplyDefaults_KeepsSetValues(t *testing.T) {
	cfg := &Config{}
	cfg.Log.Level = "warn"
	ApplyDefaults(cfg)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, DefaultTableName, cfg.Output.TableName)
	assert.Equal(t, matrix.NormalizationPairwise, cfg.Estimator.Normalization)
	assert.Zero(t, cfg.Input.HDU)
}
