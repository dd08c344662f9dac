// SPDX-License-Identifier: MIT

package logging_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/crosscov/logging"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"":      zapcore.InfoLevel,
		"debug": zapcore.DebugLevel,
		"INFO":  zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
	}
	for in, want := range cases {
		got, err := logging.ParseLevel(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := logging.ParseLevel("loud")
	require.Error(t, err)
}

func TestNewLogger_Formats(t *testing.T) {
	for _, format := range []string{"", logging.FormatConsole, logging.FormatJSON} {
		l, err := logging.NewLogger(logging.LogConfig{Level: logging.LevelWarn, Format: format})
		require.NoError(t, err, format)
		require.NotNil(t, l)
	}

	_, err := logging.NewLogger(logging.LogConfig{Format: "xml"})
	require.Error(t, err)
}

func TestFromCore_FieldsAndNames(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := logging.NewFromCore(core).Named("xcov").With(logging.String("run", "r1"))

	l.Info("some healpix are unshared",
		logging.Int("dataset", 0),
		logging.Int64s("pixels", []int64{4, 9}),
	)
	l.Warn("matrix is not positive definite", logging.Err(errors.New("boom")))

	entries := logs.All()
	require.Len(t, entries, 2)

	first := entries[0]
	require.Equal(t, "xcov", first.LoggerName)
	require.Equal(t, zapcore.InfoLevel, first.Level)
	ctx := first.ContextMap()
	require.Equal(t, "r1", ctx["run"])
	require.Equal(t, int64(0), ctx["dataset"])
	require.Equal(t, []interface{}{int64(4), int64(9)}, ctx["pixels"])

	require.Equal(t, zapcore.WarnLevel, entries[1].Level)
	require.Equal(t, "boom", entries[1].ContextMap()["error"])
}

func TestNop(t *testing.T) {
	l := logging.NewNop()
	l.Info("ignored")
	require.NotNil(t, l.With(logging.Bool("k", true)).Named("x"))
}
