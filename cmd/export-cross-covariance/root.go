// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/crosscov/config"
	"github.com/katalvlaran/crosscov/crosscov"
	"github.com/katalvlaran/crosscov/fitstable"
	"github.com/katalvlaran/crosscov/logging"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

// rootOptions holds the command-line flags.
type rootOptions struct {
	Data1         string
	Data2         string
	Out           string
	ConfigPath    string
	Normalization string
	HDU           int
	LogLevel      string
	NoClobber     bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "export-cross-covariance",
		Short: "Compute the cross-covariance of two jackknife correlation functions",
		Long: "Aligns two HEALPix-indexed jackknife correlation functions on their shared pixels,\n" +
			"estimates the weighted covariance across pixels and writes the cross block\n" +
			"(CO) and its correlation (COR) to a FITS binary table.",
		Version:       fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			return run(cfg, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.Data1, "data1", "", "first correlation function file (rows of the cross block)")
	f.StringVar(&opts.Data2, "data2", "", "second correlation function file (columns of the cross block)")
	f.StringVar(&opts.Out, "out", "", "output FITS file")
	f.StringVarP(&opts.ConfigPath, "config", "c", "", "optional YAML config file")
	f.StringVar(&opts.Normalization, "normalization", "", "covariance normalization: pairwise or sum-product")
	f.IntVar(&opts.HDU, "hdu", config.DefaultHDU, "zero-based HDU index of the jackknife table")
	f.StringVar(&opts.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	f.BoolVar(&opts.NoClobber, "no-clobber", false, "fail instead of overwriting --out")
	for _, name := range []string{"data1", "data2", "out"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

// resolveConfig loads the configuration and applies explicitly set flags on top.
func resolveConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("normalization") {
		cfg.Estimator.Normalization = opts.Normalization
	}
	if flags.Changed("hdu") {
		cfg.Input.HDU = opts.HDU
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = opts.LogLevel
	}
	if flags.Changed("no-clobber") {
		cfg.Output.Clobber = !opts.NoClobber
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func run(cfg *config.Config, opts *rootOptions) (err error) {
	log, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	log = log.Named("xcov")

	d1, err := fitstable.ReadDataset(opts.Data1, fitstable.WithHDU(cfg.Input.HDU))
	if err != nil {
		return err
	}
	d2, err := fitstable.ReadDataset(opts.Data2, fitstable.WithHDU(cfg.Input.HDU))
	if err != nil {
		return err
	}
	log.Debug("datasets loaded",
		logging.String("data1", opts.Data1),
		logging.Int("rows1", d1.Len()),
		logging.Int("bins1", d1.Bins()),
		logging.String("data2", opts.Data2),
		logging.Int("rows2", d2.Len()),
		logging.Int("bins2", d2.Bins()),
	)

	res, err := crosscov.Estimate(d1, d2,
		crosscov.WithLogger(log),
		crosscov.WithNormalization(cfg.Normalization()),
		crosscov.WithSymmetryTolerance(cfg.Estimator.SymmetryTol),
	)
	if err != nil {
		return err
	}

	err = fitstable.WriteCross(opts.Out, res,
		fitstable.WithClobber(cfg.Output.Clobber),
		fitstable.WithTableName(cfg.Output.TableName),
	)
	if err != nil {
		return err
	}
	log.Info("cross covariance written",
		logging.String("out", opts.Out),
		logging.String("normalization", cfg.Normalization().String()),
		logging.Bool("positive_definite", res.PositiveDefinite),
	)

	return nil
}
