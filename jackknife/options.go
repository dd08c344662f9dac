// SPDX-License-Identifier: MIT

package jackknife

import "github.com/katalvlaran/crosscov/logging"

// Option configures Align.
type Option func(*Options)

// Options is the resolved Align configuration.
type Options struct {
	log logging.Logger // diagnostics sink; Nop by default
}

// WithLogger routes the unshared-pixel diagnostics to l. A nil l keeps the default.
func WithLogger(l logging.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.log = l
		}
	}
}

func gatherOptions(user ...Option) Options {
	o := Options{log: logging.NewNop()}
	for _, set := range user {
		set(&o)
	}

	return o
}
