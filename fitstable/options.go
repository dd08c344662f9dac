// SPDX-License-Identifier: MIT

package fitstable

import "fmt"

const (
	// DefaultHDU is the zero-based HDU index holding the jackknife table.
	DefaultHDU = 2

	// DefaultClobber overwrites an existing output file.
	DefaultClobber = true

	// DefaultTableName is the EXTNAME of the written result table.
	DefaultTableName = "CROSSCOV"
)

// Option configures ReadDataset and WriteCross.
type Option func(*Options)

// Options is the resolved I/O configuration.
type Options struct {
	hdu       int
	clobber   bool
	tableName string
}

// WithHDU selects the zero-based HDU index to read. Panics if i < 0.
func WithHDU(i int) Option {
	if i < 0 {
		panic(fmt.Sprintf("fitstable: WithHDU(%d): index must be >= 0", i))
	}

	return func(o *Options) { o.hdu = i }
}

// WithClobber controls whether WriteCross replaces an existing file.
func WithClobber(on bool) Option {
	return func(o *Options) { o.clobber = on }
}

// WithTableName sets the EXTNAME of the written table. Panics on an empty name.
func WithTableName(name string) Option {
	if name == "" {
		panic("fitstable: WithTableName: empty name")
	}

	return func(o *Options) { o.tableName = name }
}

func gatherOptions(user ...Option) Options {
	o := Options{hdu: DefaultHDU, clobber: DefaultClobber, tableName: DefaultTableName}
	for _, set := range user {
		set(&o)
	}

	return o
}
