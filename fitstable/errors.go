// SPDX-License-Identifier: MIT

package fitstable

import "errors"

var (
	// ErrHDUNotFound indicates the requested HDU index is past the end of the file.
	ErrHDUNotFound = errors.New("fitstable: HDU not found")

	// ErrNotTable indicates the requested HDU is not a binary or ASCII table.
	ErrNotTable = errors.New("fitstable: HDU is not a table")

	// ErrMissingColumn indicates a required column is absent.
	ErrMissingColumn = errors.New("fitstable: missing column")

	// ErrUnsupportedFormat indicates a column TFORM this package cannot decode.
	ErrUnsupportedFormat = errors.New("fitstable: unsupported column format")

	// ErrOutputExists indicates the output path exists and clobbering is disabled.
	ErrOutputExists = errors.New("fitstable: output file exists")
)
