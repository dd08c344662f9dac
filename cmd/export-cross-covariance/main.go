// SPDX-License-Identifier: MIT

// Command export-cross-covariance estimates the cross-covariance of two
// jackknife correlation-function files and writes it to a FITS table.
//
//	export-cross-covariance --data1 cf_lya.fits --data2 cf_qso.fits --out xcov.fits
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
