// SPDX-License-Identifier: MIT

// Package fitstable reads jackknife datasets from FITS binary tables and
// writes cross-covariance results back to FITS.
//
// Input tables carry one row per HEALPix pixel with the columns
//
//	DA       correlation function, one value per radial bin (nD)
//	WE       weights, same shape as DA (nD)
//	HEALPID  pixel id (K, J or I)
//
// The output file holds an empty primary HDU followed by one binary table
// with a row per bin of the first dataset and the columns CO (cross
// covariance) and COR (cross correlation), each an array of n2 doubles.
//
// Files are opened and closed inside each call; no handle outlives it.
package fitstable
