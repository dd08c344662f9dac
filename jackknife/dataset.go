// SPDX-License-Identifier: MIT

package jackknife

import (
	"fmt"

	"github.com/katalvlaran/crosscov/matrix"
)

const opNewDataset = "NewDataset"

// Dataset is one jackknife measurement: Features and Weights are
// n_spatial × n_bins, PixelIDs labels the rows and Present marks rows that
// came from the measurement (false for alignment padding).
// A nil Present is read as "every row present".
type Dataset struct {
	Features *matrix.Dense
	Weights  *matrix.Dense
	PixelIDs []int64
	Present  []bool
}

// NewDataset validates the inputs and returns a Dataset with every row present.
// The matrices are not copied.
//
// Errors: ErrEmptyDataset, ErrShapeMismatch, ErrDuplicatePixel.
func NewDataset(features, weights *matrix.Dense, ids []int64) (Dataset, error) {
	d := Dataset{Features: features, Weights: weights, PixelIDs: ids}
	if err := d.Validate(); err != nil {
		return Dataset{}, jackknifeErrorf(opNewDataset, err)
	}
	d.Present = make([]bool, len(ids))
	for i := range d.Present {
		d.Present[i] = true
	}

	return d, nil
}

// Len returns the number of spatial rows.
func (d Dataset) Len() int { return len(d.PixelIDs) }

// Bins returns the number of radial bins (0 for an empty dataset).
func (d Dataset) Bins() int {
	if d.Features == nil {
		return 0
	}

	return d.Features.Cols()
}

// IsPresent reports whether row i came from the measurement.
func (d Dataset) IsPresent(i int) bool {
	if d.Present == nil {
		return true
	}

	return d.Present[i]
}

// Validate checks the structural invariants of d.
func (d Dataset) Validate() error {
	if d.Features == nil || d.Weights == nil {
		return ErrEmptyDataset
	}
	fr, fc := d.Features.Shape()
	wr, wc := d.Weights.Shape()
	if fc != wc {
		return fmt.Errorf("features have %d bins, weights %d: %w", fc, wc, ErrShapeMismatch)
	}
	if fr != wr || fr != len(d.PixelIDs) {
		return fmt.Errorf("features %d rows, weights %d rows, %d pixel ids: %w",
			fr, wr, len(d.PixelIDs), ErrShapeMismatch)
	}
	if d.Present != nil && len(d.Present) != fr {
		return fmt.Errorf("presence mask has %d entries for %d rows: %w", len(d.Present), fr, ErrShapeMismatch)
	}

	seen := make(map[int64]int, len(d.PixelIDs))
	for i, id := range d.PixelIDs {
		if j, dup := seen[id]; dup {
			return fmt.Errorf("pixel %d at rows %d and %d: %w", id, j, i, ErrDuplicatePixel)
		}
		seen[id] = i
	}

	return nil
}
