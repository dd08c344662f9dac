// SPDX-License-Identifier: MIT

package jackknife

import (
	"errors"
	"fmt"
)

var (
	// ErrShapeMismatch indicates inconsistent bin or row counts between
	// features, weights and pixel ids.
	ErrShapeMismatch = errors.New("jackknife: shape mismatch")

	// ErrDuplicatePixel indicates a pixel id repeated within one dataset.
	ErrDuplicatePixel = errors.New("jackknife: duplicate pixel id")

	// ErrEmptyDataset indicates a dataset without features or weights.
	ErrEmptyDataset = errors.New("jackknife: empty dataset")
)

// jackknifeErrorf wraps err with the operation name.
func jackknifeErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
