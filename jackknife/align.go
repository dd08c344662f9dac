// SPDX-License-Identifier: MIT

package jackknife

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/crosscov/logging"
	"github.com/katalvlaran/crosscov/matrix"
)

const (
	opAlign = "Align"
	opJoint = "Joint"

	msgUnshared = "some healpix are unshared"
)

// AlignedPair is the ordered pair of datasets after alignment. Both sides
// share one ascending pixel id sequence.
type AlignedPair struct {
	First  Dataset
	Second Dataset

	// InjectedFirst lists the ids padded into First (present only in Second),
	// InjectedSecond the reverse. Both ascending.
	InjectedFirst  []int64
	InjectedSecond []int64
}

// Align brings first and second onto the union of their pixel ids.
// MAIN DESCRIPTION:
//   - Every id present in one dataset but absent from the other is added to
//     the other as a zero-feature, zero-weight row with Present == false.
//   - Both datasets are ordered by ascending pixel id, so row k of First and
//     row k of Second describe the same spatial region.
//
// Implementation:
//   - Stage 1: validate both datasets (shape, unique ids).
//   - Stage 2: sorted union of ids and the per-side injected lists.
//   - Stage 3: rebuild each side in union order, copying rows bit-for-bit.
//   - Stage 4: one Info diagnostic per side that received padding.
//
// Behavior highlights:
//   - Fully disjoint id sets are valid; each side is then half padding.
//   - Inputs are never mutated.
//
// Errors:
//   - ErrEmptyDataset, ErrShapeMismatch, ErrDuplicatePixel (wrapped with the dataset index).
//
// Complexity:
//   - Time O(n log n + n*b), Space O(n*b) for n = |union|, b = bins.
func Align(first, second Dataset, opts ...Option) (*AlignedPair, error) {
	o := gatherOptions(opts...)

	for idx, d := range []Dataset{first, second} {
		if err := d.Validate(); err != nil {
			return nil, jackknifeErrorf(opAlign, fmt.Errorf("dataset %d: %w", idx, err))
		}
	}

	union := make([]int64, 0, first.Len()+second.Len())
	union = append(union, first.PixelIDs...)
	union = append(union, second.PixelIDs...)
	slices.Sort(union)
	union = slices.Compact(union)

	a, injA, err := padTo(first, union)
	if err != nil {
		return nil, jackknifeErrorf(opAlign, fmt.Errorf("dataset 0: %w", err))
	}
	b, injB, err := padTo(second, union)
	if err != nil {
		return nil, jackknifeErrorf(opAlign, fmt.Errorf("dataset 1: %w", err))
	}

	for idx, inj := range [][]int64{injA, injB} {
		if len(inj) == 0 {
			continue
		}
		o.log.Info(msgUnshared,
			logging.Int("dataset", idx),
			logging.Int("count", len(inj)),
			logging.Int64s("pixels", inj),
		)
	}

	return &AlignedPair{First: a, Second: b, InjectedFirst: injA, InjectedSecond: injB}, nil
}

// padTo rebuilds d over the ascending id sequence union (a superset of d's ids)
// and returns the ids it had to inject.
func padTo(d Dataset, union []int64) (Dataset, []int64, error) {
	rowOf := make(map[int64]int, d.Len())
	for i, id := range d.PixelIDs {
		rowOf[id] = i
	}

	n, bins := len(union), d.Bins()
	feat, err := matrix.NewDense(n, bins)
	if err != nil {
		return Dataset{}, nil, err
	}
	wts, err := matrix.NewDense(n, bins)
	if err != nil {
		return Dataset{}, nil, err
	}

	out := Dataset{
		Features: feat,
		Weights:  wts,
		PixelIDs: slices.Clone(union),
		Present:  make([]bool, n),
	}
	var injected []int64
	var row []float64
	for k, id := range union {
		src, ok := rowOf[id]
		if !ok {
			injected = append(injected, id) // row k stays zero
			continue
		}
		out.Present[k] = d.IsPresent(src)
		if row, err = d.Features.Row(src); err != nil {
			return Dataset{}, nil, err
		}
		if err = feat.SetRow(k, row); err != nil {
			return Dataset{}, nil, err
		}
		if row, err = d.Weights.Row(src); err != nil {
			return Dataset{}, nil, err
		}
		if err = wts.SetRow(k, row); err != nil {
			return Dataset{}, nil, err
		}
	}

	return out, injected, nil
}

// PixelIDs returns a copy of the shared ascending id sequence.
func (p *AlignedPair) PixelIDs() []int64 { return slices.Clone(p.First.PixelIDs) }

// Joint concatenates the aligned features and weights column-wise:
// X = [F1 | F2], W = [W1 | W2], both n × (n1+n2), and returns n1.
// Weights of rows not present on a side are zero in the result.
//
// Errors:
//   - ErrShapeMismatch if the two sides do not share one id sequence.
func (p *AlignedPair) Joint() (X, W *matrix.Dense, n1 int, err error) {
	if !slices.Equal(p.First.PixelIDs, p.Second.PixelIDs) {
		return nil, nil, 0, jackknifeErrorf(opJoint, fmt.Errorf("pixel sequences differ: %w", ErrShapeMismatch))
	}

	if X, err = matrix.HStack(p.First.Features, p.Second.Features); err != nil {
		return nil, nil, 0, jackknifeErrorf(opJoint, err)
	}
	w1, err := maskedWeights(p.First)
	if err != nil {
		return nil, nil, 0, jackknifeErrorf(opJoint, err)
	}
	w2, err := maskedWeights(p.Second)
	if err != nil {
		return nil, nil, 0, jackknifeErrorf(opJoint, err)
	}
	if W, err = matrix.HStack(w1, w2); err != nil {
		return nil, nil, 0, jackknifeErrorf(opJoint, err)
	}

	return X, W, p.First.Bins(), nil
}

// maskedWeights returns d.Weights with absent rows zeroed (a copy when any row is absent).
func maskedWeights(d Dataset) (*matrix.Dense, error) {
	if d.Present == nil || !slices.Contains(d.Present, false) {
		return d.Weights, nil
	}

	w := d.Weights.Clone().(*matrix.Dense)
	zero := make([]float64, w.Cols())
	for i, ok := range d.Present {
		if ok {
			continue
		}
		if err := w.SetRow(i, zero); err != nil {
			return nil, err
		}
	}

	return w, nil
}
