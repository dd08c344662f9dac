// SPDX-License-Identifier: MIT

package fitstable

import (
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/astrogo/fitsio"

	"github.com/katalvlaran/crosscov/jackknife"
	"github.com/katalvlaran/crosscov/matrix"
)

const opRead = "fitstable.ReadDataset"

// ReadDataset loads the DA, WE and HEALPID columns of the table at the
// configured HDU (DefaultHDU unless WithHDU is given) into a Dataset.
//
// Errors:
//   - os errors for an unreadable path.
//   - ErrHDUNotFound, ErrNotTable, ErrMissingColumn, ErrUnsupportedFormat.
//   - jackknife.ErrEmptyDataset (no rows), jackknife.ErrShapeMismatch (DA and
//     WE widths differ), jackknife.ErrDuplicatePixel.
//   - matrix.ErrNaNInf for a non-finite DA or WE value.
func ReadDataset(path string, opts ...Option) (jackknife.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return jackknife.Dataset{}, fmt.Errorf("%s: %w", opRead, err)
	}
	defer f.Close()

	d, err := DecodeDataset(f, opts...)
	if err != nil {
		return jackknife.Dataset{}, fmt.Errorf("%s: %s: %w", opRead, path, err)
	}

	return d, nil
}

// DecodeDataset is ReadDataset over an already opened FITS stream.
func DecodeDataset(r io.Reader, opts ...Option) (jackknife.Dataset, error) {
	o := gatherOptions(opts...)

	fits, err := fitsio.Open(r)
	if err != nil {
		return jackknife.Dataset{}, err
	}
	defer fits.Close()

	hdus := fits.HDUs()
	if o.hdu >= len(hdus) {
		return jackknife.Dataset{}, fmt.Errorf("index %d of %d: %w", o.hdu, len(hdus), ErrHDUNotFound)
	}
	table, ok := hdus[o.hdu].(*fitsio.Table)
	if !ok {
		return jackknife.Dataset{}, fmt.Errorf("index %d: %w", o.hdu, ErrNotTable)
	}

	names := []string{ColDA, ColWE, ColHEALPID}
	forms := make([]tform, len(names))
	types := make([]reflect.Type, len(names))
	cols := table.Cols()
	for i, name := range names {
		idx := table.Index(name)
		if idx < 0 {
			return jackknife.Dataset{}, fmt.Errorf("%s: %w", name, ErrMissingColumn)
		}
		if forms[i], err = parseTFORM(cols[idx].Format); err != nil {
			return jackknife.Dataset{}, fmt.Errorf("%s: %w", name, err)
		}
		types[i] = forms[i].goType()
	}
	if forms[2].repeat != 1 || forms[2].elem.Kind() == reflect.Float32 || forms[2].elem.Kind() == reflect.Float64 {
		return jackknife.Dataset{}, fmt.Errorf("%s must be a scalar integer: %w", ColHEALPID, ErrUnsupportedFormat)
	}
	bins := forms[0].repeat
	if forms[1].repeat != bins {
		return jackknife.Dataset{}, fmt.Errorf("%s has %d bins, %s %d: %w",
			ColDA, bins, ColWE, forms[1].repeat, jackknife.ErrShapeMismatch)
	}

	nrows := table.NumRows()
	if nrows == 0 {
		return jackknife.Dataset{}, jackknife.ErrEmptyDataset
	}

	rows, err := table.Read(0, nrows)
	if err != nil {
		return jackknife.Dataset{}, err
	}
	defer rows.Close()

	feat := make([]float64, 0, int(nrows)*bins)
	wts := make([]float64, 0, int(nrows)*bins)
	ids := make([]int64, 0, nrows)
	cell := reflect.New(rowStruct(names, types))
	for rows.Next() {
		if err = rows.Scan(cell.Interface()); err != nil {
			return jackknife.Dataset{}, err
		}
		rec := cell.Elem()
		for j := 0; j < bins; j++ {
			feat = append(feat, floatAt(rec.Field(0), j))
			wts = append(wts, floatAt(rec.Field(1), j))
		}
		ids = append(ids, rec.Field(2).Int())
	}
	if err = rows.Err(); err != nil {
		return jackknife.Dataset{}, err
	}

	F, err := matrix.NewDenseFrom(len(ids), bins, feat)
	if err != nil {
		return jackknife.Dataset{}, fmt.Errorf("%s: %w", ColDA, err)
	}
	W, err := matrix.NewDenseFrom(len(ids), bins, wts)
	if err != nil {
		return jackknife.Dataset{}, fmt.Errorf("%s: %w", ColWE, err)
	}

	return jackknife.NewDataset(F, W, ids)
}

const opReadCross = "fitstable.ReadCross"

// ReadCross loads the CO and COR columns written by WriteCross. The table is
// located by its EXTNAME (DefaultTableName unless WithTableName is given).
func ReadCross(path string, opts ...Option) (co, cor *matrix.Dense, err error) {
	o := gatherOptions(opts...)

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", opReadCross, err)
	}
	defer f.Close()

	fits, err := fitsio.Open(f)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", opReadCross, err)
	}
	defer fits.Close()

	var table *fitsio.Table
	for _, hdu := range fits.HDUs() {
		if t, ok := hdu.(*fitsio.Table); ok && t.Name() == o.tableName {
			table = t
			break
		}
	}
	if table == nil {
		return nil, nil, fmt.Errorf("%s: table %q: %w", opReadCross, o.tableName, ErrHDUNotFound)
	}

	names := []string{ColCO, ColCOR}
	types := make([]reflect.Type, len(names))
	var width int
	for i, name := range names {
		idx := table.Index(name)
		if idx < 0 {
			return nil, nil, fmt.Errorf("%s: %s: %w", opReadCross, name, ErrMissingColumn)
		}
		form, err := parseTFORM(table.Cols()[idx].Format)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %s: %w", opReadCross, name, err)
		}
		types[i], width = form.goType(), form.repeat
	}

	nrows := table.NumRows()
	if nrows == 0 {
		return nil, nil, fmt.Errorf("%s: %w", opReadCross, jackknife.ErrEmptyDataset)
	}
	rows, err := table.Read(0, nrows)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", opReadCross, err)
	}
	defer rows.Close()

	if co, err = matrix.NewDense(int(nrows), width); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", opReadCross, err)
	}
	// correlations may legitimately hold NaN
	corVals := make([]float64, 0, int(nrows)*width)
	cell := reflect.New(rowStruct(names, types))
	for i := 0; rows.Next(); i++ {
		if err = rows.Scan(cell.Interface()); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", opReadCross, err)
		}
		rec := cell.Elem()
		for j := 0; j < width; j++ {
			if err = co.Set(i, j, floatAt(rec.Field(0), j)); err != nil {
				return nil, nil, fmt.Errorf("%s: %s: %w", opReadCross, ColCO, err)
			}
			corVals = append(corVals, floatAt(rec.Field(1), j))
		}
	}
	if err = rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", opReadCross, err)
	}

	if cor, err = matrix.NewDenseAllowNaN(int(nrows), width, corVals); err != nil {
		return nil, nil, fmt.Errorf("%s: %s: %w", opReadCross, ColCOR, err)
	}

	return co, cor, nil
}
