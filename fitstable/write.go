// SPDX-License-Identifier: MIT

package fitstable

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/astrogo/fitsio"

	"github.com/katalvlaran/crosscov/crosscov"
	"github.com/katalvlaran/crosscov/jackknife"
	"github.com/katalvlaran/crosscov/matrix"
)

const (
	opWriteCross   = "fitstable.WriteCross"
	opWriteDataset = "fitstable.WriteDataset"
)

// WriteCross writes res.CrossCovariance and res.CrossCorrelation to path as
// the CO and COR columns of one binary table (one row per first-dataset bin).
// An existing file is replaced unless WithClobber(false) is given, in which
// case ErrOutputExists is returned.
func WriteCross(path string, res *crosscov.Result, opts ...Option) error {
	if res == nil {
		return fmt.Errorf("%s: %w", opWriteCross, matrix.ErrNilMatrix)
	}
	o := gatherOptions(opts...)

	err := writeFile(path, o.clobber, func(w io.Writer) error {
		return EncodeCross(w, res.CrossCovariance, res.CrossCorrelation, opts...)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", opWriteCross, err)
	}

	return nil
}

// EncodeCross writes a primary HDU and the CO/COR table for the given blocks.
// NaN correlations are written as is.
func EncodeCross(w io.Writer, co, cor *matrix.Dense, opts ...Option) error {
	if err := matrix.ValidateBinarySameShape(co, cor); err != nil {
		return err
	}
	o := gatherOptions(opts...)

	n1, n2 := co.Shape()
	elem := reflect.TypeOf(float64(0))
	typ := tform{repeat: n2, elem: elem}.goType()

	return encodeTable(w, o.tableName,
		[]fitsio.Column{
			{Name: ColCO, Format: float64Form(n2)},
			{Name: ColCOR, Format: float64Form(n2)},
		},
		[]reflect.Type{typ, typ},
		n1,
		func(i int, rec reflect.Value) error {
			if err := fillFloats(rec.Field(0), co, i); err != nil {
				return err
			}
			return fillFloats(rec.Field(1), cor, i)
		},
		0,
	)
}

// WriteDataset writes d as a jackknife input file: an empty primary HDU,
// empty image extensions up to the configured HDU index, and the
// DA/WE/HEALPID table at that index.
func WriteDataset(path string, d jackknife.Dataset, opts ...Option) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("%s: %w", opWriteDataset, err)
	}
	o := gatherOptions(opts...)
	if o.hdu < 1 {
		return fmt.Errorf("%s: HDU %d is the primary image: %w", opWriteDataset, o.hdu, ErrNotTable)
	}

	err := writeFile(path, o.clobber, func(w io.Writer) error {
		bins := d.Bins()
		typ := tform{repeat: bins, elem: reflect.TypeOf(float64(0))}.goType()

		return encodeTable(w, "ATTRI",
			[]fitsio.Column{
				{Name: ColDA, Format: float64Form(bins)},
				{Name: ColWE, Format: float64Form(bins)},
				{Name: ColHEALPID, Format: "K"},
			},
			[]reflect.Type{typ, typ, reflect.TypeOf(int64(0))},
			d.Len(),
			func(i int, rec reflect.Value) error {
				if err := fillFloats(rec.Field(0), d.Features, i); err != nil {
					return err
				}
				if err := fillFloats(rec.Field(1), d.Weights, i); err != nil {
					return err
				}
				rec.Field(2).SetInt(d.PixelIDs[i])
				return nil
			},
			o.hdu-1,
		)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", opWriteDataset, err)
	}

	return nil
}

// writeFile creates path (truncating it when clobber is set, failing with
// ErrOutputExists otherwise), runs enc and closes the file. A failed
// encoding removes the partial file.
func writeFile(path string, clobber bool, enc func(io.Writer) error) (err error) {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !clobber {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%s: %w", path, ErrOutputExists)
		}
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	return enc(f)
}

// encodeTable writes a primary HDU, pad empty image extensions, then one
// binary table of nrows rows whose cells are filled by fill.
func encodeTable(
	w io.Writer,
	name string,
	cols []fitsio.Column,
	types []reflect.Type,
	nrows int,
	fill func(i int, rec reflect.Value) error,
	pad int,
) (err error) {
	fits, err := fitsio.Create(w)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := fits.Close(); err == nil {
			err = cerr
		}
	}()

	phdu, err := fitsio.NewPrimaryHDU(nil)
	if err != nil {
		return err
	}
	if err = fits.Write(phdu); err != nil {
		return err
	}
	for k := 0; k < pad; k++ {
		if err = fits.Write(fitsio.NewImage(8, nil)); err != nil {
			return err
		}
	}

	table, err := fitsio.NewTable(name, cols, fitsio.BINARY_TBL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := table.Close(); err == nil {
			err = cerr
		}
	}()

	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	rec := reflect.New(rowStruct(names, types))
	for i := 0; i < nrows; i++ {
		if err = fill(i, rec.Elem()); err != nil {
			return err
		}
		if err = table.Write(rec.Interface()); err != nil {
			return err
		}
	}

	return fits.Write(table)
}

// fillFloats copies row i of m into a decoded cell (scalar or array).
func fillFloats(cell reflect.Value, m *matrix.Dense, i int) error {
	row, err := m.Row(i)
	if err != nil {
		return err
	}
	if cell.Kind() != reflect.Array {
		cell.SetFloat(row[0])
		return nil
	}
	for j, v := range row {
		cell.Index(j).SetFloat(v)
	}

	return nil
}
