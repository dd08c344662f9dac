// SPDX-License-Identifier: MIT

package fitstable

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Column names of the jackknife input and the cross-covariance output.
const (
	ColDA      = "DA"
	ColWE      = "WE"
	ColHEALPID = "HEALPID"
	ColCO      = "CO"
	ColCOR     = "COR"
)

// tform is a decoded binary-table TFORM: repeat count and element type.
type tform struct {
	repeat int
	elem   reflect.Type
}

var tformElems = map[byte]reflect.Type{
	'D': reflect.TypeOf(float64(0)),
	'E': reflect.TypeOf(float32(0)),
	'K': reflect.TypeOf(int64(0)),
	'J': reflect.TypeOf(int32(0)),
	'I': reflect.TypeOf(int16(0)),
}

// parseTFORM decodes "rT" forms such as "50D" or "K". Variable-length
// descriptors (P, Q) and character columns are rejected.
func parseTFORM(form string) (tform, error) {
	s := strings.TrimSpace(form)
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == len(s) {
		return tform{}, fmt.Errorf("%q: %w", form, ErrUnsupportedFormat)
	}
	repeat := 1
	if i > 0 {
		n, err := strconv.Atoi(s[:i])
		if err != nil || n < 1 {
			return tform{}, fmt.Errorf("%q: %w", form, ErrUnsupportedFormat)
		}
		repeat = n
	}
	elem, ok := tformElems[s[i]]
	if !ok {
		return tform{}, fmt.Errorf("%q: %w", form, ErrUnsupportedFormat)
	}

	return tform{repeat: repeat, elem: elem}, nil
}

// goType is the Go type the table decoder produces for the form:
// a scalar for repeat 1, a fixed-size array otherwise.
func (t tform) goType() reflect.Type {
	if t.repeat == 1 {
		return t.elem
	}

	return reflect.ArrayOf(t.repeat, t.elem)
}

// floatAt reads element j of a decoded cell as float64.
func floatAt(v reflect.Value, j int) float64 {
	if v.Kind() == reflect.Array {
		v = v.Index(j)
	}
	if v.CanFloat() {
		return v.Float()
	}

	return float64(v.Int())
}

// float64Form is the TFORM of an n-wide double column.
func float64Form(n int) string {
	if n == 1 {
		return "D"
	}

	return strconv.Itoa(n) + "D"
}

// rowStruct builds a struct type whose fields decode the named columns.
// Field i is tagged `fits:"names[i]"`.
func rowStruct(names []string, types []reflect.Type) reflect.Type {
	fields := make([]reflect.StructField, len(names))
	for i, name := range names {
		fields[i] = reflect.StructField{
			Name: "F" + strconv.Itoa(i),
			Type: types[i],
			Tag:  reflect.StructTag(`fits:"` + name + `"`),
		}
	}

	return reflect.StructOf(fields)
}
