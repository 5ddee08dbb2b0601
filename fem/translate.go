// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"os"
	"path/filepath"

	"github.com/cpmech/elastfem/fe"
	"github.com/cpmech/elastfem/inp"
	"github.com/cpmech/gosl/fun/dbf"
)

// Callable is a function of time returning an already resolved value
type Callable func(t float64) fe.Value

// Translator converts raw input values into fe.Value
//
//  Rules (first match wins):
//   1. sequence of ndim numbers               => constant vector
//      sequence of ndim sequences of numbers  => constant tensor
//   2. sequence of ndim strings               => vector expression
//   3. sequence longer than ndim (transient)  => item at current step, translated
//   4. number                                 => constant scalar
//   5. fe.Value                               => unchanged
//   6. callable (transient)                   => called with current time
//   7. string with name of existing file      => field loaded from file
//   8. other string                           => scalar expression
//   9. anything else                          => UnsupportedValueTypeError
//
//  Expressions are interpolated onto the target space if their number of
//  components matches; otherwise they are returned as they are.
type Translator struct {
	Ndim      int    // space dimension
	Degree    int    // degree of expressions
	Transient bool   // transient analysis
	Dir       string // directory used to resolve relative file names
	step      int    // current step
}

// NewTranslator returns a new Translator
func NewTranslator(ndim, degree int, transient bool, dir string) *Translator {
	return &Translator{Ndim: ndim, Degree: degree, Transient: transient, Dir: dir}
}

// SetStep sets the current step used by time series
func (o *Translator) SetStep(step int) { o.step = step }

// Step returns the current step
func (o *Translator) Step() int { return o.step }

// Translate converts value into fe.Value using space for interpolation
func (o *Translator) Translate(value interface{}, space fe.Space, t float64) (fe.Value, error) {
	return o.translate(value, space, t, true)
}

// translate implements Translate; series == false disables rule 3
func (o *Translator) translate(value interface{}, space fe.Space, t float64, series bool) (fe.Value, error) {

	// unwrap raw input
	switch v := value.(type) {
	case *inp.Value:
		if v == nil {
			return nil, valueErr(nil, "value is missing")
		}
		value = v.V
	case inp.Value:
		value = v.V
	}

	// sequences
	if seq, ok := asSequence(value); ok {
		return o.sequence(value, seq, space, t, series)
	}

	switch v := value.(type) {

	// 4. number
	case float64:
		return fe.NewScalar(v), nil
	case int:
		return fe.NewScalar(float64(v)), nil

	// 5. already resolved
	case fe.Value:
		return v, nil

	// 6. callables
	case Callable:
		return o.call(value, func() fe.Value { return v(t) })
	case func(float64) fe.Value:
		return o.call(value, func() fe.Value { return v(t) })
	case dbf.T:
		return o.call(value, func() fe.Value { return fe.NewScalar(v.F(t, nil)) })
	case *inp.FcnRef:
		return o.call(value, func() fe.Value { return fe.NewScalar(v.F.F(t, nil)) })

	// 7 and 8. strings
	case string:
		if path, ok := o.file(v); ok {
			if space == nil {
				return nil, valueErr(value, "a space is required to load a field from file")
			}
			return space.Load(path)
		}
		return o.expression([]string{v}, space, t)

	// 9. nil
	case nil:
		return nil, valueErr(value, "value is missing")
	}
	return nil, valueErr(value, "not a number, sequence, string, callable or resolved value")
}

// sequence handles rules 1, 2 and 3
func (o *Translator) sequence(value interface{}, seq []interface{}, space fe.Space, t float64, series bool) (fe.Value, error) {
	n := len(seq)

	// 1 and 2. vector or tensor
	if n == o.Ndim {
		if nums, ok := asNumbers(seq); ok {
			return fe.NewVector(nums), nil
		}
		if strs, ok := asStrings(seq); ok {
			return o.expression(strs, space, t)
		}
		rows := make([][]float64, n)
		for i, item := range seq {
			row, ok := asSequence(item)
			if !ok {
				return nil, valueErr(value, "sequence must contain only numbers, only strings or only rows of numbers")
			}
			if rows[i], ok = asNumbers(row); !ok || len(rows[i]) != n {
				return nil, valueErr(value, "row %d of tensor must have %d numbers", i, n)
			}
		}
		return fe.NewTensor(rows)
	}

	// 3. time series
	if n > o.Ndim && series {
		if !o.Transient {
			return nil, valueErr(value, "sequences of length %d are only accepted as time series in transient analyses; ndim=%d", n, o.Ndim)
		}
		if o.step >= n {
			return nil, &TimeIndexError{Step: o.step, Len: n}
		}
		return o.translate(seq[o.step], space, t, false)
	}
	return nil, valueErr(value, "sequence of length %d does not match ndim=%d", n, o.Ndim)
}

// call invokes callable values in transient analyses
func (o *Translator) call(value interface{}, f func() fe.Value) (res fe.Value, err error) {
	if !o.Transient {
		return nil, valueErr(value, "callables are only accepted in transient analyses")
	}
	res = f()
	if res == nil {
		return nil, valueErr(value, "callable returned nil")
	}
	return
}

// expression compiles an expression and interpolates it onto space if possible
func (o *Translator) expression(codes []string, space fe.Space, t float64) (fe.Value, error) {
	e, err := NewExpression(codes, o.Degree)
	if err != nil {
		return nil, err
	}
	if space != nil && space.Ncomp() == e.Ncomp() {
		return space.Interpolate(e, t)
	}
	return e, nil
}

// file returns the path to an existing file
func (o *Translator) file(name string) (path string, ok bool) {
	path = name
	if !filepath.IsAbs(path) && o.Dir != "" {
		path = filepath.Join(o.Dir, path)
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}

// auxiliary //////////////////////////////////////////////////////////////////////////////////////////

// asSequence converts slices to []interface{}
func asSequence(v interface{}) (res []interface{}, ok bool) {
	switch s := v.(type) {
	case []interface{}:
		return s, true
	case []float64:
		res = make([]interface{}, len(s))
		for i, x := range s {
			res[i] = x
		}
		return res, true
	case []string:
		res = make([]interface{}, len(s))
		for i, x := range s {
			res[i] = x
		}
		return res, true
	case [][]float64:
		res = make([]interface{}, len(s))
		for i, x := range s {
			res[i] = x
		}
		return res, true
	}
	return nil, false
}

// asNumbers returns the numbers in seq if all items are numbers
func asNumbers(seq []interface{}) (res []float64, ok bool) {
	res = make([]float64, len(seq))
	for i, item := range seq {
		switch x := item.(type) {
		case float64:
			res[i] = x
		case int:
			res[i] = float64(x)
		default:
			return nil, false
		}
	}
	return res, true
}

// asStrings returns the strings in seq if all items are strings
func asStrings(seq []interface{}) (res []string, ok bool) {
	res = make([]string, len(seq))
	for i, item := range seq {
		if res[i], ok = item.(string); !ok {
			return nil, false
		}
	}
	return res, true
}
