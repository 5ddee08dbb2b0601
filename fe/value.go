// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fe defines the finite element kernel used by the solver: meshes,
// function spaces, fields, weak form terms and the assembly/solve services.
// The kernel itself is an external collaborator; this package only holds the
// contracts and the small value types shared with it.
package fe

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Value is anything that can be used inside an equation
type Value interface {
	Rank() int // 0: scalar, 1: vector, 2: tensor
}

// Constant holds a constant scalar, vector or (square) tensor
//  Note: tensors are stored row-major in Vals
type Constant struct {
	Vals  []float64 // values
	Shape []int     // nil => scalar; [n] => vector; [n,n] => tensor
}

// NewScalar returns a scalar constant
func NewScalar(v float64) *Constant {
	return &Constant{Vals: []float64{v}}
}

// NewVector returns a vector constant
func NewVector(v []float64) *Constant {
	vals := make([]float64, len(v))
	copy(vals, v)
	return &Constant{Vals: vals, Shape: []int{len(v)}}
}

// NewTensor returns a tensor constant from a square matrix
func NewTensor(m [][]float64) (o *Constant, err error) {
	n := len(m)
	o = &Constant{Vals: make([]float64, n*n), Shape: []int{n, n}}
	for i := 0; i < n; i++ {
		if len(m[i]) != n {
			return nil, chk.Err("tensor must be square; row %d has %d columns instead of %d", i, len(m[i]), n)
		}
		copy(o.Vals[i*n:], m[i])
	}
	return
}

// Rank returns the rank of this constant
func (o *Constant) Rank() int { return len(o.Shape) }

// Scalar returns the value of a scalar constant
func (o *Constant) Scalar() float64 { return o.Vals[0] }

// String returns a compact representation
func (o *Constant) String() string {
	if o.Rank() == 0 {
		return io.Sf("Constant(%g)", o.Vals[0])
	}
	return io.Sf("Constant(%v)", o.Vals)
}

// Piecewise holds a scalar value per subdomain (cell marker)
type Piecewise struct {
	Vals map[int]float64 // subdomain id => value
}

// Rank returns 0
func (o *Piecewise) Rank() int { return 0 }

// Normal represents the outward unit normal of boundary facets
type Normal struct{}

// Rank returns 1
func (o *Normal) Rank() int { return 1 }

// Product represents A*B where at least one of A or B is a scalar
type Product struct {
	A, B Value
}

// Rank returns the rank of the non-scalar factor
func (o *Product) Rank() int { return o.A.Rank() + o.B.Rank() }

// Scaled represents Coef*V
type Scaled struct {
	Coef float64
	V    Value
}

// Rank returns the rank of V
func (o *Scaled) Rank() int { return o.V.Rank() }

// Dot represents the contraction dot(A, B); e.g. dot(σ, n)
type Dot struct {
	A, B Value
}

// Rank returns rank(A) + rank(B) - 2
func (o *Dot) Rank() int { return o.A.Rank() + o.B.Rank() - 2 }

// Eval evaluates a value built from constants, normals, products, scaled values and
// contractions. The normal vector n is used wherever Normal appears.
//  Note: fields and piecewise values cannot be evaluated here; the kernel does it
func Eval(v Value, n []float64) (res []float64, err error) {
	switch o := v.(type) {
	case *Constant:
		res = make([]float64, len(o.Vals))
		copy(res, o.Vals)
		return
	case *Normal:
		if n == nil {
			return nil, chk.Err("cannot evaluate normal vector without facet normal")
		}
		res = make([]float64, len(n))
		copy(res, n)
		return
	case *Scaled:
		res, err = Eval(o.V, n)
		for i := range res {
			res[i] *= o.Coef
		}
		return
	case *Product:
		var a, b []float64
		if a, err = Eval(o.A, n); err != nil {
			return
		}
		if b, err = Eval(o.B, n); err != nil {
			return
		}
		if len(a) == 1 {
			a, b = b, a
		}
		if len(b) != 1 {
			return nil, chk.Err("product requires at least one scalar factor; got sizes %d and %d", len(a), len(b))
		}
		res = make([]float64, len(a))
		for i := range a {
			res[i] = a[i] * b[0]
		}
		return
	case *Dot:
		var a, b []float64
		if a, err = Eval(o.A, n); err != nil {
			return
		}
		if b, err = Eval(o.B, n); err != nil {
			return
		}
		m := len(b)
		if m == 0 || len(a) != m*m {
			if len(a) == m { // vector . vector
				s := 0.0
				for i := range a {
					s += a[i] * b[i]
				}
				return []float64{s}, nil
			}
			return nil, chk.Err("cannot contract values with sizes %d and %d", len(a), len(b))
		}
		res = make([]float64, m)
		for i := 0; i < m; i++ {
			for j := 0; j < m; j++ {
				res[i] += a[i*m+j] * b[j]
			}
		}
		return
	}
	return nil, chk.Err("cannot evaluate value of type %T", v)
}

// Norm returns the Euclidean norm of an evaluated value
func Norm(v []float64) (s float64) {
	for _, x := range v {
		s += x * x
	}
	return math.Sqrt(s)
}
