// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/elastfem/fe"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/mat"
)

// Nullspace holds the rigid body modes of a vector space
type Nullspace struct {
	Basis []la.Vector // orthonormal vectors
}

// rigid body modes: each entry sets sub-space sub to coef times coordinate axis
type rbmTerm struct {
	sub  int
	coef float64
	axis int
}

// rotations[ndim] lists the rotations; translations are added separately
var rotations = map[int][][]rbmTerm{
	2: {
		{{0, -1, 1}, {1, 1, 0}},
	},
	3: {
		{{0, -1, 1}, {1, 1, 0}},
		{{0, 1, 2}, {2, -1, 0}},
		{{2, 1, 1}, {1, -1, 2}},
	},
}

// BuildNullspace builds the translations and rotations of a vector space
//  Input:
//   V      -- vector space with one sub-space per axis
//   sample -- vector compatible with V; used for sizing only
//  Output:
//   3 orthonormal vectors in 2D or 6 in 3D
func BuildNullspace(V fe.Space, sample la.Vector) (o *Nullspace, err error) {

	// check
	ndim := V.Mesh().Gdim()
	rots, ok := rotations[ndim]
	if !ok {
		return nil, &UnsupportedDimensionError{Dim: ndim}
	}
	if V.NumSub() != ndim {
		return nil, chk.Err("space must have %d sub-spaces; NumSub=%d is invalid", ndim, V.NumSub())
	}
	if len(sample) == 0 {
		return nil, chk.Err("sample vector must not be empty")
	}

	// translations
	o = new(Nullspace)
	for i := 0; i < ndim; i++ {
		x := la.NewVector(len(sample))
		V.Sub(i).SetDofs(x, 1.0)
		o.Basis = append(o.Basis, x)
	}

	// rotations
	for _, rot := range rots {
		x := la.NewVector(len(sample))
		for _, r := range rot {
			V.Sub(r.sub).SetX(x, r.coef, r.axis)
		}
		o.Basis = append(o.Basis, x)
	}

	// finalize
	for _, x := range o.Basis {
		if err = V.Finalize(x); err != nil {
			return nil, chk.Err("cannot finalize nullspace vector:\n%v", err)
		}
	}
	err = o.orthonormalize()
	return
}

// orthonormalize applies the modified Gram-Schmidt process
func (o *Nullspace) orthonormalize() (err error) {
	vecs := make([]*mat.VecDense, len(o.Basis))
	for i, x := range o.Basis {
		vecs[i] = mat.NewVecDense(len(x), x) // shares data with x
	}
	for i, vi := range vecs {
		for j := 0; j < i; j++ {
			vi.AddScaledVec(vi, -mat.Dot(vecs[j], vi), vecs[j])
		}
		nrm := mat.Norm(vi, 2)
		if nrm < 1e-14 {
			return chk.Err("nullspace vector %d is linearly dependent on the previous ones", i)
		}
		vi.ScaleVec(1.0/nrm, vi)
	}
	return
}

// Orthonormal returns the largest deviation of Basisᵀ・Basis from the identity
func (o *Nullspace) Orthonormal() (dev float64) {
	for i, a := range o.Basis {
		for j, b := range o.Basis {
			d := la.VecDot(a, b)
			if i == j {
				d -= 1
			}
			dev = math.Max(dev, math.Abs(d))
		}
	}
	return
}
