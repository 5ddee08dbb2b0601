// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fetest

import (
	"os"
	"strconv"
	"strings"

	"github.com/cpmech/elastfem/fe"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Space implements fe.Space with one dof per node and component
//  Note: the dofs of node n and component c of a sub-space are located at
//        n*stride + offset + c in vectors of the root space. Fields of a sub-space
//        use the local layout n*ncomp + c
type Space struct {
	mesh   *Mesh
	family string
	degree int
	ncomp  int      // number of components of this space
	offset int      // offset of the first component within the root layout
	stride int      // number of components of the root space
	mixed  bool     // root of a mixed space
	subs   []*Space // sub-spaces
	root   *Space   // root space; itself if root
}

// newSpace allocates a space with ncomp components at offset within a root with stride components
func newSpace(m *Mesh, family string, degree, ncomp, offset, stride int, root *Space) (o *Space) {
	o = &Space{mesh: m, family: family, degree: degree, ncomp: ncomp, offset: offset, stride: stride, root: root}
	if root == nil {
		o.root = o
	}
	if ncomp > 1 {
		o.subs = make([]*Space, ncomp)
		for i := 0; i < ncomp; i++ {
			o.subs[i] = newSpace(m, family, degree, 1, offset+i, stride, o.root)
		}
	}
	return
}

// Mesh returns the mesh
func (o *Space) Mesh() fe.Mesh { return o.mesh }

// Family returns the element family
func (o *Space) Family() string { return o.family }

// Degree returns the polynomial degree
func (o *Space) Degree() int { return o.degree }

// Ncomp returns the number of components
func (o *Space) Ncomp() int { return o.ncomp }

// NumSub returns the number of sub-spaces
func (o *Space) NumSub() int { return len(o.subs) }

// Sub returns a sub-space
func (o *Space) Sub(i int) fe.Space {
	if i < 0 || i >= len(o.subs) {
		chk.Panic("sub-space index %d is out of range [0, %d)", i, len(o.subs))
	}
	return o.subs[i]
}

// IsMixed tells whether this space combines different fields
func (o *Space) IsMixed() bool { return o.mixed }

// Ndof returns the number of dofs of this (sub-)space
func (o *Space) Ndof() int { return o.mesh.Nnodes() * o.ncomp }

// NewField returns a zero field
func (o *Space) NewField() fe.Field {
	return &Field{space: o, vec: la.NewVector(o.Ndof())}
}

// Trial returns the trial function
func (o *Space) Trial() fe.Argument { return &Argument{space: o, trial: true} }

// Test returns the test function
func (o *Space) Test() fe.Argument { return &Argument{space: o} }

// Interpolate evaluates e at the nodes
func (o *Space) Interpolate(e fe.Evaluator, t float64) (f fe.Field, err error) {
	if e.Ncomp() != o.ncomp {
		return nil, chk.Err("cannot interpolate expression with %d components onto space with %d components", e.Ncomp(), o.ncomp)
	}
	fld := o.NewField().(*Field)
	res := make([]float64, o.ncomp)
	for n, x := range o.mesh.Coords {
		err = e.Eval(res, t, x)
		if err != nil {
			return
		}
		copy(fld.vec[n*o.ncomp:], res)
	}
	return fld, nil
}

// Load reads whitespace separated values; one per dof in the local layout
func (o *Space) Load(path string) (f fe.Field, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return
	}
	words := strings.Fields(string(b))
	if len(words) != o.Ndof() {
		return nil, chk.Err("file %q has %d values but space has %d dofs", path, len(words), o.Ndof())
	}
	fld := o.NewField().(*Field)
	for i, w := range words {
		fld.vec[i], err = strconv.ParseFloat(w, 64)
		if err != nil {
			return nil, chk.Err("cannot parse value %d in file %q: %v", i, path, err)
		}
	}
	return fld, nil
}

// Split extracts the fields of the sub-spaces
func (o *Space) Split(f fe.Field) (res []fe.Field, err error) {
	if f.Space() != fe.Space(o) {
		return nil, chk.Err("field does not belong to this space")
	}
	if len(o.subs) == 0 {
		return nil, chk.Err("cannot split field of scalar space")
	}
	src := f.Vector()
	res = make([]fe.Field, len(o.subs))
	for i, sub := range o.subs {
		fld := sub.NewField().(*Field)
		for n := 0; n < o.mesh.Nnodes(); n++ {
			for c := 0; c < sub.ncomp; c++ {
				fld.vec[n*sub.ncomp+c] = src[n*o.ncomp+sub.offset-o.offset+c]
			}
		}
		res[i] = fld
	}
	return
}

// SetDofs sets the dofs of this space in a root vector
func (o *Space) SetDofs(x la.Vector, value float64) {
	for n := 0; n < o.mesh.Nnodes(); n++ {
		for c := 0; c < o.ncomp; c++ {
			x[n*o.stride+o.offset+c] = value
		}
	}
}

// SetX sets the dofs of this space in a root vector to value * x[axis]
func (o *Space) SetX(x la.Vector, value float64, axis int) {
	for n, X := range o.mesh.Coords {
		for c := 0; c < o.ncomp; c++ {
			x[n*o.stride+o.offset+c] = value * X[axis]
		}
	}
}

// Finalize does nothing because there are no ghost dofs in serial
func (o *Space) Finalize(x la.Vector) (err error) {
	if len(x) != o.root.Ndof() {
		return chk.Err("vector has %d entries but root space has %d dofs", len(x), o.root.Ndof())
	}
	return
}

// Argument implements fe.Argument
type Argument struct {
	space fe.Space
	trial bool
}

// Space returns the space
func (o *Argument) Space() fe.Space { return o.space }

// IsTrial tells whether this is a trial function
func (o *Argument) IsTrial() bool { return o.trial }

// Field implements fe.Field
type Field struct {
	space *Space
	vec   la.Vector
}

// NewField returns a field with given values
func NewField(s fe.Space, vals []float64) *Field {
	sp := s.(*Space)
	if len(vals) != sp.Ndof() {
		chk.Panic("number of values (%d) must be equal to the number of dofs (%d)", len(vals), sp.Ndof())
	}
	o := &Field{space: sp, vec: la.NewVector(len(vals))}
	copy(o.vec, vals)
	return o
}

// Rank returns 0 for scalar fields and 1 otherwise
func (o *Field) Rank() int {
	if o.space.ncomp == 1 {
		return 0
	}
	return 1
}

// Space returns the space
func (o *Field) Space() fe.Space { return o.space }

// Vector returns the dofs
func (o *Field) Vector() la.Vector { return o.vec }

// Copy returns a deep copy
func (o *Field) Copy() fe.Field {
	vec := la.NewVector(len(o.vec))
	copy(vec, o.vec)
	return &Field{space: o.space, vec: vec}
}

// At returns the values at node n
func (o *Field) At(n int) []float64 {
	return o.vec[n*o.space.ncomp : (n+1)*o.space.ncomp]
}
