// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fe

import "github.com/cpmech/gosl/la"

// Mesh defines what the solver needs to know about a mesh
type Mesh interface {
	Gdim() int          // geometric dimension
	Tdim() int          // topological dimension; may differ from Gdim, e.g. shells
	BoundaryIds() []int // sorted ids of marked boundary facets; the unmarked id 0 is not included
	SubdomainIds() []int
}

// Evaluator evaluates a (vector) expression at a point and time
type Evaluator interface {
	Ncomp() int                                     // number of components
	Eval(res []float64, t float64, x []float64) error // res[Ncomp] = f(t, x)
}

// Argument is a trial or test function of a space
type Argument interface {
	Space() Space
	IsTrial() bool
}

// Field holds the coefficients of a function defined on a space
type Field interface {
	Value
	Space() Space
	Vector() la.Vector // degrees of freedom
	Copy() Field       // deep copy
}

// Space defines a finite element function space. Vector spaces have one
// sub-space per axis; mixed spaces have one sub-space per physical field.
type Space interface {
	Mesh() Mesh
	Family() string
	Degree() int
	Ncomp() int      // number of components of functions in this space
	NumSub() int     // number of sub-spaces; 0 for scalar spaces
	Sub(i int) Space // i-th sub-space
	IsMixed() bool   // space combines different physical fields
	Ndof() int       // number of degrees of freedom

	// functions
	NewField() Field // zero field
	Trial() Argument // trial function
	Test() Argument  // test function

	// values
	Interpolate(e Evaluator, t float64) (Field, error) // interpolates expression
	Load(path string) (Field, error)                  // reads persisted field, resampled onto this space if needed
	Split(f Field) ([]Field, error)                   // splits field of a mixed space into sub-fields

	// dof-wise helpers (acting on vectors compatible with the root space)
	SetDofs(x la.Vector, value float64)         // x[dofs of this space] = value
	SetX(x la.Vector, value float64, axis int)  // x[dofs of this space] = value * coordinate[axis]
	Finalize(x la.Vector) (err error)           // commit ghost/halo contributions
}
