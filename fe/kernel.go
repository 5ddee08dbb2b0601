// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fe

import "github.com/cpmech/gosl/la"

// SpaceFactory builds function spaces
type SpaceFactory interface {
	NewSpace(m Mesh, family string, degree, ncomp int, periodic string) (Space, error) // ncomp==1 => scalar space
	NewMixedSpace(m Mesh, family string, degree int, ncomps []int) (Space, error)    // one sub-space per entry
}

// MeshReader reads meshes and markers from files
type MeshReader interface {
	ReadXml(path, facetPath, physicalPath string) (Mesh, error) // empty companion paths => not available
	ReadHdf5(path, meshSet, subdomainSet, boundarySet string) (Mesh, error)
	ReadXdmf(path string) (Mesh, error)
}

// SolverParams holds parameters passed to the linear solvers
type SolverParams struct {
	Rtol    float64 // relative tolerance
	MaxIt   int     // maximum number of iterations
	Monitor bool    // print convergence history
}

// Assembler computes integrals
type Assembler interface {
	Area(m Mesh, boundaryId int) (float64, error) // ∫ 1 ds(id)
}

// LinearSolver solves lhs(F) = rhs(F) subject to bcs, writing into u
type LinearSolver interface {
	Solve(F *Form, bcs []*DirichletBc, u Field, prms *SolverParams) error
}

// AmgSolver solves with conjugate gradients and smoothed aggregation multigrid
type AmgSolver interface {
	SolveAmg(F *Form, bcs []*DirichletBc, u Field, nullspace []la.Vector, prms *SolverParams) error
}

// EigenSolver computes the largest eigenpair of the stiffness operator
type EigenSolver interface {
	SolveEigen(F *Form, bcs []*DirichletBc) (lambda float64, vec Field, err error)
}

// Writer writes fields to files (e.g. pvd)
type Writer interface {
	Write(filename, name string, f Field, t float64) error
}

// Plotter shows fields
type Plotter interface {
	Plot(f Field, title string) error
}

// Kernel collects all services provided by the finite element library.
// Optional services may be nil: Amg, Eigen, Writer, Plotter and Meshes.
type Kernel struct {
	Spaces    SpaceFactory
	Meshes    MeshReader
	Assembler Assembler
	Linear    LinearSolver
	Amg       AmgSolver
	Eigen     EigenSolver
	Writer    Writer
	Plotter   Plotter
}
